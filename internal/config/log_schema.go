package config

import "fmt"

// Default log schema keys. An empty field and an explicitly written default
// are treated identically by the merge engine.
const (
	defaultMessageKey    = "message"
	defaultTimestampKey  = "timestamp"
	defaultHostKey       = "host"
	defaultSourceTypeKey = "source_type"
)

// LogSchema names the event fields the pipeline writes standard metadata to.
type LogSchema struct {
	MessageKey    string `json:"message_key,omitempty"`
	TimestampKey  string `json:"timestamp_key,omitempty"`
	HostKey       string `json:"host_key,omitempty"`
	SourceTypeKey string `json:"source_type_key,omitempty"`
}

// Merge reconciles other into s field by field. A field set to a non-default
// value on both sides with differing values contributes one error; merging
// continues for the remaining fields so every conflict is reported in one
// pass.
func (s *LogSchema) Merge(other *LogSchema) []string {
	var errors []string
	mergeSchemaKey(&s.MessageKey, other.MessageKey, defaultMessageKey, "message_key", &errors)
	mergeSchemaKey(&s.TimestampKey, other.TimestampKey, defaultTimestampKey, "timestamp_key", &errors)
	mergeSchemaKey(&s.HostKey, other.HostKey, defaultHostKey, "host_key", &errors)
	mergeSchemaKey(&s.SourceTypeKey, other.SourceTypeKey, defaultSourceTypeKey, "source_type_key", &errors)
	return errors
}

func mergeSchemaKey(self *string, other, defaultValue, name string, errors *[]string) {
	if *self == "" || *self == defaultValue {
		if other != "" {
			*self = other
		}
		return
	}
	if other != "" && other != defaultValue && other != *self {
		*errors = append(*errors, fmt.Sprintf("conflicting values for 'log_schema.%s' found", name))
	}
}
