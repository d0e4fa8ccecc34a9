package config

// TestDefinition is a behavioral unit test declared alongside the topology.
// Definitions are unique by Name across the whole builder; running them is a
// downstream concern.
type TestDefinition struct {
	Name    string       `json:"name"`
	Input   *TestInput   `json:"input,omitempty"`
	Outputs []TestOutput `json:"outputs,omitempty"`
}

// TestInput is the synthetic event injected at a named component.
type TestInput struct {
	InsertAt  string         `json:"insert_at"`
	Type      string         `json:"type,omitempty"`
	Value     string         `json:"value,omitempty"`
	LogFields map[string]any `json:"log_fields,omitempty"`
}

// TestOutput is a set of conditions checked against the events a named
// component emits.
type TestOutput struct {
	ExtractFrom string           `json:"extract_from"`
	Conditions  []map[string]any `json:"conditions,omitempty"`
}
