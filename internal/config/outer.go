package config

import (
	"encoding/json"
	"fmt"

	"github.com/vk/pipeweld/internal/component"
	"github.com/vk/pipeweld/internal/componentid"
)

// The entity wrappers pair a polymorphic component configuration with the
// structural metadata this core owns: the ordered input edges pointing
// upstream. Sources and enrichment tables are graph roots and carry none.
//
// On the wire every wrapper is a flat object: the component's own fields plus
// a "type" tag resolving against the plugin registry, and "inputs" for sinks
// and transforms. Input edges serialize as canonical componentid strings, so
// pipeline-scoped edges survive the round trip.

// SourceOuter wraps a source configuration.
type SourceOuter struct {
	Inner component.SourceConfig
}

// SinkOuter wraps a sink configuration with its ordered input edges.
type SinkOuter struct {
	Inputs []componentid.ID
	Inner  component.SinkConfig
}

// TransformOuter wraps a transform configuration with its ordered input edges.
type TransformOuter struct {
	Inputs []componentid.ID
	Inner  component.TransformConfig
}

// EnrichmentTableOuter wraps an enrichment table configuration.
type EnrichmentTableOuter struct {
	Inner component.EnrichmentTableConfig
}

// marshalTagged flattens inner's fields into one object together with the
// "type" tag and, when withInputs is set, the "inputs" edge list.
func marshalTagged(inner component.Config, inputs []componentid.ID, withInputs bool) ([]byte, error) {
	if inner == nil {
		return nil, fmt.Errorf("component configuration is missing")
	}
	encoded, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}
	tree, err := asValueTree(encoded)
	if err != nil {
		return nil, err
	}
	tree["type"] = inner.ComponentType()
	if withInputs {
		names := make([]string, len(inputs))
		for i, id := range inputs {
			names[i] = id.String()
		}
		tree["inputs"] = names
	}
	return json.Marshal(tree)
}

// taggedHead is the bookkeeping half of a serialized entity wrapper.
type taggedHead struct {
	Type   string   `json:"type"`
	Inputs []string `json:"inputs"`
}

func decodeTaggedHead(data []byte) (taggedHead, error) {
	var head taggedHead
	if err := json.Unmarshal(data, &head); err != nil {
		return head, err
	}
	if head.Type == "" {
		return head, fmt.Errorf("component is missing a 'type' field")
	}
	return head, nil
}

func parseInputs(names []string) ([]componentid.ID, error) {
	if len(names) == 0 {
		return nil, nil
	}
	ids := make([]componentid.ID, len(names))
	for i, name := range names {
		id, err := componentid.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// MarshalJSON implements json.Marshaler.
func (o SourceOuter) MarshalJSON() ([]byte, error) {
	return marshalTagged(o.Inner, nil, false)
}

// UnmarshalJSON implements json.Unmarshaler, resolving the "type" tag against
// the plugin registry.
func (o *SourceOuter) UnmarshalJSON(data []byte) error {
	head, err := decodeTaggedHead(data)
	if err != nil {
		return err
	}
	inner, err := component.Default.NewSource(head.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, inner); err != nil {
		return err
	}
	o.Inner = inner
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o SinkOuter) MarshalJSON() ([]byte, error) {
	return marshalTagged(o.Inner, o.Inputs, true)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *SinkOuter) UnmarshalJSON(data []byte) error {
	head, err := decodeTaggedHead(data)
	if err != nil {
		return err
	}
	inner, err := component.Default.NewSink(head.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, inner); err != nil {
		return err
	}
	inputs, err := parseInputs(head.Inputs)
	if err != nil {
		return err
	}
	o.Inner = inner
	o.Inputs = inputs
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o TransformOuter) MarshalJSON() ([]byte, error) {
	return marshalTagged(o.Inner, o.Inputs, true)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *TransformOuter) UnmarshalJSON(data []byte) error {
	head, err := decodeTaggedHead(data)
	if err != nil {
		return err
	}
	inner, err := component.Default.NewTransform(head.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, inner); err != nil {
		return err
	}
	inputs, err := parseInputs(head.Inputs)
	if err != nil {
		return err
	}
	o.Inner = inner
	o.Inputs = inputs
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o EnrichmentTableOuter) MarshalJSON() ([]byte, error) {
	return marshalTagged(o.Inner, nil, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *EnrichmentTableOuter) UnmarshalJSON(data []byte) error {
	head, err := decodeTaggedHead(data)
	if err != nil {
		return err
	}
	inner, err := component.Default.NewEnrichmentTable(head.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, inner); err != nil {
		return err
	}
	o.Inner = inner
	return nil
}

// marshalProvider and unmarshalProvider give the optional provider slot the
// same tagged codec as the entity wrappers, which is what keeps the builder's
// JSON round trip (Clone) lossless for providers.
func marshalProvider(p component.ProviderConfig) ([]byte, error) {
	return marshalTagged(p, nil, false)
}

func unmarshalProvider(data []byte) (component.ProviderConfig, error) {
	head, err := decodeTaggedHead(data)
	if err != nil {
		return nil, err
	}
	inner, err := component.Default.NewProvider(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, inner); err != nil {
		return nil, err
	}
	return inner, nil
}
