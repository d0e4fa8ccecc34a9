package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vk/pipeweld/internal/ordered"
)

// decodeOrderedObject streams the top-level keys of a JSON object in document
// order, handing each raw value to fn. encoding/json map decoding would lose
// the order, which is observable for entity collections.
func decodeOrderedObject(data []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// marshalOrderedObject serializes an ordered map as a JSON object whose keys
// appear in insertion order.
func marshalOrderedObject[K comparable, V any](m *ordered.Map[K, V], keyString func(K) string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(keyString(key))
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		value, _ := m.Get(key)
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyString(key), err)
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// asValueTree decodes JSON into a map, preserving number fidelity with
// json.Number. Used by the tagged component codec to inject bookkeeping
// fields next to the component's own.
func asValueTree(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = make(map[string]any)
	}
	return tree, nil
}
