package format

import (
	"bytes"
	"encoding/json"
)

// object is an order-preserving JSON object node. Normalized fragment trees
// are built from *object, []any and scalars, so a plain json.Marshal of the
// root reproduces the document's key order.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// child returns the nested object under key, creating it on first use.
func (o *object) child(key string) *object {
	if v, ok := o.values[key]; ok {
		if nested, ok := v.(*object); ok {
			return nested
		}
	}
	nested := newObject()
	o.set(key, nested)
	return nested
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
