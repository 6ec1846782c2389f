package tree

import (
	"bytes"
	"encoding/json"
)

// marshalJSONString marshals a Go string as a bare JSON string value.
func marshalJSONString(s string) ([]byte, error) {
	return json.Marshal(s)
}

// marshalTagged marshals a tagged-union variant as a JSON object whose
// first key is "type", followed by fields in a fixed, deterministic order.
// fields may be nil for variants with no extra data (e.g. line_break).
func marshalTagged(typ string, fields map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"type":`)
	typJSON, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	buf.Write(typJSON)

	for _, key := range orderedKeys(fields) {
		buf.WriteByte(',')
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(fields[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// orderedKeys returns a fixed traversal order for the well-known field
// names used by marshalTagged, so emitted JSON key order never depends on
// Go's unordered map iteration.
func orderedKeys(fields map[string]any) []string {
	preferred := []string{"number", "content", "footnotes"}
	var keys []string
	for _, k := range preferred {
		if _, ok := fields[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
