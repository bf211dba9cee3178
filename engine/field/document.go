// Package field extracts typed values from raw Pulp JSON documents by dotted path.
//
// A JSON null is treated the same as an absent key: optional getters return no
// value and required getters report a missing field.
package field

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Document is an immutable raw JSON object addressed with gjson paths.
//
// Alongside the JSON text it keeps the decoded values, so that sub-trees handed
// back to callers (Objects) carry the original Go values rather than the
// float64 numbers of a JSON round trip.
type Document struct {
	raw  []byte
	data map[string]any
}

// FromMap builds a document from an already-decoded mapping. The mapping is
// deep-copied.
func FromMap(data map[string]any) (*Document, error) {
	if data == nil {
		return nil, NewInvalidDocumentError(errors.New("document is nil"))
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, NewInvalidDocumentError(errors.Wrap(err, "failed to marshal document to JSON"))
	}
	copied, ok := deepcopy.Copy(data).(map[string]any)
	if !ok {
		return nil, NewInvalidDocumentError(errors.New("failed to copy document"))
	}
	return &Document{raw: raw, data: copied}, nil
}

// FromBytes builds a document from JSON text, which must encode an object.
func FromBytes(raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, NewInvalidDocumentError(errors.New("malformed JSON"))
	}
	if root := gjson.ParseBytes(raw); !root.IsObject() {
		return nil, NewInvalidDocumentError(errors.Errorf("expected object, got %s", TypeName(root)))
	}
	buf := make([]byte, len(raw))
	copy(buf, raw)
	data, err := decodeExact(buf)
	if err != nil {
		return nil, NewInvalidDocumentError(errors.Wrap(err, "failed to decode document"))
	}
	return &Document{raw: buf, data: data}, nil
}

// decodeExact decodes a JSON object keeping integers exact: whole numbers that
// fit become int64, everything else float64.
func decodeExact(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	normalized, _ := normalizeNumbers(out).(map[string]any)
	return normalized, nil
}

func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	default:
		return v
	}
}

// Bytes returns a copy of the underlying JSON.
func (d *Document) Bytes() []byte {
	buf := make([]byte, len(d.raw))
	copy(buf, d.raw)
	return buf
}

// Map decodes the whole document into plain JSON values (float64 numbers).
func (d *Document) Map() map[string]any {
	out, ok := gjson.ParseBytes(d.raw).Value().(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return out
}

// Lookup returns the raw result at path.
func (d *Document) Lookup(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// rawAt walks the decoded values along a dotted path of object keys.
func (d *Document) rawAt(path string) (any, bool) {
	var cur any = d.data
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path holds a non-null value.
func (d *Document) Has(path string) bool {
	return present(d.Lookup(path))
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// TypeName names the JSON type of r for error messages.
func TypeName(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
