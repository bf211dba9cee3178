package field

import (
	"github.com/mohae/deepcopy"
	"github.com/tidwall/gjson"
)

// Converter turns the value found at path into T. It is only called for
// present, non-null values.
type Converter[T any] func(path string, value gjson.Result) (T, error)

// Spec declares one field of a document.
type Spec[T any] struct {
	Path     string
	Required bool
	Convert  Converter[T]
}

// Get extracts the field declared by spec. The boolean result is false when the
// field is absent and not required; the zero T is returned in that case.
func Get[T any](d *Document, spec Spec[T]) (T, bool, error) {
	var zero T
	value := d.Lookup(spec.Path)
	if !present(value) {
		if spec.Required {
			return zero, false, NewMissingFieldError(spec.Path)
		}
		return zero, false, nil
	}
	out, err := spec.Convert(spec.Path, value)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

// String returns the required string at path.
func (d *Document) String(path string) (string, error) {
	out, _, err := Get(d, Spec[string]{Path: path, Required: true, Convert: AsString})
	return out, err
}

// OptionalString returns the string at path, or nil when absent.
func (d *Document) OptionalString(path string) (*string, error) {
	out, ok, err := Get(d, Spec[string]{Path: path, Convert: AsString})
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// StringSlice returns the array of strings at path, or nil when absent.
func (d *Document) StringSlice(path string) ([]string, error) {
	out, _, err := Get(d, Spec[[]string]{Path: path, Convert: AsStringSlice})
	return out, err
}

// Objects returns a copy of the array of objects at path, or nil when absent.
// Values are the ones the document was built from, not their JSON rendering.
func (d *Document) Objects(path string) ([]map[string]any, error) {
	out, _, err := Get(d, Spec[[]map[string]any]{Path: path, Convert: d.asOriginalObjects})
	return out, err
}

func (d *Document) asOriginalObjects(path string, value gjson.Result) ([]map[string]any, error) {
	decoded, err := AsObjects(path, value)
	if err != nil {
		return nil, err
	}
	raw, ok := d.rawAt(path)
	if !ok {
		return decoded, nil
	}
	var items []any
	switch raw := raw.(type) {
	case []any:
		items = raw
	case []map[string]any:
		for _, item := range raw {
			items = append(items, item)
		}
	default:
		return decoded, nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := deepcopy.Copy(item).(map[string]any)
		if !ok {
			return decoded, nil
		}
		out = append(out, obj)
	}
	return out, nil
}

// AsString accepts JSON strings only.
func AsString(path string, value gjson.Result) (string, error) {
	if value.Type != gjson.String {
		return "", NewInvalidTypeError(path, "string", TypeName(value))
	}
	return value.Str, nil
}

// AsStringSlice accepts an array whose every element is a string.
func AsStringSlice(path string, value gjson.Result) ([]string, error) {
	if !value.IsArray() {
		return nil, NewInvalidTypeError(path, "array of strings", TypeName(value))
	}
	items := value.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, NewInvalidTypeError(path, "array of strings", "array containing "+TypeName(item))
		}
		out = append(out, item.Str)
	}
	return out, nil
}

// AsObjects accepts an array whose every element is an object.
func AsObjects(path string, value gjson.Result) ([]map[string]any, error) {
	if !value.IsArray() {
		return nil, NewInvalidTypeError(path, "array of objects", TypeName(value))
	}
	items := value.Array()
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.Value().(map[string]any)
		if !ok {
			return nil, NewInvalidTypeError(path, "array of objects", "array containing "+TypeName(item))
		}
		out = append(out, obj)
	}
	return out, nil
}
