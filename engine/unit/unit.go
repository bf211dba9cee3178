// Package unit models content units reported by Pulp.
package unit

import (
	"fmt"
	"sort"

	"github.com/mohae/deepcopy"
)

// ContentTypeKey is the discriminator carried by unit search results.
const ContentTypeKey = "_content_type_id"

// Unit is a piece of content managed by Pulp.
type Unit interface {
	ContentTypeID() string
}

type decodeFunc func(data map[string]any) (Unit, error)

var decoders = map[string]decodeFunc{
	ErratumContentType: decodeErratum,
}

// ContentTypes lists the content types with a dedicated model.
func ContentTypes() []string {
	out := make([]string, 0, len(decoders))
	for typeID := range decoders {
		out = append(out, typeID)
	}
	sort.Strings(out)
	return out
}

type options struct {
	strict bool
}

type Option func(*options)

// WithStrict makes conversion fail for content types lacking a dedicated model
// instead of producing a GenericUnit.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// -----------------------------------------------------------------------------
// GenericUnit
// -----------------------------------------------------------------------------

// GenericUnit holds a unit of a content type without a dedicated model.
type GenericUnit struct {
	TypeID string
	Fields map[string]any
}

func (u *GenericUnit) ContentTypeID() string {
	return u.TypeID
}

// -----------------------------------------------------------------------------
// Conversion
// -----------------------------------------------------------------------------

// FromData converts a unit in the shape returned by unit searches.
func FromData(data map[string]any, opts ...Option) (Unit, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	typeID, ok := data[ContentTypeKey].(string)
	if !ok || typeID == "" {
		return nil, NewMissingTypeError(ContentTypeKey)
	}
	if decode, ok := decoders[typeID]; ok {
		return decode(data)
	}
	if o.strict {
		return nil, NewUnsupportedTypeError(typeID)
	}
	fields, ok := deepcopy.Copy(data).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy unit fields")
	}
	delete(fields, ContentTypeKey)
	return &GenericUnit{TypeID: typeID, Fields: fields}, nil
}

// FromTaskData converts a unit in the shape found in a task's
// result.units_successful: {"type_id": ..., "unit_key": {...}}.
func FromTaskData(data map[string]any, opts ...Option) (Unit, error) {
	typeID, ok := data["type_id"].(string)
	if !ok || typeID == "" {
		return nil, NewMissingTypeError("type_id")
	}
	merged := map[string]any{}
	switch key := data["unit_key"].(type) {
	case nil:
	case map[string]any:
		for k, v := range key {
			merged[k] = v
		}
	default:
		return nil, NewInvalidKeyError(fmt.Sprintf("%T", key))
	}
	merged[ContentTypeKey] = typeID
	return FromData(merged, opts...)
}
