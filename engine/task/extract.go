package task

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/drepelov/pubtools-pulplib/engine/field"
	"github.com/drepelov/pubtools-pulplib/engine/schema"
	"github.com/drepelov/pubtools-pulplib/engine/unit"
	"github.com/drepelov/pubtools-pulplib/pkg/config"
	"github.com/drepelov/pubtools-pulplib/pkg/logger"
)

const (
	pathTaskID          = "task_id"
	pathState           = "state"
	pathTags            = "tags"
	pathUnitsSuccessful = "result.units_successful"
)

var stateSpec = field.Spec[State]{
	Path:     pathState,
	Required: true,
	Convert: func(path string, value gjson.Result) (State, error) {
		s, err := field.AsString(path, value)
		return State(s), err
	},
}

// Extract reads the fields of a raw Pulp task payload into Params. The result
// still has to go through New.
func Extract(doc *field.Document) (Params, error) {
	id, err := doc.String(pathTaskID)
	if err != nil {
		return Params{}, wrapError(err)
	}
	state, _, err := field.Get(doc, stateSpec)
	if err != nil {
		return Params{}, wrapError(err)
	}
	tags, err := doc.StringSlice(pathTags)
	if err != nil {
		return Params{}, wrapError(err)
	}
	units, err := doc.Objects(pathUnitsSuccessful)
	if err != nil {
		return Params{}, wrapError(err)
	}
	failed, err := describeFailure(doc, id, state)
	if err != nil {
		return Params{}, wrapError(err)
	}

	completed := state.IsCompleted()
	succeeded := state.IsSucceeded()
	p := Params{
		ID:        id,
		Completed: &completed,
		Succeeded: &succeeded,
		Tags:      tags,
		UnitsData: units,
	}
	if failed != nil {
		p.ErrorSummary = &failed.summary
		p.ErrorDetails = &failed.details
	}
	return p, nil
}

// FromData builds a Task from a decoded Pulp task payload. Options default to
// the configuration found in ctx; explicit opts take precedence.
func FromData(ctx context.Context, data map[string]any, opts ...Option) (*Task, error) {
	doc, err := field.FromMap(data)
	if err != nil {
		return nil, wrapError(err)
	}
	return fromDocument(ctx, doc, opts...)
}

// FromJSON builds a Task from a Pulp task payload as returned by the API.
func FromJSON(ctx context.Context, raw []byte, opts ...Option) (*Task, error) {
	doc, err := field.FromBytes(raw)
	if err != nil {
		return nil, wrapError(err)
	}
	return fromDocument(ctx, doc, opts...)
}

func fromDocument(ctx context.Context, doc *field.Document, opts ...Option) (*Task, error) {
	log := logger.FromContext(ctx)
	opts = append(OptionsFromConfig(config.FromContext(ctx)), opts...)
	o := newOptions(opts)
	if o.validateSchema {
		if err := schema.NewDocumentValidator(schema.TaskSchema, doc.Map()).Validate(ctx); err != nil {
			log.Debug("Task payload rejected by schema", "error", err)
			return nil, wrapError(err)
		}
	}
	params, err := Extract(doc)
	if err != nil {
		return nil, err
	}
	t, err := New(params, opts...)
	if err != nil {
		return nil, err
	}
	for i, u := range t.units {
		if _, ok := u.(*unit.GenericUnit); ok {
			log.Debug("Task unit has no dedicated model", "task_id", t.id, "index", i, "type_id", u.ContentTypeID())
		}
	}
	log.Debug("Loaded task",
		"task_id", t.id,
		"state", doc.Lookup(pathState).Str,
		"repo_id", derefOr(t.repoID, ""),
		"units", len(t.units),
	)
	return t, nil
}

func derefOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
