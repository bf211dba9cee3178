// Package task models Pulp tasks: their completion state, the repository they
// act on, the units they processed and a readable account of any failure.
package task

import (
	"context"
	"slices"
	"strings"

	"github.com/mohae/deepcopy"

	"github.com/drepelov/pubtools-pulplib/engine/unit"
)

// RepositoryTagPrefix marks the tag naming the repository a task acts on.
const RepositoryTagPrefix = "pulp:repository:"

// Params is the plain record a Task is built from. Nil pointers mean "not
// known"; a nil RepoID asks New to derive it from Tags. Presence of the ID is
// checked when reading a payload (Extract); an empty ID is a valid value.
type Params struct {
	ID           string           `json:"task_id"`
	Completed    *bool            `json:"completed"`
	Succeeded    *bool            `json:"succeeded"`
	ErrorSummary *string          `json:"error_summary"`
	ErrorDetails *string          `json:"error_details"`
	Tags         []string         `json:"tags"`
	RepoID       *string          `json:"repo_id"`
	UnitsData    []map[string]any `json:"units_data"    validate:"dive,required"`
}

// Task is an immutable Pulp task.
type Task struct {
	id           string
	completed    *bool
	succeeded    *bool
	errorSummary *string
	errorDetails *string
	tags         []string
	repoID       *string
	// unitsData is the single stored copy of result.units_successful;
	// units is computed from it and never set independently.
	unitsData []map[string]any
	units     []unit.Unit
}

// New validates p and builds a Task, deriving RepoID and Units.
func New(p Params, opts ...Option) (*Task, error) {
	o := newOptions(opts)
	if err := newValidator(&p).Validate(context.Background()); err != nil {
		return nil, wrapError(err)
	}

	t := &Task{
		id:           p.ID,
		completed:    clonePtr(p.Completed),
		succeeded:    clonePtr(p.Succeeded),
		errorSummary: clonePtr(p.ErrorSummary),
		errorDetails: clonePtr(p.ErrorDetails),
		tags:         slices.Clone(p.Tags),
		unitsData:    copyUnitsData(p.UnitsData),
	}
	if p.RepoID != nil {
		t.repoID = clonePtr(p.RepoID)
	} else {
		t.repoID = repoIDFromTags(t.tags)
	}

	units, err := convertUnits(t.unitsData, o.unitOptions()...)
	if err != nil {
		return nil, err
	}
	t.units = units
	return t, nil
}

// repoIDFromTags returns the first repository tag's ID. Tasks touching several
// repositories (copy) carry several such tags; only the first is reported.
func repoIDFromTags(tags []string) *string {
	for _, tag := range tags {
		if repoID, ok := strings.CutPrefix(tag, RepositoryTagPrefix); ok {
			return &repoID
		}
	}
	return nil
}

func convertUnits(raw []map[string]any, opts ...unit.Option) ([]unit.Unit, error) {
	units := make([]unit.Unit, 0, len(raw))
	for i, data := range raw {
		u, err := unit.FromTaskData(data, opts...)
		if err != nil {
			return nil, NewInvalidUnitError(i, err)
		}
		units = append(units, u)
	}
	return units, nil
}

// ID of this task.
func (t *Task) ID() string {
	return t.id
}

// Completed is true if the task has completed, successfully or otherwise.
// Nil if the state is unknown.
func (t *Task) Completed() *bool {
	return clonePtr(t.completed)
}

// Succeeded is true if the task has completed successfully. Nil if the state
// is unknown.
func (t *Task) Succeeded() *bool {
	return clonePtr(t.succeeded)
}

// ErrorSummary is a one-line description of the failure, including the task
// ID. Nil unless the task failed or was canceled.
func (t *Task) ErrorSummary() *string {
	return clonePtr(t.errorSummary)
}

// ErrorDetails is a superset of ErrorSummary and may span several lines
// (Pulp error data, tracebacks). Display one or the other, not both.
func (t *Task) ErrorDetails() *string {
	return clonePtr(t.errorDetails)
}

// Tags as reported by Pulp, in server order, e.g.
// ["pulp:repository:rhel-7-server-rpms__7Server_x86_64", "pulp:action:publish"].
func (t *Task) Tags() []string {
	return slices.Clone(t.tags)
}

// RepoID of the repository associated with this task, or nil.
func (t *Task) RepoID() *string {
	return clonePtr(t.repoID)
}

// Units processed by this task (e.g. associated or unassociated).
func (t *Task) Units() []unit.Unit {
	return slices.Clone(t.units)
}

// UnitsData returns the raw unit mappings behind Units. Each holds at least a
// "type_id" and a "unit_key".
//
// Deprecated: use Units.
func (t *Task) UnitsData() []map[string]any {
	return copyUnitsData(t.unitsData)
}

// Params returns the record this task was built from, with derived fields
// filled in. New(t.Params()) yields an equal task.
func (t *Task) Params() Params {
	return Params{
		ID:           t.id,
		Completed:    clonePtr(t.completed),
		Succeeded:    clonePtr(t.succeeded),
		ErrorSummary: clonePtr(t.errorSummary),
		ErrorDetails: clonePtr(t.errorDetails),
		Tags:         slices.Clone(t.tags),
		RepoID:       clonePtr(t.repoID),
		UnitsData:    copyUnitsData(t.unitsData),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyUnitsData(raw []map[string]any) []map[string]any {
	if raw == nil {
		return nil
	}
	out, ok := deepcopy.Copy(raw).([]map[string]any)
	if !ok {
		return nil
	}
	return out
}
