package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Should read embedded YAML schemas as JSON schema maps", func(t *testing.T) {
		s, err := Parse(TaskSchema)
		require.NoError(t, err)
		assert.Equal(t, "object", s["type"])
		props, ok := s["properties"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, props, "task_id")
		assert.Contains(t, props, "tags")
		assert.NotContains(t, s, "required")
	})

	t.Run("Should fail for unknown schema names", func(t *testing.T) {
		_, err := Parse(Name("nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown schema "nope"`)
	})
}

func TestLoad(t *testing.T) {
	t.Run("Should compile once and reuse the result", func(t *testing.T) {
		first, err := Load(TaskSchema)
		require.NoError(t, err)
		second, err := Load(TaskSchema)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})
}

func TestValidate_Task(t *testing.T) {
	ctx := context.Background()

	t.Run("Should accept a typical failed task", func(t *testing.T) {
		err := Validate(ctx, TaskSchema, map[string]any{
			"task_id": "abc",
			"state":   "error",
			"tags":    []any{"pulp:repository:r1"},
			"error": map[string]any{
				"code":        "PLP0001",
				"description": "A general pulp exception occurred",
				"data":        map[string]any{"details": map[string]any{"errors": "not a list"}},
			},
			"traceback": nil,
		})
		assert.NoError(t, err)
	})

	t.Run("Should accept payloads missing task_id and state", func(t *testing.T) {
		assert.NoError(t, Validate(ctx, TaskSchema, map[string]any{}))
	})

	t.Run("Should reject tags that are not strings", func(t *testing.T) {
		err := Validate(ctx, TaskSchema, map[string]any{
			"task_id": "abc",
			"state":   "running",
			"tags":    []any{"ok", 3.0},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSchemaViolation))
		var schemaErr *Error
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, TaskSchema, schemaErr.Schema)
		assert.NotEmpty(t, schemaErr.Violations)
	})

	t.Run("Should reject a non-string state", func(t *testing.T) {
		err := Validate(ctx, TaskSchema, map[string]any{"task_id": "abc", "state": 1.0})
		assert.ErrorIs(t, err, ErrSchemaViolation)
	})
}

func TestValidate_Erratum(t *testing.T) {
	t.Run("Should reject references that are not objects", func(t *testing.T) {
		err := Validate(context.Background(), ErratumSchema, map[string]any{
			"_content_type_id": "erratum",
			"id":               "RHSA-2019:0975",
			"references":       []any{"x"},
		})
		assert.ErrorIs(t, err, ErrSchemaViolation)
	})
}

func TestCompositeValidator(t *testing.T) {
	t.Run("Should stop at the first failing validator", func(t *testing.T) {
		type sample struct {
			ID string `validate:"required"`
		}
		calls := 0
		counting := validatorFunc(func(context.Context) error {
			calls++
			return nil
		})
		v := NewCompositeValidator(
			counting,
			NewStructValidator(&sample{}),
		)
		v.AddValidator(counting)

		err := v.Validate(context.Background())

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Should run document validation", func(t *testing.T) {
		v := NewCompositeValidator(NewDocumentValidator(TaskSchema, map[string]any{"state": true}))
		assert.ErrorIs(t, v.Validate(context.Background()), ErrSchemaViolation)
	})
}

type validatorFunc func(ctx context.Context) error

func (f validatorFunc) Validate(ctx context.Context) error {
	return f(ctx)
}
