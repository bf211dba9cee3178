package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/drepelov/pubtools-pulplib/engine/schema"
)

// -----------------------------------------------------------------------------
// FlagsValidator
// -----------------------------------------------------------------------------

// FlagsValidator rejects a task that succeeded without completing.
type FlagsValidator struct {
	params *Params
}

func NewFlagsValidator(params *Params) *FlagsValidator {
	return &FlagsValidator{params: params}
}

func (v *FlagsValidator) Validate(_ context.Context) error {
	succeeded := v.params.Succeeded != nil && *v.params.Succeeded
	completed := v.params.Completed != nil && *v.params.Completed
	if succeeded && !completed {
		return NewInvalidStateError(v.params.Completed)
	}
	return nil
}

// -----------------------------------------------------------------------------
// ParamsValidator
// -----------------------------------------------------------------------------

// ParamsValidator applies the struct tags of Params and reports failures as
// task errors.
type ParamsValidator struct {
	inner *schema.StructValidator
}

func NewParamsValidator(params *Params) *ParamsValidator {
	return &ParamsValidator{inner: schema.NewStructValidator(params)}
}

func (v *ParamsValidator) Validate(ctx context.Context) error {
	err := v.inner.Validate(ctx)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &Error{
			Code:    ErrCodeInvalidData,
			Message: fmt.Sprintf(ErrMsgInvalidField, first.Field(), first.Tag()),
			Err:     err,
		}
	}
	return wrapError(err)
}

func newValidator(params *Params) schema.Validator {
	return schema.NewCompositeValidator(
		NewParamsValidator(params),
		NewFlagsValidator(params),
	)
}
