package task

import (
	"errors"
	"fmt"

	"github.com/drepelov/pubtools-pulplib/engine/field"
	"github.com/drepelov/pubtools-pulplib/engine/schema"
)

// Error codes
const (
	ErrCodeMissingField = field.ErrCodeMissingField
	ErrCodeInvalidType  = field.ErrCodeInvalidType
	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeInvalidUnit  = "INVALID_UNIT"
	ErrCodeInvalidData  = "INVALID_DATA"
)

// Error messages
const (
	ErrMsgInvalidState = "cannot have task with completed=%s, succeeded=true"
	ErrMsgInvalidUnit  = "task unit %d: %s"
	ErrMsgInvalidData  = "invalid task data: %s"
	ErrMsgInvalidField = "invalid task field %s: failed %s"
)

var (
	ErrMissingField = &Error{Code: ErrCodeMissingField}
	ErrInvalidType  = &Error{Code: ErrCodeInvalidType}
	ErrInvalidState = &Error{Code: ErrCodeInvalidState}
	ErrInvalidUnit  = &Error{Code: ErrCodeInvalidUnit}
	ErrInvalidData  = &Error{Code: ErrCodeInvalidData}
)

// Error is returned when a Task cannot be built.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func NewInvalidStateError(completed *bool) *Error {
	shown := "unknown"
	if completed != nil {
		shown = fmt.Sprintf("%t", *completed)
	}
	return &Error{Code: ErrCodeInvalidState, Message: fmt.Sprintf(ErrMsgInvalidState, shown)}
}

func NewInvalidUnitError(index int, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidUnit,
		Message: fmt.Sprintf(ErrMsgInvalidUnit, index, err.Error()),
		Err:     err,
	}
}

// wrapError classifies errors raised by the collaborators into task errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr
	}
	var fieldErr *field.Error
	if errors.As(err, &fieldErr) {
		return fromFieldError(fieldErr)
	}
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) {
		return &Error{Code: ErrCodeInvalidData, Message: fmt.Sprintf(ErrMsgInvalidData, schemaErr.Message), Err: err}
	}
	return &Error{Code: ErrCodeInvalidData, Message: fmt.Sprintf(ErrMsgInvalidData, err.Error()), Err: err}
}

func fromFieldError(fieldErr *field.Error) *Error {
	code := fieldErr.Code
	if code == field.ErrCodeInvalidDocument {
		code = ErrCodeInvalidData
	}
	return &Error{Code: code, Message: fieldErr.Message, Err: fieldErr}
}
