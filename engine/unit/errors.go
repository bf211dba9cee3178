package unit

import "fmt"

// Error codes
const (
	ErrCodeMissingType     = "MISSING_TYPE"
	ErrCodeUnsupportedType = "UNSUPPORTED_TYPE"
	ErrCodeInvalidKey      = "INVALID_UNIT_KEY"
	ErrCodeDecode          = "DECODE_ERROR"
)

// Error messages
const (
	ErrMsgMissingType     = "unit has no content type (%s)"
	ErrMsgUnsupportedType = "unsupported unit content type %q"
	ErrMsgInvalidKey      = "unit_key must be an object, got %s"
	ErrMsgDecode          = "failed to decode %s unit: %s"
)

var (
	ErrMissingType     = &Error{Code: ErrCodeMissingType}
	ErrUnsupportedType = &Error{Code: ErrCodeUnsupportedType}
	ErrInvalidKey      = &Error{Code: ErrCodeInvalidKey}
	ErrDecode          = &Error{Code: ErrCodeDecode}
)

// Error is returned when raw unit data cannot be converted.
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

func NewMissingTypeError(key string) *Error {
	return &Error{Code: ErrCodeMissingType, Message: fmt.Sprintf(ErrMsgMissingType, key)}
}

func NewUnsupportedTypeError(typeID string) *Error {
	return &Error{Code: ErrCodeUnsupportedType, Message: fmt.Sprintf(ErrMsgUnsupportedType, typeID)}
}

func NewInvalidKeyError(got string) *Error {
	return &Error{Code: ErrCodeInvalidKey, Message: fmt.Sprintf(ErrMsgInvalidKey, got)}
}

func NewDecodeError(typeID string, err error) *Error {
	return &Error{Code: ErrCodeDecode, Message: fmt.Sprintf(ErrMsgDecode, typeID, err.Error()), Err: err}
}
