package field

import "fmt"

// Error codes
const (
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidType     = "INVALID_TYPE"
	ErrCodeInvalidDocument = "INVALID_DOCUMENT"
)

// Error messages
const (
	ErrMsgMissingField    = "missing required field %q"
	ErrMsgInvalidType     = "field %q: expected %s, got %s"
	ErrMsgInvalidDocument = "invalid document: %s"
)

// Sentinels for errors.Is; matching is by code only.
var (
	ErrMissingField    = &Error{Code: ErrCodeMissingField}
	ErrInvalidType     = &Error{Code: ErrCodeInvalidType}
	ErrInvalidDocument = &Error{Code: ErrCodeInvalidDocument}
)

// Error describes why a field could not be extracted from a document.
type Error struct {
	Code    string
	Path    string
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

func NewMissingFieldError(path string) *Error {
	return &Error{
		Code:    ErrCodeMissingField,
		Path:    path,
		Message: fmt.Sprintf(ErrMsgMissingField, path),
	}
}

func NewInvalidTypeError(path, expected, got string) *Error {
	return &Error{
		Code:    ErrCodeInvalidType,
		Path:    path,
		Message: fmt.Sprintf(ErrMsgInvalidType, path, expected, got),
	}
}

func NewInvalidDocumentError(err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidDocument,
		Message: fmt.Sprintf(ErrMsgInvalidDocument, err.Error()),
		Err:     err,
	}
}
