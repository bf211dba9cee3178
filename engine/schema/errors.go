package schema

import (
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeSchemaViolation = "SCHEMA_VIOLATION"
)

// Error messages
const (
	ErrMsgSchemaViolation = "document does not match %s schema: %s"
)

// ErrSchemaViolation matches any violation through errors.Is.
var ErrSchemaViolation = &Error{Code: ErrCodeSchemaViolation}

// Error reports a document rejected by a schema.
type Error struct {
	Code       string
	Message    string
	Schema     Name
	Violations []string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func NewViolationError(name Name, violations []string) *Error {
	return &Error{
		Code:       ErrCodeSchemaViolation,
		Message:    fmt.Sprintf(ErrMsgSchemaViolation, name, strings.Join(violations, "; ")),
		Schema:     name,
		Violations: violations,
	}
}
