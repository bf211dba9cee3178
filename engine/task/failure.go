package task

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/drepelov/pubtools-pulplib/engine/field"
)

const (
	unknownError  = "<unknown error>"
	detailsIndent = "  "
)

// Payload paths consulted when describing a failure.
const (
	pathError        = "error"
	pathErrorCode    = "error.code"
	pathErrorDesc    = "error.description"
	pathErrorMessage = "error.data.message"
	pathErrorDetails = "error.data.details.errors"
	pathTraceback    = "traceback"
)

// failure holds the two views of why a task did not succeed.
type failure struct {
	summary string
	details string
}

// describeFailure returns nil for states that carry no error information.
func describeFailure(doc *field.Document, id string, state State) (*failure, error) {
	switch state {
	case StateCanceled:
		msg := fmt.Sprintf("Task [%s] was canceled", id)
		return &failure{summary: msg, details: msg}, nil
	case StateError:
		return describeError(doc, id)
	default:
		return nil, nil
	}
}

func describeError(doc *field.Document, id string) (*failure, error) {
	prefix := fmt.Sprintf("Task [%s] failed", id)
	errObj := doc.Lookup(pathError)
	if isEmptyValue(errObj) {
		msg := prefix + ": " + unknownError
		return &failure{summary: msg, details: msg}, nil
	}
	if !errObj.IsObject() {
		return nil, field.NewInvalidTypeError(pathError, "object", field.TypeName(errObj))
	}

	code, err := doc.String(pathErrorCode)
	if err != nil {
		return nil, err
	}
	desc, err := doc.String(pathErrorDesc)
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("%s: %s: %s", prefix, code, desc)

	block := strings.TrimSpace(strings.ReplaceAll(
		strings.Join(messageFragments(doc), "\n"), "\r\n", "\n",
	))
	if block == "" {
		return &failure{summary: summary, details: summary}, nil
	}
	return &failure{summary: summary, details: summary + ":\n" + indent(block)}, nil
}

// isEmptyValue reports an absent error or one carrying no information: null,
// false, 0, "" or an empty array or object. Pulp reports those for failures it
// could not classify.
func isEmptyValue(v gjson.Result) bool {
	if !v.Exists() {
		return true
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	case gjson.JSON:
		empty := true
		v.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	default:
		return false
	}
}

// messageFragments collects the free-form error text Pulp attaches to a
// failure. Anything of an unexpected shape is skipped.
func messageFragments(doc *field.Document) []string {
	var out []string
	if msg := doc.Lookup(pathErrorMessage); msg.Type == gjson.String && msg.Str != "" {
		out = append(out, msg.Str)
	}
	if errs := doc.Lookup(pathErrorDetails); errs.IsArray() {
		for _, item := range errs.Array() {
			if item.Type == gjson.String {
				out = append(out, item.Str)
			}
		}
	}
	// Documented as deprecated by Pulp, yet it is the only place tracebacks
	// are reported.
	if tb := doc.Lookup(pathTraceback); tb.Type == gjson.String && tb.Str != "" {
		out = append(out, tb.Str)
	}
	return out
}

func indent(text string) string {
	return detailsIndent + strings.ReplaceAll(text, "\n", "\n"+detailsIndent)
}
