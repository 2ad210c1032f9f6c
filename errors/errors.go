package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	KindProtocol        Kind = "protocol"              // malformed call shape
	KindInvalidHandle   Kind = "invalid_handle"        // token failed liveness/type validation
	KindConstruction    Kind = "construction"          // native constructor failed
	KindUnknownAction   Kind = "unknown_action"        // instance action not recognized
	KindUnknownStatic   Kind = "unknown_static_action" // static action not recognized
	KindInvalidProperty Kind = "invalid_property"      // property name or value rejected
	KindExecution       Kind = "execution"             // class code failed during an action
)

// Error is the structured error type used throughout mexbind.
type Error struct {
	Cause    error
	ID       string // colon-delimited identifier, never empty when surfaced
	Kind     Kind
	Detail   string
	Property string // set for invalid_property errors
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.ID != "" {
		b.WriteString(e.ID)
	} else {
		b.WriteString(string(e.Kind))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with only a Kind
// matches any error of that kind; a target ID must match exactly.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.ID != "" && t.ID != e.ID {
		return false
	}
	return t.Kind != "" || t.ID != ""
}

// Identifier returns the error's identifier, falling back to the kind when
// class code produced an identifier-less error.
func (e *Error) Identifier() string {
	if e.ID != "" {
		return e.ID
	}
	return string(e.Kind)
}

// NormalizeID rewrites literal '.' to ':' so caught sub-identifiers cannot
// smuggle a foreign delimiter into the surfaced identifier.
func NormalizeID(id string) string {
	return strings.ReplaceAll(id, ".", ":")
}

// Protocol creates a malformed-call-shape error.
func Protocol(id, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{ID: NormalizeID(id), Kind: KindProtocol, Detail: detail}
}

// InvalidHandle creates a handle-validation error.
func InvalidHandle(detail string) *Error {
	return &Error{ID: "mexbind:invalidHandle", Kind: KindInvalidHandle, Detail: detail}
}

// Construction creates a constructor-failure error.
func Construction(id string, cause error) *Error {
	return &Error{ID: NormalizeID(id), Kind: KindConstruction, Detail: "constructor failed", Cause: cause}
}

// UnknownAction creates an unrecognized-instance-action error.
func UnknownAction(class, action string) *Error {
	return &Error{
		ID:     class + ":unknownAction",
		Kind:   KindUnknownAction,
		Detail: fmt.Sprintf("unknown action: %s", action),
	}
}

// UnknownStatic creates an unrecognized-static-action error.
func UnknownStatic(class, action string) *Error {
	return &Error{
		ID:     class + ":mex:static:unknownFunction",
		Kind:   KindUnknownStatic,
		Detail: fmt.Sprintf("unknown static action: %s", action),
	}
}

// InvalidPropertyName creates an unrecognized-property-name error.
func InvalidPropertyName(name string) *Error {
	return &Error{
		ID:       "invalidPropertyName",
		Kind:     KindInvalidProperty,
		Property: name,
		Detail:   fmt.Sprintf("unknown property name: %s", name),
	}
}

// InvalidPropertyValue creates a rejected-property-value error.
func InvalidPropertyValue(name, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		ID:       "invalidPropertyValue",
		Kind:     KindInvalidProperty,
		Property: name,
		Detail:   detail,
	}
}

// Execution wraps a failure raised by class code.
func Execution(id string, cause error) *Error {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &Error{ID: NormalizeID(id), Kind: KindExecution, Detail: detail, Cause: cause}
}

// Qualify re-signals err at the dispatch boundary under the class's
// identifier namespace. A structured error keeps its own sub-identifier,
// re-rooted as "<class>:<stage>:<subID>"; anything else (including
// identifier-less structured errors) gets the generic fallback
// "<class>:<stage>:<fallback>". The original kind and message survive so
// callers can still match on both.
func Qualify(class, stage, fallback string, err error) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		q := *e
		if e.ID != "" {
			q.ID = class + ":" + stage + ":" + NormalizeID(e.ID)
		} else {
			q.ID = class + ":" + stage + ":" + fallback
		}
		if q.Kind == "" {
			q.Kind = KindExecution
		}
		return &q
	}
	return &Error{
		ID:     class + ":" + stage + ":" + fallback,
		Kind:   KindExecution,
		Detail: errDetail(err),
		Cause:  err,
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
