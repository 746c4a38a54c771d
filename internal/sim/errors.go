package sim

import "fmt"

// ErrorKind classifies a simulation failure so the transport layer can map
// it onto a structured {kind, message} response.
type ErrorKind string

const (
	KindInvalidPolicy      ErrorKind = "InvalidPolicy"
	KindInvalidHorizon     ErrorKind = "InvalidHorizon"
	KindInvalidBaseline    ErrorKind = "InvalidBaseline"
	KindDataUnavailable    ErrorKind = "DataUnavailable"
	KindEmptyScenarioSet   ErrorKind = "EmptyScenarioSet"
	KindMismatchedHorizon  ErrorKind = "MismatchedHorizon"
	KindMismatchedBaseline ErrorKind = "MismatchedBaseline"
)

// Error is a classified simulation error. Validation and availability
// errors indicate a caller or configuration defect, never a transient
// condition, so they carry no retry semantics.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports kind equality, so callers can match with errors.Is against
// the sentinel values below regardless of message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for errors.Is comparisons.
var (
	ErrInvalidPolicy      = &Error{Kind: KindInvalidPolicy}
	ErrInvalidHorizon     = &Error{Kind: KindInvalidHorizon}
	ErrInvalidBaseline    = &Error{Kind: KindInvalidBaseline}
	ErrDataUnavailable    = &Error{Kind: KindDataUnavailable}
	ErrEmptyScenarioSet   = &Error{Kind: KindEmptyScenarioSet}
	ErrMismatchedHorizon  = &Error{Kind: KindMismatchedHorizon}
	ErrMismatchedBaseline = &Error{Kind: KindMismatchedBaseline}
)

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
