package interpreter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies runtime errors. All of them are fatal: the
// instruction set has no exception handling, so the first runtime error
// unwinds the whole call stack.
type ErrorKind string

const (
	TypeError         ErrorKind = "TypeError"
	ZeroDivisionError ErrorKind = "ZeroDivisionError"
	NameError         ErrorKind = "NameError"
	ArityError        ErrorKind = "ArityError"
)

// RuntimeError is raised during dispatch of a specific instruction and
// surfaced to the caller of Run.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuntimeError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// IsKind reports whether err is a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Kind == kind
}

func newTypeError(format string, args ...any) error {
	return &RuntimeError{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func newZeroDivisionError(msg string) error {
	return &RuntimeError{Kind: ZeroDivisionError, Message: msg}
}

func newNameError(name string) error {
	return &RuntimeError{Kind: NameError, Message: fmt.Sprintf("name '%s' is not defined", name)}
}

func newArityError(fn string, want, got int) error {
	return &RuntimeError{
		Kind:    ArityError,
		Message: fmt.Sprintf("%s() takes %d positional arguments but %d were given", fn, want, got),
	}
}

// Internal sentinels. These indicate a malformed instruction stream
// that slipped past validation (a loader bug), not a user-level error.
var (
	ErrStackUnderflow   = errors.New("operand stack underflow")
	ErrBadInstruction   = errors.New("malformed instruction")
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
)
