package interpreter

import (
	"fmt"
	"io"
)

// Builtin is a call target implemented by the host rather than by
// bytecode. Builtins take the already-ordered positional arguments and
// return the value pushed as the call's result, so the call-return
// protocol stays uniform with user functions.
type Builtin struct {
	Name string
	Fn   func(out io.Writer, args []Value) (Value, error)
}

// NewBuiltin wraps a host function as a callable Value.
func NewBuiltin(name string, fn func(out io.Writer, args []Value) (Value, error)) Value {
	return Value{Kind: KindBuiltin, Blt: &Builtin{Name: name, Fn: fn}}
}

// builtinPrint writes its arguments space-joined with a trailing
// newline and yields None.
func builtinPrint(out io.Writer, args []Value) (Value, error) {
	for i, a := range args {
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return Value{}, err
			}
		}
		if _, err := io.WriteString(out, a.String()); err != nil {
			return Value{}, err
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return Value{}, err
	}
	return None(), nil
}
