package interpreter

import (
	"io"
	"os"
)

// Interpreter owns the global scope and the call stack of frames, and
// drives the fetch-decode-execute loop over a validated instruction
// stream. It is strictly single-threaded; independent instances are
// fully isolated from each other.
type Interpreter struct {
	program *Code

	globals *Scope
	frames  []*Frame

	out io.Writer

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Interpreter)

// WithWriter sets the output writer used by the print builtin.
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of interpreter steps before Run
// returns ErrMaxStepsExceeded.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// New creates an interpreter for a top-level code object. The global
// scope is seeded with the builtins and the initial frame is bound to
// the global scope itself, so top-level assignment writes globals.
func New(program *Code, opts ...Option) *Interpreter {
	it := &Interpreter{
		program: program,
		globals: NewScope(),
		frames:  make([]*Frame, 0, 8),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}

	it.installBuiltins()
	it.frames = append(it.frames, newFrame(program, it.globals))

	return it
}

func (i *Interpreter) installBuiltins() {
	i.globals.Bind("print", NewBuiltin("print", builtinPrint))
}

// Reset discards all runtime state and rebinds the initial frame, so
// the same program can be run again.
func (i *Interpreter) Reset() {
	i.globals = NewScope()
	i.installBuiltins()
	i.frames = i.frames[:0]
	i.frames = append(i.frames, newFrame(i.program, i.globals))
	i.steps = 0
}

// Globals returns the global scope.
func (i *Interpreter) Globals() *Scope {
	return i.globals
}

// Output returns the writer used by print.
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Depth returns the current call-stack depth.
func (i *Interpreter) Depth() int {
	return len(i.frames)
}

// currentFrame returns the executing frame, or nil after halt.
func (i *Interpreter) currentFrame() *Frame {
	if len(i.frames) == 0 {
		return nil
	}
	return i.frames[len(i.frames)-1]
}

// pushFrame activates a callee frame with a fresh local scope.
func (i *Interpreter) pushFrame(code *Code) *Frame {
	f := newFrame(code, NewScope())
	i.frames = append(i.frames, f)
	return f
}

// popFrame deactivates the current frame, returning it.
func (i *Interpreter) popFrame() *Frame {
	f := i.frames[len(i.frames)-1]
	i.frames[len(i.frames)-1] = nil
	i.frames = i.frames[:len(i.frames)-1]
	return f
}

// resolve looks a plain variable name up: local scope first, global
// scope second.
func (i *Interpreter) resolve(f *Frame, name string) (Value, bool) {
	if v, ok := f.locals.Lookup(name); ok {
		return v, true
	}
	return i.globals.Lookup(name)
}

// Step executes a single instruction, returning (halted, error).
func (i *Interpreter) Step() (bool, error) {
	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	halted, err := i.execStep()
	i.steps++

	return halted, err
}

// Run executes until normal halt (the top-level frame returns) or the
// first error. Errors are terminal: the call stack is discarded.
func (i *Interpreter) Run() error {
	for {
		halted, err := i.Step()
		if err != nil {
			i.frames = i.frames[:0]
			return err
		}

		if halted {
			return nil
		}
	}
}
