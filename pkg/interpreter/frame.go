package interpreter

// operandStack is the per-frame LIFO of values instructions operate on.
type operandStack struct {
	a []Value
	l int
}

// Push adds a value to the top of the stack.
func (s *operandStack) Push(v Value) {
	if s.l < len(s.a) {
		s.a[s.l] = v
	} else {
		s.a = append(s.a, v)
	}
	s.l++
}

// Pop removes and returns the top value.
func (s *operandStack) Pop() (Value, bool) {
	if s.l < 1 {
		return Value{}, false
	}
	s.l--
	return s.a[s.l], true
}

// Peek returns the value depth slots below the top without removing it
// (depth 0 is the top).
func (s *operandStack) Peek(depth int) (Value, bool) {
	if s.l <= depth {
		return Value{}, false
	}
	return s.a[s.l-1-depth], true
}

// Swap exchanges the values at depths i and j below the top.
func (s *operandStack) Swap(i, j int) bool {
	if s.l <= i || s.l <= j {
		return false
	}
	s.a[s.l-1-i], s.a[s.l-1-j] = s.a[s.l-1-j], s.a[s.l-1-i]
	return true
}

// Size returns the number of values on the stack.
func (s *operandStack) Size() int {
	return s.l
}

// Frame is one activation record: an operand stack, an instruction
// pointer into its code object and an exclusively-owned local scope.
// The code object is shared and read-only; recursive calls all point at
// the same one. Caller linkage is the interpreter's frame slice, not a
// field here.
type Frame struct {
	code   *Code
	locals *Scope
	stack  operandStack
	ip     int
}

// newFrame creates a frame at instruction 0 of code, bound to the given
// local scope. The top-level frame is bound to the global scope itself;
// call frames get a fresh scope.
func newFrame(code *Code, locals *Scope) *Frame {
	return &Frame{code: code, locals: locals}
}

// Code returns the code object this frame executes.
func (f *Frame) Code() *Code { return f.code }

// IP returns the current instruction pointer.
func (f *Frame) IP() int { return f.ip }

// Locals returns the frame's local scope.
func (f *Frame) Locals() *Scope { return f.locals }

// StackSize returns the operand-stack depth, for tests and diagnostics.
func (f *Frame) StackSize() int { return f.stack.Size() }

func (f *Frame) push(v Value) {
	f.stack.Push(v)
}

func (f *Frame) pop() (Value, error) {
	v, ok := f.stack.Pop()
	if !ok {
		return Value{}, ErrStackUnderflow
	}
	return v, nil
}

func (f *Frame) peek(depth int) (Value, error) {
	v, ok := f.stack.Peek(depth)
	if !ok {
		return Value{}, ErrStackUnderflow
	}
	return v, nil
}
