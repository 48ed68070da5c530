package interpreter

import "fmt"

// execStep is the fetch-decode-execute core: read the instruction at
// the current frame's pointer, advance the pointer by one, dispatch.
// Jumps, calls and returns overwrite the pointer explicitly. It returns
// (halted, error); halted is true exactly once, when the top-level
// frame returns.
func (i *Interpreter) execStep() (bool, error) {
	f := i.currentFrame()
	if f == nil {
		return true, nil
	}

	in := f.code.Instr(f.ip)
	f.ip++

	switch in.Op {
	case OpNop, OpUnaryPositive:
		return false, nil

	case OpLoadConst:
		f.push(f.code.Const(in.Arg))
		return false, nil

	case OpStoreName:
		v, err := f.pop()
		if err != nil {
			return false, err
		}
		f.locals.Bind(f.code.Name(in.Arg), v)
		return false, nil

	case OpLoadName:
		name := f.code.Name(in.Arg)
		v, ok := i.resolve(f, name)
		if !ok {
			return false, newNameError(name)
		}
		f.push(v)
		return false, nil

	case OpDeleteName:
		name := f.code.Name(in.Arg)
		if !f.locals.Delete(name) {
			return false, newNameError(name)
		}
		return false, nil

	case OpCompareOp:
		w, err := f.pop()
		if err != nil {
			return false, err
		}
		v, err := f.pop()
		if err != nil {
			return false, err
		}
		res, err := v.Compare(CompareSelector(in.Arg), w)
		if err != nil {
			return false, err
		}
		f.push(res)
		return false, nil

	case OpJumpAbsolute:
		f.ip = in.Arg
		return false, nil

	case OpJumpForward:
		// relative skip count; ip already points past this instruction
		f.ip += in.Arg
		return false, nil

	case OpPopJumpIfTrue:
		v, err := f.pop()
		if err != nil {
			return false, err
		}
		if v.Truthy() {
			f.ip = in.Arg
		}
		return false, nil

	case OpPopJumpIfFalse:
		v, err := f.pop()
		if err != nil {
			return false, err
		}
		if !v.Truthy() {
			f.ip = in.Arg
		}
		return false, nil

	case OpJumpIfTrueOrPop:
		v, err := f.peek(0)
		if err != nil {
			return false, err
		}
		if v.Truthy() {
			f.ip = in.Arg
		} else {
			f.stack.Pop()
		}
		return false, nil

	case OpJumpIfFalseOrPop:
		v, err := f.peek(0)
		if err != nil {
			return false, err
		}
		if !v.Truthy() {
			f.ip = in.Arg
		} else {
			f.stack.Pop()
		}
		return false, nil

	case OpMakeFunction:
		name, err := f.pop()
		if err != nil {
			return false, err
		}
		code, err := f.pop()
		if err != nil {
			return false, err
		}
		if name.Kind != KindStr || code.Kind != KindFunc {
			return false, newTypeError("MAKE_FUNCTION expects code and name, got '%s' and '%s'",
				code.Kind.KindName(), name.Kind.KindName())
		}
		f.push(NewFunc(name.Str, code.Fn.Code))
		return false, nil

	case OpCallFunction:
		return false, i.callFunction(f, in.Arg)

	case OpReturnValue:
		ret, err := f.pop()
		if err != nil {
			return false, err
		}
		i.popFrame()
		caller := i.currentFrame()
		if caller == nil {
			return true, nil
		}
		caller.push(ret)
		return false, nil

	case OpBinaryAdd, OpInplaceAdd:
		return false, binaryOp(f, Value.Add)
	case OpBinarySubtract, OpInplaceSubtract:
		return false, binaryOp(f, Value.Sub)
	case OpBinaryMultiply, OpInplaceMultiply:
		return false, binaryOp(f, Value.Mul)
	case OpBinaryTrueDivide, OpInplaceTrueDivide:
		return false, binaryOp(f, Value.TrueDiv)
	case OpBinaryFloorDivide, OpInplaceFloorDivide:
		return false, binaryOp(f, Value.FloorDiv)

	case OpUnaryNegative:
		v, err := f.pop()
		if err != nil {
			return false, err
		}
		res, err := v.Neg()
		if err != nil {
			return false, err
		}
		f.push(res)
		return false, nil

	case OpPopTop:
		_, err := f.pop()
		return false, err

	case OpRotTwo:
		return false, rot(f, 2)
	case OpRotThree:
		return false, rot(f, 3)
	case OpRotFour:
		return false, rot(f, 4)

	case OpDupTop:
		v, err := f.peek(0)
		if err != nil {
			return false, err
		}
		f.push(v)
		return false, nil

	case OpDupTopTwo:
		snd, err := f.peek(1)
		if err != nil {
			return false, err
		}
		top, err := f.peek(0)
		if err != nil {
			return false, err
		}
		f.push(snd)
		f.push(top)
		return false, nil

	default:
		return false, fmt.Errorf("%w: opcode %s at %d", ErrBadInstruction, in.Op, f.ip-1)
	}
}

// binaryOp pops the right then the left operand, applies op and pushes
// the result.
func binaryOp(f *Frame, op func(Value, Value) (Value, error)) error {
	w, err := f.pop()
	if err != nil {
		return err
	}
	v, err := f.pop()
	if err != nil {
		return err
	}
	res, err := op(v, w)
	if err != nil {
		return err
	}
	f.push(res)
	return nil
}

// rot lifts the top value below the next n-1, shifting them up one.
func rot(f *Frame, n int) error {
	for d := 0; d < n-1; d++ {
		if !f.stack.Swap(d, d+1) {
			return ErrStackUnderflow
		}
	}
	return nil
}

// callFunction implements the call protocol: pop argc positional
// arguments (restoring left-to-right order), pop the callee, then
// either invoke a builtin directly or activate a new frame. Arity is
// checked before any callee instruction runs.
func (i *Interpreter) callFunction(f *Frame, argc int) error {
	args := make([]Value, argc)
	for j := argc - 1; j >= 0; j-- {
		v, err := f.pop()
		if err != nil {
			return err
		}
		args[j] = v
	}

	callee, err := f.pop()
	if err != nil {
		return err
	}

	switch callee.Kind {
	case KindBuiltin:
		res, err := callee.Blt.Fn(i.out, args)
		if err != nil {
			return err
		}
		f.push(res)
		return nil

	case KindFunc:
		fn := callee.Fn
		if argc != fn.Code.Params() {
			return newArityError(fn.Name, fn.Code.Params(), argc)
		}
		callFrame := i.pushFrame(fn.Code)
		for j, arg := range args {
			callFrame.locals.Bind(fn.Code.ParamName(j), arg)
		}
		return nil

	default:
		return newTypeError("'%s' object is not callable", callee.Kind.KindName())
	}
}
