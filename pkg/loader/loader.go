// Package loader deserializes the JSON program description produced by
// the external compiler into immutable code objects, validating every
// record up front so the dispatch loop never has to bounds-check an
// operand.
package loader

import (
	"encoding/json"
	"fmt"

	"pyvm/pkg/interpreter"
)

// codeRecord is the wire shape of one compiled unit. Nested records
// appear as "code" constants for function definitions.
type codeRecord struct {
	Instructions []instrRecord `json:"instructions"`
	Constants    []constRecord `json:"constants"`
	Names        []string      `json:"names"`
	Params       int           `json:"params"`
}

// instrRecord carries the opcode tag and an optional operand. Arg is a
// pointer so a missing operand can be told apart from operand 0.
type instrRecord struct {
	Op  string `json:"op"`
	Arg *int   `json:"arg,omitempty"`
}

// constRecord is a tagged literal: int, float, str, bool, none or code.
type constRecord struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
	Code  *codeRecord     `json:"code,omitempty"`
}

// Load parses and validates a serialized program, returning the
// top-level code object. Any malformed record aborts with a LoadError
// before a single instruction can execute.
func Load(data []byte) (*interpreter.Code, error) {
	var root codeRecord
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Path: "$", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return buildCode(&root, "$")
}

// buildCode converts one record, recursing into code constants. path is
// the JSON location used in error reports.
func buildCode(rec *codeRecord, path string) (*interpreter.Code, error) {
	for i, name := range rec.Names {
		for j := 0; j < i; j++ {
			if rec.Names[j] == name {
				return nil, errAt(path, "names[%d]: duplicate identifier %q", i, name)
			}
		}
		if name == "" {
			return nil, errAt(path, "names[%d]: empty identifier", i)
		}
	}

	if rec.Params < 0 || rec.Params > len(rec.Names) {
		return nil, errAt(path, "params %d out of range for %d names", rec.Params, len(rec.Names))
	}

	constants := make([]interpreter.Value, len(rec.Constants))
	for i := range rec.Constants {
		v, err := buildConst(&rec.Constants[i], fmt.Sprintf("%s.constants[%d]", path, i))
		if err != nil {
			return nil, err
		}
		constants[i] = v
	}

	instructions := make([]interpreter.Instruction, len(rec.Instructions))
	for i := range rec.Instructions {
		in, err := buildInstr(&rec.Instructions[i], rec, i, path)
		if err != nil {
			return nil, err
		}
		instructions[i] = in
	}

	if len(instructions) == 0 {
		return nil, errAt(path, "empty instruction stream")
	}
	// The compiler always emits a trailing return; a stream that can
	// fall off the end is a contract violation, caught here rather than
	// guessed at during execution.
	if last := instructions[len(instructions)-1]; last.Op != interpreter.OpReturnValue {
		return nil, errAt(path, "instruction stream does not end with RETURN_VALUE (got %s)", last.Op)
	}

	return interpreter.NewCode(instructions, constants, rec.Names, rec.Params), nil
}

func buildConst(rec *constRecord, path string) (interpreter.Value, error) {
	switch rec.Type {
	case "int":
		var n int64
		if err := json.Unmarshal(rec.Value, &n); err != nil {
			return interpreter.Value{}, errAt(path, "bad int literal: %v", err)
		}
		return interpreter.NewInt(n), nil

	case "float":
		var f float64
		if err := json.Unmarshal(rec.Value, &f); err != nil {
			return interpreter.Value{}, errAt(path, "bad float literal: %v", err)
		}
		return interpreter.NewFloat(f), nil

	case "str":
		var s string
		if err := json.Unmarshal(rec.Value, &s); err != nil {
			return interpreter.Value{}, errAt(path, "bad str literal: %v", err)
		}
		return interpreter.NewStr(s), nil

	case "bool":
		var b bool
		if err := json.Unmarshal(rec.Value, &b); err != nil {
			return interpreter.Value{}, errAt(path, "bad bool literal: %v", err)
		}
		return interpreter.NewBool(b), nil

	case "none":
		return interpreter.None(), nil

	case "code":
		if rec.Code == nil {
			return interpreter.Value{}, errAt(path, "code constant without code record")
		}
		code, err := buildCode(rec.Code, path+".code")
		if err != nil {
			return interpreter.Value{}, err
		}
		// MAKE_FUNCTION attaches the real qualified name at runtime.
		return interpreter.NewFunc("<anonymous>", code), nil

	default:
		return interpreter.Value{}, errAt(path, "unknown constant tag %q", rec.Type)
	}
}

func buildInstr(rec *instrRecord, parent *codeRecord, idx int, path string) (interpreter.Instruction, error) {
	ipath := func(format string, args ...any) error {
		return errAt(fmt.Sprintf("%s.instructions[%d]", path, idx), format, args...)
	}

	op := interpreter.Opcode(rec.Op)
	class, known := op.ClassOf()
	if !known {
		return interpreter.Instruction{}, ipath("unknown opcode %q", rec.Op)
	}

	if class == interpreter.OperandNone {
		if rec.Arg != nil {
			return interpreter.Instruction{}, ipath("%s takes no operand, got %d", op, *rec.Arg)
		}
		return interpreter.Instruction{Op: op}, nil
	}

	if rec.Arg == nil {
		return interpreter.Instruction{}, ipath("%s requires an operand", op)
	}
	arg := *rec.Arg

	switch class {
	case interpreter.OperandConst:
		if arg < 0 || arg >= len(parent.Constants) {
			return interpreter.Instruction{}, ipath("constant index %d out of range (%d constants)", arg, len(parent.Constants))
		}

	case interpreter.OperandName:
		if arg < 0 || arg >= len(parent.Names) {
			return interpreter.Instruction{}, ipath("name index %d out of range (%d names)", arg, len(parent.Names))
		}

	case interpreter.OperandJumpAbs:
		if arg < 0 || arg >= len(parent.Instructions) {
			return interpreter.Instruction{}, ipath("jump target %d out of range (%d instructions)", arg, len(parent.Instructions))
		}

	case interpreter.OperandJumpRel:
		if arg < 0 || idx+1+arg >= len(parent.Instructions) {
			return interpreter.Instruction{}, ipath("relative jump %+d lands out of range", arg)
		}

	case interpreter.OperandCount:
		if arg < 0 {
			return interpreter.Instruction{}, ipath("negative argument count %d", arg)
		}

	case interpreter.OperandCompare:
		if arg < int(interpreter.CmpLt) || arg > int(interpreter.CmpGe) {
			return interpreter.Instruction{}, ipath("compare selector %d out of range", arg)
		}

	case interpreter.OperandFlags:
		// only the bare MAKE_FUNCTION form is supported
		if arg != 0 {
			return interpreter.Instruction{}, ipath("unsupported MAKE_FUNCTION flags %#x", arg)
		}
	}

	return interpreter.Instruction{Op: op, Arg: arg}, nil
}
