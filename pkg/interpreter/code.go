package interpreter

import "fmt"

type Opcode string

// Opcode set executed by the dispatch loop. Operands are instruction
// indices for jumps, pool/table indices for loads and stores, and plain
// counts for calls.
const (
	OpLoadConst  Opcode = "LOAD_CONST"
	OpStoreName  Opcode = "STORE_NAME"
	OpLoadName   Opcode = "LOAD_NAME"
	OpDeleteName Opcode = "DELETE_NAME"

	OpCompareOp Opcode = "COMPARE_OP"

	OpJumpAbsolute     Opcode = "JUMP_ABSOLUTE"
	OpJumpForward      Opcode = "JUMP_FORWARD"
	OpPopJumpIfTrue    Opcode = "POP_JUMP_IF_TRUE"
	OpPopJumpIfFalse   Opcode = "POP_JUMP_IF_FALSE"
	OpJumpIfTrueOrPop  Opcode = "JUMP_IF_TRUE_OR_POP"
	OpJumpIfFalseOrPop Opcode = "JUMP_IF_FALSE_OR_POP"

	OpMakeFunction Opcode = "MAKE_FUNCTION"
	OpCallFunction Opcode = "CALL_FUNCTION"
	OpReturnValue  Opcode = "RETURN_VALUE"

	OpBinaryAdd         Opcode = "BINARY_ADD"
	OpBinarySubtract    Opcode = "BINARY_SUBTRACT"
	OpBinaryMultiply    Opcode = "BINARY_MULTIPLY"
	OpBinaryTrueDivide  Opcode = "BINARY_TRUE_DIVIDE"
	OpBinaryFloorDivide Opcode = "BINARY_FLOOR_DIVIDE"

	OpInplaceAdd         Opcode = "INPLACE_ADD"
	OpInplaceSubtract    Opcode = "INPLACE_SUBTRACT"
	OpInplaceMultiply    Opcode = "INPLACE_MULTIPLY"
	OpInplaceTrueDivide  Opcode = "INPLACE_TRUE_DIVIDE"
	OpInplaceFloorDivide Opcode = "INPLACE_FLOOR_DIVIDE"

	OpUnaryPositive Opcode = "UNARY_POSITIVE"
	OpUnaryNegative Opcode = "UNARY_NEGATIVE"

	OpPopTop    Opcode = "POP_TOP"
	OpRotTwo    Opcode = "ROT_TWO"
	OpRotThree  Opcode = "ROT_THREE"
	OpRotFour   Opcode = "ROT_FOUR"
	OpDupTop    Opcode = "DUP_TOP"
	OpDupTopTwo Opcode = "DUP_TOP_TWO"
	OpNop       Opcode = "NOP"
)

// OperandClass tells the loader how to validate an opcode's operand and
// the disassembler how to render it.
type OperandClass int

const (
	OperandNone OperandClass = iota
	OperandConst
	OperandName
	OperandJumpAbs
	OperandJumpRel
	OperandCount
	OperandCompare
	OperandFlags
)

var operandClasses = map[Opcode]OperandClass{
	OpLoadConst:  OperandConst,
	OpStoreName:  OperandName,
	OpLoadName:   OperandName,
	OpDeleteName: OperandName,

	OpCompareOp: OperandCompare,

	OpJumpAbsolute:     OperandJumpAbs,
	OpJumpForward:      OperandJumpRel,
	OpPopJumpIfTrue:    OperandJumpAbs,
	OpPopJumpIfFalse:   OperandJumpAbs,
	OpJumpIfTrueOrPop:  OperandJumpAbs,
	OpJumpIfFalseOrPop: OperandJumpAbs,

	OpMakeFunction: OperandFlags,
	OpCallFunction: OperandCount,
	OpReturnValue:  OperandNone,

	OpBinaryAdd:         OperandNone,
	OpBinarySubtract:    OperandNone,
	OpBinaryMultiply:    OperandNone,
	OpBinaryTrueDivide:  OperandNone,
	OpBinaryFloorDivide: OperandNone,

	OpInplaceAdd:         OperandNone,
	OpInplaceSubtract:    OperandNone,
	OpInplaceMultiply:    OperandNone,
	OpInplaceTrueDivide:  OperandNone,
	OpInplaceFloorDivide: OperandNone,

	OpUnaryPositive: OperandNone,
	OpUnaryNegative: OperandNone,

	OpPopTop:    OperandNone,
	OpRotTwo:    OperandNone,
	OpRotThree:  OperandNone,
	OpRotFour:   OperandNone,
	OpDupTop:    OperandNone,
	OpDupTopTwo: OperandNone,
	OpNop:       OperandNone,
}

// ClassOf returns the operand class for op and whether op is known.
func (op Opcode) ClassOf() (OperandClass, bool) {
	c, ok := operandClasses[op]
	return c, ok
}

// HasOperand reports whether instructions with this opcode carry an
// operand.
func (op Opcode) HasOperand() bool {
	c, ok := operandClasses[op]
	return ok && c != OperandNone
}

// Instruction is one opcode plus its operand. Arg is meaningful only
// when the opcode's operand class is not OperandNone.
type Instruction struct {
	Op  Opcode
	Arg int
}

// String returns a disassembly-style rendering of the instruction.
func (in Instruction) String() string {
	if !in.Op.HasOperand() {
		return string(in.Op)
	}
	return fmt.Sprintf("%-20s %d", in.Op, in.Arg)
}

// Code is one immutable compiled unit: instructions, constant pool and
// name table, plus the count of leading names that are positional
// parameters. It is shared by reference across every frame that
// executes it and never mutated after the loader builds it.
type Code struct {
	instructions []Instruction
	constants    []Value
	names        []string
	params       int
}

// NewCode builds a code object. The slices are retained; callers (the
// loader, tests) must not mutate them afterwards.
func NewCode(instructions []Instruction, constants []Value, names []string, params int) *Code {
	return &Code{
		instructions: instructions,
		constants:    constants,
		names:        names,
		params:       params,
	}
}

// Instr returns the instruction at index i. Indices come from the
// validated stream, so no bounds check is performed here.
func (c *Code) Instr(i int) Instruction { return c.instructions[i] }

// Const returns the constant-pool entry at index i.
func (c *Code) Const(i int) Value { return c.constants[i] }

// Name returns the name-table entry at index i.
func (c *Code) Name(i int) string { return c.names[i] }

// NumInstr returns the instruction count.
func (c *Code) NumInstr() int { return len(c.instructions) }

// NumConsts returns the constant-pool size.
func (c *Code) NumConsts() int { return len(c.constants) }

// NumNames returns the name-table size.
func (c *Code) NumNames() int { return len(c.names) }

// Params returns the declared positional-parameter count. The first
// Params entries of the name table are the parameter names in
// declaration order.
func (c *Code) Params() int { return c.params }

// ParamName returns the name of parameter i.
func (c *Code) ParamName(i int) string { return c.names[i] }
