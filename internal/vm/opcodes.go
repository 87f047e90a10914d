// Package vm implements the bytecode virtual machine for sufx.
package vm

// Opcode represents a single VM instruction
type Opcode byte

const (
	// Stack manipulation
	OP_CONST Opcode = iota // Push constant from pool
	OP_POP                 // Discard top of stack

	// Immediate singletons
	OP_NONE     // Push the none singleton
	OP_TRUE     // Push true
	OP_FALSE    // Push false
	OP_ELLIPSIS // Push the ... singleton

	// Arithmetic
	OP_ADD // +
	OP_SUB // -
	OP_MUL // *
	OP_DIV // /
	OP_NEG // Unary minus

	// Comparison
	OP_EQ // ==
	OP_NE // !=
	OP_LT // <
	OP_LE // <=
	OP_GT // >
	OP_GE // >=

	// Variables
	OP_GET_GLOBAL // Get global variable by name
	OP_SET_GLOBAL // Set global variable by name

	// Attribute / literal suffix access
	OP_GET_ATTR // Get attribute via the owner kind's dispatch table

	// Literal construction
	OP_MAKE_TUPLE    // Create tuple from N stack values
	OP_MAKE_LIST     // Create list from N stack values
	OP_MAKE_SET      // Create set from N stack values
	OP_MAKE_MAP      // Create map from N key/value pairs
	OP_LIST_EXTEND   // Append an iterable's elements to the list below it
	OP_SET_UPDATE    // Merge an iterable into the set below it
	OP_MAP_UPDATE    // Merge a map into the map below it
	OP_LIST_TO_TUPLE // Convert list on top of stack to a tuple
	OP_INTERP_CONCAT // String interpolation concat of N parts

	// Halt
	OP_RETURN // Stop execution
)

// OpcodeNames maps opcodes to their string names (for debugging)
var OpcodeNames = map[Opcode]string{
	OP_CONST: "CONST",
	OP_POP:   "POP",

	OP_NONE:     "NONE",
	OP_TRUE:     "TRUE",
	OP_FALSE:    "FALSE",
	OP_ELLIPSIS: "ELLIPSIS",

	OP_ADD: "ADD",
	OP_SUB: "SUB",
	OP_MUL: "MUL",
	OP_DIV: "DIV",
	OP_NEG: "NEG",

	OP_EQ: "EQ",
	OP_NE: "NE",
	OP_LT: "LT",
	OP_LE: "LE",
	OP_GT: "GT",
	OP_GE: "GE",

	OP_GET_GLOBAL: "GET_GLOBAL",
	OP_SET_GLOBAL: "SET_GLOBAL",

	OP_GET_ATTR: "GET_ATTR",

	OP_MAKE_TUPLE:    "MAKE_TUPLE",
	OP_MAKE_LIST:     "MAKE_LIST",
	OP_MAKE_SET:      "MAKE_SET",
	OP_MAKE_MAP:      "MAKE_MAP",
	OP_LIST_EXTEND:   "LIST_EXTEND",
	OP_SET_UPDATE:    "SET_UPDATE",
	OP_MAP_UPDATE:    "MAP_UPDATE",
	OP_LIST_TO_TUPLE: "LIST_TO_TUPLE",
	OP_INTERP_CONCAT: "INTERP_CONCAT",

	OP_RETURN: "RETURN",
}

// operandWidths gives the operand byte count per opcode. Opcodes not listed
// take no operand.
var operandWidths = map[Opcode]int{
	OP_CONST:         2,
	OP_GET_GLOBAL:    2,
	OP_SET_GLOBAL:    2,
	OP_GET_ATTR:      2,
	OP_MAKE_TUPLE:    1,
	OP_MAKE_LIST:     1,
	OP_MAKE_SET:      1,
	OP_MAKE_MAP:      1,
	OP_INTERP_CONCAT: 1,
}

// OperandWidth returns how many operand bytes follow op.
func OperandWidth(op Opcode) int {
	return operandWidths[op]
}
