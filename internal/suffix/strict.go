package suffix

import (
	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/vm"
)

// literalOps maps a chunk format to the instructions whose result counts as
// a literal receiver. The table is keyed by format so a future bytecode
// revision gets its own allowlist instead of silently reusing this one;
// verification fails closed on formats with no table.
var literalOps = map[uint16]map[vm.Opcode]struct{}{
	vm.ChunkFormatV1: {
		vm.OP_CONST:         {},
		vm.OP_NONE:          {},
		vm.OP_TRUE:          {},
		vm.OP_FALSE:         {},
		vm.OP_ELLIPSIS:      {},
		vm.OP_MAKE_TUPLE:    {},
		vm.OP_MAKE_LIST:     {},
		vm.OP_MAKE_SET:      {},
		vm.OP_MAKE_MAP:      {},
		vm.OP_LIST_EXTEND:   {},
		vm.OP_SET_UPDATE:    {},
		vm.OP_MAP_UPDATE:    {},
		vm.OP_LIST_TO_TUPLE: {},
		vm.OP_INTERP_CONCAT: {},
	},
}

// verifyLiteral classifies the instruction that produced the receiver of a
// strict access. Every uncertain case rejects: no call site, no preceding
// instruction, unknown format, unknown opcode.
func verifyLiteral(k *object.Kind, name string, site object.AccessSite) error {
	if site == nil {
		return nonLiteral(k, name, "access did not come from executing bytecode")
	}
	op, format, ok := site.LastInstruction()
	if !ok {
		return nonLiteral(k, name, "no preceding instruction")
	}
	allowed, ok := literalOps[format]
	if !ok {
		return nonLiteral(k, name, "unrecognized chunk format")
	}
	if _, ok := allowed[vm.Opcode(op)]; !ok {
		opName, known := vm.OpcodeNames[vm.Opcode(op)]
		if !known {
			return nonLiteral(k, name, "unrecognized instruction")
		}
		return nonLiteral(k, name, "receiver produced by "+opName)
	}
	return nil
}
