package vm

import (
	"fmt"
	"strings"
)

// Disassemble renders a chunk for debugging and REPL inspection.
func Disassemble(chunk *Chunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s (format %d) ==\n", chunk.File, chunk.Format)

	for offset := 0; offset < len(chunk.Code); {
		offset = disassembleInstruction(&b, chunk, offset)
	}
	return b.String()
}

func disassembleInstruction(b *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(b, "%04d ", offset)
	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(b, "%4d ", chunk.Lines[offset])
	}

	op := Opcode(chunk.Code[offset])
	name, known := OpcodeNames[op]
	if !known {
		fmt.Fprintf(b, "UNKNOWN(%d)\n", op)
		return offset + 1
	}

	switch OperandWidth(op) {
	case 0:
		fmt.Fprintf(b, "%s\n", name)
		return offset + 1
	case 1:
		operand := chunk.Code[offset+1]
		fmt.Fprintf(b, "%-16s %d\n", name, operand)
		return offset + 2
	default:
		idx := chunk.ReadIndex(offset + 1)
		if idx < len(chunk.Constants) {
			fmt.Fprintf(b, "%-16s %d (%s)\n", name, idx, chunk.Constants[idx].Inspect())
		} else {
			fmt.Fprintf(b, "%-16s %d\n", name, idx)
		}
		return offset + 3
	}
}
