package vm

import "github.com/funvibe/sufx/internal/object"

// ChunkFormatV1 is the current bytecode encoding revision. The strict-mode
// opcode classification table is keyed by this value; chunks carrying an
// unknown format are rejected in strict mode rather than guessed at.
const ChunkFormatV1 uint16 = 1

// Chunk represents a sequence of bytecode instructions
type Chunk struct {
	// Code is the bytecode instructions
	Code []byte

	// Constants pool - literals and attribute names
	Constants []object.Object

	// Lines maps bytecode offset to source line number (for errors)
	Lines []int

	// Columns maps bytecode offset to source column number (for errors)
	Columns []int

	// File is the source file name
	File string

	// Format is the bytecode encoding revision this chunk was compiled for
	Format uint16
}

// NewChunk creates a new empty chunk
func NewChunk(file string) *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 256),
		Constants: make([]object.Object, 0, 64),
		Lines:     make([]int, 0, 256),
		Columns:   make([]int, 0, 256),
		File:      file,
		Format:    ChunkFormatV1,
	}
}

// Write adds a byte to the chunk with line and column info
func (c *Chunk) Write(b byte, line, col int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
	c.Columns = append(c.Columns, col)
}

// WriteOp writes an opcode to the chunk
func (c *Chunk) WriteOp(op Opcode, line, col int) {
	c.Write(byte(op), line, col)
}

// AddConstant adds a constant to the pool and returns its index
func (c *Chunk) AddConstant(value object.Object) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// WriteIndex writes a 2-byte index (allows up to 65535 constants)
func (c *Chunk) WriteIndex(idx, line, col int) {
	c.Write(byte(idx>>8), line, col)
	c.Write(byte(idx), line, col)
}

// ReadIndex reads a 2-byte index at offset
func (c *Chunk) ReadIndex(offset int) int {
	return int(c.Code[offset])<<8 | int(c.Code[offset+1])
}

// Len returns the number of bytes in the chunk
func (c *Chunk) Len() int {
	return len(c.Code)
}
