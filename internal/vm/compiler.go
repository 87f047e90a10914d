package vm

import (
	"fmt"

	"github.com/funvibe/sufx/internal/ast"
	"github.com/funvibe/sufx/internal/object"
)

// Compiler translates an AST into a bytecode chunk.
type Compiler struct {
	chunk *Chunk
}

// maxConstants is the largest pool a 2-byte constant index can address.
const maxConstants = 1 << 16

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile compiles a whole program into a single chunk ending in OP_RETURN.
func (c *Compiler) Compile(program *ast.Program) (*Chunk, error) {
	c.chunk = NewChunk(program.File)

	for _, stmt := range program.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}

	last := 0
	if n := len(program.Statements); n > 0 {
		last = program.Statements[n-1].GetToken().Line
	}
	c.chunk.WriteOp(OP_RETURN, last, 0)
	return c.chunk, nil
}

func (c *Compiler) addConstant(value object.Object) (int, error) {
	if len(c.chunk.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	return c.chunk.AddConstant(value), nil
}

func (c *Compiler) writeConstant(value object.Object, line, col int) error {
	idx, err := c.addConstant(value)
	if err != nil {
		return err
	}
	c.chunk.WriteOp(OP_CONST, line, col)
	c.chunk.WriteIndex(idx, line, col)
	return nil
}

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if err := c.compileExpression(s.Expression); err != nil {
			return err
		}
		tok := s.GetToken()
		c.chunk.WriteOp(OP_POP, tok.Line, tok.Column)
		return nil

	case *ast.AssignStatement:
		if err := c.compileExpression(s.Value); err != nil {
			return err
		}
		tok := s.GetToken()
		idx, err := c.addConstant(&object.String{Value: s.Name.Value})
		if err != nil {
			return err
		}
		c.chunk.WriteOp(OP_SET_GLOBAL, tok.Line, tok.Column)
		c.chunk.WriteIndex(idx, tok.Line, tok.Column)
		return nil
	}
	return fmt.Errorf("cannot compile statement %T", stmt)
}

func (c *Compiler) compileExpression(expr ast.Expression) error {
	tok := expr.GetToken()
	line, col := tok.Line, tok.Column

	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return c.writeConstant(&object.Integer{Value: e.Value}, line, col)

	case *ast.FloatLiteral:
		return c.writeConstant(&object.Float{Value: e.Value}, line, col)

	case *ast.ImaginaryLiteral:
		return c.writeConstant(&object.Complex{Value: e.Value}, line, col)

	case *ast.StringLiteral:
		return c.writeConstant(&object.String{Value: e.Value}, line, col)

	case *ast.BytesLiteral:
		return c.writeConstant(&object.Bytes{Value: e.Value}, line, col)

	case *ast.BooleanLiteral:
		if e.Value {
			c.chunk.WriteOp(OP_TRUE, line, col)
		} else {
			c.chunk.WriteOp(OP_FALSE, line, col)
		}

	case *ast.NoneLiteral:
		c.chunk.WriteOp(OP_NONE, line, col)

	case *ast.EllipsisLiteral:
		c.chunk.WriteOp(OP_ELLIPSIS, line, col)

	case *ast.Identifier:
		idx, err := c.addConstant(&object.String{Value: e.Value})
		if err != nil {
			return err
		}
		c.chunk.WriteOp(OP_GET_GLOBAL, line, col)
		c.chunk.WriteIndex(idx, line, col)

	case *ast.InterpolatedString:
		if len(e.Parts) > 255 {
			return fmt.Errorf("too many interpolation parts in string literal")
		}
		for _, part := range e.Parts {
			if err := c.compileExpression(part); err != nil {
				return err
			}
		}
		c.chunk.WriteOp(OP_INTERP_CONCAT, line, col)
		c.chunk.Write(byte(len(e.Parts)), line, col)

	case *ast.AttributeExpression:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		idx, err := c.addConstant(&object.String{Value: e.Name})
		if err != nil {
			return err
		}
		c.chunk.WriteOp(OP_GET_ATTR, line, col)
		c.chunk.WriteIndex(idx, line, col)

	case *ast.PrefixExpression:
		if err := c.compileExpression(e.Right); err != nil {
			return err
		}
		if e.Operator != "-" {
			return fmt.Errorf("unknown prefix operator %q", e.Operator)
		}
		c.chunk.WriteOp(OP_NEG, line, col)

	case *ast.InfixExpression:
		if err := c.compileExpression(e.Left); err != nil {
			return err
		}
		if err := c.compileExpression(e.Right); err != nil {
			return err
		}
		op, ok := infixOpcodes[e.Operator]
		if !ok {
			return fmt.Errorf("unknown operator %q", e.Operator)
		}
		c.chunk.WriteOp(op, line, col)

	case *ast.ListLiteral:
		return c.compileSequence(e.Elements, OP_MAKE_LIST, OP_LIST_EXTEND, line, col, false)

	case *ast.SetLiteral:
		return c.compileSequence(e.Elements, OP_MAKE_SET, OP_SET_UPDATE, line, col, false)

	case *ast.TupleLiteral:
		return c.compileSequence(e.Elements, OP_MAKE_TUPLE, OP_LIST_EXTEND, line, col, true)

	case *ast.MapLiteral:
		return c.compileMap(e, line, col)

	default:
		return fmt.Errorf("cannot compile expression %T", expr)
	}
	return nil
}

var infixOpcodes = map[string]Opcode{
	"+":  OP_ADD,
	"-":  OP_SUB,
	"*":  OP_MUL,
	"/":  OP_DIV,
	"==": OP_EQ,
	"!=": OP_NE,
	"<":  OP_LT,
	"<=": OP_LE,
	">":  OP_GT,
	">=": OP_GE,
}

// compileSequence lowers a tuple/list/set literal. Without spreads a single
// MAKE op suffices. With spreads the literal is built as a running list/set:
// the leading plain run seeds it, every spread extends it with the spread
// value, and every later plain run extends it with a small literal of its
// own. Tuples built this way finish with LIST_TO_TUPLE, mirroring how the
// spread categories of the strict-mode table come out of real literals.
func (c *Compiler) compileSequence(elements []ast.Expression, makeOp, extendOp Opcode, line, col int, tuple bool) error {
	hasSpread := false
	for _, el := range elements {
		if _, ok := el.(*ast.SpreadElement); ok {
			hasSpread = true
			break
		}
	}

	if !hasSpread {
		if len(elements) > 255 {
			return fmt.Errorf("too many elements in literal")
		}
		for _, el := range elements {
			if err := c.compileExpression(el); err != nil {
				return err
			}
		}
		c.chunk.WriteOp(makeOp, line, col)
		c.chunk.Write(byte(len(elements)), line, col)
		return nil
	}

	baseOp := makeOp
	if tuple {
		baseOp = OP_MAKE_LIST
	}

	// Leading plain run seeds the collection.
	i := 0
	var run []ast.Expression
	for i < len(elements) {
		if _, ok := elements[i].(*ast.SpreadElement); ok {
			break
		}
		run = append(run, elements[i])
		i++
	}
	if err := c.emitRun(run, baseOp, line, col); err != nil {
		return err
	}

	for i < len(elements) {
		if spread, ok := elements[i].(*ast.SpreadElement); ok {
			if err := c.compileExpression(spread.Value); err != nil {
				return err
			}
			c.chunk.WriteOp(extendOp, line, col)
			i++
			continue
		}
		run = run[:0]
		for i < len(elements) {
			if _, ok := elements[i].(*ast.SpreadElement); ok {
				break
			}
			run = append(run, elements[i])
			i++
		}
		if err := c.emitRun(run, baseOp, line, col); err != nil {
			return err
		}
		c.chunk.WriteOp(extendOp, line, col)
	}

	if tuple {
		c.chunk.WriteOp(OP_LIST_TO_TUPLE, line, col)
	}
	return nil
}

func (c *Compiler) emitRun(run []ast.Expression, makeOp Opcode, line, col int) error {
	if len(run) > 255 {
		return fmt.Errorf("too many elements in literal")
	}
	for _, el := range run {
		if err := c.compileExpression(el); err != nil {
			return err
		}
	}
	c.chunk.WriteOp(makeOp, line, col)
	c.chunk.Write(byte(len(run)), line, col)
	return nil
}

// compileMap lowers a map literal, merging **spreads with MAP_UPDATE.
func (c *Compiler) compileMap(m *ast.MapLiteral, line, col int) error {
	hasSpread := false
	for _, entry := range m.Entries {
		if entry.Spread {
			hasSpread = true
			break
		}
	}

	if !hasSpread {
		if len(m.Entries) > 255 {
			return fmt.Errorf("too many entries in map literal")
		}
		for _, entry := range m.Entries {
			if err := c.compileExpression(entry.Key); err != nil {
				return err
			}
			if err := c.compileExpression(entry.Value); err != nil {
				return err
			}
		}
		c.chunk.WriteOp(OP_MAKE_MAP, line, col)
		c.chunk.Write(byte(len(m.Entries)), line, col)
		return nil
	}

	i := 0
	emitPairs := func(pairs []ast.MapEntry) error {
		if len(pairs) > 255 {
			return fmt.Errorf("too many entries in map literal")
		}
		for _, entry := range pairs {
			if err := c.compileExpression(entry.Key); err != nil {
				return err
			}
			if err := c.compileExpression(entry.Value); err != nil {
				return err
			}
		}
		c.chunk.WriteOp(OP_MAKE_MAP, line, col)
		c.chunk.Write(byte(len(pairs)), line, col)
		return nil
	}

	var run []ast.MapEntry
	for i < len(m.Entries) && !m.Entries[i].Spread {
		run = append(run, m.Entries[i])
		i++
	}
	if err := emitPairs(run); err != nil {
		return err
	}

	for i < len(m.Entries) {
		if m.Entries[i].Spread {
			if err := c.compileExpression(m.Entries[i].Value); err != nil {
				return err
			}
			c.chunk.WriteOp(OP_MAP_UPDATE, line, col)
			i++
			continue
		}
		run = run[:0]
		for i < len(m.Entries) && !m.Entries[i].Spread {
			run = append(run, m.Entries[i])
			i++
		}
		if err := emitPairs(run); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_MAP_UPDATE, line, col)
	}
	return nil
}
