package vm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/sufx/internal/object"
)

const StackSize = 2048

// callSite reports the instruction that completed just before the attribute
// read currently being dispatched. Strict-mode accessors classify the
// receiver by that instruction.
type callSite struct {
	chunk  *Chunk
	prevIP int
}

func (s callSite) LastInstruction() (op byte, format uint16, ok bool) {
	if s.prevIP < 0 || s.prevIP >= len(s.chunk.Code) {
		return 0, s.chunk.Format, false
	}
	return s.chunk.Code[s.prevIP], s.chunk.Format, true
}

type cacheKey struct {
	kind *object.Kind
	name string
}

// VM executes chunks over a shared global scope. Globals persist across Run
// calls, which is what keeps REPL sessions and embedded evaluation stateful.
// Attribute lookups are cached per (kind, name) and validated against the
// dispatch table versions recorded at resolution time.
type VM struct {
	stack      []object.Object
	sp         int
	globals    map[string]object.Object
	attrCache  map[cacheKey]object.Resolution
	lastPopped object.Object
	out        io.Writer
}

func New() *VM {
	globals := make(map[string]object.Object)
	for _, k := range object.Kinds() {
		globals[k.Name] = k
	}
	return &VM{
		stack:      make([]object.Object, StackSize),
		globals:    globals,
		attrCache:  make(map[cacheKey]object.Resolution),
		lastPopped: object.TheNone,
		out:        os.Stdout,
	}
}

// SetOutput redirects VM output (used by the REPL and tests).
func (v *VM) SetOutput(w io.Writer) { v.out = w }

// Output returns the writer evaluation results should be printed to.
func (v *VM) Output() io.Writer { return v.out }

// Global returns the value bound to name, if any.
func (v *VM) Global(name string) (object.Object, bool) {
	o, ok := v.globals[name]
	return o, ok
}

// Run executes chunk to completion and returns the value of the last
// expression statement, or TheNone when the chunk produced no value.
func (v *VM) Run(ctx context.Context, chunk *Chunk) (object.Object, error) {
	v.sp = 0
	v.lastPopped = object.TheNone

	ip := 0
	prevIP := -1
	code := chunk.Code

	for ip < len(code) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		opStart := ip
		op := Opcode(code[ip])
		ip++

		switch op {
		case OP_CONST:
			idx := chunk.ReadIndex(ip)
			ip += 2
			if err := v.push(chunk.Constants[idx]); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_POP:
			v.lastPopped = v.pop()

		case OP_NONE:
			if err := v.push(object.TheNone); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_TRUE:
			if err := v.push(object.TrueObj); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_FALSE:
			if err := v.push(object.FalseObj); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_ELLIPSIS:
			if err := v.push(object.TheEllipsis); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_ADD, OP_SUB, OP_MUL, OP_DIV,
			OP_EQ, OP_NE, OP_LT, OP_LE, OP_GT, OP_GE:
			right := v.pop()
			left := v.pop()
			result, err := binaryOp(op, left, right)
			if err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}
			if err := v.push(result); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_NEG:
			operand := v.pop()
			result, err := negate(operand)
			if err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}
			if err := v.push(result); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_GET_GLOBAL:
			idx := chunk.ReadIndex(ip)
			ip += 2
			name := chunk.Constants[idx].(*object.String).Value
			val, ok := v.globals[name]
			if !ok {
				return nil, v.positioned(chunk, opStart, fmt.Errorf("undefined name %q", name))
			}
			if err := v.push(val); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_SET_GLOBAL:
			idx := chunk.ReadIndex(ip)
			ip += 2
			name := chunk.Constants[idx].(*object.String).Value
			v.globals[name] = v.pop()

		case OP_GET_ATTR:
			idx := chunk.ReadIndex(ip)
			ip += 2
			name := chunk.Constants[idx].(*object.String).Value
			receiver := v.pop()
			site := callSite{chunk: chunk, prevIP: prevIP}
			result, err := v.getAttr(site, receiver, name)
			if err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}
			if err := v.push(result); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_MAKE_TUPLE, OP_MAKE_LIST, OP_MAKE_SET:
			n := int(code[ip])
			ip++
			elements := v.popN(n)
			var built object.Object
			switch op {
			case OP_MAKE_TUPLE:
				built = &object.Tuple{Elements: elements}
			case OP_MAKE_LIST:
				built = &object.List{Elements: elements}
			default:
				built = object.NewSet(elements)
			}
			if err := v.push(built); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_MAKE_MAP:
			n := int(code[ip])
			ip++
			pairs := v.popN(2 * n)
			m := &object.Map{}
			for i := 0; i < len(pairs); i += 2 {
				m.Put(pairs[i], pairs[i+1])
			}
			if err := v.push(m); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_LIST_EXTEND:
			src := v.pop()
			dst := v.peek().(*object.List)
			elements, err := spreadElements(src)
			if err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}
			dst.Elements = append(dst.Elements, elements...)

		case OP_SET_UPDATE:
			src := v.pop()
			dst := v.peek().(*object.Set)
			elements, err := spreadElements(src)
			if err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}
			for _, el := range elements {
				dst.Add(el)
			}

		case OP_MAP_UPDATE:
			src := v.pop()
			other, ok := src.(*object.Map)
			if !ok {
				return nil, v.positioned(chunk, opStart,
					fmt.Errorf("cannot merge %s value into a map", src.Type()))
			}
			v.peek().(*object.Map).Merge(other)

		case OP_LIST_TO_TUPLE:
			list := v.pop().(*object.List)
			if err := v.push(&object.Tuple{Elements: list.Elements}); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_INTERP_CONCAT:
			n := int(code[ip])
			ip++
			parts := v.popN(n)
			if err := v.push(concatParts(parts)); err != nil {
				return nil, v.positioned(chunk, opStart, err)
			}

		case OP_RETURN:
			return v.lastPopped, nil

		default:
			return nil, v.positioned(chunk, opStart, fmt.Errorf("unknown opcode %d", op))
		}

		prevIP = opStart
	}

	return v.lastPopped, nil
}

// getAttr dispatches an attribute read. Kind receivers go through the
// meta-kind protocol uncached; everything else resolves through the cached
// hierarchy walk, re-resolving when any inspected table changed.
func (v *VM) getAttr(site callSite, receiver object.Object, name string) (object.Object, error) {
	if _, isKind := receiver.(*object.Kind); isKind {
		return object.GetAttribute(site, receiver, name)
	}

	key := cacheKey{kind: object.KindOf(receiver), name: name}
	res, cached := v.attrCache[key]
	if !cached || !res.Valid() {
		var err error
		res, err = object.ResolveInstanceAttr(receiver, name)
		if err != nil {
			return nil, err
		}
		v.attrCache[key] = res
	}
	return res.Attr.Get(site, receiver, res.Owner)
}

func (v *VM) positioned(chunk *Chunk, offset int, err error) error {
	return fmt.Errorf("%s:%d:%d: %w", chunk.File, chunk.Lines[offset], chunk.Columns[offset], err)
}

func (v *VM) push(o object.Object) error {
	if v.sp >= StackSize {
		return fmt.Errorf("stack overflow")
	}
	v.stack[v.sp] = o
	v.sp++
	return nil
}

func (v *VM) pop() object.Object {
	v.sp--
	return v.stack[v.sp]
}

func (v *VM) peek() object.Object {
	return v.stack[v.sp-1]
}

func (v *VM) popN(n int) []object.Object {
	elements := make([]object.Object, n)
	copy(elements, v.stack[v.sp-n:v.sp])
	v.sp -= n
	return elements
}
