package vm

import (
	"fmt"
	"strings"

	"github.com/funvibe/sufx/internal/object"
)

const (
	rankInt = iota
	rankFloat
	rankComplex
)

// numericOperand widens a numeric object to complex128 and reports its rank
// so binary results can be narrowed back to the widest operand kind.
// Booleans participate as integers.
func numericOperand(o object.Object) (complex128, int, bool) {
	switch n := o.(type) {
	case *object.Integer:
		return complex(float64(n.Value), 0), rankInt, true
	case *object.Boolean:
		if n.Value {
			return 1, rankInt, true
		}
		return 0, rankInt, true
	case *object.Float:
		return complex(n.Value, 0), rankFloat, true
	case *object.Complex:
		return n.Value, rankComplex, true
	}
	return 0, 0, false
}

func intOperand(o object.Object) (int64, bool) {
	switch n := o.(type) {
	case *object.Integer:
		return n.Value, true
	case *object.Boolean:
		if n.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func binaryOp(op Opcode, left, right object.Object) (object.Object, error) {
	switch op {
	case OP_EQ:
		return object.BoolObj(object.Equals(left, right)), nil
	case OP_NE:
		return object.BoolObj(!object.Equals(left, right)), nil
	case OP_LT, OP_LE, OP_GT, OP_GE:
		return compareOp(op, left, right)
	}

	if op == OP_ADD {
		if out, ok, err := concatOp(left, right); ok {
			return out, err
		}
	}

	lv, lr, lok := numericOperand(left)
	rv, rr, rok := numericOperand(right)
	if !lok || !rok {
		return nil, fmt.Errorf("unsupported operand kinds for %s: %s and %s",
			operatorName(op), left.Type(), right.Type())
	}

	rank := lr
	if rr > rank {
		rank = rr
	}

	// Stay in int64 while both sides are integral; division always widens.
	if rank == rankInt && op != OP_DIV {
		li, _ := intOperand(left)
		ri, _ := intOperand(right)
		switch op {
		case OP_ADD:
			return &object.Integer{Value: li + ri}, nil
		case OP_SUB:
			return &object.Integer{Value: li - ri}, nil
		case OP_MUL:
			return &object.Integer{Value: li * ri}, nil
		}
	}

	var result complex128
	switch op {
	case OP_ADD:
		result = lv + rv
	case OP_SUB:
		result = lv - rv
	case OP_MUL:
		result = lv * rv
	case OP_DIV:
		if rv == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		result = lv / rv
	default:
		return nil, fmt.Errorf("unsupported operator %s", operatorName(op))
	}

	if rank == rankComplex {
		return &object.Complex{Value: result}, nil
	}
	return &object.Float{Value: real(result)}, nil
}

// concatOp handles the sequence meanings of +. The bool result reports
// whether the operand pair was a sequence pair at all.
func concatOp(left, right object.Object) (object.Object, bool, error) {
	switch l := left.(type) {
	case *object.String:
		r, ok := right.(*object.String)
		if !ok {
			return nil, true, fmt.Errorf("cannot concatenate string and %s", right.Type())
		}
		return &object.String{Value: l.Value + r.Value}, true, nil

	case *object.Bytes:
		r, ok := right.(*object.Bytes)
		if !ok {
			return nil, true, fmt.Errorf("cannot concatenate bytes and %s", right.Type())
		}
		joined := make([]byte, 0, len(l.Value)+len(r.Value))
		joined = append(joined, l.Value...)
		joined = append(joined, r.Value...)
		return &object.Bytes{Value: joined}, true, nil

	case *object.List:
		r, ok := right.(*object.List)
		if !ok {
			return nil, true, fmt.Errorf("cannot concatenate list and %s", right.Type())
		}
		elements := make([]object.Object, 0, len(l.Elements)+len(r.Elements))
		elements = append(elements, l.Elements...)
		elements = append(elements, r.Elements...)
		return &object.List{Elements: elements}, true, nil

	case *object.Tuple:
		r, ok := right.(*object.Tuple)
		if !ok {
			return nil, true, fmt.Errorf("cannot concatenate tuple and %s", right.Type())
		}
		elements := make([]object.Object, 0, len(l.Elements)+len(r.Elements))
		elements = append(elements, l.Elements...)
		elements = append(elements, r.Elements...)
		return &object.Tuple{Elements: elements}, true, nil
	}
	return nil, false, nil
}

func compareOp(op Opcode, left, right object.Object) (object.Object, error) {
	if ls, ok := left.(*object.String); ok {
		rs, ok := right.(*object.String)
		if !ok {
			return nil, fmt.Errorf("cannot order string and %s", right.Type())
		}
		return orderResult(op, strings.Compare(ls.Value, rs.Value)), nil
	}

	lv, lr, lok := numericOperand(left)
	rv, rr, rok := numericOperand(right)
	if !lok || !rok || lr == rankComplex || rr == rankComplex {
		return nil, fmt.Errorf("values of kinds %s and %s are not orderable",
			left.Type(), right.Type())
	}

	a, b := real(lv), real(rv)
	switch {
	case a < b:
		return orderResult(op, -1), nil
	case a > b:
		return orderResult(op, 1), nil
	}
	return orderResult(op, 0), nil
}

func orderResult(op Opcode, cmp int) *object.Boolean {
	switch op {
	case OP_LT:
		return object.BoolObj(cmp < 0)
	case OP_LE:
		return object.BoolObj(cmp <= 0)
	case OP_GT:
		return object.BoolObj(cmp > 0)
	default:
		return object.BoolObj(cmp >= 0)
	}
}

func negate(o object.Object) (object.Object, error) {
	switch n := o.(type) {
	case *object.Integer:
		return &object.Integer{Value: -n.Value}, nil
	case *object.Boolean:
		if n.Value {
			return &object.Integer{Value: -1}, nil
		}
		return &object.Integer{Value: 0}, nil
	case *object.Float:
		return &object.Float{Value: -n.Value}, nil
	case *object.Complex:
		return &object.Complex{Value: -n.Value}, nil
	}
	return nil, fmt.Errorf("cannot negate %s value", o.Type())
}

// spreadElements flattens a spread operand into its elements.
func spreadElements(o object.Object) ([]object.Object, error) {
	switch s := o.(type) {
	case *object.Tuple:
		return s.Elements, nil
	case *object.List:
		return s.Elements, nil
	case *object.Set:
		return s.Elements, nil
	}
	return nil, fmt.Errorf("value of kind %s is not spreadable", o.Type())
}

func concatParts(parts []object.Object) *object.String {
	var b strings.Builder
	for _, part := range parts {
		if s, ok := part.(*object.String); ok {
			b.WriteString(s.Value)
			continue
		}
		b.WriteString(part.Inspect())
	}
	return &object.String{Value: b.String()}
}

func operatorName(op Opcode) string {
	switch op {
	case OP_ADD:
		return "+"
	case OP_SUB:
		return "-"
	case OP_MUL:
		return "*"
	case OP_DIV:
		return "/"
	case OP_LT:
		return "<"
	case OP_LE:
		return "<="
	case OP_GT:
		return ">"
	case OP_GE:
		return ">="
	}
	return OpcodeNames[op]
}
