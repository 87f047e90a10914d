package object

// Equals reports deep structural equality. Numeric values compare across
// Integer/Float/Boolean the way the language's == does (true == 1,
// 1 == 1.0), matching the numeric kind hierarchy.
func Equals(a, b Object) bool {
	if a == b {
		return true
	}

	if an, aok := numericValue(a); aok {
		if bn, bok := numericValue(b); bok {
			return an == bn
		}
		return false
	}

	switch av := a.(type) {
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Bytes:
		bv, ok := b.(*Bytes)
		return ok && string(av.Value) == string(bv.Value)
	case *None:
		_, ok := b.(*None)
		return ok
	case *Ellipsis:
		_, ok := b.(*Ellipsis)
		return ok
	case *Kind:
		bv, ok := b.(*Kind)
		return ok && av == bv
	case *Tuple:
		bv, ok := b.(*Tuple)
		return ok && elementsEqual(av.Elements, bv.Elements)
	case *List:
		bv, ok := b.(*List)
		return ok && elementsEqual(av.Elements, bv.Elements)
	case *Set:
		bv, ok := b.(*Set)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for _, el := range av.Elements {
			if !bv.Contains(el) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for _, p := range av.Pairs {
			other, found := bv.Get(p.Key)
			if !found || !Equals(p.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func elementsEqual(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

// numericValue maps Integer/Float/Boolean/Complex onto complex128 for
// cross-kind comparison.
func numericValue(o Object) (complex128, bool) {
	switch v := o.(type) {
	case *Integer:
		return complex(float64(v.Value), 0), true
	case *Float:
		return complex(v.Value, 0), true
	case *Complex:
		return v.Value, true
	case *Boolean:
		if v.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
