package object

import (
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

// BuiltinAttribute is a computed property seeded onto a kind's table at
// startup. Built-in names are reserved: custom literal registration refuses
// to shadow them.
type BuiltinAttribute struct {
	Name string
	Fn   func(instance Object) (Object, error)
}

func (b *BuiltinAttribute) Get(site AccessSite, instance Object, owner *Kind) (Object, error) {
	if instance == TheNone && owner != NoneKind {
		// Read off the kind object, not an instance.
		return TheNone, nil
	}
	return b.Fn(instance)
}

func init() {
	seedBuiltins()
}

func seedBuiltins() {
	seed := func(k *Kind, name string, fn func(Object) (Object, error)) {
		k.table.Swap(name, &BuiltinAttribute{Name: name, Fn: fn})
	}

	seed(StringKind, "len", func(o Object) (Object, error) {
		return &Integer{Value: int64(utf8.RuneCountInString(o.(*String).Value))}, nil
	})
	seed(StringKind, "upper", func(o Object) (Object, error) {
		return &String{Value: strings.ToUpper(o.(*String).Value)}, nil
	})
	seed(StringKind, "lower", func(o Object) (Object, error) {
		return &String{Value: strings.ToLower(o.(*String).Value)}, nil
	})
	seed(StringKind, "trim", func(o Object) (Object, error) {
		return &String{Value: strings.TrimSpace(o.(*String).Value)}, nil
	})

	seed(BytesKind, "len", func(o Object) (Object, error) {
		return &Integer{Value: int64(len(o.(*Bytes).Value))}, nil
	})
	seed(BytesKind, "hex", func(o Object) (Object, error) {
		return &String{Value: hex.EncodeToString(o.(*Bytes).Value)}, nil
	})

	seed(IntKind, "abs", func(o Object) (Object, error) {
		v, err := intValue(o)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			v = -v
		}
		return &Integer{Value: v}, nil
	})
	seed(IntKind, "sign", func(o Object) (Object, error) {
		v, err := intValue(o)
		if err != nil {
			return nil, err
		}
		switch {
		case v > 0:
			return &Integer{Value: 1}, nil
		case v < 0:
			return &Integer{Value: -1}, nil
		}
		return &Integer{Value: 0}, nil
	})

	seed(FloatKind, "floor", func(o Object) (Object, error) {
		return &Float{Value: math.Floor(o.(*Float).Value)}, nil
	})
	seed(FloatKind, "ceil", func(o Object) (Object, error) {
		return &Float{Value: math.Ceil(o.(*Float).Value)}, nil
	})
	seed(FloatKind, "round", func(o Object) (Object, error) {
		return &Float{Value: math.Round(o.(*Float).Value)}, nil
	})

	seed(ComplexKind, "real", func(o Object) (Object, error) {
		return &Float{Value: real(o.(*Complex).Value)}, nil
	})
	seed(ComplexKind, "imag", func(o Object) (Object, error) {
		return &Float{Value: imag(o.(*Complex).Value)}, nil
	})

	seed(TupleKind, "len", func(o Object) (Object, error) {
		return &Integer{Value: int64(len(o.(*Tuple).Elements))}, nil
	})
	seed(TupleKind, "first", func(o Object) (Object, error) {
		return firstElement(o.(*Tuple).Elements)
	})
	seed(TupleKind, "last", func(o Object) (Object, error) {
		return lastElement(o.(*Tuple).Elements)
	})

	seed(ListKind, "len", func(o Object) (Object, error) {
		return &Integer{Value: int64(len(o.(*List).Elements))}, nil
	})
	seed(ListKind, "first", func(o Object) (Object, error) {
		return firstElement(o.(*List).Elements)
	})
	seed(ListKind, "last", func(o Object) (Object, error) {
		return lastElement(o.(*List).Elements)
	})

	seed(SetKind, "len", func(o Object) (Object, error) {
		return &Integer{Value: int64(len(o.(*Set).Elements))}, nil
	})

	seed(MapKind, "len", func(o Object) (Object, error) {
		return &Integer{Value: int64(len(o.(*Map).Pairs))}, nil
	})
	seed(MapKind, "keys", func(o Object) (Object, error) {
		m := o.(*Map)
		keys := make([]Object, len(m.Pairs))
		for i, p := range m.Pairs {
			keys[i] = p.Key
		}
		return &List{Elements: keys}, nil
	})
	seed(MapKind, "values", func(o Object) (Object, error) {
		m := o.(*Map)
		values := make([]Object, len(m.Pairs))
		for i, p := range m.Pairs {
			values[i] = p.Value
		}
		return &List{Elements: values}, nil
	})
}

func intValue(o Object) (int64, error) {
	switch v := o.(type) {
	case *Integer:
		return v.Value, nil
	case *Boolean:
		if v.Value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errors.New("not an integer value")
}

func firstElement(elements []Object) (Object, error) {
	if len(elements) == 0 {
		return nil, errors.New("first of empty sequence")
	}
	return elements[0], nil
}

func lastElement(elements []Object) (Object, error) {
	if len(elements) == 0 {
		return nil, errors.New("last of empty sequence")
	}
	return elements[len(elements)-1], nil
}
