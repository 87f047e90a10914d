package object

// Kind identifies one of the sealed value kinds. Kinds are first-class
// objects: `Int`, `Float`, `None` and friends resolve to their Kind in
// source, so "access on the kind itself" is expressible.
type Kind struct {
	Name   string
	parent *Kind
	table  *DispatchTable
}

func (k *Kind) Type() ObjectType { return KIND_OBJ }
func (k *Kind) Inspect() string  { return k.Name }
func (k *Kind) Hash() uint32     { return hashString(k.Name) }

// Parent returns the kind this kind specializes, or nil.
func (k *Kind) Parent() *Kind { return k.parent }

// Table returns the kind's dispatch table.
func (k *Kind) Table() *DispatchTable { return k.table }

func newKind(name string, parent *Kind) *Kind {
	return &Kind{Name: name, parent: parent, table: NewDispatchTable(false)}
}

// The sealed kinds. Bool specializes Int; everything else is a leaf.
// TypeKind is the meta kind: the kind of kind objects. Its table is frozen
// against raw slot rewriting.
var (
	IntKind      = newKind("Int", nil)
	FloatKind    = newKind("Float", nil)
	ComplexKind  = newKind("Complex", nil)
	BoolKind     = newKind("Bool", IntKind)
	StringKind   = newKind("String", nil)
	BytesKind    = newKind("Bytes", nil)
	NoneKind     = newKind("None", nil)
	EllipsisKind = newKind("Ellipsis", nil)
	TupleKind    = newKind("Tuple", nil)
	ListKind     = newKind("List", nil)
	SetKind      = newKind("Set", nil)
	MapKind      = newKind("Map", nil)

	TypeKind = &Kind{Name: "Type", table: NewDispatchTable(true)}
)

var allKinds = []*Kind{
	IntKind, FloatKind, ComplexKind, BoolKind, StringKind, BytesKind,
	NoneKind, EllipsisKind, TupleKind, ListKind, SetKind, MapKind, TypeKind,
}

// Kinds returns every sealed kind, including the meta kind.
func Kinds() []*Kind {
	out := make([]*Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// KindByName resolves a kind by its source-level name.
func KindByName(name string) (*Kind, bool) {
	for _, k := range allKinds {
		if k.Name == name {
			return k, true
		}
	}
	return nil, false
}

// KindOf returns the most specialized kind of o.
func KindOf(o Object) *Kind {
	switch o.(type) {
	case *Boolean:
		return BoolKind
	case *Integer:
		return IntKind
	case *Float:
		return FloatKind
	case *Complex:
		return ComplexKind
	case *String:
		return StringKind
	case *Bytes:
		return BytesKind
	case *None:
		return NoneKind
	case *Ellipsis:
		return EllipsisKind
	case *Tuple:
		return TupleKind
	case *List:
		return ListKind
	case *Set:
		return SetKind
	case *Map:
		return MapKind
	case *Kind:
		return TypeKind
	}
	return nil
}

// IsInstance reports whether o is a value of kind k or of a kind that
// specializes k.
func IsInstance(o Object, k *Kind) bool {
	for t := KindOf(o); t != nil; t = t.parent {
		if t == k {
			return true
		}
	}
	return false
}
