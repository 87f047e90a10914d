package object

import "strings"

// Tuple is an immutable fixed-size sequence.
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Hash() uint32 {
	var h uint32 = 2166136261
	for _, el := range t.Elements {
		h = h*16777619 ^ el.Hash()
	}
	return h
}

// List is a mutable sequence.
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Hash() uint32 {
	var h uint32 = 2166136261
	for _, el := range l.Elements {
		h = h*16777619 ^ el.Hash()
	}
	return h
}

// Set keeps insertion order and deduplicates by Equals.
type Set struct {
	Elements []Object
}

func NewSet(elements []Object) *Set {
	s := &Set{}
	for _, el := range elements {
		s.Add(el)
	}
	return s
}

func (s *Set) Type() ObjectType { return SET_OBJ }
func (s *Set) Inspect() string {
	parts := make([]string, len(s.Elements))
	for i, el := range s.Elements {
		parts[i] = el.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (s *Set) Hash() uint32 {
	var h uint32
	for _, el := range s.Elements {
		h ^= el.Hash() // order-independent
	}
	return h
}

func (s *Set) Contains(o Object) bool {
	for _, el := range s.Elements {
		if Equals(el, o) {
			return true
		}
	}
	return false
}

func (s *Set) Add(o Object) {
	if !s.Contains(o) {
		s.Elements = append(s.Elements, o)
	}
}

// MapPair is one key/value entry of a Map.
type MapPair struct {
	Key   Object
	Value Object
}

// Map keeps insertion order; later writes to an existing key replace the
// value in place.
type Map struct {
	Pairs []MapPair
}

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) Inspect() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = p.Key.Inspect() + ": " + p.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) Hash() uint32 {
	var h uint32
	for _, p := range m.Pairs {
		h ^= p.Key.Hash() * 31
	}
	return h
}

func (m *Map) Get(key Object) (Object, bool) {
	for _, p := range m.Pairs {
		if Equals(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

func (m *Map) Put(key, value Object) {
	for i, p := range m.Pairs {
		if Equals(p.Key, key) {
			m.Pairs[i].Value = value
			return
		}
	}
	m.Pairs = append(m.Pairs, MapPair{Key: key, Value: value})
}

// Merge copies all pairs of other into m, replacing on key collision.
func (m *Map) Merge(other *Map) {
	for _, p := range other.Pairs {
		m.Put(p.Key, p.Value)
	}
}
