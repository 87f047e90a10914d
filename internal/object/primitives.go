package object

import (
	"fmt"
	"math"
	"strconv"
)

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f *Float) Hash() uint32 {
	bits := math.Float64bits(f.Value)
	return uint32(bits ^ (bits >> 32))
}

// Complex
type Complex struct {
	Value complex128
}

func (c *Complex) Type() ObjectType { return COMPLEX_OBJ }
func (c *Complex) Inspect() string  { return fmt.Sprintf("%v", c.Value) }
func (c *Complex) Hash() uint32 {
	re := math.Float64bits(real(c.Value))
	im := math.Float64bits(imag(c.Value))
	bits := re ^ im
	return uint32(bits ^ (bits >> 32))
}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }

// Bytes
type Bytes struct {
	Value []byte
}

func (b *Bytes) Type() ObjectType { return BYTES_OBJ }
func (b *Bytes) Inspect() string {
	out := "b\""
	for _, c := range b.Value {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			out += string(rune(c))
		} else {
			out += fmt.Sprintf("\\x%02x", c)
		}
	}
	return out + "\""
}
func (b *Bytes) Hash() uint32 { return hashString(string(b.Value)) }

// None is the none-like singleton. All none values are TheNone.
type None struct{}

func (n *None) Type() ObjectType { return NONE_OBJ }
func (n *None) Inspect() string  { return "none" }
func (n *None) Hash() uint32     { return 0 }

// Ellipsis is the `...` singleton.
type Ellipsis struct{}

func (e *Ellipsis) Type() ObjectType { return ELLIPSIS_OBJ }
func (e *Ellipsis) Inspect() string  { return "..." }
func (e *Ellipsis) Hash() uint32     { return 1 }

// Singleton instances. TheNone doubles as the neutral sentinel returned
// when a custom literal is read off a kind object instead of an instance,
// and as the instance placeholder in the kind-access dispatch path.
var (
	TheNone     = &None{}
	TheEllipsis = &Ellipsis{}
	TrueObj     = &Boolean{Value: true}
	FalseObj    = &Boolean{Value: false}
)

// BoolObj returns the shared Boolean for v.
func BoolObj(v bool) *Boolean {
	if v {
		return TrueObj
	}
	return FalseObj
}
