// Package packs bundles ready-made suffix definitions: durations, string
// case helpers, byte conversions and unix timestamps. A pack is enabled by
// registering its definitions and disabled by unregistering them; packs go
// through the same backend as any other registration.
package packs

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/suffix"
)

// Pack is a named group of suffix definitions enabled together.
type Pack struct {
	Name        string
	Description string
	Defs        []suffix.Definition
}

// Enable registers every definition of p, all or nothing.
func Enable(r *suffix.Registry, p Pack) ([]*suffix.Registration, error) {
	return r.RegisterAll(p.Defs)
}

// Disable unregisters p's definitions in reverse order, returning the
// first failure.
func Disable(r *suffix.Registry, p Pack) error {
	var first error
	for i := len(p.Defs) - 1; i >= 0; i-- {
		def := p.Defs[i]
		if err := r.Unregister(def.Kind, def.Name); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ByName returns the bundled pack called name.
func ByName(name string) (Pack, bool) {
	for _, p := range All() {
		if p.Name == name {
			return p, true
		}
	}
	return Pack{}, false
}

// All returns the bundled packs.
func All() []Pack {
	return []Pack{
		Duration(),
		Case(),
		Bytes(),
		Unix(),
		Hex(),
	}
}

// Duration provides s, m and h on integers and floats, converting to
// seconds as a float.
func Duration() Pack {
	units := []struct {
		name   string
		factor float64
	}{
		{"s", 1},
		{"m", 60},
		{"h", 3600},
	}
	var defs []suffix.Definition
	for _, unit := range units {
		factor := unit.factor
		handler := func(instance object.Object) (object.Object, error) {
			v, err := floatValue(instance)
			if err != nil {
				return nil, err
			}
			return &object.Float{Value: v * factor}, nil
		}
		defs = append(defs,
			suffix.Definition{Kind: object.IntKind, Name: unit.name, Handler: handler},
			suffix.Definition{Kind: object.FloatKind, Name: unit.name, Handler: handler},
		)
	}
	return Pack{
		Name:        "duration",
		Description: "time unit suffixes producing seconds",
		Defs:        defs,
	}
}

// Case provides u and l on strings.
func Case() Pack {
	return Pack{
		Name:        "case",
		Description: "string case suffixes",
		Defs: []suffix.Definition{
			{Kind: object.StringKind, Name: "u", Handler: stringHandler(strings.ToUpper)},
			{Kind: object.StringKind, Name: "l", Handler: stringHandler(strings.ToLower)},
		},
	}
}

// Bytes provides b on strings, yielding the string's bytes.
func Bytes() Pack {
	return Pack{
		Name:        "bytes",
		Description: "string to bytes suffix",
		Defs: []suffix.Definition{
			{Kind: object.StringKind, Name: "b", Handler: func(instance object.Object) (object.Object, error) {
				s := instance.(*object.String)
				return &object.Bytes{Value: []byte(s.Value)}, nil
			}},
		},
	}
}

// Unix provides unix on integers, formatting the value as an RFC 3339
// timestamp in UTC.
func Unix() Pack {
	return Pack{
		Name:        "unix",
		Description: "unix timestamp suffix",
		Defs: []suffix.Definition{
			{Kind: object.IntKind, Name: "unix", Handler: func(instance object.Object) (object.Object, error) {
				v, err := intValue(instance)
				if err != nil {
					return nil, err
				}
				formatted := time.Unix(v, 0).UTC().Format(time.RFC3339)
				return &object.String{Value: formatted}, nil
			}},
		},
	}
}

// Hex provides hexdecode on strings, decoding hex digits to bytes.
func Hex() Pack {
	return Pack{
		Name:        "hex",
		Description: "hex decoding suffix",
		Defs: []suffix.Definition{
			{Kind: object.StringKind, Name: "hexdecode", Handler: func(instance object.Object) (object.Object, error) {
				s := instance.(*object.String)
				decoded, err := hex.DecodeString(s.Value)
				if err != nil {
					return nil, err
				}
				return &object.Bytes{Value: decoded}, nil
			}},
		},
	}
}

func stringHandler(fn func(string) string) suffix.Handler {
	return func(instance object.Object) (object.Object, error) {
		s, ok := instance.(*object.String)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %s", instance.Type())
		}
		return &object.String{Value: fn(s.Value)}, nil
	}
}

func intValue(o object.Object) (int64, error) {
	switch n := o.(type) {
	case *object.Integer:
		return n.Value, nil
	case *object.Boolean:
		if n.Value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("expected an integer, got %s", o.Type())
}

func floatValue(o object.Object) (float64, error) {
	switch n := o.(type) {
	case *object.Integer:
		return float64(n.Value), nil
	case *object.Float:
		return n.Value, nil
	case *object.Boolean:
		if n.Value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("expected a number, got %s", o.Type())
}
