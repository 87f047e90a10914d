package packs

import (
	"testing"

	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/suffix"
)

func enable(t *testing.T, r *suffix.Registry, p Pack) {
	t.Helper()
	if _, err := Enable(r, p); err != nil {
		t.Fatalf("enable %s: %s", p.Name, err)
	}
	t.Cleanup(func() {
		_ = Disable(r, p)
	})
}

func callHandler(t *testing.T, r *suffix.Registry, kind *object.Kind, name string, instance object.Object) object.Object {
	t.Helper()
	entry, ok := kind.Table().Entry(name)
	if !ok {
		if entry, ok = kind.Table().MissHook(name); !ok {
			t.Fatalf("no accessor for %s.%s", kind.Name, name)
		}
	}
	out, err := entry.Get(nil, instance, kind)
	if err != nil {
		t.Fatalf("%s.%s: %s", kind.Name, name, err)
	}
	return out
}

func TestByName(t *testing.T) {
	for _, p := range All() {
		found, ok := ByName(p.Name)
		if !ok || found.Name != p.Name {
			t.Errorf("ByName(%q) failed", p.Name)
		}
	}
	if _, ok := ByName("nope"); ok {
		t.Errorf("ByName accepted an unknown pack")
	}
}

func TestDurationPack(t *testing.T) {
	r := suffix.NewRegistry(nil)
	enable(t, r, Duration())

	tests := []struct {
		name     string
		instance object.Object
		want     float64
	}{
		{"s", &object.Integer{Value: 30}, 30},
		{"m", &object.Integer{Value: 2}, 120},
		{"h", &object.Integer{Value: 1}, 3600},
		{"m", &object.Float{Value: 0.5}, 30},
	}
	for _, tt := range tests {
		kind := object.KindOf(tt.instance)
		out := callHandler(t, r, kind, tt.name, tt.instance)
		f, ok := out.(*object.Float)
		if !ok || f.Value != tt.want {
			t.Errorf("%v.%s = %v, want %v", tt.instance.Inspect(), tt.name, out, tt.want)
		}
	}
}

func TestCasePack(t *testing.T) {
	r := suffix.NewRegistry(nil)
	enable(t, r, Case())

	up := callHandler(t, r, object.StringKind, "u", &object.String{Value: "mixed"})
	if up.(*object.String).Value != "MIXED" {
		t.Errorf("u = %v", up)
	}
	low := callHandler(t, r, object.StringKind, "l", &object.String{Value: "MIXED"})
	if low.(*object.String).Value != "mixed" {
		t.Errorf("l = %v", low)
	}
}

func TestBytesPack(t *testing.T) {
	r := suffix.NewRegistry(nil)
	enable(t, r, Bytes())

	out := callHandler(t, r, object.StringKind, "b", &object.String{Value: "ab"})
	b, ok := out.(*object.Bytes)
	if !ok || string(b.Value) != "ab" {
		t.Errorf("b = %v", out)
	}
}

func TestUnixPack(t *testing.T) {
	r := suffix.NewRegistry(nil)
	enable(t, r, Unix())

	out := callHandler(t, r, object.IntKind, "unix", &object.Integer{Value: 0})
	s, ok := out.(*object.String)
	if !ok || s.Value != "1970-01-01T00:00:00Z" {
		t.Errorf("unix = %v", out)
	}
}

func TestHexPack(t *testing.T) {
	r := suffix.NewRegistry(nil)
	enable(t, r, Hex())

	out := callHandler(t, r, object.StringKind, "hexdecode", &object.String{Value: "00ff"})
	b, ok := out.(*object.Bytes)
	if !ok || len(b.Value) != 2 || b.Value[1] != 0xff {
		t.Errorf("hexdecode = %v", out)
	}

	entry, _ := object.StringKind.Table().Entry("hexdecode")
	if _, err := entry.Get(nil, &object.String{Value: "zz"}, object.StringKind); err == nil {
		t.Errorf("invalid hex should fail")
	}
}

func TestDisableRemovesEverything(t *testing.T) {
	r := suffix.NewRegistry(nil)
	p := Duration()
	if _, err := Enable(r, p); err != nil {
		t.Fatalf("enable: %s", err)
	}
	if err := Disable(r, p); err != nil {
		t.Fatalf("disable: %s", err)
	}
	for _, def := range p.Defs {
		if r.IsRegistered(def.Kind, def.Name) {
			t.Errorf("%s.%s still registered", def.Kind.Name, def.Name)
		}
	}
	if _, ok := object.IntKind.Table().Entry("s"); ok {
		t.Errorf("table entry for s survived disable")
	}
}
