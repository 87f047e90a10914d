package object

import (
	"errors"
	"testing"
)

func TestResolveFindsBuiltin(t *testing.T) {
	res, err := ResolveInstanceAttr(&String{Value: "abc"}, "len")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if res.Owner != StringKind {
		t.Errorf("owner is %s, want String", res.Owner.Name)
	}
	out, err := res.Attr.Get(nil, &String{Value: "abc"}, res.Owner)
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	n, ok := out.(*Integer)
	if !ok || n.Value != 3 {
		t.Errorf("len = %v, want 3", out)
	}
}

func TestBoolInheritsIntAttributes(t *testing.T) {
	res, err := ResolveInstanceAttr(TrueObj, "abs")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if res.Owner != IntKind {
		t.Errorf("owner is %s, want Int", res.Owner.Name)
	}
	out, err := res.Attr.Get(nil, TrueObj, res.Owner)
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if n, ok := out.(*Integer); !ok || n.Value != 1 {
		t.Errorf("true.abs = %v, want 1", out)
	}
}

func TestChildEntryShadowsParent(t *testing.T) {
	parentAttr := &stubAttribute{value: &String{Value: "parent"}}
	childAttr := &stubAttribute{value: &String{Value: "child"}}

	IntKind.Table().Swap("shadow_probe", parentAttr)
	defer IntKind.Table().Delete("shadow_probe")
	BoolKind.Table().Swap("shadow_probe", childAttr)
	defer BoolKind.Table().Delete("shadow_probe")

	res, err := ResolveInstanceAttr(TrueObj, "shadow_probe")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if res.Owner != BoolKind {
		t.Errorf("owner is %s, want Bool", res.Owner.Name)
	}

	res, err = ResolveInstanceAttr(&Integer{Value: 1}, "shadow_probe")
	if err != nil {
		t.Fatalf("resolve on int: %s", err)
	}
	if res.Owner != IntKind {
		t.Errorf("owner is %s, want Int", res.Owner.Name)
	}
}

func TestEntryBeatsHook(t *testing.T) {
	entry := &stubAttribute{value: &String{Value: "entry"}}
	hook := &stubAttribute{value: &String{Value: "hook"}}

	if err := FloatKind.Table().AddMissHook("beat_probe", hook); err != nil {
		t.Fatalf("hook: %s", err)
	}
	defer FloatKind.Table().RemoveMissHook("beat_probe")

	res, err := ResolveInstanceAttr(&Float{Value: 1}, "beat_probe")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if res.Attr != Attribute(hook) {
		t.Errorf("expected the hook before an entry exists")
	}

	FloatKind.Table().Swap("beat_probe", entry)
	defer FloatKind.Table().Delete("beat_probe")

	res, err = ResolveInstanceAttr(&Float{Value: 1}, "beat_probe")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if res.Attr != Attribute(entry) {
		t.Errorf("entry should shadow the hook")
	}
}

func TestResolutionValidity(t *testing.T) {
	IntKind.Table().Swap("valid_probe", &stubAttribute{value: TheNone})
	defer IntKind.Table().Delete("valid_probe")

	res, err := ResolveInstanceAttr(&Integer{Value: 1}, "valid_probe")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if !res.Valid() {
		t.Fatalf("fresh resolution is not valid")
	}

	// A raw write leaves the resolution valid until Invalidate runs. This
	// is the staleness window the slot-rewrite backend must close.
	if err := IntKind.Table().RawPut("valid_probe", &stubAttribute{value: TrueObj}); err != nil {
		t.Fatalf("RawPut: %s", err)
	}
	if !res.Valid() {
		t.Errorf("raw write alone should not invalidate")
	}
	IntKind.Table().Invalidate()
	if res.Valid() {
		t.Errorf("resolution still valid after Invalidate")
	}
}

func TestMissingAttribute(t *testing.T) {
	_, err := ResolveInstanceAttr(&Integer{Value: 1}, "definitely_absent")
	if !errors.Is(err, ErrNoAttribute) {
		t.Errorf("got %v, want ErrNoAttribute", err)
	}
}

func TestKindAccessGetsPlaceholder(t *testing.T) {
	// Reading a built-in off the kind object yields the placeholder none,
	// not an invocation on a phantom instance.
	out, err := GetAttribute(nil, StringKind, "len")
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if out != TheNone {
		t.Errorf("String.len = %v, want none", out)
	}
}

func TestMetaDataAttributeTakesPrecedence(t *testing.T) {
	probe := &dataStub{value: &String{Value: "meta"}}
	TypeKind.Table().Swap("meta_probe", probe)
	defer TypeKind.Table().Delete("meta_probe")

	IntKind.Table().Swap("meta_probe", &stubAttribute{value: &String{Value: "own"}})
	defer IntKind.Table().Delete("meta_probe")

	out, err := GetAttribute(nil, IntKind, "meta_probe")
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	s, ok := out.(*String)
	if !ok || s.Value != "meta" {
		t.Errorf("kind access ignored the meta data attribute: %v", out)
	}

	// Instance access is untouched by the meta entry.
	out, err = GetAttribute(nil, &Integer{Value: 1}, "meta_probe")
	if err != nil {
		t.Fatalf("instance get: %s", err)
	}
	if s, ok := out.(*String); !ok || s.Value != "own" {
		t.Errorf("instance access hit the wrong attribute: %v", out)
	}
}

type dataStub struct {
	value Object
}

func (d *dataStub) Get(site AccessSite, instance Object, owner *Kind) (Object, error) {
	return d.value, nil
}

func (d *dataStub) Set(instance, value Object) error { return nil }
