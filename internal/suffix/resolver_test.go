package suffix

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/sufx/internal/object"
)

func TestNoneSuffixDistinguishesInstanceFromKind(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.NoneKind, Name: "nz_tag", Handler: func(object.Object) (object.Object, error) {
		return &object.String{Value: "the none value"}, nil
	}})

	// Access on the none singleton runs the handler.
	result := mustEval(t, "none.nz_tag")
	s, ok := result.(*object.String)
	if !ok || s.Value != "the none value" {
		t.Errorf("none.nz_tag = %v, want the handler result", result)
	}

	// Access on the kind object is shielded: the handler must not run, even
	// though the attribute protocol hands it the none singleton either way.
	result = mustEval(t, "None.nz_tag")
	if result != object.TheNone {
		t.Errorf("None.nz_tag = %v, want the placeholder none", result)
	}
}

func TestShieldInstalledAndRemovedWithRegistration(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.Register(Definition{Kind: object.NoneKind, Name: "nz_life", Handler: doubler}); err != nil {
		t.Fatalf("register: %s", err)
	}
	if _, ok := object.TypeKind.Table().Entry("nz_life"); !ok {
		t.Fatalf("shield missing from the meta kind")
	}

	if err := r.Unregister(object.NoneKind, "nz_life"); err != nil {
		t.Fatalf("unregister: %s", err)
	}
	if _, ok := object.TypeKind.Table().Entry("nz_life"); ok {
		t.Errorf("shield survived unregistration")
	}
	if _, ok := object.NoneKind.Table().Entry("nz_life"); ok {
		t.Errorf("accessor survived unregistration")
	}
}

func TestShieldDelegatesToOtherKinds(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.NoneKind, Name: "nz_both", Handler: func(object.Object) (object.Object, error) {
		return &object.String{Value: "none side"}, nil
	}})
	register(t, r, Definition{Kind: object.StringKind, Name: "nz_both", Handler: func(instance object.Object) (object.Object, error) {
		s := instance.(*object.String)
		return &object.String{Value: strings.ToUpper(s.Value)}, nil
	}})

	// Instance accesses hit their own handlers.
	if got := mustEval(t, `"ab".nz_both`).(*object.String).Value; got != "AB" {
		t.Errorf("string instance got %q", got)
	}
	if got := mustEval(t, "none.nz_both").(*object.String).Value; got != "none side" {
		t.Errorf("none instance got %q", got)
	}

	// Kind accesses are intercepted by the shield. The string kind delegates
	// to its own entry, which answers kind access with the placeholder.
	if got := mustEval(t, "String.nz_both"); got != object.TheNone {
		t.Errorf("String.nz_both = %v, want placeholder", got)
	}
	if got := mustEval(t, "None.nz_both"); got != object.TheNone {
		t.Errorf("None.nz_both = %v, want placeholder", got)
	}

	// A kind with no registration at all reports a missing attribute.
	_, err := eval(t, "Float.nz_both")
	if !errors.Is(err, object.ErrNoAttribute) {
		t.Errorf("Float.nz_both: got %v, want ErrNoAttribute", err)
	}
}

func TestShieldIsSetCapableButReadOnly(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.NoneKind, Name: "nz_ro", Handler: doubler})

	entry, ok := object.TypeKind.Table().Entry("nz_ro")
	if !ok {
		t.Fatalf("shield missing")
	}
	data, ok := entry.(object.DataAttribute)
	if !ok {
		t.Fatalf("shield is not set-capable, so it would lose the precedence it needs")
	}
	if err := data.Set(object.IntKind, object.TheNone); err == nil {
		t.Errorf("shield accepted a write")
	}
}

func TestStrictNoneSuffix(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.NoneKind, Name: "nz_strict", Strict: true, Handler: func(object.Object) (object.Object, error) {
		return object.TrueObj, nil
	}})

	if got := mustEval(t, "none.nz_strict"); got != object.TrueObj {
		t.Errorf("literal none rejected: %v", got)
	}

	_, err := eval(t, "x = none\nx.nz_strict")
	if !errors.Is(err, ErrNonLiteral) {
		t.Errorf("variable none: got %v, want ErrNonLiteral", err)
	}

	// The shield never invokes the handler, so strictness does not matter
	// for kind access.
	if got := mustEval(t, "None.nz_strict"); got != object.TheNone {
		t.Errorf("None.nz_strict = %v, want placeholder", got)
	}
}
