package suffix

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/vm"
)

type fakeSite struct {
	op     byte
	format uint16
	ok     bool
}

func (f fakeSite) LastInstruction() (byte, uint16, bool) {
	return f.op, f.format, f.ok
}

func TestStrictAcceptsLiteralReceivers(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_n", Handler: doubler, Strict: true})
	register(t, r, Definition{Kind: object.ListKind, Name: "st_len", Strict: true,
		Handler: func(instance object.Object) (object.Object, error) {
			l := instance.(*object.List)
			return &object.Integer{Value: int64(len(l.Elements))}, nil
		}})
	register(t, r, Definition{Kind: object.StringKind, Name: "st_up", Strict: true,
		Handler: func(instance object.Object) (object.Object, error) {
			return instance, nil
		}})

	sources := []string{
		"21.st_n",
		"(21).st_n", // grouping does not hide the literal
		"true.st_n",
		"[1, 2, 3].st_len",
		"x = [9]\n[1, *x].st_len", // spread literals still end on a literal instruction
		`"lit".st_up`,
		`"${1}".st_up`, // interpolation ends on its concat instruction
	}
	for _, src := range sources {
		if _, err := eval(t, src); err != nil {
			t.Errorf("%q rejected: %s", src, err)
		}
	}
}

func TestStrictAcceptsEveryLiteralCategory(t *testing.T) {
	count := func(n int64) Handler {
		return func(instance object.Object) (object.Object, error) {
			return &object.Integer{Value: n}, nil
		}
	}
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_cat", Handler: doubler, Strict: true})
	register(t, r, Definition{Kind: object.EllipsisKind, Name: "st_dots", Handler: count(1), Strict: true})
	register(t, r, Definition{Kind: object.TupleKind, Name: "st_pair", Handler: count(2), Strict: true})
	register(t, r, Definition{Kind: object.SetKind, Name: "st_set", Handler: count(3), Strict: true})
	register(t, r, Definition{Kind: object.MapKind, Name: "st_map", Handler: count(4), Strict: true})

	sources := []string{
		"false.st_cat",                     // OP_FALSE
		"(...).st_dots",                    // OP_ELLIPSIS
		"(1, 2).st_pair",                   // OP_MAKE_TUPLE
		"{1, 2}.st_set",                    // OP_MAKE_SET
		`{"a": 1}.st_map`,                  // OP_MAKE_MAP
		"x = {9}\n{1, *x}.st_set",          // OP_SET_UPDATE
		"m = {\"k\": 2}\n{**m}.st_map",     // OP_MAP_UPDATE
		"y = [1]\n(0, *y).st_pair",         // OP_LIST_TO_TUPLE
	}
	for _, src := range sources {
		if _, err := eval(t, src); err != nil {
			t.Errorf("%q rejected: %s", src, err)
		}
	}
}

func TestStrictViolationNamesSuffixAndKind(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_msg", Handler: doubler, Strict: true})

	_, err := eval(t, "x = 1\nx.st_msg")
	if !errors.Is(err, ErrNonLiteral) {
		t.Fatalf("got %v, want ErrNonLiteral", err)
	}
	for _, want := range []string{`"st_msg"`, "of Int values", "literal values"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("message %q lacks %q", err, want)
		}
	}
}

func TestStrictRejectsNonLiteralReceivers(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_r", Handler: doubler, Strict: true})

	sources := []string{
		"x = 21\nx.st_r",  // variable read
		"(1 + 2).st_r",    // computed value
		"y = 2\n(-y).st_r", // negation of a variable
	}
	for _, src := range sources {
		_, err := eval(t, src)
		if !errors.Is(err, ErrNonLiteral) {
			t.Errorf("%q: got %v, want ErrNonLiteral", src, err)
		}
	}
}

func TestNonStrictAcceptsAnyReceiver(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_loose", Handler: doubler})

	result := mustEval(t, "x = 21\nx.st_loose")
	if result.(*object.Integer).Value != 42 {
		t.Errorf("non-strict suffix rejected a variable receiver")
	}
}

func TestStrictFailsClosedWithoutSite(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_nosite", Handler: doubler, Strict: true})

	_, err := object.GetAttribute(nil, &object.Integer{Value: 1}, "st_nosite")
	if !errors.Is(err, ErrNonLiteral) {
		t.Errorf("nil site: got %v, want ErrNonLiteral", err)
	}
}

func TestStrictFailsClosedOnUnknownFormat(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_fmt", Handler: doubler, Strict: true})

	site := fakeSite{op: byte(vm.OP_CONST), format: 999, ok: true}
	_, err := object.GetAttribute(site, &object.Integer{Value: 1}, "st_fmt")
	if !errors.Is(err, ErrNonLiteral) {
		t.Errorf("unknown format: got %v, want ErrNonLiteral", err)
	}
}

func TestStrictFailsClosedOnMissingInstruction(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_noop", Handler: doubler, Strict: true})

	site := fakeSite{ok: false}
	_, err := object.GetAttribute(site, &object.Integer{Value: 1}, "st_noop")
	if !errors.Is(err, ErrNonLiteral) {
		t.Errorf("missing instruction: got %v, want ErrNonLiteral", err)
	}
}

func TestStrictKnownFormatAcceptsThroughFakeSite(t *testing.T) {
	r := NewRegistry(nil)
	register(t, r, Definition{Kind: object.IntKind, Name: "st_fb", Handler: doubler, Strict: true})

	site := fakeSite{op: byte(vm.OP_CONST), format: vm.ChunkFormatV1, ok: true}
	out, err := object.GetAttribute(site, &object.Integer{Value: 3}, "st_fb")
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if out.(*object.Integer).Value != 6 {
		t.Errorf("got %v, want 6", out)
	}
}
