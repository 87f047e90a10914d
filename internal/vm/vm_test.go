package vm

import (
	"context"
	"strings"
	"testing"

	"github.com/funvibe/sufx/internal/ast"
	"github.com/funvibe/sufx/internal/lexer"
	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/parser"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser error: %s", errs[0])
	}
	return program
}

func compile(t *testing.T, input string) *Chunk {
	t.Helper()
	chunk, err := NewCompiler().Compile(parse(t, input))
	if err != nil {
		t.Fatalf("compilation error: %s", err)
	}
	return chunk
}

func runVM(t *testing.T, input string) object.Object {
	t.Helper()
	machine := New()
	result, err := machine.Run(context.Background(), compile(t, input))
	if err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	return result
}

func runVMError(t *testing.T, input string) error {
	t.Helper()
	machine := New()
	_, err := machine.Run(context.Background(), compile(t, input))
	if err == nil {
		t.Fatalf("expected a runtime error for %q", input)
	}
	return err
}

func testIntegerObject(t *testing.T, obj object.Object, expected int64) {
	t.Helper()
	result, ok := obj.(*object.Integer)
	if !ok {
		t.Fatalf("object is not Integer. got=%T (%+v)", obj, obj)
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%d, want=%d", result.Value, expected)
	}
}

func testFloatObject(t *testing.T, obj object.Object, expected float64) {
	t.Helper()
	result, ok := obj.(*object.Float)
	if !ok {
		t.Fatalf("object is not Float. got=%T (%+v)", obj, obj)
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%f, want=%f", result.Value, expected)
	}
}

func testBooleanObject(t *testing.T, obj object.Object, expected bool) {
	t.Helper()
	result, ok := obj.(*object.Boolean)
	if !ok {
		t.Fatalf("object is not Boolean. got=%T (%+v)", obj, obj)
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%t, want=%t", result.Value, expected)
	}
}

func testStringObject(t *testing.T, obj object.Object, expected string) {
	t.Helper()
	result, ok := obj.(*object.String)
	if !ok {
		t.Fatalf("object is not String. got=%T (%+v)", obj, obj)
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%q, want=%q", result.Value, expected)
	}
}

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"1", 1},
		{"1 + 2", 3},
		{"1 - 2", -1},
		{"2 * 3", 6},
		{"5 + 5 + 5 - 10", 5},
		{"5 * (2 + 10)", 60},
		{"-5", -5},
		{"-5 + 10", 5},
		{"true + 1", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testIntegerObject(t, runVM(t, tt.input), tt.expected)
		})
	}
}

func TestFloatArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1.5", 1.5},
		{"1.5 + 2.5", 4.0},
		{"4 / 2", 2.0},
		{"1 / 2", 0.5},
		{"2 * 1.5", 3.0},
		{"-0.5", -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testFloatObject(t, runVM(t, tt.input), tt.expected)
		})
	}
}

func TestComplexArithmetic(t *testing.T) {
	result := runVM(t, "1 + 2i")
	c, ok := result.(*object.Complex)
	if !ok {
		t.Fatalf("object is not Complex. got=%T", result)
	}
	if c.Value != complex(1, 2) {
		t.Errorf("got %v, want (1+2i)", c.Value)
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1 == 1", true},
		{"1 == 1.0", true},
		{"true == 1", true},
		{"1 != 2", true},
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 2", true},
		{"2 >= 3", false},
		{`"a" < "b"`, true},
		{`"x" == "x"`, true},
		{"none == none", true},
		{"none == 0", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testBooleanObject(t, runVM(t, tt.input), tt.expected)
		})
	}
}

func TestStringConcat(t *testing.T) {
	testStringObject(t, runVM(t, `"foo" + "bar"`), "foobar")
}

func TestStringInterpolation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"n = ${1 + 2}"`, "n = 3"},
		{`"${true}"`, "true"},
		{`"a${"b"}c"`, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testStringObject(t, runVM(t, tt.input), tt.expected)
		})
	}
}

func TestGlobals(t *testing.T) {
	result := runVM(t, "x = 10\ny = x * 2\ny + x")
	testIntegerObject(t, result, 30)
}

func TestUndefinedGlobal(t *testing.T) {
	err := runVMError(t, "missing")
	if !strings.Contains(err.Error(), "undefined name") {
		t.Errorf("wrong error: %s", err)
	}
}

func TestKindObjectsAreGlobals(t *testing.T) {
	result := runVM(t, "Int")
	k, ok := result.(*object.Kind)
	if !ok || k != object.IntKind {
		t.Fatalf("Int did not resolve to the Int kind. got=%T", result)
	}
}

func TestCollections(t *testing.T) {
	list, ok := runVM(t, "[1, 2, 3]").(*object.List)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("expected a three element list")
	}

	tup, ok := runVM(t, "(1, 2)").(*object.Tuple)
	if !ok || len(tup.Elements) != 2 {
		t.Fatalf("expected a two element tuple")
	}

	set, ok := runVM(t, "{1, 1, 2}").(*object.Set)
	if !ok || len(set.Elements) != 2 {
		t.Fatalf("expected the set to deduplicate")
	}

	m, ok := runVM(t, `{"a": 1, "a": 2}`).(*object.Map)
	if !ok || len(m.Pairs) != 1 {
		t.Fatalf("expected the map to replace on key collision")
	}
}

func TestSpreads(t *testing.T) {
	list, ok := runVM(t, "rest = [2, 3]\n[1, *rest, 4]").(*object.List)
	if !ok {
		t.Fatalf("expected a list")
	}
	if len(list.Elements) != 4 {
		t.Fatalf("list has %d elements, want 4", len(list.Elements))
	}
	testIntegerObject(t, list.Elements[1], 2)
	testIntegerObject(t, list.Elements[3], 4)

	tup, ok := runVM(t, "rest = (2, 3)\n(1, *rest)").(*object.Tuple)
	if !ok || len(tup.Elements) != 3 {
		t.Fatalf("expected a three element tuple")
	}

	set, ok := runVM(t, "rest = {2, 3}\n{1, *rest, 2}").(*object.Set)
	if !ok || len(set.Elements) != 3 {
		t.Fatalf("expected a three element set")
	}

	m, ok := runVM(t, `base = {"a": 1, "b": 2}`+"\n"+`{**base, "b": 3}`).(*object.Map)
	if !ok || len(m.Pairs) != 2 {
		t.Fatalf("expected a two entry map")
	}
	v, _ := m.Get(&object.String{Value: "b"})
	testIntegerObject(t, v, 3)
}

func TestBuiltinAttributes(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, obj object.Object)
	}{
		{`"hello".len`, func(t *testing.T, obj object.Object) { testIntegerObject(t, obj, 5) }},
		{`"hello".upper`, func(t *testing.T, obj object.Object) { testStringObject(t, obj, "HELLO") }},
		{`-4.abs`, func(t *testing.T, obj object.Object) { testIntegerObject(t, obj, -4) }},
		{`(-4).abs`, func(t *testing.T, obj object.Object) { testIntegerObject(t, obj, 4) }},
		{`[1, 2, 3].len`, func(t *testing.T, obj object.Object) { testIntegerObject(t, obj, 3) }},
		{`[1, 2, 3].first`, func(t *testing.T, obj object.Object) { testIntegerObject(t, obj, 1) }},
		{`2.5.floor`, func(t *testing.T, obj object.Object) { testFloatObject(t, obj, 2.0) }},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, runVM(t, tt.input))
		})
	}
}

func TestMissingAttributeError(t *testing.T) {
	err := runVMError(t, "5.nothing_here")
	if !strings.Contains(err.Error(), "no attribute") {
		t.Errorf("wrong error: %s", err)
	}
	// Position prefix from the chunk.
	if !strings.Contains(err.Error(), ":1:") {
		t.Errorf("error carries no position: %s", err)
	}
}

func TestDivisionByZero(t *testing.T) {
	err := runVMError(t, "1 / 0")
	if !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("wrong error: %s", err)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	machine := New()
	ctx := context.Background()

	if _, err := machine.Run(ctx, compile(t, "x = 41")); err != nil {
		t.Fatalf("first run: %s", err)
	}
	result, err := machine.Run(ctx, compile(t, "x + 1"))
	if err != nil {
		t.Fatalf("second run: %s", err)
	}
	testIntegerObject(t, result, 42)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	machine := New()
	if _, err := machine.Run(ctx, compile(t, "1 + 1")); err == nil {
		t.Errorf("expected a cancellation error")
	}
}

func TestLastPoppedIsNoneForAssignments(t *testing.T) {
	result := runVM(t, "x = 1")
	if result != object.TheNone {
		t.Errorf("assignment-only chunk should evaluate to none, got %s", result.Inspect())
	}
}

// constAttr answers every read with a fixed value.
type constAttr struct {
	value object.Object
}

func (a constAttr) Get(site object.AccessSite, instance object.Object, owner *object.Kind) (object.Object, error) {
	return a.value, nil
}

func TestRawSlotWriteWithoutInvalidateLeavesStaleCacheHit(t *testing.T) {
	table := object.IntKind.Table()
	if err := table.RawPut("vm_stale", constAttr{&object.Integer{Value: 1}}); err != nil {
		t.Fatalf("raw put: %s", err)
	}
	table.Invalidate()
	t.Cleanup(func() {
		_ = table.RawDelete("vm_stale")
		table.Invalidate()
	})

	machine := New()
	ctx := context.Background()

	run := func() int64 {
		t.Helper()
		result, err := machine.Run(ctx, compile(t, "7.vm_stale"))
		if err != nil {
			t.Fatalf("run: %s", err)
		}
		n, ok := result.(*object.Integer)
		if !ok {
			t.Fatalf("got %T, want Integer", result)
		}
		return n.Value
	}

	if got := run(); got != 1 {
		t.Fatalf("priming read: got %d, want 1", got)
	}

	// Rewriting the slot without Invalidate must not be visible through the
	// machine's attribute cache; that is the staleness the guarded mutators
	// and the slot-rewrite backend's paired Invalidate prevent.
	if err := table.RawPut("vm_stale", constAttr{&object.Integer{Value: 2}}); err != nil {
		t.Fatalf("raw rewrite: %s", err)
	}
	if got := run(); got != 1 {
		t.Errorf("cache re-resolved without an Invalidate: got %d, want stale 1", got)
	}

	table.Invalidate()
	if got := run(); got != 2 {
		t.Errorf("after Invalidate: got %d, want 2", got)
	}
}
