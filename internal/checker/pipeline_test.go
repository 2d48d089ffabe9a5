package checker

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/types"
)

// TestEmptyProgram checks nothing and raises nothing.
func TestEmptyProgram(t *testing.T) {
	ctx, err := runCheck(t, nil)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
	if ctx.HasErrors() {
		t.Error("empty program should have no diagnostics")
	}
}

// Scenario 1 (spec.md §8): `let arr = []; arr.push(1); arr.push(2);
// typeof(arr)` ⇒ after refinement the annotation equals array<int>.
func TestArrayPushRefinesElementType(t *testing.T) {
	ctx, err := runCheck(t, nil,
		varDecl("arr", nil, &ast.ArrayLiteral{}),
		exprStmt(method(id("arr"), "push", intLit(1))),
		exprStmt(method(id("arr"), "push", intLit(2))),
		exprStmt(&ast.TypeOfExpression{Operand: id("arr")}),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
	arr := ctx.Vars["arr"]
	if arr.Kind != types.Array {
		t.Fatalf("arr.Kind = %v, want Array", arr.Kind)
	}
	if arr.Elem.Kind != types.Int {
		t.Errorf("arr.Elem.Kind = %v, want Int after push(1), push(2)", arr.Elem.Kind)
	}
}

// Scenario 2 (spec.md §8): `do add(a,b){ return a+b } add(1,2)` ⇒ the
// refiner promotes both params to int, return to int, and the call checks.
func TestFunctionParamsAndReturnInferredThroughCall(t *testing.T) {
	addFn := funcDecl("add", nil, block(ret(binary("+", id("a"), id("b")))), param("a", nil), param("b", nil))
	ctx, err := runCheck(t, nil,
		addFn,
		exprStmt(call(id("add"), intLit(1), intLit(2))),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
	sig := ctx.Funs["add"]
	if sig.Parameters[0].Kind != types.Int || sig.Parameters[1].Kind != types.Int {
		t.Errorf("add's parameters = %s, %s; want int, int", sig.Parameters[0], sig.Parameters[1])
	}
	if sig.ReturnType.Kind != types.Int {
		t.Errorf("add's return type = %s, want int", sig.ReturnType)
	}
}

// Scenario 3 (spec.md §8): `let m: Map<string,int> = Map(); m.set(1,2)` ⇒
// error: Type mismatch (the declaration itself, a fresh weak-slotted Map()
// against a concrete annotation, must NOT raise).
func TestMapSetWrongKeyTypeIsMismatch(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("m", genericAnn("Map", simpleAnn("string"), simpleAnn("int")), call(id("Map"))),
		exprStmt(method(id("m"), "set", intLit(1), intLit(2))),
	)
	if err == nil {
		t.Fatal("expected a Type mismatch diagnostic")
	}
	if err.Category != CategoryTypeMismatch {
		t.Errorf("Category = %v, want CategoryTypeMismatch", err.Category)
	}
}

// The declaration-only half of scenario 3: `let m: Map<string,int> = Map()`
// alone must type-check cleanly.
func TestMapConstructorAssignableToConcreteAnnotation(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("m", genericAnn("Map", simpleAnn("string"), simpleAnn("int")), call(id("Map"))),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
}

// Scenario 4 (spec.md §8): `let i=0; while i<5 { i=i+1 }` ⇒ checker accepts;
// condition is boolean; i stays int.
func TestWhileLoopConditionAndCounter(t *testing.T) {
	ctx, err := runCheck(t, nil,
		varDecl("i", nil, intLit(0)),
		whileStmt(binary("<", id("i"), intLit(5)), block(
			assign(id("i"), binary("+", id("i"), intLit(1))),
		)),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
	if ctx.Vars["i"].Kind != types.Int {
		t.Errorf("i.Kind = %v, want Int", ctx.Vars["i"].Kind)
	}
}

// Scenario 5 (spec.md §8): `for i in 0..3 { print(i) }` ⇒ loop variable
// bound int; range synthesizes as array<int> for the finite form.
func TestForOverFiniteIntRange(t *testing.T) {
	_, err := runCheck(t, nil,
		forStmt("i", &ast.RangeExpression{Start: intLit(0), End: intLit(3)}, block(
			exprStmt(call(id("print"), id("i"))),
		)),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
}

// Scenario 6 (spec.md §8): `let m: MinHeapMap<int> = MinHeapMap()` ⇒ error
// with the exact arity message.
func TestMinHeapMapWrongArity(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("m", genericAnn("MinHeapMap", simpleAnn("int")), call(id("MinHeapMap"))),
	)
	if err == nil {
		t.Fatal("expected an arity diagnostic")
	}
	if !strings.Contains(err.Error(), "HeapMap type requires exactly two type parameters") {
		t.Errorf("Error() = %q, want it to contain the exact arity message", err.Error())
	}
}

// Assigning float to an explicitly int-declared variable fails with Type
// mismatch (spec.md §8 bullet list).
func TestAssignFloatToIntMismatch(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("x", simpleAnn("int"), intLit(0)),
		assign(id("x"), floatLit(1.5)),
	)
	if err == nil {
		t.Fatal("expected a Type mismatch diagnostic")
	}
	if err.Category != CategoryTypeMismatch {
		t.Errorf("Category = %v, want CategoryTypeMismatch", err.Category)
	}
}

// Bare `return` from a function declared `-> int` fails with Return type
// mismatch (spec.md §8 bullet list).
func TestBareReturnFromIntFunctionMismatch(t *testing.T) {
	badFn := funcDecl("f", simpleAnn("int"), block(ret(nil)))
	_, err := runCheck(t, nil, badFn)
	if err == nil {
		t.Fatal("expected a Return type mismatch diagnostic")
	}
	if err.Category != CategoryReturnTypeMismatch {
		t.Errorf("Category = %v, want CategoryReturnTypeMismatch", err.Category)
	}
}

// Empty array literal alone synthesizes array<weak> (spec.md §8); the
// push-then-array<int> half is covered by TestArrayPushRefinesElementType.
func TestEmptyArrayLiteralStartsWeak(t *testing.T) {
	ctx, err := runCheck(t, nil,
		varDecl("arr", nil, &ast.ArrayLiteral{}),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
	arr := ctx.Vars["arr"]
	if arr.Kind != types.Array || !types.IsWeak(arr.Elem) {
		t.Errorf("arr = %s, want Array<weak>", arr)
	}
}

// Map() with m.set("a",1) then m.set("b","x") fails with Type mismatch
// under the default strict configuration (spec.md §8).
func TestMapSetDisagreementStrictFails(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("m", nil, call(id("Map"))),
		exprStmt(method(id("m"), "set", strLit("a"), intLit(1))),
		exprStmt(method(id("m"), "set", strLit("b"), strLit("x"))),
	)
	if err == nil {
		t.Fatal("expected a Type mismatch diagnostic under strict containers")
	}
	if err.Category != CategoryTypeMismatch {
		t.Errorf("Category = %v, want CategoryTypeMismatch", err.Category)
	}
}

// The union-mode variant of the same scenario: m.set("a",1); m.set("b",true)
// produces Map<string, int | boolean> instead of erroring.
func TestMapSetDisagreementUnionModeWidens(t *testing.T) {
	cfg := &Config{StrictContainers: false, MaxRefinementPasses: 10}
	ctx, err := runCheck(t, cfg,
		varDecl("m", nil, call(id("Map"))),
		exprStmt(method(id("m"), "set", strLit("a"), intLit(1))),
		exprStmt(method(id("m"), "set", strLit("b"), boolLit(true))),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic under union mode: %v", err)
	}
	m := ctx.Vars["m"]
	if m.Kind != types.Map {
		t.Fatalf("m.Kind = %v, want Map", m.Kind)
	}
	if m.Value.Kind != types.Union {
		t.Fatalf("m.Value.Kind = %v, want Union (int | boolean)", m.Value.Kind)
	}
	foundInt, foundBool := false, false
	for _, mem := range m.Value.Members {
		if mem.Kind == types.Int {
			foundInt = true
		}
		if mem.Kind == types.Boolean {
			foundBool = true
		}
	}
	if !foundInt || !foundBool {
		t.Errorf("m.Value = %s, want a union of int and boolean", m.Value)
	}
}

// Heterogeneous array elements are an inference-time error (the inferencer
// needs one concrete element type; only refinement/checking may widen to a
// union).
func TestArrayLiteralHeterogeneousAtInferenceErrors(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("arr", nil, &ast.ArrayLiteral{Elements: []ast.Expression{intLit(1), strLit("x")}}),
	)
	if err == nil {
		t.Fatal("expected an array-element-mismatch diagnostic")
	}
	if err.Category != CategoryArrayElementMismatch {
		t.Errorf("Category = %v, want CategoryArrayElementMismatch", err.Category)
	}
}

// '_' may never appear as a value.
func TestUnderscoreAsValueIsAnError(t *testing.T) {
	_, err := runCheck(t, nil, exprStmt(id("_")))
	if err == nil {
		t.Fatal("expected a diagnostic for '_' used as a value")
	}
}

// An invariant statement outside any loop or function body is illegal.
func TestInvariantOutsideLoopOrFunctionIsError(t *testing.T) {
	_, err := runCheck(t, nil, &ast.InvariantStatement{Condition: boolLit(true), Message: strLit("ok")})
	if err == nil {
		t.Fatal("expected a placement diagnostic")
	}
	if err.Category != CategoryChecking {
		t.Errorf("Category = %v, want CategoryChecking", err.Category)
	}
}

// An invariant statement inside a loop body is legal.
func TestInvariantInsideLoopIsLegal(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("i", nil, intLit(0)),
		whileStmt(binary("<", id("i"), intLit(5)), block(
			&ast.InvariantStatement{Condition: binary(">=", id("i"), intLit(0)), Message: strLit("ok")},
			assign(id("i"), binary("+", id("i"), intLit(1))),
		)),
	)
	if err != nil {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
}

// A for loop over a non-iterable value is rejected at the checking pass.
func TestForOverNonIterableIsError(t *testing.T) {
	_, err := runCheck(t, nil,
		varDecl("x", nil, intLit(0)),
		forStmt("v", id("x"), block()),
	)
	if err == nil {
		t.Fatal("expected a non-iterable diagnostic")
	}
}

// DefaultConfig must ship strict containers and the full 10-pass budget
// (spec.md §9: "the default in the shipped spec is strict").
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.StrictContainers {
		t.Error("DefaultConfig().StrictContainers = false, want true")
	}
	if cfg.MaxRefinementPasses != 10 {
		t.Errorf("DefaultConfig().MaxRefinementPasses = %d, want 10", cfg.MaxRefinementPasses)
	}
}
