package checker

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/types"
)

// synth is the single pure expression synthesizer shared by all three passes
// (spec §4.1): given a context and an expression, it produces the
// expression's type or an error. Phase only changes behavior at the small
// number of sites spec §4.1/§4.5 calls out explicitly; everything else is
// phase-independent so inference, refinement and checking agree by
// construction rather than by three separate implementations staying in
// sync.
func synth(ctx *Context, phase Phase, expr ast.Expression) (*types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.IntType, nil
	case *ast.FloatLiteral:
		return types.FloatType, nil
	case *ast.StringLiteral:
		return types.StringType, nil
	case *ast.BooleanLiteral:
		return types.BoolType, nil
	case *ast.ArrayLiteral:
		return synthArrayLiteral(ctx, phase, e)
	case *ast.Identifier:
		return synthIdentifier(ctx, phase, e)
	case *ast.MetaIdentifier:
		// A bare meta-identifier reference (not as a call or predicate-check
		// target) denotes the opaque predicate type itself (spec §4.1).
		return types.PredicateType, nil
	case *ast.RangeExpression:
		return synthRange(ctx, phase, e)
	case *ast.BinaryExpression:
		return synthBinary(ctx, phase, e)
	case *ast.UnaryExpression:
		return synthUnary(ctx, phase, e)
	case *ast.CallExpression:
		return synthCall(ctx, phase, e)
	case *ast.MemberExpression:
		return synthMember(ctx, phase, e)
	case *ast.IndexExpression:
		return synthIndex(ctx, phase, e)
	case *ast.TypeOfExpression:
		if _, err := synth(ctx, phase, e.Operand); err != nil {
			return nil, err
		}
		return types.StringType, nil
	case *ast.PredicateCheckExpression:
		return synthPredicateCheck(ctx, phase, e)
	default:
		return nil, fmt.Errorf("synth: unhandled expression type %T", expr)
	}
}

// synthAll synthesizes every expression in exprs, short-circuiting on the
// first error. Used for argument lists whose individual type does not feed
// a specific rule (meta-identifier and predicate-check calls, spec §4.1:
// "arguments are checked for well-formedness only").
func synthAll(ctx *Context, phase Phase, exprs []ast.Expression) ([]*types.Type, error) {
	out := make([]*types.Type, len(exprs))
	for i, e := range exprs {
		t, err := synth(ctx, phase, e)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// synthArrayLiteral implements spec §4.1's array-literal rule: empty ⇒
// array<weak>; elements sharing a type T ⇒ array<T>; disagreeing elements ⇒
// array<union{...}> during refinement/checking, but an error during
// inference (the inferencer needs one concrete element type to store on the
// declarator, so it cannot defer to a union the way the later passes can).
func synthArrayLiteral(ctx *Context, phase Phase, lit *ast.ArrayLiteral) (*types.Type, error) {
	if len(lit.Elements) == 0 {
		return types.NewArray(types.NewWeak()), nil
	}
	elemTypes, err := synthAll(ctx, phase, lit.Elements)
	if err != nil {
		return nil, err
	}
	first := elemTypes[0]
	uniform := true
	for _, t := range elemTypes[1:] {
		if !ctx.Cache.Equals(first, t) {
			uniform = false
			break
		}
	}
	if uniform {
		if types.IsWeak(first) {
			return types.NewArray(first), nil
		}
		// A fresh top-level node: first may be a shared singleton (every int
		// literal synthesizes types.IntType), and refineSlot may widen this
		// Elem in place.
		elem := &types.Type{}
		*elem = *first
		return types.NewArray(elem), nil
	}
	if phase == PhaseInfer {
		return nil, ctx.Fail(newArrayElementMismatch(lit.Pos()))
	}
	return types.NewArray(types.NewUnion(elemTypes...)), nil
}

// synthIdentifier looks a name up in the variable environment. "_" may
// never appear as a value (spec §4.1), and an unbound name is always an
// error regardless of phase — there is no type to hand back in either
// case.
func synthIdentifier(ctx *Context, phase Phase, id *ast.Identifier) (*types.Type, error) {
	if id.IsUnderscore() {
		return nil, ctx.Fail(newCheckingError(id.Pos(), "'_' may not be used as a value"))
	}
	if t, ok := ctx.Vars[id.Name]; ok {
		return t, nil
	}
	if err := raiseLookupError(ctx, phase, id.Pos(), fmt.Sprintf("undefined name '%s'", id.Name)); err != nil {
		return nil, err
	}
	return types.NewWeak(), nil
}

// raiseLookupError raises a name-resolution failure in the vocabulary of the
// active pass: the inferencer records it as an inference error (it has
// nothing to store on the declarator it is typing), the checker as a
// checking error, and the refiner — which may never raise (spec §7) — lets
// it through as weak so the checker can report it on the final walk.
func raiseLookupError(ctx *Context, phase Phase, pos source.Position, detail string) error {
	switch phase {
	case PhaseInfer:
		return ctx.Fail(newInferenceError(pos, detail))
	case PhaseCheck:
		return ctx.Fail(newCheckingError(pos, detail))
	default:
		return nil
	}
}

// synthRange implements the range-expression rule (spec §4.1): `a..b` /
// `a...b` with both bounds present and of matching type (int or string)
// synthesizes a finite array<T>; a missing bound synthesizes the infinite
// `range` type and requires the present bound to be int; missing both
// bounds, or bounds of different types, is an error.
func synthRange(ctx *Context, phase Phase, r *ast.RangeExpression) (*types.Type, error) {
	if r.Start == nil && r.End == nil {
		return nil, raiseRangeError(ctx, phase, r.Pos(), "range expression must have at least one bound")
	}
	if r.IsInfinite() {
		var bound ast.Expression
		if r.Start != nil {
			bound = r.Start
		} else {
			bound = r.End
		}
		bt, err := synth(ctx, phase, bound)
		if err != nil {
			return nil, err
		}
		if bt.Kind != types.Int && !types.IsWeak(bt) {
			return nil, raiseRangeError(ctx, phase, r.Pos(), "an open-ended range bound must be int")
		}
		return types.RangeType, nil
	}
	startT, err := synth(ctx, phase, r.Start)
	if err != nil {
		return nil, err
	}
	endT, err := synth(ctx, phase, r.End)
	if err != nil {
		return nil, err
	}
	switch {
	case startT.Kind == types.Int && endT.Kind == types.Int:
		// A fresh node, not the types.IntType singleton: this array's Elem
		// can end up aliased into an inferred variable's slot and later
		// union-widened in place by refineSlot (refine.go).
		return types.NewArray(&types.Type{Kind: types.Int}), nil
	case startT.Kind == types.String && endT.Kind == types.String:
		return types.NewArray(&types.Type{Kind: types.String}), nil
	case types.IsWeak(startT) || types.IsWeak(endT):
		return types.NewArray(types.NewWeak()), nil
	default:
		return nil, raiseRangeError(ctx, phase, r.Pos(), fmt.Sprintf("range endpoints have mismatched types %s and %s", startT, endT))
	}
}

func raiseRangeError(ctx *Context, phase Phase, pos source.Position, detail string) error {
	if phase == PhaseInfer {
		return ctx.Fail(newInferenceError(pos, detail))
	}
	return ctx.Fail(newCheckingError(pos, detail))
}

// synthBinary implements the binary operator rules of spec §4.1/§4.5.
func synthBinary(ctx *Context, phase Phase, e *ast.BinaryExpression) (*types.Type, error) {
	lt, err := synth(ctx, phase, e.Left)
	if err != nil {
		return nil, err
	}
	rt, err := synth(ctx, phase, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "&&", "||":
		if lt.Kind == types.Boolean && rt.Kind == types.Boolean {
			return types.BoolType, nil
		}
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.BoolType, nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	case "==", "!=":
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.BoolType, nil
		}
		if _, ok := numericKind(lt); ok {
			if _, ok := numericKind(rt); ok {
				return types.BoolType, nil
			}
		}
		if ctx.Cache.Equals(lt, rt) {
			return types.BoolType, nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	case "<", "<=", ">", ">=":
		if _, ok := numericKind(lt); ok {
			if _, ok := numericKind(rt); ok {
				return types.BoolType, nil
			}
		}
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.BoolType, nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	case "+", "-", "*", "%":
		if e.Op == "+" && lt.Kind == types.String && rt.Kind == types.String {
			return types.StringType, nil
		}
		if lk, ok := numericKind(lt); ok {
			if rk, ok := numericKind(rt); ok {
				if lk == "int" && rk == "int" {
					return types.IntType, nil
				}
				return types.FloatType, nil
			}
		}
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.NewWeak(), nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	case "/":
		if lt.Kind == types.Int && rt.Kind == types.Int {
			return types.IntType, nil
		}
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.NewWeak(), nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	case "/.":
		if _, ok := numericKind(lt); ok {
			if _, ok := numericKind(rt); ok {
				return types.FloatType, nil
			}
		}
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.NewWeak(), nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	case "<<", ">>":
		if lt.Kind == types.Int && rt.Kind == types.Int {
			return types.IntType, nil
		}
		if types.IsWeak(lt) || types.IsWeak(rt) {
			return types.NewWeak(), nil
		}
		return binaryFallback(ctx, phase, e.Pos(), e.Op, lt, rt)

	default:
		return nil, fmt.Errorf("synth: unknown binary operator %q", e.Op)
	}
}

// binaryFallback implements the no-rule-matched behavior spec §4.1 and §7
// split across the three passes: when one operand is a union the checker
// defers to runtime dispatch (weak), the inferencer raises; the refiner
// never raises regardless, leaving the final word to the checker.
func binaryFallback(ctx *Context, phase Phase, pos source.Position, op string, lt, rt *types.Type) (*types.Type, error) {
	unionInvolved := lt.Kind == types.Union || rt.Kind == types.Union
	switch phase {
	case PhaseCheck:
		if unionInvolved {
			return types.NewWeak(), nil
		}
		return nil, ctx.Fail(newCheckingError(pos, fmt.Sprintf("operator '%s' is not defined for %s and %s", op, lt, rt)))
	case PhaseInfer:
		return nil, ctx.Fail(newInferenceError(pos, fmt.Sprintf("operator '%s' is not defined for %s and %s", op, lt, rt)))
	default: // PhaseRefine
		return types.NewWeak(), nil
	}
}

// synthUnary implements the unary operator rules of spec §4.1: `-` preserves
// numeric kind, `!` requires boolean; a weak operand yields weak for `-` and
// boolean for `!` (a logical operator's result is always a boolean).
func synthUnary(ctx *Context, phase Phase, e *ast.UnaryExpression) (*types.Type, error) {
	t, err := synth(ctx, phase, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		if kind, ok := numericKind(t); ok {
			if kind == "int" {
				return types.IntType, nil
			}
			return types.FloatType, nil
		}
		if types.IsWeak(t) {
			return types.NewWeak(), nil
		}
		return unaryFallback(ctx, phase, e.Pos(), e.Op, t)
	case "!":
		if t.Kind == types.Boolean || types.IsWeak(t) {
			return types.BoolType, nil
		}
		return unaryFallback(ctx, phase, e.Pos(), e.Op, t)
	default:
		return nil, fmt.Errorf("synth: unknown unary operator %q", e.Op)
	}
}

func unaryFallback(ctx *Context, phase Phase, pos source.Position, op string, t *types.Type) (*types.Type, error) {
	if t.Kind == types.Union {
		if phase == PhaseInfer {
			return nil, ctx.Fail(newInferenceError(pos, fmt.Sprintf("operator '%s' is not defined for %s", op, t)))
		}
		if phase == PhaseCheck {
			return types.NewWeak(), nil
		}
		return types.NewWeak(), nil
	}
	if phase == PhaseRefine {
		return types.NewWeak(), nil
	}
	if phase == PhaseInfer {
		return nil, ctx.Fail(newInferenceError(pos, fmt.Sprintf("operator '%s' is not defined for %s", op, t)))
	}
	return nil, ctx.Fail(newCheckingError(pos, fmt.Sprintf("operator '%s' is not defined for %s", op, t)))
}

// synthCall implements the call-expression dispatch of spec §4.1: an
// identifier callee is a function or constructor call, a member-expression
// callee is a built-in method call, a meta-identifier callee produces a
// predicate value.
func synthCall(ctx *Context, phase Phase, e *ast.CallExpression) (*types.Type, error) {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if callee.Name == "Graph" {
			return synthGraphConstructor(ctx, phase, e)
		}
		if constructorNames[callee.Name] {
			return synthConstructorCall(ctx, phase, callee.Name, e)
		}
		return synthFunctionCall(ctx, phase, callee, e)
	case *ast.MemberExpression:
		return synthMethodCall(ctx, phase, callee, e)
	case *ast.MetaIdentifier:
		// A meta-identifier call constructs a predicate; arguments are only
		// checked for well-formedness (spec §4.1).
		if _, err := synthAll(ctx, phase, e.Arguments); err != nil {
			return nil, err
		}
		return types.PredicateType, nil
	default:
		return nil, ctx.Fail(newCheckingError(e.Pos(), "callee is not callable"))
	}
}

// synthConstructorCall handles Map()/Set()/MinHeap()/MaxHeap()/MinHeapMap()/
// MaxHeapMap()/BinaryTree()/AVLTree(): each produces a fresh container with
// all slots weak (spec §4.1 "Constructor identifiers"), independent per
// call so two `Map()` calls never alias the same slot.
func synthConstructorCall(ctx *Context, phase Phase, name string, e *ast.CallExpression) (*types.Type, error) {
	if _, err := synthAll(ctx, phase, e.Arguments); err != nil {
		return nil, err
	}
	switch name {
	case "Map":
		return types.NewMap(types.NewWeak(), types.NewWeak()), nil
	case "Set":
		return types.NewSet(types.NewWeak()), nil
	case "MinHeap", "MaxHeap":
		return types.NewHeap(types.NewWeak()), nil
	case "MinHeapMap", "MaxHeapMap":
		return types.NewHeapMap(types.NewWeak(), types.NewWeak()), nil
	case "BinaryTree":
		return types.NewBinaryTree(types.NewWeak()), nil
	case "AVLTree":
		return types.NewAVLTree(types.NewWeak()), nil
	default:
		return nil, fmt.Errorf("synth: unknown constructor %q", name)
	}
}

// synthGraphConstructor handles Graph(directed), which requires exactly one
// boolean argument (spec §6.4).
func synthGraphConstructor(ctx *Context, phase Phase, e *ast.CallExpression) (*types.Type, error) {
	if len(e.Arguments) != 1 {
		return nil, ctx.Fail(newCheckingError(e.Pos(), "Graph() takes exactly one boolean argument"))
	}
	argT, err := synth(ctx, phase, e.Arguments[0])
	if err != nil {
		return nil, err
	}
	if argT.Kind != types.Boolean && !types.IsWeak(argT) {
		return nil, ctx.Fail(newTypeMismatch(e.Pos(), "Graph() argument must be boolean", types.BoolType, argT))
	}
	return types.NewGraph(types.NewWeak()), nil
}

// synthFunctionCall handles a plain identifier callee naming a user
// function, including the variadic repeat-last-parameter rule (spec §4.1:
// "a variadic function's last declared parameter type applies to every
// trailing argument").
func synthFunctionCall(ctx *Context, phase Phase, callee *ast.Identifier, e *ast.CallExpression) (*types.Type, error) {
	sig, ok := ctx.Funs[callee.Name]
	if !ok {
		if err := raiseLookupError(ctx, phase, e.Pos(), fmt.Sprintf("undefined function '%s'", callee.Name)); err != nil {
			return nil, err
		}
		return types.NewWeak(), nil
	}
	argTypes, err := synthAll(ctx, phase, e.Arguments)
	if err != nil {
		return nil, err
	}
	if sig.Variadic {
		if len(argTypes) < len(sig.Parameters)-1 {
			return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("'%s' expects at least %d arguments, got %d", callee.Name, len(sig.Parameters)-1, len(argTypes))))
		}
	} else if len(argTypes) != len(sig.Parameters) {
		return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("'%s' expects %d arguments, got %d", callee.Name, len(sig.Parameters), len(argTypes))))
	}
	if phase == PhaseCheck {
		for i, at := range argTypes {
			pt := paramTypeAt(sig, i)
			if pt != nil && !assignable(ctx, pt, at) {
				return nil, ctx.Fail(newTypeMismatch(e.Pos(), fmt.Sprintf("argument %d to '%s'", i+1, callee.Name), pt, at))
			}
		}
	}
	return sig.ReturnType, nil
}

// paramTypeAt returns the declared parameter type applicable to argument
// index i, repeating the last parameter for a variadic signature's trailing
// arguments.
func paramTypeAt(sig *FunSignature, i int) *types.Type {
	if len(sig.Parameters) == 0 {
		return nil
	}
	if i < len(sig.Parameters) {
		return sig.Parameters[i]
	}
	if sig.Variadic {
		return sig.Parameters[len(sig.Parameters)-1]
	}
	return nil
}

// synthMethodCall handles a member-expression callee: the object's
// container kind selects a method table (methods.go), and the method's
// signature drives argument and return typing the same way a function call
// does.
func synthMethodCall(ctx *Context, phase Phase, callee *ast.MemberExpression, e *ast.CallExpression) (*types.Type, error) {
	recv, err := synth(ctx, phase, callee.Object)
	if err != nil {
		return nil, err
	}
	argTypes, err := synthAll(ctx, phase, e.Arguments)
	if err != nil {
		return nil, err
	}
	if types.IsWeak(recv) {
		return types.NewWeak(), nil
	}
	method, ok := lookupMethod(recv, callee.Property.Name)
	if !ok {
		return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("%s has no method '%s'", recv, callee.Property.Name)))
	}
	if len(argTypes) != len(method.Params) {
		return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("'%s' expects %d arguments, got %d", callee.Property.Name, len(method.Params), len(argTypes))))
	}
	if phase == PhaseCheck {
		for i, at := range argTypes {
			if !assignable(ctx, method.Params[i], at) {
				return nil, ctx.Fail(newTypeMismatch(e.Pos(), fmt.Sprintf("argument %d to '%s'", i+1, callee.Property.Name), method.Params[i], at))
			}
		}
	}
	return method.Return, nil
}

// synthMember handles non-call member access `object.property`: only
// records carry named fields.
func synthMember(ctx *Context, phase Phase, e *ast.MemberExpression) (*types.Type, error) {
	obj, err := synth(ctx, phase, e.Object)
	if err != nil {
		return nil, err
	}
	if types.IsWeak(obj) {
		return types.NewWeak(), nil
	}
	if obj.Kind == types.Record {
		for _, f := range obj.Fields {
			if f.Name == e.Property.Name {
				return f.Type, nil
			}
		}
		return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("record has no field '%s'", e.Property.Name)))
	}
	return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("%s has no property '%s'", obj, e.Property.Name)))
}

// synthIndex implements indexing per receiver kind (spec §4.1): array index
// by int yields the element type; map/heapmap index by key yields the value
// type (the inferencer is lenient about the key's type, the checker enforces
// it); tuple index by a literal int yields that position's type and record
// index by a literal string yields that field's type, while a non-literal
// index into either yields dynamic; weak yields weak. Any other receiver,
// sets included, is not indexable.
func synthIndex(ctx *Context, phase Phase, e *ast.IndexExpression) (*types.Type, error) {
	obj, err := synth(ctx, phase, e.Object)
	if err != nil {
		return nil, err
	}
	idx, err := synth(ctx, phase, e.Index)
	if err != nil {
		return nil, err
	}
	if types.IsWeak(obj) {
		return types.NewWeak(), nil
	}
	switch obj.Kind {
	case types.Array:
		if idx.Kind != types.Int && !types.IsWeak(idx) {
			return nil, ctx.Fail(newCheckingError(e.Pos(), "array index must be int"))
		}
		return obj.Elem, nil
	case types.Map, types.HeapMap:
		if phase == PhaseCheck && !types.IsWeak(idx) && !assignable(ctx, obj.Key, idx) {
			return nil, ctx.Fail(newTypeMismatch(e.Pos(), "map index", obj.Key, idx))
		}
		return obj.Value, nil
	case types.Tuple:
		if lit, ok := e.Index.(*ast.IntegerLiteral); ok {
			i := int(lit.Value)
			if i < 0 || i >= len(obj.Elems) {
				return nil, ctx.Fail(newCheckingError(e.Pos(), "tuple index out of range"))
			}
			return obj.Elems[i], nil
		}
		return types.DynamicType, nil
	case types.Record:
		if lit, ok := e.Index.(*ast.StringLiteral); ok {
			for _, f := range obj.Fields {
				if f.Name == lit.Value {
					return f.Type, nil
				}
			}
			return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("record has no field %q", lit.Value)))
		}
		return types.DynamicType, nil
	default:
		return nil, ctx.Fail(newCheckingError(e.Pos(), fmt.Sprintf("%s is not indexable", obj)))
	}
}

// synthPredicateCheck implements `subject |- @predicate(args...)` (spec
// §4.1): always boolean; the subject and predicate arguments are only
// checked for well-formedness.
func synthPredicateCheck(ctx *Context, phase Phase, e *ast.PredicateCheckExpression) (*types.Type, error) {
	if _, err := synth(ctx, phase, e.Subject); err != nil {
		return nil, err
	}
	if _, err := synthAll(ctx, phase, e.PredicateArgs); err != nil {
		return nil, err
	}
	return types.BoolType, nil
}
