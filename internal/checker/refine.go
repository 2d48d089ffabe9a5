package checker

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/types"
)

// RefinementPass runs the bounded fixed-point loop of spec §4.4: up to
// Config.MaxRefinementPasses iterations, each clearing the equality cache
// (structural equality can only get coarser as slots sharpen, so a stale
// cache entry from a weaker pass must not leak into a sharper one) and
// tracking whether anything changed. The refiner never raises an
// inference-phase error (spec §7); any mismatch it cannot resolve is left
// for the checker's final walk to report.
type RefinementPass struct{}

func (RefinementPass) Name() string { return "refinement" }

func (RefinementPass) Run(program *ast.Program, ctx *Context) error {
	limit := ctx.Config.MaxRefinementPasses
	if limit <= 0 || limit > maxRefinementPassesHardCap {
		limit = maxRefinementPassesHardCap
	}
	for pass := 0; pass < limit; pass++ {
		ctx.Cache.Clear()
		state := &refineState{}
		for _, stmt := range program.Statements {
			if err := refineStatement(ctx, stmt, state); err != nil {
				return err
			}
		}
		if ctx.Verbose {
			dumpTrace(ctx, pass)
		}
		if !state.changed {
			break
		}
	}
	return nil
}

// refineState threads the "did anything change this pass" flag and, while
// walking a function body, the most specific return type seen so far
// through the recursive statement walk.
type refineState struct {
	changed    bool
	returnType *types.Type
}

func refineStatement(ctx *Context, stmt ast.Statement, state *refineState) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, decl := range s.Declarations {
			if err := refineDeclarator(ctx, decl, state); err != nil {
				return err
			}
		}
	case *ast.FunctionDeclaration:
		return refineFunctionBody(ctx, s, state)
	case *ast.BlockStatement:
		for _, sub := range s.Statements {
			if err := refineStatement(ctx, sub, state); err != nil {
				return err
			}
		}
	case *ast.ExpressionStatement:
		_, err := synth(ctx, PhaseRefine, s.Expression)
		refineCallArgs(ctx, s.Expression, state)
		return err
	case *ast.IfStatement:
		if _, err := synth(ctx, PhaseRefine, s.Condition); err != nil {
			return err
		}
		if err := refineStatement(ctx, s.ThenBranch, state); err != nil {
			return err
		}
		if s.ElseBranch != nil {
			return refineStatement(ctx, s.ElseBranch, state)
		}
	case *ast.WhileStatement:
		if _, err := synth(ctx, PhaseRefine, s.Condition); err != nil {
			return err
		}
		return refineStatement(ctx, s.Body, state)
	case *ast.UntilStatement:
		if _, err := synth(ctx, PhaseRefine, s.Condition); err != nil {
			return err
		}
		return refineStatement(ctx, s.Body, state)
	case *ast.ForStatement:
		return refineFor(ctx, s, state)
	case *ast.ReturnStatement:
		if s.Value == nil {
			return nil
		}
		t, err := synth(ctx, PhaseRefine, s.Value)
		if err != nil {
			return err
		}
		if !types.IsWeak(t) {
			state.returnType = t
		}
	case *ast.AssignmentStatement:
		return refineAssignment(ctx, s, state)
	case *ast.InvariantStatement:
		if _, err := synth(ctx, PhaseRefine, s.Condition); err != nil {
			return err
		}
		if s.Message == nil {
			return nil
		}
		_, err := synth(ctx, PhaseRefine, s.Message)
		return err
	case *ast.AssertStatement:
		if _, err := synth(ctx, PhaseRefine, s.Condition); err != nil {
			return err
		}
		if s.Message == nil {
			return nil
		}
		_, err := synth(ctx, PhaseRefine, s.Message)
		return err
	default:
		return fmt.Errorf("refine: unhandled statement type %T", stmt)
	}
	return nil
}

// refineDeclarator sharpens a still-weak declared variable once its
// initializer's type has become concrete.
func refineDeclarator(ctx *Context, decl *ast.VariableDeclarator, state *refineState) error {
	slot := ctx.Vars[decl.Name]
	if decl.Initializer == nil {
		return nil
	}
	t, err := synth(ctx, PhaseRefine, decl.Initializer)
	if err != nil {
		return err
	}
	refineCallArgs(ctx, decl.Initializer, state)
	if slot != nil && types.IsWeak(slot) && !types.IsWeak(t) {
		types.Sharpen(slot, t)
		state.changed = true
	}
	return nil
}

// refineAssignment implements the assignment-site widening rule (spec
// §4.4): `x = v` sharpens a still-weak x; `arr[i] = v` on an inferred array
// whose element slot is weak sharpens that element slot, and — when the
// element slot is already concrete but disagrees — widens it to a union
// unless StrictContainers forbids it (left for the checker to report).
func refineAssignment(ctx *Context, s *ast.AssignmentStatement, state *refineState) error {
	valueT, err := synth(ctx, PhaseRefine, s.Value)
	if err != nil {
		return err
	}
	refineCallArgs(ctx, s.Value, state)

	switch target := s.Target.(type) {
	case *ast.Identifier:
		slot, ok := ctx.Vars[target.Name]
		if ok && types.IsWeak(slot) && !types.IsWeak(valueT) {
			types.Sharpen(slot, valueT)
			state.changed = true
		}
	case *ast.IndexExpression:
		if id, ok := target.Object.(*ast.Identifier); ok {
			decl := ctx.VarDecls[id.Name]
			if decl != nil && decl.TypeAnnotation != nil && !decl.TypeAnnotation.IsInferred {
				return nil
			}
		}
		objT, err := synth(ctx, PhaseRefine, target.Object)
		if err != nil {
			return err
		}
		if objT.Kind == types.Array || objT.Kind == types.Set {
			refineSlot(ctx, objT.Elem, valueT, target.Pos(), state)
		} else if objT.Kind == types.Map || objT.Kind == types.HeapMap {
			refineSlot(ctx, objT.Value, valueT, target.Pos(), state)
		}
	}
	return nil
}

// refineSlot applies the weak-sharpen-or-union-widen rule shared by
// container element/value slots and built-in method parameters.
func refineSlot(ctx *Context, slot, value *types.Type, pos source.Position, state *refineState) {
	if value == nil || types.IsWeak(value) || slot == nil {
		return
	}
	if types.IsWeak(slot) {
		types.Sharpen(slot, value)
		state.changed = true
		return
	}
	if ctx.Cache.Equals(slot, value) {
		return
	}
	if ctx.Config.StrictContainers {
		return
	}
	old := &types.Type{}
	*old = *slot
	types.Sharpen(slot, types.NewUnion(old, value))
	state.changed = true
}

// refineCallArgs pushes a call expression's argument types into the
// parameter slots they target — a built-in method's container-owned
// slots, or a function's registered parameter slots. It acts only when expr
// itself is a CallExpression, and then recurses into that call's arguments;
// a call nested anywhere else (inside a binary expression, an index, or a
// method receiver) is not refined here.
func refineCallArgs(ctx *Context, expr ast.Expression, state *refineState) {
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		return
	}
	switch callee := call.Callee.(type) {
	case *ast.MemberExpression:
		recv, err := synth(ctx, PhaseRefine, callee.Object)
		if err != nil || types.IsWeak(recv) {
			return
		}
		method, ok := lookupMethod(recv, callee.Property.Name)
		if !ok {
			return
		}
		for i, arg := range call.Arguments {
			if i >= len(method.Params) {
				break
			}
			argT, err := synth(ctx, PhaseRefine, arg)
			if err != nil {
				continue
			}
			refineSlot(ctx, method.Params[i], argT, call.Pos(), state)
			refineCallArgs(ctx, arg, state)
		}
	case *ast.Identifier:
		sig, ok := ctx.Funs[callee.Name]
		if !ok {
			return
		}
		for i, arg := range call.Arguments {
			pt := paramTypeAt(sig, i)
			if pt == nil {
				continue
			}
			argT, err := synth(ctx, PhaseRefine, arg)
			if err != nil {
				continue
			}
			if types.IsWeak(pt) && !types.IsWeak(argT) {
				types.Sharpen(pt, argT)
				state.changed = true
			}
			refineCallArgs(ctx, arg, state)
		}
	}
}

func refineFunctionBody(ctx *Context, fd *ast.FunctionDeclaration, outer *refineState) error {
	sig, ok := ctx.Funs[fd.Name]
	if !ok {
		return nil
	}
	var err error
	inner := &refineState{}
	ctx.scoped(func() {
		for i, p := range fd.Parameters {
			if i < len(sig.Parameters) {
				ctx.Vars[p.Name] = sig.Parameters[i]
			}
		}
		savedFn := ctx.CurrentFunction
		ctx.CurrentFunction = fd
		err = refineStatement(ctx, fd.Body, inner)
		ctx.CurrentFunction = savedFn
	})
	if err != nil {
		return err
	}
	if inner.changed {
		outer.changed = true
	}
	if sig.ReturnType != nil && types.IsWeak(sig.ReturnType) && inner.returnType != nil {
		types.Sharpen(sig.ReturnType, inner.returnType)
		outer.changed = true
	}
	return nil
}

func refineFor(ctx *Context, s *ast.ForStatement, state *refineState) error {
	iterT, err := synth(ctx, PhaseRefine, s.Iterable)
	if err != nil {
		return err
	}
	var bodyErr error
	ctx.scoped(func() {
		if s.Variable != "_" {
			if slot, ok := ctx.Vars[s.Variable]; ok && types.IsWeak(slot) {
				elemT := iterableElementType(iterT)
				if !types.IsWeak(elemT) {
					types.Sharpen(slot, elemT)
					state.changed = true
				}
			} else {
				ctx.Vars[s.Variable] = iterableElementType(iterT)
			}
		}
		bodyErr = refineStatement(ctx, s.Body, state)
	})
	return bodyErr
}
