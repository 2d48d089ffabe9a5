package checker

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/types"
)

// CheckPass is the final pass of the pipeline (spec §4.5): it re-synthesizes
// every expression with PhaseCheck (lenient only where spec says so — union
// fallback, map-index leniency is the inferencer's, not the checker's) and
// validates the statement-level rules the two earlier passes do not: return
// placement and agreement, loop-only conditions, invariant placement,
// explicit-annotation conformance.
type CheckPass struct{}

func (CheckPass) Name() string { return "checking" }

func (CheckPass) Run(program *ast.Program, ctx *Context) error {
	for _, stmt := range program.Statements {
		if err := checkStatement(ctx, stmt); err != nil {
			return err
		}
		if ctx.HasErrors() {
			return nil
		}
	}
	return nil
}

func checkStatement(ctx *Context, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, decl := range s.Declarations {
			if err := checkDeclarator(ctx, decl); err != nil {
				return err
			}
			if ctx.HasErrors() {
				return nil
			}
		}
	case *ast.FunctionDeclaration:
		return checkFunctionBody(ctx, s)
	case *ast.BlockStatement:
		for _, sub := range s.Statements {
			if err := checkStatement(ctx, sub); err != nil {
				return err
			}
			if ctx.HasErrors() {
				return nil
			}
		}
	case *ast.ExpressionStatement:
		_, err := synth(ctx, PhaseCheck, s.Expression)
		return err
	case *ast.IfStatement:
		return checkCondition(ctx, s.Condition, s.ThenBranch, s.ElseBranch)
	case *ast.WhileStatement:
		return checkLoop(ctx, s.Condition, s.Body)
	case *ast.UntilStatement:
		return checkLoop(ctx, s.Condition, s.Body)
	case *ast.ForStatement:
		return checkFor(ctx, s)
	case *ast.ReturnStatement:
		return checkReturn(ctx, s)
	case *ast.AssignmentStatement:
		return checkAssignment(ctx, s)
	case *ast.InvariantStatement:
		return checkInvariant(ctx, s)
	case *ast.AssertStatement:
		condT, err := synth(ctx, PhaseCheck, s.Condition)
		if err != nil {
			return err
		}
		if condT.Kind != types.Boolean && !types.IsWeakly(condT) {
			return ctx.Fail(newCheckingError(s.Pos(), "assert condition must be boolean"))
		}
		if s.Message == nil {
			return nil
		}
		_, err = synth(ctx, PhaseCheck, s.Message)
		return err
	default:
		return fmt.Errorf("check: unhandled statement type %T", stmt)
	}
	return nil
}

func checkCondition(ctx *Context, cond ast.Expression, then, els ast.Statement) error {
	condT, err := synth(ctx, PhaseCheck, cond)
	if err != nil {
		return err
	}
	if condT.Kind != types.Boolean && !types.IsWeakly(condT) {
		return ctx.Fail(newCheckingError(cond.Pos(), "condition must be boolean"))
	}
	if err := checkStatement(ctx, then); err != nil {
		return err
	}
	if ctx.HasErrors() || els == nil {
		return nil
	}
	return checkStatement(ctx, els)
}

func checkLoop(ctx *Context, cond ast.Expression, body ast.Statement) error {
	condT, err := synth(ctx, PhaseCheck, cond)
	if err != nil {
		return err
	}
	if condT.Kind != types.Boolean && !types.IsWeakly(condT) {
		return ctx.Fail(newCheckingError(cond.Pos(), "condition must be boolean"))
	}
	ctx.LoopDepth++
	err = checkStatement(ctx, body)
	ctx.LoopDepth--
	return err
}

func checkFor(ctx *Context, s *ast.ForStatement) error {
	iterT, err := synth(ctx, PhaseCheck, s.Iterable)
	if err != nil {
		return err
	}
	if !isIterable(iterT) {
		return ctx.Fail(newCheckingError(s.Iterable.Pos(), fmt.Sprintf("%s is not iterable", iterT)))
	}
	var bodyErr error
	ctx.scoped(func() {
		if s.Variable != "_" {
			if _, ok := ctx.Vars[s.Variable]; !ok {
				ctx.Vars[s.Variable] = iterableElementType(iterT)
			}
		}
		ctx.LoopDepth++
		bodyErr = checkStatement(ctx, s.Body)
		ctx.LoopDepth--
	})
	return bodyErr
}

// checkDeclarator validates an explicit, non-inferred annotation's
// conformance with its initializer (spec §4.5): the initializer must be
// assignable to the declared type. An inferred declarator has nothing
// further to validate here — its type already is whatever the initializer
// synthesized across the earlier passes.
func checkDeclarator(ctx *Context, decl *ast.VariableDeclarator) error {
	if decl.Initializer == nil {
		return nil
	}
	initT, err := synth(ctx, PhaseCheck, decl.Initializer)
	if err != nil {
		return err
	}
	if decl.TypeAnnotation == nil || decl.TypeAnnotation.IsInferred {
		return nil
	}
	declaredT, err := Resolve(decl.TypeAnnotation)
	if err != nil {
		return ctx.Fail(newCheckingError(decl.Pos(), err.Error()))
	}
	if !assignable(ctx, declaredT, initT) {
		return ctx.Fail(newTypeMismatch(decl.Pos(), fmt.Sprintf("variable '%s'", decl.Name), declaredT, initT))
	}
	return nil
}

// checkAssignment validates `target = value`: a plain identifier must
// accept value's type (strict equality unless the target was an inferred
// declarator, spec §4.5 "an inferred slot widens, an explicit annotation is
// strict"); an index target defers to the receiver's element/value type.
func checkAssignment(ctx *Context, s *ast.AssignmentStatement) error {
	valueT, err := synth(ctx, PhaseCheck, s.Value)
	if err != nil {
		return err
	}
	targetT, err := synth(ctx, PhaseCheck, s.Target)
	if err != nil {
		return err
	}
	if id, ok := s.Target.(*ast.Identifier); ok {
		decl := ctx.VarDecls[id.Name]
		if decl != nil && decl.TypeAnnotation != nil && !decl.TypeAnnotation.IsInferred {
			if !ctx.Cache.Equals(targetT, valueT) {
				return ctx.Fail(newTypeMismatch(s.Pos(), fmt.Sprintf("assignment to '%s'", id.Name), targetT, valueT))
			}
			return nil
		}
	}
	if !assignable(ctx, targetT, valueT) {
		return ctx.Fail(newTypeMismatch(s.Pos(), "assignment", targetT, valueT))
	}
	return nil
}

// checkReturn validates return placement and type agreement (spec §4.5): a
// bare return requires a void-returning function; a value-carrying return
// must equal the function's declared or inferred return type.
func checkReturn(ctx *Context, s *ast.ReturnStatement) error {
	fd := ctx.CurrentFunction
	if fd == nil {
		return ctx.Fail(newCheckingError(s.Pos(), "return outside of a function"))
	}
	sig := ctx.Funs[fd.Name]
	if s.Value == nil {
		if sig.ReturnType.Kind != types.Void && !types.IsWeak(sig.ReturnType) {
			return ctx.Fail(newReturnTypeMismatch(s.Pos(), fmt.Sprintf("function '%s'", fd.Name), sig.ReturnType, types.VoidType))
		}
		return nil
	}
	actual, err := synth(ctx, PhaseCheck, s.Value)
	if err != nil {
		return err
	}
	if !ctx.Cache.Equals(sig.ReturnType, actual) && !types.IsWeak(sig.ReturnType) {
		return ctx.Fail(newReturnTypeMismatch(s.Pos(), fmt.Sprintf("function '%s'", fd.Name), sig.ReturnType, actual))
	}
	return nil
}

// checkInvariant validates spec §4.5's placement rule (an invariant
// statement is legal only somewhere inside a loop body or a function body,
// at any nesting depth) and that its condition is boolean.
func checkInvariant(ctx *Context, s *ast.InvariantStatement) error {
	if ctx.LoopDepth == 0 && ctx.CurrentFunction == nil {
		return ctx.Fail(newCheckingError(s.Pos(), "invariant statement must appear inside a loop or function body"))
	}
	condT, err := synth(ctx, PhaseCheck, s.Condition)
	if err != nil {
		return err
	}
	if condT.Kind != types.Boolean && !types.IsWeakly(condT) {
		return ctx.Fail(newCheckingError(s.Pos(), "invariant condition must be boolean"))
	}
	if s.Message == nil {
		return nil
	}
	_, err = synth(ctx, PhaseCheck, s.Message)
	return err
}

func checkFunctionBody(ctx *Context, fd *ast.FunctionDeclaration) error {
	sig := ctx.Funs[fd.Name]
	var err error
	ctx.scoped(func() {
		for i, p := range fd.Parameters {
			ctx.Vars[p.Name] = sig.Parameters[i]
		}
		savedFn := ctx.CurrentFunction
		ctx.CurrentFunction = fd
		err = checkStatement(ctx, fd.Body)
		ctx.CurrentFunction = savedFn
	})
	if err != nil {
		return err
	}
	// A function whose return type was never written and whose body
	// contains no return statement never had sig.ReturnType sharpened by
	// either earlier pass; it implicitly returns void (spec §3.2/§4.5: every
	// resolved annotation must end up concrete, never weak).
	if types.IsWeak(sig.ReturnType) {
		types.Sharpen(sig.ReturnType, types.VoidType)
	}
	return nil
}
