package checker

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/types"
)

// InferencePass is the first pass of the pipeline (spec §4.3): it seeds
// FunEnv/FunctionDeclEnv for every function before walking any body, so
// mutually recursive functions can reference each other regardless of
// declaration order, then walks the program assigning a concrete or weak
// type to every declarator and parameter that lacks an explicit annotation.
type InferencePass struct{}

func (InferencePass) Name() string { return "inference" }

func (InferencePass) Run(program *ast.Program, ctx *Context) error {
	for _, stmt := range program.Statements {
		if fd, ok := stmt.(*ast.FunctionDeclaration); ok {
			if err := registerFunction(ctx, fd); err != nil {
				return err
			}
			if ctx.HasErrors() {
				return nil
			}
		}
	}
	for _, stmt := range program.Statements {
		if err := inferStatement(ctx, stmt); err != nil {
			return err
		}
		if ctx.HasErrors() {
			return nil
		}
	}
	return nil
}

// registerFunction resolves a function's declared signature (parameters
// without an annotation get a fresh weak slot) and records it in FunEnv and
// FunctionDeclEnv ahead of the main walk.
func registerFunction(ctx *Context, fd *ast.FunctionDeclaration) error {
	params := make([]*types.Type, len(fd.Parameters))
	for i, p := range fd.Parameters {
		t, err := Resolve(p.TypeAnnotation)
		if err != nil {
			return ctx.Fail(newInferenceError(p.Pos(), err.Error()))
		}
		params[i] = t
	}
	ret, err := Resolve(fd.ReturnType)
	if err != nil {
		return ctx.Fail(newInferenceError(fd.Pos(), err.Error()))
	}
	ctx.Funs[fd.Name] = &FunSignature{Parameters: params, ReturnType: ret}
	ctx.FunDecls[fd.Name] = fd
	return nil
}

func inferStatement(ctx *Context, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, decl := range s.Declarations {
			if err := inferDeclarator(ctx, decl); err != nil {
				return err
			}
			if ctx.HasErrors() {
				return nil
			}
		}
	case *ast.FunctionDeclaration:
		return inferFunctionBody(ctx, s)
	case *ast.BlockStatement:
		for _, sub := range s.Statements {
			if err := inferStatement(ctx, sub); err != nil {
				return err
			}
			if ctx.HasErrors() {
				return nil
			}
		}
	case *ast.ExpressionStatement:
		_, err := synth(ctx, PhaseInfer, s.Expression)
		return err
	case *ast.IfStatement:
		if _, err := synth(ctx, PhaseInfer, s.Condition); err != nil {
			return err
		}
		if err := inferStatement(ctx, s.ThenBranch); err != nil {
			return err
		}
		if ctx.HasErrors() || s.ElseBranch == nil {
			return nil
		}
		return inferStatement(ctx, s.ElseBranch)
	case *ast.WhileStatement:
		if _, err := synth(ctx, PhaseInfer, s.Condition); err != nil {
			return err
		}
		ctx.LoopDepth++
		err := inferStatement(ctx, s.Body)
		ctx.LoopDepth--
		return err
	case *ast.UntilStatement:
		if _, err := synth(ctx, PhaseInfer, s.Condition); err != nil {
			return err
		}
		ctx.LoopDepth++
		err := inferStatement(ctx, s.Body)
		ctx.LoopDepth--
		return err
	case *ast.ForStatement:
		return inferFor(ctx, s)
	case *ast.ReturnStatement:
		return inferReturn(ctx, s)
	case *ast.AssignmentStatement:
		if _, err := synth(ctx, PhaseInfer, s.Target); err != nil {
			return err
		}
		_, err := synth(ctx, PhaseInfer, s.Value)
		return err
	case *ast.InvariantStatement:
		if _, err := synth(ctx, PhaseInfer, s.Condition); err != nil {
			return err
		}
		if s.Message == nil {
			return nil
		}
		_, err := synth(ctx, PhaseInfer, s.Message)
		return err
	case *ast.AssertStatement:
		if _, err := synth(ctx, PhaseInfer, s.Condition); err != nil {
			return err
		}
		if s.Message == nil {
			return nil
		}
		_, err := synth(ctx, PhaseInfer, s.Message)
		return err
	default:
		return fmt.Errorf("infer: unhandled statement type %T", stmt)
	}
	return nil
}

// inferDeclarator assigns a declarator's variable a type: the resolved
// explicit annotation if one is written, otherwise the initializer's
// synthesized type (spec §4.3). The resulting *types.Type is stored both on
// TypeEnv and (via Resolve having produced a node reachable from the
// annotation) kept alive for the refiner to sharpen later.
func inferDeclarator(ctx *Context, decl *ast.VariableDeclarator) error {
	var t *types.Type
	if decl.TypeAnnotation != nil && !decl.TypeAnnotation.IsInferred {
		resolved, err := Resolve(decl.TypeAnnotation)
		if err != nil {
			return ctx.Fail(newInferenceError(decl.Pos(), err.Error()))
		}
		t = resolved
		if decl.Initializer != nil {
			if _, err := synth(ctx, PhaseInfer, decl.Initializer); err != nil {
				return err
			}
		}
	} else if decl.Initializer != nil {
		synthesized, err := synth(ctx, PhaseInfer, decl.Initializer)
		if err != nil {
			return err
		}
		t = synthesized
		decl.TypeAnnotation = &ast.TypeAnnotation{IsInferred: true, NodePos: decl.Pos()}
	} else {
		t = types.NewWeak()
	}
	ctx.Vars[decl.Name] = t
	ctx.VarDecls[decl.Name] = decl
	return nil
}

func inferFunctionBody(ctx *Context, fd *ast.FunctionDeclaration) error {
	sig := ctx.Funs[fd.Name]
	var err error
	ctx.scoped(func() {
		for i, p := range fd.Parameters {
			ctx.Vars[p.Name] = sig.Parameters[i]
		}
		savedFn := ctx.CurrentFunction
		ctx.CurrentFunction = fd
		err = inferStatement(ctx, fd.Body)
		ctx.CurrentFunction = savedFn
	})
	return err
}

// inferReturn records the inferred return type the first time a bare or
// value-carrying return is seen for the enclosing function (when its
// ReturnType annotation was omitted), and raises an inference error if a
// later return disagrees (spec §4.3: "conflicting return types across
// multiple return statements is an inference error").
func inferReturn(ctx *Context, s *ast.ReturnStatement) error {
	fd := ctx.CurrentFunction
	if fd == nil {
		return nil // checker reports "return outside function"; inference stays lenient
	}
	var actual *types.Type
	if s.Value == nil {
		actual = types.VoidType
	} else {
		t, err := synth(ctx, PhaseInfer, s.Value)
		if err != nil {
			return err
		}
		actual = t
	}
	if fd.ReturnType != nil && !fd.ReturnType.IsInferred {
		return nil // explicit return type; checker validates agreement
	}
	sig := ctx.Funs[fd.Name]
	if sig.ReturnType == nil || types.IsWeak(sig.ReturnType) {
		sig.ReturnType = actual
		fd.ReturnType = &ast.TypeAnnotation{IsInferred: true, NodePos: s.Pos()}
		return nil
	}
	if !ctx.Cache.Equals(sig.ReturnType, actual) {
		return ctx.Fail(newInferenceError(s.Pos(), fmt.Sprintf(
			"function '%s' returns both %s and %s", fd.Name, sig.ReturnType, actual)))
	}
	return nil
}

func inferFor(ctx *Context, s *ast.ForStatement) error {
	iterT, err := synth(ctx, PhaseInfer, s.Iterable)
	if err != nil {
		return err
	}
	var bodyErr error
	ctx.scoped(func() {
		if s.Variable != "_" {
			ctx.Vars[s.Variable] = iterableElementType(iterT)
		}
		ctx.LoopDepth++
		bodyErr = inferStatement(ctx, s.Body)
		ctx.LoopDepth--
	})
	return bodyErr
}
