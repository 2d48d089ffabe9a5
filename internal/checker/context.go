package checker

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/types"
)

// Context is the shared, mutable state threaded through all three passes —
// the generalization of the teacher's single PassContext down to the three
// passes spec.md names (SPEC_FULL §10.2).
type Context struct {
	Vars  TypeEnv
	Funs  FunEnv
	VarDecls VariableDeclEnv
	FunDecls FunctionDeclEnv

	Cache *types.EqualityCache

	Config *Config

	// Errors accumulates every diagnostic seen so far. Only the checker
	// pass's first entry is part of the external contract (spec §7: no
	// multi-error accumulation is user-visible), but typecheckAndReturn
	// (spec §6.1) exposes the full Context for tooling, so accumulation is
	// kept rather than discarded (SPEC_FULL §12).
	Errors []*CheckError

	// LoopDepth tracks loop nesting, gating InvariantStatement placement
	// (spec §4.5).
	LoopDepth int

	// CurrentFunction is the function declaration being walked, or nil at
	// top level. Needed to validate bare `return` and return-type
	// agreement.
	CurrentFunction *ast.FunctionDeclaration

	// Verbose enables the kr/pretty environment dump between refinement
	// passes (SPEC_FULL §10.5).
	Verbose bool
}

// NewContext creates a Context with freshly seeded built-in environments
// (spec §6.4) and the given configuration. A nil config uses DefaultConfig.
func NewContext(cfg *Config) *Context {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx := &Context{
		Vars:     make(TypeEnv),
		Funs:     make(FunEnv),
		VarDecls: make(VariableDeclEnv),
		FunDecls: make(FunctionDeclEnv),
		Cache:    types.NewEqualityCache(),
		Config:   cfg,
	}
	seedBuiltins(ctx)
	return ctx
}

// Fail records err and returns it so call sites can `return ctx.Fail(err)`.
func (ctx *Context) Fail(err *CheckError) *CheckError {
	ctx.Errors = append(ctx.Errors, err)
	return err
}

// HasErrors reports whether any diagnostic has been recorded.
func (ctx *Context) HasErrors() bool { return len(ctx.Errors) > 0 }

// FirstError returns the first recorded diagnostic, or nil.
func (ctx *Context) FirstError() *CheckError {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

// scoped runs fn with Vars and VarDecls replaced by shallow clones,
// restoring the originals afterward — the save/restore discipline spec §3.4
// and §5 require around function bodies and for loops.
func (ctx *Context) scoped(fn func()) {
	savedVars, savedDecls := ctx.Vars, ctx.VarDecls
	ctx.Vars = ctx.Vars.Clone()
	ctx.VarDecls = ctx.VarDecls.Clone()
	defer func() {
		ctx.Vars = savedVars
		ctx.VarDecls = savedDecls
	}()
	fn()
}

// Pass is one stage of the pipeline (spec §2): inference, refinement or
// checking.
type Pass interface {
	Name() string
	Run(program *ast.Program, ctx *Context) error
}

// PassManager runs a fixed sequence of passes, mirroring the teacher's
// PassManager (internal/semantic_teacher_ref/pass.go) but over exactly the
// three passes spec.md §2 names.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager running passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll executes every pass in order, stopping (without error) as soon as
// a pass has recorded a diagnostic — spec §7: the first error aborts the
// pipeline.
func (pm *PassManager) RunAll(program *ast.Program, ctx *Context) error {
	for _, pass := range pm.passes {
		err := pass.Run(program, ctx)
		if ctx.HasErrors() {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}
