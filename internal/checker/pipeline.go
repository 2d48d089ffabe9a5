package checker

import "github.com/quill-lang/quill/internal/ast"

// CheckResult is the full outcome of type checking a program (SPEC_FULL
// §12): the final Context, for tooling that wants the resolved environment
// (the annotate CLI subcommand patches types back onto a JSON tree from
// this), and the diagnostics recorded along the way.
type CheckResult struct {
	Context     *Context
	Diagnostics []*CheckError
}

// TypeCheck runs the full three-pass pipeline (spec §6.1) over program and
// returns the first recorded diagnostic, or nil if none was raised.
func TypeCheck(program *ast.Program, cfg *Config) error {
	result, err := TypecheckAndReturn(program, cfg)
	if err != nil {
		return err
	}
	if len(result.Diagnostics) > 0 {
		return result.Diagnostics[0]
	}
	return nil
}

// TypecheckAndReturn runs the pipeline and returns the full Context plus
// accumulated diagnostics regardless of success, so tooling can inspect the
// resolved type environment even when checking failed partway through (spec
// §6.1, SPEC_FULL §12).
func TypecheckAndReturn(program *ast.Program, cfg *Config) (*CheckResult, error) {
	return TypecheckAndReturnVerbose(program, cfg, false)
}

// TypecheckAndReturnVerbose is TypecheckAndReturn with the --verbose trace
// dump (SPEC_FULL §10.5) enabled or disabled explicitly; the context must
// have Verbose set before the passes run, not after, since the refiner
// dumps its own trace at the end of every pass.
func TypecheckAndReturnVerbose(program *ast.Program, cfg *Config, verbose bool) (*CheckResult, error) {
	ctx := NewContext(cfg)
	ctx.Verbose = verbose
	pm := NewPassManager(InferencePass{}, RefinementPass{}, CheckPass{})
	if err := pm.RunAll(program, ctx); err != nil {
		return nil, err
	}
	return &CheckResult{Context: ctx, Diagnostics: ctx.Errors}, nil
}
