package checker

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
)

// dumpTrace prints the variable environment after a refinement pass when
// Context.Verbose is set (SPEC_FULL §10.5's `--verbose` flag), using
// kr/pretty the way the teacher's debug tooling renders intermediate state.
func dumpTrace(ctx *Context, pass int) {
	fmt.Fprintf(os.Stderr, "--- refinement pass %d ---\n", pass)
	for name, t := range ctx.Vars {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, t)
	}
	pretty.Fprintf(os.Stderr, "raw: %# v\n", ctx.Vars)
}
