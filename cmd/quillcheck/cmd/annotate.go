package cmd

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/internal/astjson"
	"github.com/quill-lang/quill/internal/checker"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [file.json]",
	Short: "Patch resolved types back onto a JSON syntax tree",
	Long: `annotate type-checks a quill syntax tree the same way "check" does, then
writes out a copy of the input document with two top-level objects added:
"resolvedTypes", mapping every top-level variable name (built-ins such as
"inf" included) to its final resolved type string, and
"resolvedFunctions", mapping every function name (built-ins included) to
an object whose "returnType" is its resolved return type string. The
original document is otherwise
untouched — annotate patches the JSON in place with tidwall/sjson rather
than re-serializing the whole tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	program, err := astjson.DecodeProgram(data)
	if err != nil {
		return fmt.Errorf("failed to decode syntax tree: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	result, err := checker.TypecheckAndReturnVerbose(program, cfg, verbose)
	if err != nil {
		return err
	}

	out := string(data)
	for name, t := range result.Context.Vars {
		out, err = sjson.Set(out, "resolvedTypes."+name, t.String())
		if err != nil {
			return fmt.Errorf("failed to patch resolved type for %q: %w", name, err)
		}
	}
	for name, sig := range result.Context.Funs {
		out, err = sjson.Set(out, "resolvedFunctions."+name+".returnType", sig.ReturnType.String())
		if err != nil {
			return fmt.Errorf("failed to patch resolved return type for %q: %w", name, err)
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(os.Stderr, result.Diagnostics[0].Error())
	}
	fmt.Println(out)
	return nil
}
