package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags, following the teacher's release
	// tooling convention (DESIGN.md).
	Version = "0.1.0-dev"

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "quillcheck",
	Short: "Type checker for the quill expression language",
	Long: `quillcheck runs the three-pass type checker — inference, refinement,
checking — over a quill syntax tree and reports the first diagnostic
found, or confirms the program is well-typed.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}` + "\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "dump the type environment after each refinement pass")
}
