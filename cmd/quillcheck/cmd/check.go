package cmd

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/internal/astjson"
	"github.com/quill-lang/quill/internal/checker"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.json]",
	Short: "Type-check a quill syntax tree given as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func loadConfig() (*checker.Config, error) {
	if configPath == "" {
		return checker.DefaultConfig(), nil
	}
	return checker.LoadConfig(configPath)
}

func runCheck(_ *cobra.Command, args []string) error {
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
	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(os.Stderr, result.Diagnostics[0].Error())
		os.Exit(1)
	}
	fmt.Println("ok")
	return nil
}
