// Command quillcheck type-checks a quill syntax tree given as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/cmd/quillcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
