// Command mutantd classifies DNA grids as mutant or human and serves the
// mutant detection API.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/mutantd/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mutantd:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
