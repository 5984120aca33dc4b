// Command hedm inspects HEDM .mic scans stored in HDF5 files.
package main

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-hedm/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hedm:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
