// Command sgdesign classifies Sylvester-Gallai designs.
package main

import (
	"fmt"
	"os"

	"github.com/alexander-cohen/SG-Design-Classification/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
