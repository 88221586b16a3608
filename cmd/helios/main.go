// Command helios is the command-line interface to the projection engine.
package main

import (
	"fmt"
	"os"

	"github.com/turtacn/Helios-Economics/internal/interfaces/cli"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// Injected at build time via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	root := cli.NewRootCmd(common.VersionInfo{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
