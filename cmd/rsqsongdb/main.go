package main

import (
	"fmt"
	"os"

	"github.com/harrison/rsqsongdb/internal/cmd"
)

// Version is the release version used when no version is injected via -ldflags
const Version = "1.0.0"

// releaseVersion keeps a version injected at build time and falls back to
// Version for unreleased "dev" builds.
func releaseVersion(injected string) string {
	if injected == "dev" || injected == "" {
		return Version
	}
	return injected
}

func main() {
	cmd.Version = releaseVersion(cmd.Version)
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
