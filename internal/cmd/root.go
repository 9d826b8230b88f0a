package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rsqsongdb
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsqsongdb",
		Short: "Build RSQ karaoke song databases from a music directory",
		Long: `rsqsongdb scans a karaoke music directory for audio files paired with
graphics files of the same name (.mp3 + .cdg by default), reads the singer
and title from each file name ("Singer - 01 - Title.mp3"), numbers the songs
and writes the flat-text song database read by RSQ karaoke players.

Paths written to the database can be rewritten to another root (for
example the drive letter the player sees) with --altdir.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCreateCommand())
	cmd.AddCommand(NewCheckCommand())

	return cmd
}
