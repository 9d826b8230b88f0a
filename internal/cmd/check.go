package cmd

import (
	"errors"
	"fmt"

	"github.com/harrison/rsqsongdb/internal/builder"
	"github.com/harrison/rsqsongdb/internal/display"
	"github.com/harrison/rsqsongdb/internal/models"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Preview the song database without writing it",
		Long: `Run the same scan as create and list every song that would be written,
with its number, but never create or modify the song database file.

Use it to find unpaired or badly named files before overwriting the
database on a karaoke drive.

Exit code: 0 if every audio file would be written, 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: checkCommand,
	}

	addPipelineFlags(cmd)

	return cmd
}

// checkCommand implements the check command logic
func checkCommand(cmd *cobra.Command, args []string) (err error) {
	env, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, env.Close())
	}()

	preview := display.NewPreview(cmd.OutOrStdout(), env.cfg.MusicDir)
	preview.Start()

	b := builder.New(env.cfg.BuilderOptions(), env.sink).WithTracer(env.log)
	result, err := b.Scan(func(rec models.SongRecord) error {
		preview.Step(rec)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	preview.Complete()

	env.log.LogSummary(*result)
	showSkipped(cmd.ErrOrStderr(), result)

	return builder.CheckDiagnostics(env.collector)
}
