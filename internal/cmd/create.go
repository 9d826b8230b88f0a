package cmd

import (
	"errors"
	"fmt"

	"github.com/harrison/rsqsongdb/internal/builder"
	"github.com/spf13/cobra"
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Scan a music directory and write the song database",
		Long: `Scan a music directory breadth-first for audio files with a matching
graphics file, parse "Singer - NN - Title" from each file name and write one
numbered record per song to the song database.

An existing database is overwritten (a warning is printed). Files that
cannot be paired or parsed are skipped and listed at the end of the run.

Configuration is loaded from .rsqsongdb/config.yaml if present.
CLI flags override configuration file settings.

Exit code: 0 if no warnings, 1 if any file was skipped or the run failed.

Examples:
  rsqsongdb create -m /srv/karaoke
  rsqsongdb create -m /srv/karaoke -a 'H:\Music\' -n 5000
  rsqsongdb create -m /srv/karaoke -d /tmp/songdb.txt --log-dir ./logs`,
		Args: cobra.NoArgs,
		RunE: createCommand,
	}

	addPipelineFlags(cmd)

	return cmd
}

// createCommand implements the create command logic
func createCommand(cmd *cobra.Command, args []string) (err error) {
	env, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, env.Close())
	}()

	env.log.LogInfo(fmt.Sprintf("Building song database %s from %s", env.cfg.SongDB, env.cfg.MusicDir))

	b := builder.New(env.cfg.BuilderOptions(), env.sink).WithTracer(env.log)
	result, err := b.Build()
	if result != nil {
		env.log.LogSummary(*result)
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	showSkipped(cmd.ErrOrStderr(), result)

	return builder.CheckDiagnostics(env.collector)
}
