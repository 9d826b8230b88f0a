package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/harrison/rsqsongdb/internal/config"
	"github.com/harrison/rsqsongdb/internal/diag"
	"github.com/harrison/rsqsongdb/internal/display"
	"github.com/harrison/rsqsongdb/internal/logger"
	"github.com/harrison/rsqsongdb/internal/models"
	"github.com/spf13/cobra"
)

// runLogger is what a command needs from a logger
type runLogger interface {
	LogTrace(message string)
	LogInfo(message string)
	LogDebug(message string)
	Report(d models.Diagnostic)
	LogSummary(result models.BuildResult)
}

// multiLogger implements runLogger by delegating to multiple loggers
type multiLogger struct {
	loggers []runLogger
}

// LogTrace forwards to all loggers
func (ml *multiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogInfo forwards to all loggers
func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// Report forwards to all loggers
func (ml *multiLogger) Report(d models.Diagnostic) {
	for _, l := range ml.loggers {
		l.Report(d)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(result models.BuildResult) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}

// runEnv is the resolved configuration and logging of one command invocation
type runEnv struct {
	cfg       *config.Config
	log       runLogger
	fileLog   *logger.FileLogger
	collector *diag.Collector
	sink      diag.Sink
}

// Close releases the file logger, if any
func (e *runEnv) Close() error {
	if e.fileLog != nil {
		return e.fileLog.Close()
	}
	return nil
}

// addPipelineFlags registers the flags shared by create and check
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("musicdir", "m", "", "Music directory to scan (required unless set in config)")
	cmd.Flags().StringP("altdir", "a", "", "Root written into the database instead of the music directory (e.g. 'H:\\Music\\')")
	cmd.Flags().IntP("songnum", "n", 0, "Number of the first song (default 1000)")
	cmd.Flags().StringP("songdb", "d", "", "Song database file (default: songdb.txt in the music directory)")
	cmd.Flags().String("audio-ext", "", "Audio file extension (default .mp3)")
	cmd.Flags().String("graphics-ext", "", "Graphics file extension (default .cdg)")
	cmd.Flags().Bool("skip-hidden", false, "Skip directories whose name starts with '.'")
	cmd.Flags().String("config", "", "Path to config file (default: .rsqsongdb/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default info)")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files (default: no file log)")
}

// loadConfig loads the config file and merges changed flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	// Build flag pointers for merge (only flags given on the command line)
	var flags config.Flags
	stringFlag := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	flags.MusicDir = stringFlag("musicdir")
	flags.AltDir = stringFlag("altdir")
	flags.SongDB = stringFlag("songdb")
	flags.AudioExt = stringFlag("audio-ext")
	flags.GraphicsExt = stringFlag("graphics-ext")
	flags.LogLevel = stringFlag("log-level")
	flags.LogDir = stringFlag("log-dir")
	if cmd.Flags().Changed("skip-hidden") {
		v, _ := cmd.Flags().GetBool("skip-hidden")
		flags.SkipHidden = &v
	}
	if cmd.Flags().Changed("songnum") {
		n, _ := cmd.Flags().GetInt("songnum")
		flags.FirstSongNumber = &n
	}

	cfg.MergeWithFlags(flags)
	return cfg, nil
}

// prepareRun loads configuration and wires loggers and the diagnostics collector.
// A missing music directory is reported as a diagnostic before it is returned.
func prepareRun(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &runEnv{
		cfg:       cfg,
		collector: diag.NewCollector(),
	}

	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	loggers := []runLogger{consoleLog}
	env.log = &multiLogger{loggers: loggers}
	env.sink = diag.MultiSink{env.log, env.collector}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, models.ErrMissingMusicDir) {
			env.sink.Report(models.NewDiagnostic(models.KindMissingRequiredInput, "", err.Error()))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Resolve(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		env.fileLog = fileLog
		env.log = &multiLogger{loggers: append(loggers, fileLog)}
		env.sink = diag.MultiSink{env.log, env.collector}
		consoleLog.LogDebug(fmt.Sprintf("Run %s logging to %s", fileLog.RunID(), fileLog.Path()))
	}

	env.log.LogDebug(fmt.Sprintf("Music directory: %s", cfg.MusicDir))
	env.log.LogDebug(fmt.Sprintf("Database paths rooted at: %s", cfg.AltDir))
	env.log.LogDebug(fmt.Sprintf("First song number: %d", cfg.FirstSongNumber))

	return env, nil
}

// showSkipped prints one warning block per skip reason
func showSkipped(out io.Writer, result *models.BuildResult) {
	if result == nil {
		return
	}
	for _, w := range display.SkippedFileWarnings(result.Skipped) {
		w.Display(out)
	}
}
