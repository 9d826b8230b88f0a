package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/rsqsongdb/internal/models"
)

// FileLogger logs run events to a per-run file inside a log directory.
// It creates a timestamped run log and maintains a latest.log symlink
// pointing to the most recent run. Every run log is stamped with a run ID.
// It is thread-safe and implements diag.Sink.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.NewString()

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS-<id>.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", timestamp, runID[:8]))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    runID,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== rsqsongdb Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunID returns the identifier stamped into this run's log.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// Report writes a diagnostic, tagged with its kind so log files can be grepped.
// Format: "[HH:MM:SS] [WARN] MissingPairFile '<path>' - <message>"
func (fl *FileLogger) Report(d models.Diagnostic) {
	line := fmt.Sprintf("%s %s", d.Kind, d)
	if d.Level == models.LevelError {
		fl.LogError(line)
		return
	}
	fl.LogWarn(line)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogSummary logs the final statistics at INFO level, including every skipped path.
func (fl *FileLogger) LogSummary(result models.BuildResult) {
	if !fl.shouldLog("info") {
		return
	}

	ts := time.Now().Format("15:04:05")

	status := "SUCCESS"
	if result.SkippedCount() > 0 {
		status = "PARTIAL"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === BUILD SUMMARY ===\n", ts)
	if result.DatabasePath != "" {
		fmt.Fprintf(&b, "[%s] Database:     %s\n", ts, result.DatabasePath)
	}
	fmt.Fprintf(&b, "[%s] Directories:  %d\n", ts, result.Directories)
	fmt.Fprintf(&b, "[%s] Audio files:  %d\n", ts, result.AudioFiles)
	fmt.Fprintf(&b, "[%s] Records:      %d\n", ts, result.Records)
	if result.Records > 0 {
		fmt.Fprintf(&b, "[%s] Song numbers: %d-%d\n", ts, result.FirstNumber, result.LastNumber)
	}
	fmt.Fprintf(&b, "[%s] Skipped:      %d\n", ts, result.SkippedCount())

	kinds := make([]string, 0, len(result.Skipped))
	for kind := range result.Skipped {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		for _, path := range result.Skipped[models.DiagnosticKind(kind)] {
			fmt.Fprintf(&b, "[%s]   - %s: %s\n", ts, kind, path)
		}
	}

	fmt.Fprintf(&b, "[%s] Total time:   %.1fs\n", ts, result.Duration.Seconds())
	fmt.Fprintf(&b, "[%s] Status:       %s (%d/%d audio files written)\n", ts, status, result.Records, result.AudioFiles)
	fmt.Fprintf(&b, "[%s] Completed at: %s\n", ts, time.Now().Format(time.RFC3339))

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
