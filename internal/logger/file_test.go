package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/rsqsongdb/internal/models"
)

func readRunLog(t *testing.T, logger *FileLogger) string {
	t.Helper()
	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("Failed to read run log: %v", err)
	}
	return string(data)
}

// TestLogDirectoryCreation verifies the log directory is created on initialization
func TestLogDirectoryCreation(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Expected log directory %s to exist, but it doesn't", logDir)
	}
}

// TestPerRunLogFile verifies a timestamped log file is created per run
func TestPerRunLogFile(t *testing.T) {
	logDir := t.TempDir()

	logger, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	name := filepath.Base(logger.Path())
	if !strings.HasPrefix(name, "run-") || !strings.HasSuffix(name, ".log") {
		t.Errorf("Expected run-*.log, got %s", name)
	}
	if !strings.Contains(name, logger.RunID()[:8]) {
		t.Errorf("Expected log file name %s to carry run ID prefix %s", name, logger.RunID()[:8])
	}
}

// TestRunIDHeader verifies the run log header carries a valid UUID
func TestRunIDHeader(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	if _, err := uuid.Parse(logger.RunID()); err != nil {
		t.Errorf("RunID() = %q is not a UUID: %v", logger.RunID(), err)
	}

	content := readRunLog(t, logger)
	if !strings.Contains(content, "=== rsqsongdb Run Log ===") {
		t.Errorf("Expected header in run log, got %q", content)
	}
	if !strings.Contains(content, "Run ID: "+logger.RunID()) {
		t.Errorf("Expected run ID in run log, got %q", content)
	}
}

// TestLatestSymlink verifies latest.log symlink is created and points to current run
func TestLatestSymlink(t *testing.T) {
	logDir := t.TempDir()

	logger, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	symlinkPath := filepath.Join(logDir, "latest.log")
	linkInfo, err := os.Lstat(symlinkPath)
	if err != nil {
		t.Fatalf("Expected latest.log symlink to exist: %v", err)
	}

	if linkInfo.Mode()&os.ModeSymlink == 0 {
		t.Error("Expected latest.log to be a symlink")
	}

	target, err := os.Readlink(symlinkPath)
	if err != nil {
		t.Fatalf("Failed to read symlink: %v", err)
	}

	if target != filepath.Base(logger.Path()) {
		t.Errorf("Expected symlink to point to %s, got %s", filepath.Base(logger.Path()), target)
	}
}

// TestSymlinkUpdate verifies symlink updates on new run, even within the same second
func TestSymlinkUpdate(t *testing.T) {
	logDir := t.TempDir()

	logger1, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	logger1.Close()

	logger2, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger2.Close()

	if logger1.Path() == logger2.Path() {
		t.Fatal("Expected distinct run log files")
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Failed to read symlink: %v", err)
	}
	if target != filepath.Base(logger2.Path()) {
		t.Errorf("Expected symlink to point to new log file %s, got %s", filepath.Base(logger2.Path()), target)
	}
}

// TestFileReport verifies diagnostics are written with their kind
func TestFileReport(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	logger.Report(models.NewDiagnostic(models.KindMissingPairFile, "/music/a.mp3", "MP3 has no CDG file."))
	logger.Report(models.NewDiagnostic(models.KindIOFailure, "/music/songdb.txt", "disk full"))

	content := readRunLog(t, logger)
	expected := []string{
		"[WARN] MissingPairFile '/music/a.mp3' - MP3 has no CDG file.",
		"[ERROR] IOFailure '/music/songdb.txt' - disk full",
	}
	for _, e := range expected {
		if !strings.Contains(content, e) {
			t.Errorf("Expected run log to contain %q, got %q", e, content)
		}
	}
}

// TestFileLogSummary verifies summary lists totals and every skipped path
func TestFileLogSummary(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	logger.LogSummary(models.BuildResult{
		DatabasePath: "/music/songdb.txt",
		Records:      2,
		FirstNumber:  1000,
		LastNumber:   1001,
		Directories:  3,
		AudioFiles:   4,
		Skipped: map[models.DiagnosticKind][]string{
			models.KindMissingPairFile: {"/music/x.mp3"},
			models.KindMalformedName:   {"/music/y.mp3"},
		},
		Duration: 1500 * time.Millisecond,
	})

	content := readRunLog(t, logger)
	expected := []string{
		"=== BUILD SUMMARY ===",
		"Database:     /music/songdb.txt",
		"Directories:  3",
		"Audio files:  4",
		"Records:      2",
		"Song numbers: 1000-1001",
		"Skipped:      2",
		"  - MalformedName: /music/y.mp3",
		"  - MissingPairFile: /music/x.mp3",
		"Total time:   1.5s",
		"Status:       PARTIAL (2/4 audio files written)",
	}
	for _, e := range expected {
		if !strings.Contains(content, e) {
			t.Errorf("Expected summary to contain %q, got %q", e, content)
		}
	}

	if strings.Index(content, "MalformedName: /music/y.mp3") > strings.Index(content, "MissingPairFile: /music/x.mp3") {
		t.Error("Expected skipped kinds to be listed in sorted order")
	}
}

// TestFileLogSummarySuccess verifies SUCCESS status when nothing was skipped
func TestFileLogSummarySuccess(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	logger.LogSummary(models.BuildResult{Records: 1, AudioFiles: 1, FirstNumber: 1000, LastNumber: 1000})

	if content := readRunLog(t, logger); !strings.Contains(content, "Status:       SUCCESS (1/1 audio files written)") {
		t.Errorf("Expected SUCCESS status, got %q", content)
	}
}

// TestCloseFlushesLogs verifies Close writes pending data and stops further writes
func TestCloseFlushesLogs(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}

	logger.LogInfo("before close")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	logger.LogInfo("after close")

	content := readRunLog(t, logger)
	if !strings.Contains(content, "before close") {
		t.Error("Expected log content to be flushed on close")
	}
	if strings.Contains(content, "after close") {
		t.Error("Expected writes after Close to be dropped")
	}
}

// TestConcurrentLogWrites verifies thread-safe concurrent writes
func TestConcurrentLogWrites(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Report(models.NewDiagnostic(models.KindMalformedName, fmt.Sprintf("/music/%d.mp3", n), "bad"))
		}(i)
	}
	wg.Wait()

	content := readRunLog(t, logger)
	for i := 0; i < 10; i++ {
		if !strings.Contains(content, fmt.Sprintf("'/music/%d.mp3'", i)) {
			t.Errorf("Expected entry for file %d", i)
		}
	}
}

// TestNewFileLoggerInvalidPath verifies error when the log dir cannot be created
func TestNewFileLoggerInvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewFileLoggerWithDirAndLevel(filepath.Join(blocker, "logs"), "info"); err == nil {
		t.Error("Expected error for log dir under a regular file")
	}
}

// TestCloseTwice verifies Close is safe to call more than once
func TestCloseTwice(t *testing.T) {
	logger, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
