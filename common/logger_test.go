package common

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppLogger_SetLevel(t *testing.T) {
	logger := newAppLogger(io.Discard)

	logger.SetLevel(LevelDebug)
	if logger.Level() != LevelDebug {
		t.Errorf("SetLevel did not update level, got %v, want %v", logger.Level(), LevelDebug)
	}
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := newAppLogger(&buf)
	logger.SetLevel(LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is Warn")
	}

	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "WARN") {
		t.Error("Warn message should be logged")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Error("Error message should be logged")
	}
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer

	logger := newAppLogger(&buf)
	logger.SetLevel(LevelDebug)

	logger.Info("Test message with %s", "formatting")

	output := buf.String()

	if !strings.Contains(output, time.Now().Format("2006/01/02")) {
		t.Error("Log should contain date in YYYY/MM/DD format")
	}
	if !strings.Contains(output, "[INFO]") {
		t.Error("Log should contain level indicator")
	}
	if !strings.Contains(output, "logger_test.go:") {
		t.Errorf("Log should name the calling file, got %q", output)
	}
	if !strings.Contains(output, "Test message with formatting") {
		t.Error("Log should contain formatted message")
	}
}

func TestAppLogger_FileLogging(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger := newAppLogger(&console)
	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}
	logger.Info("written twice")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written twice") {
		t.Error("log file should contain the message")
	}
	if !strings.Contains(console.String(), "written twice") {
		t.Error("console should contain the message")
	}

	// After Close only the console receives output.
	console.Reset()
	logger.Info("console only")
	data, _ = os.ReadFile(filepath.Join(dir, LogFileName))
	if strings.Contains(string(data), "console only") {
		t.Error("closed log file should not receive new lines")
	}
	if !strings.Contains(console.String(), "console only") {
		t.Error("console should still receive lines after Close")
	}
}

func TestAppLogger_SetOutputDiscard(t *testing.T) {
	dir := t.TempDir()
	logger := newAppLogger(os.Stdout)
	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	logger.SetOutput(io.Discard)
	logger.Warn("file keeps this")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "file keeps this") {
		t.Error("SetOutput must not detach the log file")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	if defaultMaxFileSize != 5*1024*1024 {
		t.Errorf("defaultMaxFileSize = %v, want 5MB", defaultMaxFileSize)
	}

	if defaultMaxBackups != 5 {
		t.Errorf("defaultMaxBackups = %v, want 5", defaultMaxBackups)
	}
}

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "test.log")

	largeContent := strings.Repeat("x", 1024*1024) // 1MB
	if err := os.WriteFile(logFile, []byte(largeContent), 0600); err != nil {
		t.Fatal(err)
	}

	logger := &AppLogger{
		level:       LevelInfo,
		maxFileSize: 512 * 1024,
		maxBackups:  2,
		console:     io.Discard,
	}

	logger.rotateIfNeeded(logFile)

	if info, err := os.Stat(logFile); err == nil && info.Size() > 0 {
		t.Error("Original log file should be removed or empty after rotation")
	}

	matches, _ := filepath.Glob(filepath.Join(tempDir, "test.log.*"))
	if len(matches) == 0 {
		t.Error("Backup file should be created after rotation")
	}
}

func TestCleanupOldBackups(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "test.log")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		p := logFile + "." + string(rune('a'+i)) + ".gz"
		if err := os.WriteFile(p, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		mod := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
	}

	logger := &AppLogger{maxBackups: 2}
	logger.cleanupOldBackups(logFile)

	matches, _ := filepath.Glob(logFile + ".*")
	if len(matches) != 2 {
		t.Fatalf("kept %d backups, want 2", len(matches))
	}
	for _, m := range matches {
		if strings.HasSuffix(m, ".a.gz") || strings.HasSuffix(m, ".b.gz") {
			t.Errorf("oldest backup %s should have been removed", m)
		}
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.HasSuffix(dir, ConfigDirName) {
		t.Errorf("GetConfigDir() = %v, should end with %v", dir, ConfigDirName)
	}
	if !FileExists(dir) {
		t.Error("GetConfigDir() should create the directory")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stale.toml")

	if err := RemoveIfExists(path); err != nil {
		t.Errorf("RemoveIfExists() on missing file = %v, want nil", err)
	}

	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("RemoveIfExists() error = %v", err)
	}
	if FileExists(path) {
		t.Error("file should be gone")
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name, base, path, want string
	}{
		{"relative", "/work", "bin/wgcf", filepath.Join("/work", "bin/wgcf")},
		{"absolute", "/work", "/opt/wgcf", "/opt/wgcf"},
		{"empty", "/work", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.base, tt.path); got != tt.want {
				t.Errorf("ResolvePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	wrapped := WrapError(ErrIOFailure, "additional context")

	if wrapped == nil {
		t.Fatal("WrapError should return non-nil error")
	}
	if !strings.Contains(wrapped.Error(), "additional context") {
		t.Error("WrapError should include additional context")
	}
	if !errors.Is(wrapped, ErrIOFailure) {
		t.Error("WrapError should keep the original error reachable")
	}
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestAppLogger_CheckRotation(t *testing.T) {
	tempDir := t.TempDir()
	logger := newAppLogger(io.Discard)
	logger.maxFileSize = 64
	logger.maxBackups = 2
	if err := logger.EnableFileLogging(tempDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger.Close() })

	logger.Info("first run %s", strings.Repeat("x", 128))
	logger.CheckRotation()

	logPath := filepath.Join(tempDir, LogFileName)
	matches, _ := filepath.Glob(logPath + ".*")
	if len(matches) == 0 {
		t.Fatal("CheckRotation should rotate an oversized log")
	}

	logger.Info("second run")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file should be reopened: %v", err)
	}
	if !strings.Contains(string(data), "second run") || strings.Contains(string(data), "first run") {
		t.Errorf("reopened log = %q", data)
	}
}
