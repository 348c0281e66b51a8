package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelInfo},
		{level: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.level); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSetupStdoutOnly(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	closer, err := Setup("info", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: unexpected error: %v", err)
	}
}

func TestSetupWithLogDirectory(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	dir := filepath.Join(t.TempDir(), "logs")

	closer, err := Setup("debug", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slog.Info("test entry", "key", "value")
	if err := closer.Close(); err != nil {
		t.Errorf("Close: unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"test entry"`) {
		t.Errorf("log file missing entry: %q", string(data))
	}
	if !strings.Contains(string(data), `"key":"value"`) {
		t.Errorf("log file missing attribute: %q", string(data))
	}
}

func TestSetupAppendsAcrossRestarts(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	dir := t.TempDir()

	closer, err := Setup("info", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slog.Info("first run")
	closer.Close()

	closer, err = Setup("info", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slog.Info("second run")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "first run") || !strings.Contains(string(data), "second run") {
		t.Errorf("log file should keep entries from both runs: %q", string(data))
	}
}
