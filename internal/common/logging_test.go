package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerFromConfig_Console(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{Level: "error", Outputs: []string{"console"}})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	// Must not panic
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Debug().Float64("scale", 2.0).Bool("ok", true).Msg("debug")
}

func TestNewLoggerFromConfig_NoOutputsIsSilent(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{Level: "debug"})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	logger.Info().Msg("should be discarded")
}

func TestNewLoggerFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "websnap.log")
	logger := NewLoggerFromConfig(LoggingConfig{
		Level:    "info",
		Outputs:  []string{"file"},
		FilePath: path,
	})
	logger.Info().Str("url", "https://example.com").Msg("capture started")
}

func TestNewLoggerWithOutput_WritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("path", "example.com-1920x1080.png").Msg("saved")

	output := buf.String()
	if output == "" {
		t.Fatal("expected output to provided writer, got empty string")
	}
	if !strings.Contains(output, "saved") {
		t.Errorf("expected message in output, got %q", output)
	}
}

func TestNewSilentLogger_DoesNotWriteToGlobalWriters(t *testing.T) {
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Str("key", "value").Msg("this should NOT appear")
	silent.Error().Msg("this should NOT appear either")

	if buf.Len() > 0 {
		t.Errorf("silent logger wrote %d bytes to global writer: %s", buf.Len(), buf.String())
	}
}

func TestNewLoggerFromConfig_DoesNotWriteToStdout(t *testing.T) {
	// stdout carries progress lines and, in mcp mode, the JSON-RPC stream.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLoggerFromConfig(LoggingConfig{Level: "info", Outputs: []string{"console"}})
	logger.Info().Str("step", "launch").Msg("this must not go to stdout")
	logger.Error().Msg("neither should this")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()

	if buf.Len() > 0 {
		t.Errorf("logger wrote %d bytes to stdout: %s", buf.Len(), buf.String())
	}
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewSilentLogger()
	correlated := logger.WithCorrelationId("run-123")

	if correlated == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if correlated == logger {
		t.Error("WithCorrelationId should return a new Logger instance")
	}
	correlated.Info().Msg("must not panic")
}

func TestFileWriterConfig_Defaults(t *testing.T) {
	wc := LoggingConfig{}.fileWriterConfig()
	if wc.FileName != "logs/websnap.log" {
		t.Errorf("expected default log file, got %s", wc.FileName)
	}
	if wc.MaxSize != 500*1024 {
		t.Errorf("expected 500KB max size, got %d", wc.MaxSize)
	}
	if wc.MaxBackups != 5 {
		t.Errorf("expected 5 backups, got %d", wc.MaxBackups)
	}

	wc = LoggingConfig{FilePath: "/tmp/x.log", MaxSizeMB: 2, MaxBackups: 1}.fileWriterConfig()
	if wc.FileName != "/tmp/x.log" || wc.MaxSize != 2*1024*1024 || wc.MaxBackups != 1 {
		t.Errorf("expected configured values, got %+v", wc)
	}
}

func TestLoggingConfig_Level(t *testing.T) {
	if got := (LoggingConfig{}).level(); got != "warn" {
		t.Errorf("expected warn, got %s", got)
	}
	if got := (LoggingConfig{Level: "debug"}).level(); got != "debug" {
		t.Errorf("expected debug, got %s", got)
	}
}

func TestNewLoggerWithOutput_SortsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("zeta", "last").Str("alpha", "first").Msg("ordered")

	line := buf.String()
	a := strings.Index(line, "alpha=first")
	z := strings.Index(line, "zeta=last")
	if a < 0 || z < 0 {
		t.Fatalf("expected both fields in %q", line)
	}
	if a > z {
		t.Errorf("expected fields sorted by key, got %q", line)
	}
}
