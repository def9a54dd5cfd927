package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "warn" {
		t.Errorf("expected Level 'warn', got '%s'", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected Format 'console', got '%s'", cfg.Format)
	}
	if cfg.File != "" {
		t.Errorf("expected no log file, got '%s'", cfg.File)
	}
	if cfg.MaxSize != 10 || cfg.MaxBackups != 3 {
		t.Errorf("expected rotation 10MB x 3, got %dMB x %d", cfg.MaxSize, cfg.MaxBackups)
	}
}

func TestConfigTransportLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := Config{Level: tt.level}.TransportLevel()
			if err != nil {
				t.Fatalf("TransportLevel() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("TransportLevel() = %v, want %v", got, tt.expected)
			}
		})
	}

	if _, err := (Config{Level: "loud"}).TransportLevel(); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Debug("loaded", zap.Int("width", 10))
	_ = log.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "loaded" {
		t.Errorf("msg: got %v, want loaded", entry["msg"])
	}
	if entry["width"] != float64(10) {
		t.Errorf("width: got %v, want 10", entry["width"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info entry should be filtered at the default level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Errorf("expected console WARN entry, got %q", out)
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	if _, err := New(Config{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sic.log")

	var stderr bytes.Buffer
	log, err := New(Config{Level: "info", File: path}, &stderr)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Info("to file")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing entry: %q", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("nothing should reach the writer, got %q", stderr.String())
	}
}
