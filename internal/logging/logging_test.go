package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.WithField("worksheet", "ws-1").Debug("saved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["worksheet"] != "ws-1" || entry["msg"] != "saved" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %v", logger.GetLevel())
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(Options{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for bad level")
	}
	if _, err := New(Options{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for bad format")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "edusheet.log")
	logger, closer, err := NewFile(Options{}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("to file")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing entry: %q", data)
	}
}
