package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"debug": LevelDebug, "WARN": LevelWarn, "Error": LevelError} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel accepted an unknown level")
	}
}

func TestInitJSONWithPage(t *testing.T) {
	defer Close()
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelDebug, Output: &buf, Format: "json"}); err != nil {
		t.Fatal(err)
	}
	WithPage(42).Warn("checksum mismatch", "stored", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "checksum mismatch" || entry["page"] != float64(42) || entry["level"] != "WARN" {
		t.Fatalf("entry %v", entry)
	}
}

func TestLevelFilters(t *testing.T) {
	defer Close()
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelWarn, Output: &buf}); err != nil {
		t.Fatal(err)
	}
	Debug("hidden")
	Info("hidden")
	Error("shown", "component", "test")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("output %q", buf.String())
	}
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ibd.log")
	if err := Init(Config{Level: LevelInfo, OutputPath: path}); err != nil {
		t.Fatal(err)
	}
	WithComponent("inspect").Info("started")
	if err := Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "component=inspect") {
		t.Fatalf("log file %q", data)
	}
}

func TestGetLoggerDefault(t *testing.T) {
	Close()
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
}
