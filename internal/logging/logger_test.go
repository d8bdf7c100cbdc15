package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersNoopBeforeInit(t *testing.T) {
	Logger = nil
	Info("ignored")
	Warn("ignored", "k", "v")
	if WithPrefix("x") != nil {
		t.Error("WithPrefix should return nil before Init")
	}
}

func TestInitLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "warn")
	defer func() { Logger = nil }()

	Info("hidden message")
	Warn("visible message", "count", 3)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "count=3") {
		t.Errorf("expected warn line with keyvals, got %q", out)
	}
}

func TestParseLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "shouting")
	defer func() { Logger = nil }()

	Debug("debug line")
	Info("info line")
	if strings.Contains(buf.String(), "debug line") {
		t.Error("unknown level should fall back to info")
	}
	if !strings.Contains(buf.String(), "info line") {
		t.Error("expected info line")
	}
}

func TestInitFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := InitFile(dir, "debug"); err != nil {
		t.Fatalf("InitFile failed: %v", err)
	}
	Info("to file")
	Close()
	Logger = nil

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one log file, got %v (err %v)", entries, err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing message: %q", data)
	}
}
