package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel)
	l.Info("hidden")
	l.Warn("persisting posts failed", "op", "create")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "persisting posts failed") || !strings.Contains(out, "op=create") {
		t.Fatalf("expected structured warn line, got %q", out)
	}
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flick.log")
	l, closer, err := Open(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	l.Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "started") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}
