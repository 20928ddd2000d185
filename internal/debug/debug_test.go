package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogDisabledByDefault(t *testing.T) {
	Close()
	if IsEnabled() {
		t.Fatal("expected logging to be disabled")
	}
	Log("dropped %d", 1)
	Timed("noop")()
}

func TestEnableWriter(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Close()

	Log("rendered %s", "welcome")
	done := Timed("load")
	done()

	out := buf.String()
	for _, want := range []string{"rendered welcome", "load started", "load completed in"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vista.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	Log("hello")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q", data)
	}
	if IsEnabled() {
		t.Error("Close should disable logging")
	}
}
