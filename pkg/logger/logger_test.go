package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// capture redirects package output into a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	mu.Lock()
	prev := logger
	logger = log.New(&buf, "", 0)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	})
	return &buf
}

func TestInitLevels(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		"warn":    "warn",
		"Warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		Init(in)
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): level = %q, want %q", in, got, want)
		}
	}
	Init("info")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	Init("warn")
	defer Init("info")

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("visible %d", 3)
	Errorf("visible %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("below-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] visible 3") || !strings.Contains(out, "[ERROR] visible 4") {
		t.Fatalf("expected warn and error lines, got %q", out)
	}
}

func TestHeaderCarriesLevel(t *testing.T) {
	buf := capture(t)
	Init("debug")
	defer Init("info")

	Debug("single")
	if !strings.Contains(buf.String(), "[DEBUG] single") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
