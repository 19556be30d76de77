package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("shell", Warn, WithWriter(&buf))

	l.Info("hidden %d", 1)
	l.Warn("visible %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info message passed a Warn logger: %q", out)
	}
	if !strings.Contains(out, "WARN  [shell] visible 2") {
		t.Errorf("Unexpected output: %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("Writer output must not contain colors: %q", out)
	}
}

func TestLogger_NamedAndJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("shell", Debug, WithWriter(&buf), WithJSON()).Named("session")

	l.Debug("entered %s", "localhost")

	out := buf.String()
	if !strings.Contains(out, `"service":"shell/session"`) || !strings.Contains(out, `"message":"entered localhost"`) {
		t.Errorf("Unexpected JSON output: %q", out)
	}
}

func TestLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("", Debug, WithWriter(&buf))

	code := -1
	l.exit = func(c int) { code = c }
	l.Fatal("boom")

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}

func TestParse(t *testing.T) {
	if level, err := Parse("warning"); err != nil || level != Warn {
		t.Errorf("Parse(warning) = %v, %v", level, err)
	}
	if _, err := Parse("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}
