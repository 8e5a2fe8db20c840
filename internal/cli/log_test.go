package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("rendered") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("computed layout") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("computed layout") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("cache write failed") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("wrote artifacts", "files", 2)

	out := buf.String()
	for _, want := range []string{"wrote artifacts", "files=2", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext did not return the installed logger")
	}
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should fall back to log.Default()")
	}
	if loggerFromContext(nil) != log.Default() {
		t.Error("nil context should fall back to log.Default()")
	}
}

func TestCommandLogger(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "render"}
	cmd.SetContext(withLogger(context.Background(), newLogger(&buf, log.InfoLevel)))

	commandLogger(cmd).Info("computed layout")
	if !strings.Contains(buf.String(), "cmd=render") {
		t.Errorf("output %q missing cmd=render", buf.String())
	}
}
