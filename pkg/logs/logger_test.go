package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"

	"tsmini/pkg/configs"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestHandlerAddsFile(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := WithFile(context.Background(), "prog.ts")
		logger.InfoContext(ctx, "compiled", "items", 3)
		logger.Info("no file")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %q", buf.String())
		}
		if !strings.Contains(lines[0], "tsmini.file=prog.ts") {
			t.Fatalf("got %v", lines[0])
		}
		if strings.Contains(lines[1], "tsmini.file") {
			t.Fatalf("got %v", lines[1])
		}
	})
}

func TestLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
		dscope.Provide(Level(slog.LevelWarn)),
	).Call(func(
		logger Logger,
	) {
		logger.Info("hidden")
		logger.Warn("shown")
		if strings.Contains(buf.String(), "hidden") {
			t.Fatalf("got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "shown") {
			t.Fatalf("got %q", buf.String())
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
			}
			if err == nil && slog.Level(got) != tt.want {
				t.Errorf("got %v, want %v", slog.Level(got), tt.want)
			}
		})
	}
}

func TestWrapFile(t *testing.T) {
	base := errors.New("boom")
	if err := WrapFile(context.Background(), base); err != base {
		t.Fatalf("got %v", err)
	}
	err := WrapFile(WithFile(context.Background(), "a.ts"), base)
	if !errors.Is(err, base) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "file: a.ts") {
		t.Fatalf("got %v", err)
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("tsmini.file"); got != "TSMINI_FILE" {
		t.Fatalf("got %v", got)
	}
}

func TestConfiguredLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		new(configs.Module),
		dscope.Provide(configs.NewLoader([]string{"../configs/testdata/base.cue"}, configs.Schema)),
	).Fork(
		ConfiguredLevel,
		func() Writer {
			return buf
		},
	).Call(func(
		level Level,
		logger Logger,
	) {
		if slog.Level(level) != slog.LevelDebug {
			t.Fatalf("got %v", slog.Level(level))
		}
		logger.Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Fatalf("got %q", buf.String())
		}
	})
}
