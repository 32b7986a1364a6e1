package logx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.WarnLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"off", zerolog.Disabled},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "info", Output: &buf, JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	l.Debug().Msg("hidden")
	l.Info().Str("path", "a.py").Msg("rewritten")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at info level: %s", out)
	}
	if !strings.Contains(out, `"path":"a.py"`) || !strings.Contains(out, `"message":"rewritten"`) {
		t.Errorf("missing info record: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Options{Level: "debug", Output: &buf, JSON: true})
	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Debug().Msg("from ctx")
	if !strings.Contains(buf.String(), "from ctx") {
		t.Fatalf("logger not propagated through context: %q", buf.String())
	}

	// пустой контекст не должен паниковать
	FromContext(context.Background()).Error().Msg("dropped")
}
