package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" Error ", zerolog.ErrorLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer

	log := zerolog.New(&buf).Level(parseLevel("info")).With().Timestamp().Logger()
	log.Info().Str("account", "ref-1").Msg("balance updated")

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected json output, got %q", out)
	}
	if !strings.Contains(out, `"account":"ref-1"`) {
		t.Fatalf("expected structured field in output, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := zerolog.New(&buf).Level(parseLevel("error"))
	log.Info().Msg("dropped")
	log.Error().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("expected error message in output, got %q", out)
	}
}
