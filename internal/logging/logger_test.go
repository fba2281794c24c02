package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{"debug", "debug", true},
		{"info", "info", false},
		{"invalid falls back to info", "shouting", false},
		{"empty falls back to info", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Init(Config{Level: tt.level, Output: &buf})
			defer Init(DefaultConfig())

			Debug().Msg("probe")
			if got := strings.Contains(buf.String(), "probe"); got != tt.wantDebug {
				t.Errorf("Expected debug output %v, got %v (%q)", tt.wantDebug, got, buf.String())
			}
		})
	}
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(DefaultConfig())

	log := WithRun("abc-123", "customers")
	log.Info().Msg("built")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"abc-123"`) || !strings.Contains(out, `"report":"customers"`) {
		t.Errorf("Expected run fields in JSON output, got %q", out)
	}
}
