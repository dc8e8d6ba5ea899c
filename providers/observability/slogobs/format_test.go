package slogobs

import (
	"log/slog"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":    FormatJSON,
		" JSON ":  FormatJSON,
		"compact": FormatCompact,
		"pretty":  FormatCompact,
		"":        FormatCompact,
	}
	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"trace", LevelTrace, true},
		{"DEBUG", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestFromEnv tests the WEBREADER_* variables and their LOG_* fallbacks.
func TestFromEnv(t *testing.T) {
	t.Setenv("WEBREADER_LOG_LEVEL", "")
	t.Setenv("WEBREADER_LOG_FORMAT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	if LevelFromEnv() != slog.LevelInfo || FormatFromEnv() != FormatCompact {
		t.Error("expected INFO/compact defaults")
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	if LevelFromEnv() != slog.LevelDebug || FormatFromEnv() != FormatJSON {
		t.Error("expected LOG_* fallbacks to apply")
	}

	t.Setenv("WEBREADER_LOG_LEVEL", "error")
	t.Setenv("WEBREADER_LOG_FORMAT", "compact")
	if LevelFromEnv() != slog.LevelError || FormatFromEnv() != FormatCompact {
		t.Error("expected WEBREADER_* to take precedence")
	}
}
