package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is a single line with JSON attributes:
	//   2026-01-02 10:40:35 DEBUG Fetched page -> {"fetch.url":"https://example.com"}
	FormatCompact Format = "compact"

	// FormatJSON is one JSON object per record:
	//   {"time":"2026-01-02T10:40:35","level":"DEBUG","msg":"Fetched page","fetch.url":"..."}
	FormatJSON Format = "json"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// ParseFormat returns the Format named by s, or FormatCompact when s is unknown.
func ParseFormat(s string) Format {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// ParseLevel parses TRACE, DEBUG, INFO, WARN/WARNING or ERROR, case-insensitively.
// The boolean is false, and the level INFO, when s is not recognised.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, true
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// FormatFromEnv reads WEBREADER_LOG_FORMAT, then LOG_FORMAT.
func FormatFromEnv() Format {
	return ParseFormat(firstEnv("WEBREADER_LOG_FORMAT", "LOG_FORMAT"))
}

// LevelFromEnv reads WEBREADER_LOG_LEVEL, then LOG_LEVEL. Unset or unknown
// values yield INFO.
func LevelFromEnv() slog.Level {
	level, _ := ParseLevel(firstEnv("WEBREADER_LOG_LEVEL", "LOG_LEVEL"))
	return level
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func (f Format) String() string {
	return string(f)
}
