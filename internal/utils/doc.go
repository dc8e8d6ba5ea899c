// Package utils provides small shared helpers used across the webreader
// internals: response-body cleanup that never masks the primary error, and
// rune-aware string shortening for log previews.
package utils
