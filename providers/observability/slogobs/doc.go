// Package slogobs provides an observability.Provider implementation backed by
// Go's standard library log/slog package.
//
// Spans, span events and metric updates are emitted as debug records; regular
// log calls keep their level. Output goes through [Handler], which writes
// either a compact single-line format for terminals or one JSON object per
// line for log collectors. The main entry point is [New]; format, level and
// destination can be set with [WithFormat], [WithLevel], [WithOutput],
// [WithColors] and [WithLogger], or through the WEBREADER_LOG_FORMAT and
// WEBREADER_LOG_LEVEL environment variables.
package slogobs
