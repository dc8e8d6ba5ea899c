package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs any close error at warn level. It is meant
// for deferred cleanup of HTTP response bodies, where a close failure must be
// visible but must not override the error the caller is already returning.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}

// DrainAndClose discards up to limit bytes of any unread body before closing
// it, so the underlying keep-alive connection can be returned to the pool.
func DrainAndClose(body io.ReadCloser, limit int64) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, limit))
	CloseWithLog(body)
}
