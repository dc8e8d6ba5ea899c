package utils

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type trackingCloser struct {
	io.Reader
	closed bool
	err    error
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return c.err
}

// TestCloseWithLog verifies that the closer is always invoked, including when
// Close itself fails, and that a nil closer is tolerated.
func TestCloseWithLog(t *testing.T) {
	ok := &trackingCloser{Reader: strings.NewReader("")}
	CloseWithLog(ok)
	if !ok.closed {
		t.Error("CloseWithLog should close the resource")
	}

	failing := &trackingCloser{Reader: strings.NewReader(""), err: errors.New("boom")}
	CloseWithLog(failing)
	if !failing.closed {
		t.Error("CloseWithLog should close the resource even when Close fails")
	}

	CloseWithLog(nil)
}

// TestDrainAndClose verifies that unread body bytes are consumed up to the
// limit before the body is closed.
func TestDrainAndClose(t *testing.T) {
	reader := strings.NewReader("unread payload")
	body := &trackingCloser{Reader: reader}

	DrainAndClose(body, 1024)

	if !body.closed {
		t.Error("DrainAndClose should close the body")
	}
	if reader.Len() != 0 {
		t.Errorf("DrainAndClose should consume the body, %d bytes left", reader.Len())
	}

	DrainAndClose(nil, 10)
}
