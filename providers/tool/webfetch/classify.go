package webfetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type contentClass int

const (
	classPassthrough contentClass = iota
	classJSON
	classHTML
	classRaw
)

// classify picks the processing path for a response. contentType must be
// lowercased. Proxy responses are always passed through.
func classify(fromProxy bool, contentType, body string) contentClass {
	switch {
	case fromProxy,
		strings.Contains(contentType, "text/markdown"),
		strings.Contains(contentType, "text/plain") && !strings.Contains(contentType, "text/html"):
		return classPassthrough
	case strings.Contains(contentType, "application/json"):
		return classJSON
	case strings.Contains(contentType, "text/html"), looksLikeHTML(body):
		return classHTML
	default:
		return classRaw
	}
}

// looksLikeHTML sniffs the first 256 characters for a doctype or html tag.
// A leading byte-order mark and whitespace are skipped.
func looksLikeHTML(body string) bool {
	head := body
	if len(head) > 256 {
		head = head[:256]
	}
	head = strings.ToLower(strings.TrimLeft(head, "\ufeff \t\r\n"))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// prettyJSON re-indents body with two spaces, preserving key order.
func prettyJSON(body string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(body)), "", "  "); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return buf.String(), nil
}
