package webfetch

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"
)

// TestFormatError tests headline, detail and suggestions per failure kind
func TestFormatError(t *testing.T) {
	cfg := DefaultConfig()
	target := "https://example.com/page"
	secret := errors.New("dial tcp 10.0.0.1:443: secret internal detail")

	tests := []struct {
		name   string
		target string
		err    error
		want   []string
	}{
		{
			name:   "validation",
			target: "ftp://example.com",
			err:    &ValidationError{URL: "ftp://example.com", Reason: "Only http/https allowed, got 'ftp'"},
			want: []string{
				"web_fetch failed for ftp://example.com: invalid URL\n",
				"Error: URL validation failed: Only http/https allowed, got 'ftp'\n",
				"  - Check that the URL starts with http:// or https://",
			},
		},
		{
			name:   "forbidden",
			target: target,
			err:    &StatusError{Code: 403},
			want: []string{
				"web_fetch failed for https://example.com/page: access denied (HTTP 403)",
				"  - Try fetching via https://r.jina.ai/https://example.com/page",
				"  - Use web_search",
				"  - Use the summarize skill if available",
			},
		},
		{
			name:   "not found",
			target: target,
			err:    &StatusError{Code: 404},
			want:   []string{"Error: HTTP 404 Not Found", "  - Double-check the URL for typos", "  - Use web_search to find the correct page"},
		},
		{
			name:   "rate limited",
			target: target,
			err:    &StatusError{Code: 429},
			want:   []string{"rate limited (HTTP 429)", "  - Wait a moment and try again"},
		},
		{
			name:   "server error",
			target: target,
			err:    &StatusError{Code: 502},
			want:   []string{": HTTP 502\n", "Error: HTTP 502 Bad Gateway", "  - Try again later", "  - Check if the URL is accessible"},
		},
		{
			name:   "unmapped status",
			target: target,
			err:    &StatusError{Code: 418},
			want:   []string{"Error: HTTP 418 I'm a teapot", "  - Use web_search to find cached/alternative content"},
		},
		{
			name:   "timeout",
			target: target,
			err:    fmt.Errorf("%w: %w", ErrTimeout, secret),
			want: []string{
				"Error: Connection timed out after 30s",
				"  - The site may be slow or blocking automated requests",
				"  - Try fetching via https://r.jina.ai/https://example.com/page for better access",
			},
		},
		{
			name:   "redirects",
			target: target,
			err:    fmt.Errorf("%w (>5)", ErrTooManyRedirects),
			want:   []string{"Error: Too many redirects (>5)", "  - The URL may be in a redirect loop", "  - Try the final destination URL directly"},
		},
		{
			name:   "body too large",
			target: target,
			err:    fmt.Errorf("%w: more than 10 bytes", ErrBodyTooLarge),
			want:   []string{"response too large", "Response body exceeds 10485760 bytes"},
		},
		{
			name:   "malformed json",
			target: target,
			err:    fmt.Errorf("%w: %w", ErrMalformedJSON, secret),
			want:   []string{"malformed JSON", "  - Try again later"},
		},
		{
			name:   "dns",
			target: target,
			err:    &ConnectionError{Kind: ConnDNS, Host: "example.com", Err: secret},
			want:   []string{"connection failed", "Error: Could not resolve host example.com", "  - Double-check the domain name"},
		},
		{
			name:   "refused",
			target: target,
			err:    &ConnectionError{Kind: ConnRefused, Host: "example.com", Err: syscall.ECONNREFUSED},
			want:   []string{"Error: Connection to example.com was refused"},
		},
		{
			name:   "arguments",
			target: "",
			err:    &ArgumentError{Err: secret},
			want:   []string{"web_fetch failed: invalid arguments\n", `{"url": "https://example.com"}`},
		},
		{
			name:   "unknown",
			target: target,
			err:    secret,
			want:   []string{"request failed", "Error: The request could not be completed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := cfg.FormatError(tt.target, tt.err)

			if !strings.Contains(msg, "\nSuggestions:\n  - ") {
				t.Errorf("Missing suggestions block:\n%s", msg)
			}
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Missing %q in:\n%s", want, msg)
				}
			}
			if strings.Contains(msg, "secret internal detail") {
				t.Errorf("Raw error leaked into message:\n%s", msg)
			}
		})
	}
}

// TestFailureCategory tests the log and metric categories
func TestFailureCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ValidationError{}, "validation"},
		{&ArgumentError{Err: errors.New("x")}, "arguments"},
		{&StatusError{Code: 500}, "status"},
		{fmt.Errorf("%w: x", ErrTimeout), "timeout"},
		{ErrTooManyRedirects, "redirects"},
		{ErrBodyTooLarge, "body_too_large"},
		{ErrMalformedJSON, "malformed_json"},
		{&ConnectionError{Kind: ConnTLS}, "connection_tls"},
		{errors.New("other"), "unknown"},
	}

	for _, tt := range tests {
		if got := failureCategory(tt.err); got != tt.want {
			t.Errorf("failureCategory(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
