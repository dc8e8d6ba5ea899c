package webfetch

import (
	"errors"
	"testing"
)

// TestValidateURL tests scheme and host admission
func TestValidateURL(t *testing.T) {
	tests := []struct {
		in         string
		wantHost   string
		wantReason string
	}{
		{in: "https://example.com/path?q=1", wantHost: "example.com"},
		{in: "  http://example.com:8080  ", wantHost: "example.com"},
		{in: "HTTPS://Example.com", wantHost: "Example.com"},
		{in: "ftp://example.com", wantReason: "Only http/https allowed, got 'ftp'"},
		{in: "example.com", wantReason: "Only http/https allowed, got 'none'"},
		{in: "", wantReason: "Only http/https allowed, got 'none'"},
		{in: "http://", wantReason: "Missing domain"},
		{in: "http://:8080", wantReason: "Missing domain"},
		{in: "http://exa mple.com", wantReason: "not a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := ValidateURL(tt.in)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if u.Hostname() != tt.wantHost {
					t.Errorf("Expected host %q, got %q", tt.wantHost, u.Hostname())
				}
				return
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if validationErr.Reason != tt.wantReason {
				t.Errorf("Expected reason %q, got %q", tt.wantReason, validationErr.Reason)
			}
		})
	}
}
