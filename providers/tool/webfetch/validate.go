package webfetch

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL accepts only absolute http and https URLs with a host.
// Surrounding whitespace is ignored. It never touches the network.
func ValidateURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &ValidationError{URL: raw, Reason: "not a valid URL"}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		scheme := u.Scheme
		if scheme == "" {
			scheme = "none"
		}
		return nil, &ValidationError{URL: raw, Reason: fmt.Sprintf("Only http/https allowed, got '%s'", scheme)}
	}

	if u.Host == "" || u.Hostname() == "" {
		return nil, &ValidationError{URL: raw, Reason: "Missing domain"}
	}

	return u, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
