package webfetch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// failure is the intermediate form of an error message.
type failure struct {
	reason      string
	detail      string
	suggestions []string
}

var defaultSuggestions = []string{
	"Try again later",
	"Use web_search to find cached/alternative content",
	"Check if the URL is accessible",
}

// FormatError renders err as the plain-text failure message returned to the
// caller: a headline naming target, an "Error:" line and a list of
// suggestions. Raw transport errors are never included.
func (c Config) FormatError(target string, err error) string {
	target = strings.TrimSpace(target)
	f := c.describe(target, err)

	var b strings.Builder
	if target == "" {
		fmt.Fprintf(&b, "web_fetch failed: %s\n", f.reason)
	} else {
		fmt.Fprintf(&b, "web_fetch failed for %s: %s\n", target, f.reason)
	}
	fmt.Fprintf(&b, "Error: %s\n", f.detail)
	b.WriteString("Suggestions:")
	for _, s := range f.suggestions {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return b.String()
}

func (c Config) describe(target string, err error) failure {
	var (
		validationErr *ValidationError
		argErr        *ArgumentError
		statusErr     *StatusError
		connErr       *ConnectionError
	)

	switch {
	case errors.As(err, &argErr):
		return failure{
			reason: "invalid arguments",
			detail: "The tool arguments could not be decoded",
			suggestions: []string{
				`Pass a JSON object such as {"url": "https://example.com"}`,
				`Set extractMode to "markdown" or "text"`,
			},
		}

	case errors.As(err, &validationErr):
		return failure{
			reason: "invalid URL",
			detail: "URL validation failed: " + validationErr.Reason,
			suggestions: []string{
				"Check that the URL starts with http:// or https://",
				"Ensure the URL has a valid domain",
			},
		}

	case errors.As(err, &statusErr):
		return c.describeStatus(target, statusErr.Code)

	case errors.Is(err, ErrTimeout):
		return failure{
			reason: "timeout",
			detail: fmt.Sprintf("Connection timed out after %s", c.Timeout),
			suggestions: []string{
				"Try again later",
				"The site may be slow or blocking automated requests",
				fmt.Sprintf("Try fetching via %s for better access", c.ProxyURL(target)),
			},
		}

	case errors.Is(err, ErrTooManyRedirects):
		return failure{
			reason: "too many redirects",
			detail: fmt.Sprintf("Too many redirects (>%d)", c.MaxRedirects),
			suggestions: []string{
				"The URL may be in a redirect loop",
				"Try the final destination URL directly",
			},
		}

	case errors.Is(err, ErrBodyTooLarge):
		return failure{
			reason: "response too large",
			detail: fmt.Sprintf("Response body exceeds %d bytes", c.MaxBodyBytes),
			suggestions: []string{
				"Fetch a more specific page or a smaller document",
				"Use web_search to find a summary of the content",
			},
		}

	case errors.Is(err, ErrMalformedJSON):
		return failure{
			reason:      "malformed JSON",
			detail:      "The server declared a JSON response but the body could not be parsed",
			suggestions: defaultSuggestions,
		}

	case errors.As(err, &connErr):
		return failure{
			reason:      "connection failed",
			detail:      connectionDetail(connErr),
			suggestions: connectionSuggestions(connErr.Kind),
		}

	default:
		return failure{
			reason:      "request failed",
			detail:      "The request could not be completed",
			suggestions: defaultSuggestions,
		}
	}
}

func (c Config) describeStatus(target string, code int) failure {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return failure{
			reason: fmt.Sprintf("access denied (HTTP %d)", code),
			detail: fmt.Sprintf("HTTP %d %s - the site requires authentication or blocks automated requests", code, http.StatusText(code)),
			suggestions: []string{
				fmt.Sprintf("Try fetching via %s", c.ProxyURL(target)),
				"Use web_search to find the same content elsewhere",
				"Use the summarize skill if available",
			},
		}
	case http.StatusNotFound:
		return failure{
			reason: "page not found (HTTP 404)",
			detail: "HTTP 404 Not Found",
			suggestions: []string{
				"Double-check the URL for typos",
				"Use web_search to find the correct page",
			},
		}
	case http.StatusTooManyRequests:
		return failure{
			reason: "rate limited (HTTP 429)",
			detail: "HTTP 429 Too Many Requests",
			suggestions: []string{
				"Wait a moment and try again",
				"Use web_search to find cached/alternative content",
			},
		}
	default:
		detail := fmt.Sprintf("HTTP %d", code)
		if text := http.StatusText(code); text != "" {
			detail += " " + text
		}
		return failure{
			reason:      fmt.Sprintf("HTTP %d", code),
			detail:      detail,
			suggestions: defaultSuggestions,
		}
	}
}

func connectionDetail(e *ConnectionError) string {
	host := e.Host
	if host == "" {
		host = "the server"
	}
	switch e.Kind {
	case ConnDNS:
		return fmt.Sprintf("Could not resolve host %s", host)
	case ConnRefused:
		return fmt.Sprintf("Connection to %s was refused", host)
	case ConnReset:
		return fmt.Sprintf("Connection to %s was reset", host)
	case ConnTLS:
		return fmt.Sprintf("TLS handshake with %s failed", host)
	case ConnCanceled:
		return "The request was canceled"
	default:
		return fmt.Sprintf("Could not connect to %s", host)
	}
}

func connectionSuggestions(kind ConnectionKind) []string {
	switch kind {
	case ConnDNS:
		return []string{
			"Double-check the domain name for typos",
			"Use web_search to find the correct site",
		}
	case ConnTLS:
		return []string{
			"The site's certificate may be invalid or expired",
			"Try the http:// version of the URL if the site offers one",
		}
	case ConnCanceled:
		return []string{"Retry the request"}
	default:
		return defaultSuggestions
	}
}
