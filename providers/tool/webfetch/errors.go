package webfetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTimeout is returned when a fetch exceeds its timeout.
	ErrTimeout = errors.New("request timed out")
	// ErrTooManyRedirects is returned when the redirect cap is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrBodyTooLarge is returned when a body exceeds Config.MaxBodyBytes.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrMalformedJSON is returned when a response declared as JSON does not parse.
	ErrMalformedJSON = errors.New("malformed JSON response")
)

// ValidationError reports a URL rejected before any network access.
type ValidationError struct {
	URL    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

// ConnectionKind classifies transport failures other than timeouts and
// redirect loops.
type ConnectionKind string

const (
	ConnDNS      ConnectionKind = "dns"
	ConnRefused  ConnectionKind = "refused"
	ConnReset    ConnectionKind = "reset"
	ConnTLS      ConnectionKind = "tls"
	ConnCanceled ConnectionKind = "canceled"
	ConnOther    ConnectionKind = "other"
)

// ConnectionError is a transport failure. Err is kept for logs and is never
// shown to the caller.
type ConnectionError struct {
	Kind ConnectionKind
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed (%s): %v", e.Kind, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ArgumentError reports tool arguments that could not be decoded.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments: %v", e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// failureCategory names the error class for logs and metrics.
func failureCategory(err error) string {
	var (
		validationErr *ValidationError
		statusErr     *StatusError
		connErr       *ConnectionError
		argErr        *ArgumentError
	)
	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &argErr):
		return "arguments"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrTooManyRedirects):
		return "redirects"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.As(err, &connErr):
		return "connection_" + string(connErr.Kind)
	default:
		return "unknown"
	}
}
