package webfetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/leofalp/webreader/internal/utils"
)

var errRedirectCap = errors.New("redirect cap reached")

// page is a successful (2xx) response with its body decoded to UTF-8.
type page struct {
	status      int
	finalURL    *url.URL
	redirected  bool
	header      http.Header
	contentType string
	body        string
}

func newHTTPClient(cfg Config) *http.Client {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: cfg.Timeout,
			IdleConnTimeout:       IdleConnTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
	}
	client.CheckRedirect = redirectPolicy(cfg.MaxRedirects)
	return client
}

// redirectPolicy allows at most max redirects per request.
func redirectPolicy(max int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > max {
			return errRedirectCap
		}
		return nil
	}
}

// get performs one GET and returns the decoded 2xx response. Every non-2xx
// status and transport failure is mapped onto the package's error types.
func (f *Fetcher) get(ctx context.Context, target string, accept string) (*page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &ValidationError{URL: target, Reason: "not a valid URL"}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.transportError(req.URL.Hostname(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.DrainAndClose(resp.Body, 64*1024)
		return nil, &StatusError{Code: resp.StatusCode}
	}
	defer utils.CloseWithLog(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, f.transportError(req.URL.Hostname(), err)
	}
	if int64(len(raw)) > f.cfg.MaxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.cfg.MaxBodyBytes)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	return &page{
		status:      resp.StatusCode,
		finalURL:    resp.Request.URL,
		redirected:  resp.Request.URL.String() != req.URL.String(),
		header:      resp.Header,
		contentType: contentType,
		body:        decodeBody(raw, contentType),
	}, nil
}

// decodeBody converts raw to UTF-8 using a BOM, the declared charset or an
// HTML meta tag. Bodies without a declared charset that are already valid
// UTF-8 are kept as-is.
func decodeBody(raw []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(raw)) {
		return string(raw)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func (f *Fetcher) transportError(host string, err error) error {
	if errors.Is(err, errRedirectCap) {
		return fmt.Errorf("%w (>%d)", ErrTooManyRedirects, f.cfg.MaxRedirects)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return &ConnectionError{Kind: ConnCanceled, Host: host, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return &ConnectionError{Kind: connectionKind(err), Host: host, Err: err}
}

func connectionKind(err error) ConnectionKind {
	var (
		dnsErr       *net.DNSError
		certErr      *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &dnsErr):
		return ConnDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, io.ErrUnexpectedEOF):
		return ConnReset
	case errors.As(err, &certErr), errors.As(err, &recordErr),
		errors.As(err, &authorityErr), errors.As(err, &hostnameErr), errors.As(err, &invalidErr):
		return ConnTLS
	default:
		return ConnOther
	}
}
