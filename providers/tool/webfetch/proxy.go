package webfetch

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/leofalp/webreader/providers/observability"
)

// ProxyURL builds the rendering-proxy URL for target, e.g.
// "https://r.jina.ai/https://example.com/app".
func (c Config) ProxyURL(target string) string {
	return c.Proxy.BaseURL + strings.TrimSpace(target)
}

// isProxyHost reports whether u is served by one of the configured proxy domains.
func (c Config) isProxyHost(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	for _, d := range c.Proxy.Domains {
		if host == d {
			return true
		}
	}
	return false
}

// fetchViaProxy re-fetches target through the rendering proxy. It succeeds
// only with a 2xx response whose trimmed body is longer than
// Quality.MinChars; every failure is logged and reported as false.
func (f *Fetcher) fetchViaProxy(ctx context.Context, target string) (string, bool) {
	proxyURL := f.cfg.ProxyURL(target)

	p, err := f.get(ctx, proxyURL, "text/plain")
	if err != nil {
		f.obs.Warn(ctx, "Proxy fallback failed",
			observability.String(observability.AttrFetchURL, target),
			observability.String(observability.AttrFetchFailure, failureCategory(err)),
			observability.Error(err),
		)
		return "", false
	}

	text := strings.TrimSpace(p.body)
	if n := utf8.RuneCountInString(text); n <= f.cfg.Quality.MinChars {
		f.obs.Warn(ctx, "Proxy fallback returned too little content",
			observability.String(observability.AttrFetchURL, target),
			observability.Int(observability.AttrFetchLength, n),
		)
		return "", false
	}

	f.obs.Debug(ctx, "Proxy fallback succeeded",
		observability.String(observability.AttrFetchURL, target),
		observability.Int(observability.AttrFetchLength, utf8.RuneCountInString(text)),
	)
	return text, true
}
