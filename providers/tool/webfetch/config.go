package webfetch

import (
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds each fetch, primary or proxy.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the number of redirects followed before failing.
	DefaultMaxRedirects = 5
	// DefaultUserAgent identifies the fetcher to origin servers.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_2) AppleWebKit/537.36 (KHTML, like Gecko) webreader/1.0"
	// DefaultMaxChars is the output cap when the caller does not give one.
	DefaultMaxChars = 50000
	// MinMaxChars is the smallest maxChars advertised in the tool schema.
	MinMaxChars = 100
	// DefaultMaxBodyBytes caps how much of a response body is read (10MB).
	DefaultMaxBodyBytes = 10 * 1024 * 1024
	// DefaultProxyBaseURL is prefixed to the original URL for proxy fetches.
	DefaultProxyBaseURL = "https://r.jina.ai/"

	// DialTimeout is the maximum time to wait for a TCP connection.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for the TLS handshake.
	TLSHandshakeTimeout = 10 * time.Second
	// IdleConnTimeout is how long an idle connection is kept for reuse.
	IdleConnTimeout = 90 * time.Second
)

// Config holds every tunable of the fetch pipeline. Zero fields take their
// defaults in [Config.WithDefaults].
type Config struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxRedirects    int           `yaml:"max_redirects"`
	UserAgent       string        `yaml:"user_agent"`
	DefaultMaxChars int           `yaml:"default_max_chars"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	Proxy           ProxyConfig   `yaml:"proxy"`
	Quality         QualityConfig `yaml:"quality"`
}

// ProxyConfig describes the rendering proxy used for script-heavy pages.
type ProxyConfig struct {
	// BaseURL is prefixed verbatim to the original URL.
	BaseURL string `yaml:"base_url"`
	// Domains are hosts whose responses are already clean text. Requests to
	// them skip extraction and never trigger the fallback. Defaults to the
	// host of BaseURL.
	Domains []string `yaml:"domains"`
	// Disabled turns the fallback fetch off; sparse extractions are returned as-is.
	Disabled bool `yaml:"disabled"`
}

// QualityConfig holds the thresholds of the low-quality extraction check.
type QualityConfig struct {
	// MinChars is the extracted length below which a large page is suspicious.
	MinChars int `yaml:"min_chars"`
	// MinHTMLSize is the raw HTML length below which no page is flagged.
	MinHTMLSize int `yaml:"min_html_size"`
	// MinRatio is the extracted/raw length ratio below which a large page is flagged.
	MinRatio float64 `yaml:"min_ratio"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.DefaultMaxChars <= 0 {
		c.DefaultMaxChars = DefaultMaxChars
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	c.Proxy = c.Proxy.withDefaults()
	c.Quality = c.Quality.withDefaults()
	return c
}

func (p ProxyConfig) withDefaults() ProxyConfig {
	if strings.TrimSpace(p.BaseURL) == "" {
		p.BaseURL = DefaultProxyBaseURL
	}
	if len(p.Domains) == 0 {
		if host := hostOf(p.BaseURL); host != "" {
			p.Domains = []string{host}
		}
	}
	domains := make([]string, 0, len(p.Domains))
	for _, d := range p.Domains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains = append(domains, d)
		}
	}
	p.Domains = domains
	return p
}

func (q QualityConfig) withDefaults() QualityConfig {
	if q.MinChars <= 0 {
		q.MinChars = 200
	}
	if q.MinHTMLSize <= 0 {
		q.MinHTMLSize = 5000
	}
	if q.MinRatio <= 0 {
		q.MinRatio = 0.05
	}
	return q
}
