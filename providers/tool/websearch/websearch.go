package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leofalp/webreader/core/cost"
	"github.com/leofalp/webreader/internal/utils"
	"github.com/leofalp/webreader/providers/observability"
	"github.com/leofalp/webreader/providers/tool"
	"github.com/leofalp/webreader/providers/tool/webfetch"
)

const (
	// ToolName is the name under which the search tool is advertised.
	ToolName = "web_search"
	// DefaultBaseURL is the Brave Search API root.
	DefaultBaseURL = "https://api.search.brave.com/res/v1"
	// DefaultTimeout bounds one search request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxResults is used when the caller gives no count.
	DefaultMaxResults = 5
	// MaxCount is the largest count accepted per query.
	MaxCount = 10

	maxErrorBody = 64 * 1024
	maxBody      = 5 * 1024 * 1024
)

var (
	// ErrMissingAPIKey is returned when no Brave API key is configured.
	ErrMissingAPIKey = errors.New("BRAVE_API_KEY not configured")
	// ErrTimeout is returned when the search API does not answer in time.
	ErrTimeout = errors.New("search request timed out")
)

// StatusError reports a non-200 answer from the search API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Config configures a Searcher. Zero fields take their defaults.
type Config struct {
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxResults int           `yaml:"max_results"`
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxResults > MaxCount {
		c.MaxResults = MaxCount
	}
	return c
}

// Input holds the query parameters of the web_search tool.
type Input struct {
	Query string `json:"query" jsonschema:"required,description=Search query"`
	Count int    `json:"count,omitempty" jsonschema:"minimum=1,maximum=10,description=Results (1-10)"`
}

// SearchResult is a single web result with its snippet stripped of markup.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Age         string `json:"age,omitempty"`
}

// Response is the subset of the Brave API answer the tool reads.
type Response struct {
	Type string      `json:"type"`
	Web  *WebResults `json:"web,omitempty"`
}

// WebResults holds the organic web results.
type WebResults struct {
	Type    string      `json:"type"`
	Results []WebResult `json:"results"`
}

// WebResult is one organic result as returned by the API.
type WebResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age,omitempty"`
}

// Searcher calls the search API. It is safe for concurrent use.
type Searcher struct {
	cfg    Config
	client *http.Client
	obs    observability.Provider
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithObserver sets the observability provider.
func WithObserver(p observability.Provider) Option {
	return func(s *Searcher) {
		if p != nil {
			s.obs = p
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) {
		if c != nil {
			s.client = c
		}
	}
}

// New creates a Searcher.
func New(cfg Config, opts ...Option) *Searcher {
	cfg = cfg.WithDefaults()
	s := &Searcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		obs:    observability.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// count clamps the requested count to 1..MaxCount, using the configured
// default when none is given.
func (s *Searcher) count(requested int) int {
	n := requested
	if n == 0 {
		n = s.cfg.MaxResults
	}
	return min(max(n, 1), MaxCount)
}

// Search runs one query and returns at most count cleaned results.
func (s *Searcher) Search(ctx context.Context, in Input) ([]SearchResult, error) {
	query := strings.TrimSpace(in.Query)
	n := s.count(in.Count)

	ctx, span := s.obs.StartSpan(ctx, observability.SpanSearch,
		observability.String(observability.AttrSearchQuery, query),
		observability.Int(observability.AttrSearchCount, n),
	)
	defer span.End()

	results, err := s.search(ctx, query, n)
	outcome := "success"
	if err != nil {
		outcome = "failure"
		span.RecordError(err)
		span.SetStatus(observability.StatusError, err.Error())
		s.obs.Warn(ctx, "Search failed",
			observability.String(observability.AttrSearchQuery, query),
			observability.Error(err),
		)
	} else {
		span.SetAttributes(observability.Int(observability.AttrSearchResults, len(results)))
		span.SetStatus(observability.StatusOK, "")
		s.obs.Debug(ctx, "Search returned results",
			observability.String(observability.AttrSearchQuery, query),
			observability.Int(observability.AttrSearchResults, len(results)),
		)
	}
	s.obs.Counter(observability.MetricSearchRequests).Add(ctx, 1,
		observability.String(observability.AttrSearchOutcome, outcome),
	)
	return results, err
}

func (s *Searcher) search(ctx context.Context, query string, n int) ([]SearchResult, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	params := url.Values{}
	params.Add("q", query)
	params.Add("count", strconv.Itoa(n))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("error making request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		utils.DrainAndClose(resp.Body, maxErrorBody)
		return nil, &StatusError{Code: resp.StatusCode}
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var apiResponse Response
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	var results []SearchResult
	if apiResponse.Web != nil {
		for _, r := range apiResponse.Web.Results {
			if len(results) == n {
				break
			}
			results = append(results, SearchResult{
				Title:       webfetch.StripTags(r.Title),
				URL:         r.URL,
				Description: webfetch.StripTags(r.Description),
				Age:         r.Age,
			})
		}
	}
	return results, nil
}

// FormatResults renders results as numbered title, URL and snippet lines.
func FormatResults(query string, results []SearchResult) string {
	if len(results) == 0 {
		return "No results for: " + query
	}

	lines := []string{"Results for: " + query + "\n"}
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s", i+1, r.Title, r.URL))
		if r.Description != "" {
			lines = append(lines, "   "+r.Description)
		}
	}
	return strings.Join(lines, "\n")
}

const invalidArguments = "web_search failed: invalid arguments\n" +
	"Error: The tool arguments could not be decoded\n" +
	"Suggestions:\n" +
	`  - Pass a JSON object such as {"query": "golang generics"}`

// FormatError renders a search failure as a short text message.
func FormatError(query string, err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return "web_search failed: BRAVE_API_KEY not configured.\n" +
			"Suggestions:\n" +
			"  - Set BRAVE_API_KEY in your config or environment\n" +
			"  - Use web_fetch directly if you already have a URL"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("web_search failed for query '%s': HTTP %d", query, statusErr.Code)
	case errors.Is(err, ErrTimeout):
		return fmt.Sprintf("web_search timed out for query '%s'. Try again later.", query)
	default:
		return fmt.Sprintf("web_search failed for query '%s': the search API could not be reached", query)
	}
}

// Call returns the tool answer for in. The error is always nil.
func (s *Searcher) Call(ctx context.Context, in Input) (string, error) {
	results, err := s.Search(ctx, in)
	if err != nil {
		return FormatError(strings.TrimSpace(in.Query), err), nil
	}
	return FormatResults(strings.TrimSpace(in.Query), results), nil
}

// NewWebSearchTool wraps s as the web_search tool.
func NewWebSearchTool(s *Searcher) *tool.Tool[Input, string] {
	return tool.NewTool[Input, string](
		ToolName,
		s.Call,
		tool.WithDescription("Search the web. Returns titles, URLs, and snippets."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.005, // $5 per 1000 queries
			Currency:                "USD",
			CostDescription:         "per search query",
			Accuracy:                0.88,
			AverageDurationInMillis: 800,
		}),
		tool.WithFailureFormatter(func(string, error) string {
			return invalidArguments
		}),
	)
}
