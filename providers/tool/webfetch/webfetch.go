package webfetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/leofalp/webreader/core/cost"
	"github.com/leofalp/webreader/providers/observability"
	"github.com/leofalp/webreader/providers/tool"
)

// ToolName is the name under which the fetch tool is advertised.
const ToolName = "web_fetch"

const primaryAccept = "text/html,application/xhtml+xml,application/json,text/markdown,text/plain;q=0.9,*/*;q=0.8"

// Input is the argument object of the web_fetch tool.
type Input struct {
	URL         string `json:"url" jsonschema:"required" description:"The http or https URL to fetch"`
	ExtractMode string `json:"extractMode,omitempty" jsonschema:"enum=markdown,enum=text" description:"Render HTML pages as markdown (default) or plain text"`
	MaxChars    int    `json:"maxChars,omitempty" jsonschema:"minimum=100" description:"Maximum number of characters to return (default 50000)"`
}

// Result is the success payload of a fetch.
type Result struct {
	URL       string        `json:"url"`
	FinalURL  string        `json:"finalUrl"`
	Status    int           `json:"status"`
	Extractor ExtractorKind `json:"extractor"`
	Truncated bool          `json:"truncated"`
	Length    int           `json:"length"`
	Text      string        `json:"text"`
	LLMsTxt   string        `json:"llms_txt,omitempty"`
}

// JSON encodes r without escaping HTML characters in the text.
func (r *Result) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Outcome is either a Result or a failure Message, never both.
type Outcome struct {
	Result  *Result
	Message string
}

// OK reports whether the fetch succeeded.
func (o Outcome) OK() bool {
	return o.Result != nil
}

// String returns the JSON result on success and the failure message otherwise.
func (o Outcome) String() string {
	if o.Result == nil {
		return o.Message
	}
	out, err := o.Result.JSON()
	if err != nil {
		return "web_fetch failed: result could not be encoded"
	}
	return out
}

// Fetcher runs the fetch pipeline. It is immutable after construction and
// safe for concurrent use.
type Fetcher struct {
	cfg       Config
	client    *http.Client
	extractor ContentExtractor
	obs       observability.Provider
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithObserver sets the observability provider. The default discards everything.
func WithObserver(p observability.Provider) Option {
	return func(f *Fetcher) {
		if p != nil {
			f.obs = p
		}
	}
}

// WithContentExtractor replaces the default readability extractor. Passing
// nil disables content extraction so that HTML is always tag-stripped.
func WithContentExtractor(e ContentExtractor) Option {
	return func(f *Fetcher) {
		f.extractor = e
	}
}

// WithHTTPClient uses a copy of c for all requests. The copy's redirect
// policy is replaced by the configured cap.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c == nil {
			return
		}
		clone := *c
		clone.CheckRedirect = redirectPolicy(f.cfg.MaxRedirects)
		f.client = &clone
	}
}

// New creates a Fetcher. Zero fields of cfg take their defaults.
func New(cfg Config, opts ...Option) *Fetcher {
	cfg = cfg.WithDefaults()
	f := &Fetcher{
		cfg:       cfg,
		client:    newHTTPClient(cfg),
		extractor: ReadabilityExtractor{},
		obs:       observability.Noop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns the effective configuration.
func (f *Fetcher) Config() Config {
	return f.cfg
}

// Fetch runs the whole pipeline for one URL. At most two requests are made:
// the primary fetch and, for sparse HTML extractions, one proxy fetch.
func (f *Fetcher) Fetch(ctx context.Context, in Input) (result *Result, err error) {
	target := strings.TrimSpace(in.URL)
	mode := ParseExtractMode(in.ExtractMode)

	ctx, span := f.obs.StartSpan(ctx, observability.SpanFetch,
		observability.String(observability.AttrFetchURL, target),
		observability.String(observability.AttrFetchExtractMode, string(mode)),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		f.record(ctx, span, target, result, err, time.Since(start))
	}()

	u, err := ValidateURL(target)
	if err != nil {
		return nil, err
	}

	p, err := f.get(ctx, u.String(), primaryAccept)
	if err != nil {
		return nil, err
	}
	span.AddEvent(observability.EventFetchResponse,
		observability.Int(observability.AttrHTTPStatusCode, p.status),
		observability.String(observability.AttrFetchContentType, p.contentType),
		observability.Int(observability.AttrFetchRawLength, utf8.RuneCountInString(p.body)),
	)

	ext, err := f.extract(ctx, span, u, p, mode)
	if err != nil {
		return nil, err
	}

	maxChars := in.MaxChars
	if maxChars <= 0 {
		maxChars = f.cfg.DefaultMaxChars
	}
	text, truncated := Truncate(ext.Text, maxChars)

	finalURL := target
	if p.redirected {
		finalURL = p.finalURL.String()
	}

	return &Result{
		URL:       target,
		FinalURL:  finalURL,
		Status:    p.status,
		Extractor: ext.Kind,
		Truncated: truncated,
		Length:    utf8.RuneCountInString(text),
		Text:      text,
		LLMsTxt:   llmsTxtURL(p.header, p.finalURL),
	}, nil
}

// extract dispatches on the content class. Only malformed JSON is fatal.
func (f *Fetcher) extract(ctx context.Context, span observability.Span, u *url.URL, p *page, mode ExtractMode) (Extraction, error) {
	class := classify(f.cfg.isProxyHost(u), p.contentType, p.body)
	span.AddEvent(observability.EventFetchClassified,
		observability.String(observability.AttrFetchContentType, p.contentType),
	)

	switch class {
	case classPassthrough:
		f.obs.Debug(ctx, "Passing response through unchanged",
			observability.String(observability.AttrFetchURL, u.String()),
			observability.String(observability.AttrFetchContentType, p.contentType),
		)
		return Extraction{Text: strings.TrimSpace(p.body), Kind: KindPassthrough}, nil

	case classJSON:
		pretty, err := prettyJSON(p.body)
		if err != nil {
			return Extraction{}, err
		}
		return Extraction{Text: pretty, Kind: KindJSON}, nil

	case classHTML:
		return f.extractPage(ctx, span, u, p, mode), nil

	default:
		return Extraction{Text: p.body, Kind: KindRaw}, nil
	}
}

// extractPage runs the HTML extractor, then the quality gate and, when the
// gate trips, the proxy fallback.
func (f *Fetcher) extractPage(ctx context.Context, span observability.Span, u *url.URL, p *page, mode ExtractMode) Extraction {
	ext, degraded := extractHTML(f.extractor, p.body, p.finalURL, mode)
	if degraded != nil {
		f.obs.Debug(ctx, "Content extraction degraded to tag stripping",
			observability.String(observability.AttrFetchURL, u.String()),
			observability.Error(degraded),
		)
	}
	span.AddEvent(observability.EventFetchExtracted,
		observability.String(observability.AttrFetchExtractor, string(ext.Kind)),
	)

	if ext.Kind != KindReadability {
		return ext
	}

	signal := newQualitySignal(ext.Text, p.body)
	if !f.cfg.Quality.IsLowQuality(signal) {
		return ext
	}

	f.obs.Info(ctx, "Low quality extraction, page is probably script-rendered",
		observability.String(observability.AttrFetchURL, u.String()),
		observability.Int(observability.AttrFetchLength, signal.ExtractedLength),
		observability.Int(observability.AttrFetchRawLength, signal.RawHTMLLength),
	)
	span.AddEvent(observability.EventFetchQualityFailed,
		observability.Int(observability.AttrFetchLength, signal.ExtractedLength),
		observability.Int(observability.AttrFetchRawLength, signal.RawHTMLLength),
	)

	if f.cfg.Proxy.Disabled {
		return ext
	}

	text, ok := f.fetchViaProxy(ctx, u.String())
	span.AddEvent(observability.EventFetchProxyFallback, observability.Bool(observability.AttrFetchProxyOK, ok))
	if !ok {
		return ext
	}
	return Extraction{Text: text, Kind: KindJinaFallback}
}

func (f *Fetcher) record(ctx context.Context, span observability.Span, target string, result *Result, err error, elapsed time.Duration) {
	outcome := "success"
	extractor := ""
	if err != nil {
		outcome = "failure"
		category := failureCategory(err)
		span.RecordError(err)
		span.SetStatus(observability.StatusError, category)
		span.SetAttributes(observability.String(observability.AttrFetchFailure, category))
		f.obs.Warn(ctx, "Fetch failed",
			observability.String(observability.AttrFetchURL, target),
			observability.String(observability.AttrFetchFailure, category),
			observability.Error(err),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	} else {
		extractor = string(result.Extractor)
		span.SetAttributes(
			observability.String(observability.AttrFetchFinalURL, result.FinalURL),
			observability.String(observability.AttrFetchExtractor, extractor),
			observability.Int(observability.AttrFetchLength, result.Length),
			observability.Bool(observability.AttrFetchTruncated, result.Truncated),
		)
		span.SetStatus(observability.StatusOK, "")
		f.obs.Debug(ctx, "Fetch succeeded",
			observability.String(observability.AttrFetchURL, target),
			observability.String(observability.AttrFetchExtractor, extractor),
			observability.Int(observability.AttrFetchLength, result.Length),
			observability.Bool(observability.AttrFetchTruncated, result.Truncated),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}
	span.SetAttributes(observability.String(observability.AttrFetchOutcome, outcome))

	f.obs.Counter(observability.MetricFetchRequests).Add(ctx, 1,
		observability.String(observability.AttrFetchOutcome, outcome),
		observability.String(observability.AttrFetchExtractor, extractor),
	)
	f.obs.Histogram(observability.MetricFetchDuration).Record(ctx, float64(elapsed.Milliseconds()),
		observability.String(observability.AttrFetchOutcome, outcome),
	)
}

// Run is Fetch with every failure rendered by [Config.FormatError].
func (f *Fetcher) Run(ctx context.Context, in Input) Outcome {
	result, err := f.Fetch(ctx, in)
	if err != nil {
		return Outcome{Message: f.cfg.FormatError(in.URL, err)}
	}
	return Outcome{Result: result}
}

// Call returns the tool answer for in: JSON on success, plain text on
// failure. The error is always nil.
func (f *Fetcher) Call(ctx context.Context, in Input) (string, error) {
	return f.Run(ctx, in).String(), nil
}

// NewWebFetchTool wraps f as the web_fetch tool. Undecodable arguments are
// answered with a plain-text failure message like any other error.
//
// Example:
//
//	fetcher := webfetch.New(webfetch.DefaultConfig(), webfetch.WithObserver(obs))
//	catalog := tool.NewCatalogWithTools(webfetch.NewWebFetchTool(fetcher))
//	answer, _ := catalog.Call(ctx, "web_fetch", `{"url": "https://go.dev"}`)
func NewWebFetchTool(f *Fetcher) *tool.Tool[Input, string] {
	cfg := f.cfg
	return tool.NewTool[Input, string](
		ToolName,
		f.Call,
		tool.WithDescription("Fetch a URL and extract its readable content as markdown or plain text. "+
			"Returns JSON with url, finalUrl, status, extractor, truncated, length and text on success, "+
			"or a plain-text error with suggestions on failure."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "local HTTP request, optional rendering proxy",
			Accuracy:                0.95,
			AverageDurationInMillis: 600,
		}),
		tool.WithFailureFormatter(func(input string, err error) string {
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				err = &ArgumentError{Err: err}
			}
			return cfg.FormatError(urlHint(input), err)
		}),
	)
}

// urlHint pulls a url field out of arguments that failed to decode as a
// whole, so that the failure headline can still name the target.
func urlHint(input string) string {
	var probe struct {
		URL any `json:"url"`
	}
	if json.Unmarshal([]byte(input), &probe) != nil {
		return ""
	}
	s, _ := probe.URL.(string)
	return s
}
