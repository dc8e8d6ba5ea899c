package observability

// Semantic conventions shared by every component.

// --- Fetch Attributes ---

const (
	// AttrFetchURL is the URL as requested by the caller.
	AttrFetchURL = "fetch.url"

	// AttrFetchFinalURL is the URL after redirects.
	AttrFetchFinalURL = "fetch.final_url"

	// AttrFetchExtractMode is "markdown" or "text".
	AttrFetchExtractMode = "fetch.extract_mode"

	// AttrFetchExtractor is the extractor label reported in the result.
	AttrFetchExtractor = "fetch.extractor"

	// AttrFetchContentType is the lowercased response content type.
	AttrFetchContentType = "fetch.content_type"

	// AttrFetchLength is the rune length of the returned text.
	AttrFetchLength = "fetch.length"

	// AttrFetchRawLength is the rune length of the raw body.
	AttrFetchRawLength = "fetch.raw_length"

	AttrFetchTruncated = "fetch.truncated"

	// AttrFetchOutcome is "success" or "failure".
	AttrFetchOutcome = "fetch.outcome"

	// AttrFetchFailure is the failure category, e.g. "timeout" or "status".
	AttrFetchFailure = "fetch.failure"

	// AttrFetchProxyOK reports whether the proxy fallback produced usable text.
	AttrFetchProxyOK = "fetch.proxy_ok"
)

// --- Search Attributes ---

const (
	AttrSearchQuery   = "search.query"
	AttrSearchCount   = "search.count"
	AttrSearchResults = "search.results"
	AttrSearchOutcome = "search.outcome"
)

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolInput is the tool input (serialized)
	AttrToolInput = "tool.input"

	// AttrToolOutput is the tool output (serialized)
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General Attributes ---

const (
	AttrError     = "error"
	AttrErrorType = "error.type"
	AttrDuration  = "duration"
)

// --- Span Names ---

const (
	SpanFetch         = "webfetch.fetch"
	SpanSearch        = "websearch.search"
	SpanToolExecution = "tool.execution"
)

// --- Event Names ---

const (
	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"

	EventFetchResponse      = "fetch.response"
	EventFetchClassified    = "fetch.classified"
	EventFetchExtracted     = "fetch.extracted"
	EventFetchQualityFailed = "fetch.quality_failed"
	EventFetchProxyFallback = "fetch.proxy_fallback"
)

// --- Metric Names ---

const (
	MetricFetchRequests  = "webfetch.requests"
	MetricFetchDuration  = "webfetch.duration_ms"
	MetricSearchRequests = "websearch.requests"
)
