// Package webfetch implements the web_fetch tool: it retrieves a single URL
// and turns the response into compact text for a language model.
//
// A [Fetcher] runs one pipeline per call:
//
//	validate -> GET -> classify -> (HTML: extract -> quality gate -> proxy fallback)
//	         -> llms.txt discovery -> truncate
//
// Markdown and plain-text responses, as well as anything served by a
// configured proxy domain, pass through untouched. JSON is pretty-printed.
// HTML goes through a [ContentExtractor] (go-readability by default) and is
// rendered as markdown with html-to-markdown or as plain text with goquery.
// When the extractor is missing or fails, a tag stripper takes over.
// Script-rendered pages that yield almost no text are re-fetched through a
// rendering proxy (r.jina.ai by default).
//
// Successful calls produce a [Result], serialized as JSON. Failures never
// escape as errors from [Fetcher.Run]: they are rendered by
// [Config.FormatError] as plain text with a reason and remediation hints.
//
// [NewWebFetchTool] wraps a Fetcher as a tool.Tool named "web_fetch".
package webfetch
