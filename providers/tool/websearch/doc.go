// Package websearch implements the web_search tool on top of the Brave Search
// API. Results come back as numbered plain-text lines (title, URL, snippet)
// that a model can follow up on with web_fetch.
//
// Like web_fetch, the tool never fails with an error: a missing API key, an
// HTTP error or a timeout is reported as a short text message.
package websearch
