package webfetch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ExtractorKind records which path produced a result's text.
type ExtractorKind string

const (
	KindPassthrough   ExtractorKind = "passthrough"
	KindJSON          ExtractorKind = "json"
	KindReadability   ExtractorKind = "readability"
	KindFallbackStrip ExtractorKind = "fallback-strip"
	KindJinaFallback  ExtractorKind = "jina-fallback"
	KindRaw           ExtractorKind = "raw"
)

// ExtractMode selects how extracted HTML is rendered.
type ExtractMode string

const (
	ModeMarkdown ExtractMode = "markdown"
	ModeText     ExtractMode = "text"
)

// ParseExtractMode returns ModeText for "text" (any case) and ModeMarkdown
// for everything else, including the empty string.
func ParseExtractMode(s string) ExtractMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeText)) {
		return ModeText
	}
	return ModeMarkdown
}

// Document is the primary content of a page as isolated by a ContentExtractor.
type Document struct {
	Title       string
	ContentHTML string
}

// ContentExtractor isolates the main content of an HTML page, discarding
// navigation, ads and other chrome.
type ContentExtractor interface {
	Extract(rawHTML string, pageURL *url.URL) (Document, error)
}

// ReadabilityExtractor is the default ContentExtractor, backed by go-readability.
type ReadabilityExtractor struct{}

func (ReadabilityExtractor) Extract(rawHTML string, pageURL *url.URL) (Document, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("readability: %w", err)
	}
	return Document{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}

// Extraction is extracted text tagged with its provenance.
type Extraction struct {
	Text string
	Kind ExtractorKind
}

// fallbackExtraction is the terminal step of the extraction ladder.
func fallbackExtraction(rawHTML string) Extraction {
	return Extraction{Text: StripTags(rawHTML), Kind: KindFallbackStrip}
}

// extractHTML runs the content extractor and renders its output in mode.
// A missing, failing or panicking extractor degrades to StripTags; the
// returned error only explains a degradation and is never fatal.
func extractHTML(extractor ContentExtractor, rawHTML string, pageURL *url.URL, mode ExtractMode) (Extraction, error) {
	if extractor == nil {
		return fallbackExtraction(rawHTML), nil
	}

	doc, err := safeExtract(extractor, rawHTML, pageURL)
	if err != nil {
		return fallbackExtraction(rawHTML), err
	}

	var content string
	if mode == ModeText {
		content, err = htmlToText(doc.ContentHTML)
	} else {
		content, err = htmlToMarkdown(doc.ContentHTML, pageURL)
	}
	if err != nil {
		return fallbackExtraction(rawHTML), err
	}

	if doc.Title != "" {
		content = "# " + doc.Title + "\n\n" + content
	}
	return Extraction{Text: content, Kind: KindReadability}, nil
}

func safeExtract(extractor ContentExtractor, rawHTML string, pageURL *url.URL) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(fmt.Sprint("content extractor panicked: ", r))
		}
	}()
	return extractor.Extract(rawHTML, pageURL)
}
