package webfetch

import (
	"strings"
	"unicode/utf8"
)

// QualitySignal compares an extraction with the page it came from.
type QualitySignal struct {
	ExtractedLength int
	RawHTMLLength   int
}

func newQualitySignal(extracted, rawHTML string) QualitySignal {
	return QualitySignal{
		ExtractedLength: utf8.RuneCountInString(strings.TrimSpace(extracted)),
		RawHTMLLength:   utf8.RuneCountInString(rawHTML),
	}
}

// IsLowQuality flags pages that ship a large HTML shell but yield little
// text, which is typical of script-rendered sites. Pages no larger than
// MinHTMLSize are never flagged.
func (q QualityConfig) IsLowQuality(s QualitySignal) bool {
	if s.RawHTMLLength <= q.MinHTMLSize {
		return false
	}
	if s.ExtractedLength < q.MinChars {
		return true
	}
	return float64(s.ExtractedLength)/float64(s.RawHTMLLength) < q.MinRatio
}
