package webfetch

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b.*?</style\s*>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

// StripTags reduces an HTML document to its text: script and style blocks
// are dropped, remaining tags removed, entities decoded and whitespace
// collapsed. It works on any input, including malformed markup.
func StripTags(rawHTML string) string {
	text := scriptBlockRe.ReplaceAllString(rawHTML, "")
	text = styleBlockRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	return normalizeWhitespace(html.UnescapeString(text))
}

// normalizeWhitespace collapses runs of spaces and tabs to one space and
// three or more newlines to two, then trims the result.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
