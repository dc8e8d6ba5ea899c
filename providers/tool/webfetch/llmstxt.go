package webfetch

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var llmsTxtLinkRe = regexp.MustCompile(`<([^>]+)>;\s*rel=["']?llms-txt`)

// llmsTxtURL looks for a `Link: </llms.txt>; rel="llms-txt"` header, as
// served by documentation hosts such as Mintlify. Root-relative targets are
// resolved against pageURL's scheme and host. It returns "" when absent.
func llmsTxtURL(header http.Header, pageURL *url.URL) string {
	for _, value := range header.Values("Link") {
		if !strings.Contains(value, "llms-txt") && !strings.Contains(value, "llms.txt") {
			continue
		}
		m := llmsTxtLinkRe.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		ref := strings.TrimSpace(m[1])
		if strings.HasPrefix(ref, "/") && pageURL != nil {
			return pageURL.Scheme + "://" + pageURL.Host + ref
		}
		return ref
	}
	return ""
}
