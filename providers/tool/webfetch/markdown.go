package webfetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nonContentTags never carry readable text.
var nonContentTags = []string{"script", "style", "noscript", "template", "iframe", "svg", "form", "button"}

type removeTagsPlugin struct {
	tags []string
}

func (p *removeTagsPlugin) Name() string {
	return "remove-non-content"
}

func (p *removeTagsPlugin) Init(conv *converter.Converter) error {
	for _, tag := range p.tags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return nil
}

// plainBlocksPlugin renders ordered lists with "-" bullets and turns <br> and
// <hr> into bare newlines.
type plainBlocksPlugin struct{}

func (plainBlocksPlugin) Name() string {
	return "plain-blocks"
}

func (plainBlocksPlugin) Init(conv *converter.Converter) error {
	conv.Register.PreRenderer(func(_ converter.Context, doc *html.Node) {
		renameElements(doc, atom.Ol, atom.Ul)
	}, converter.PriorityEarly)

	newline := func(_ converter.Context, w converter.Writer, _ *html.Node) converter.RenderStatus {
		w.WriteString("\n")
		return converter.RenderSuccess
	}
	conv.Register.RendererFor("br", converter.TagTypeInline, newline, converter.PriorityEarly)
	conv.Register.RendererFor("hr", converter.TagTypeBlock, newline, converter.PriorityEarly)
	return nil
}

func renameElements(n *html.Node, from, to atom.Atom) {
	if n.Type == html.ElementNode && n.DataAtom == from {
		n.DataAtom = to
		n.Data = to.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renameElements(c, from, to)
	}
}

// The commonmark plugin defaults to ATX headings, "-" bullets and inline links.
// Markdown escaping is off.
var markdownConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		&removeTagsPlugin{tags: nonContentTags},
		plainBlocksPlugin{},
	),
	converter.WithEscapeMode(converter.EscapeModeDisabled),
)

// htmlToMarkdown converts an HTML fragment to markdown. Relative links are
// resolved against the page's scheme and host.
func htmlToMarkdown(fragment string, pageURL *url.URL) (string, error) {
	var (
		md  string
		err error
	)
	if pageURL != nil && pageURL.Host != "" {
		md, err = markdownConverter.ConvertString(fragment, converter.WithDomain(pageURL.Scheme+"://"+pageURL.Host))
	} else {
		md, err = markdownConverter.ConvertString(fragment)
	}
	if err != nil {
		return "", fmt.Errorf("convert HTML to markdown: %w", err)
	}
	// The base plugin re-encodes &, < and > in text.
	return normalizeWhitespace(html.UnescapeString(md)), nil
}

// blockElements end a paragraph in text mode.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "dl": true, "dt": true, "dd": true,
	"figure": true, "figcaption": true,
}

// htmlToText renders an HTML fragment as plain text without markdown syntax.
func htmlToText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}
	doc.Find(strings.Join(nonContentTags, ", ")).Remove()

	var b strings.Builder
	for _, n := range doc.Find("body").Nodes {
		writeText(&b, n)
	}
	return normalizeWhitespace(b.String()), nil
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br", "hr":
			b.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == html.ElementNode {
		switch {
		case blockElements[n.Data]:
			b.WriteString("\n\n")
		case n.Data == "td" || n.Data == "th":
			b.WriteString(" ")
		}
	}
}
