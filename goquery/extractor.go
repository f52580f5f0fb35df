// Package goquery implements HTML content extraction and link discovery
// using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cdpdocs"
	"golang.org/x/net/html"
)

// Ensure Extractor implements cdpdocs.Extractor at compile time.
var _ cdpdocs.Extractor = (*Extractor)(nil)

// DefaultContentSelectors lists the candidate content regions in priority
// order. The first selector with a match wins.
var DefaultContentSelectors = []string{
	"article",
	"main",
	"div.content, div.docs-content, div.doc-section",
}

// skippedElements hold no readable text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// Extractor isolates the main documentation region of a page and returns
// its text with whitespace collapsed.
type Extractor struct {
	selectors []string
}

// NewExtractor creates a new Extractor. If no selectors are given,
// DefaultContentSelectors is used.
func NewExtractor(selectors ...string) *Extractor {
	if len(selectors) == 0 {
		selectors = DefaultContentSelectors
	}
	return &Extractor{selectors: selectors}
}

// Extract returns the text of the first matching content region.
// It returns an empty string when no region matches.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", cdpdocs.Errorf(cdpdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range e.selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		return nodeText(sel), nil
	}

	return "", nil
}

// nodeText joins the stripped text nodes under sel with single spaces.
func nodeText(sel *goquery.Selection) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return strings.Join(parts, " ")
}
