package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cdpdocs"
)

// Ensure DocsLinkSelector implements cdpdocs.LinkSelector at compile time.
var _ cdpdocs.LinkSelector = (*DocsLinkSelector)(nil)

// DocsLinkSelector follows root-relative links whose path mentions "docs".
// This keeps the crawl on the documentation part of the same site without
// a real same-origin check: absolute and protocol-relative links are never
// followed, and any root-relative href containing the substring qualifies.
type DocsLinkSelector struct {
	marker string
}

// NewDocsLinkSelector creates a new DocsLinkSelector.
func NewDocsLinkSelector() *DocsLinkSelector {
	return &DocsLinkSelector{marker: "docs"}
}

// ExtractLinks returns the qualifying links in document order, resolved
// against the scheme and host of seedURL. Duplicates within the page are
// collapsed.
func (s *DocsLinkSelector) ExtractLinks(html string, seedURL string) ([]string, error) {
	base, err := url.Parse(seedURL)
	if err != nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "invalid seed URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !isRootRelative(href) || !strings.Contains(href, s.marker) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()

		if seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

// isRootRelative reports whether href is a path on the current host,
// e.g. "/docs/intro" but not "//cdn.example.com/docs".
func isRootRelative(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}
