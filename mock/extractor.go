package mock

import "github.com/fwojciec/cdpdocs"

var _ cdpdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cdpdocs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}

var _ cdpdocs.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of cdpdocs.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, seedURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, seedURL string) ([]string, error) {
	return s.ExtractLinksFn(html, seedURL)
}
