package cdpdocs

// Extractor isolates the main content of an HTML page.
type Extractor interface {
	// Extract returns the whitespace-normalized text of the main content
	// region. An empty string means no content region was found.
	Extract(html string) (string, error)
}

// LinkSelector discovers crawlable links in an HTML page.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns absolute URLs of links worth
	// following, in document order. The seedURL is used to resolve
	// root-relative paths.
	ExtractLinks(html string, seedURL string) ([]string, error)
}
