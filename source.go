package cdpdocs

// FetchStrategy selects how pages of a Source are retrieved.
type FetchStrategy string

// Supported fetch strategies.
const (
	// StrategyDirect issues plain HTTP requests. Suitable for static sites.
	StrategyDirect FetchStrategy = "direct"

	// StrategyRendered loads the page in a headless browser so client-side
	// rendering can complete before the HTML is captured.
	StrategyRendered FetchStrategy = "rendered"
)

// Per-page text limits, in characters.
const (
	DirectPageLimit   = 5000
	RenderedPageLimit = 10000
)

// Source is a documentation provider being indexed.
type Source struct {
	Name     string        `json:"name" yaml:"name"`
	URL      string        `json:"url" yaml:"url"`
	Strategy FetchStrategy `json:"strategy" yaml:"strategy"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source %q URL required", s.Name)
	}
	switch s.Strategy {
	case StrategyDirect, StrategyRendered:
	default:
		return Errorf(EINVALID, "source %q has unknown strategy %q", s.Name, s.Strategy)
	}
	return nil
}

// PageLimit returns the maximum number of characters kept from a single page.
func (s *Source) PageLimit() int {
	if s.Strategy == StrategyRendered {
		return RenderedPageLimit
	}
	return DirectPageLimit
}

// DefaultSources returns the built-in documentation providers.
func DefaultSources() []Source {
	return []Source{
		{Name: "segment", URL: "https://segment.com/docs/?ref=nav", Strategy: StrategyDirect},
		{Name: "mparticle", URL: "https://docs.mparticle.com/", Strategy: StrategyDirect},
		{Name: "lytics", URL: "https://docs.lytics.com/", Strategy: StrategyDirect},
		{Name: "zeotap", URL: "https://docs.zeotap.com/home/en-us/", Strategy: StrategyRendered},
	}
}
