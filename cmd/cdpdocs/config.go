package main

import (
	"os"

	"github.com/fwojciec/cdpdocs"
	"gopkg.in/yaml.v3"
)

// sourcesFile is the YAML layout of a sources file.
type sourcesFile struct {
	Sources []cdpdocs.Source `yaml:"sources"`
}

// LoadSources reads sources from a YAML file. An empty path returns the
// built-in sources.
func LoadSources(path string) ([]cdpdocs.Source, error) {
	if path == "" {
		return cdpdocs.DefaultSources(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSources(data)
}

// ParseSources decodes and validates a YAML sources document. Names must
// be unique and the list must not be empty.
func ParseSources(data []byte) ([]cdpdocs.Source, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "parse sources: %v", err)
	}
	if len(f.Sources) == 0 {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "sources file lists no sources")
	}

	seen := make(map[string]bool, len(f.Sources))
	for i := range f.Sources {
		s := &f.Sources[i]
		if s.Strategy == "" {
			s.Strategy = cdpdocs.StrategyDirect
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Name] {
			return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "duplicate source %q", s.Name)
		}
		seen[s.Name] = true
	}
	return f.Sources, nil
}
