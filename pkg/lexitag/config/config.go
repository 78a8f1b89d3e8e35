// Package config loads YAML configuration for the tagging pipeline and
// builds wired components from it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Stoplist represents the stopword list configuration.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Phrases represents the multi-token phrase table configuration. Each group
// shares one suggested tag and confidence across its phrases.
type Phrases struct {
	Groups []PhraseGroup `yaml:"groups"`
}

// PhraseGroup is one tag's worth of phrases.
type PhraseGroup struct {
	Tag        string   `yaml:"tag"`
	Confidence float64  `yaml:"confidence"`
	Phrases    []string `yaml:"phrases"`
}

// LoadPhrases loads a phrase table from a YAML file.
func LoadPhrases(path string) (*Phrases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Phrases
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Spans represents the fixed-phrase span table configuration.
type Spans struct {
	Entries []SpanEntry `yaml:"entries"`
}

// SpanEntry is one fixed phrase for the span extractor.
type SpanEntry struct {
	Phrase     string  `yaml:"phrase"`
	Tag        string  `yaml:"tag"`
	Confidence float64 `yaml:"confidence"`
	Type       string  `yaml:"type"`
}

// LoadSpans loads a span table from a YAML file.
func LoadSpans(path string) (*Spans, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Spans
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
