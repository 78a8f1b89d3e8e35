package config

import (
	"fmt"

	"github.com/cognicore/lexitag/pkg/lexitag/dict"
	"github.com/cognicore/lexitag/pkg/lexitag/phrase"
	"github.com/cognicore/lexitag/pkg/lexitag/span"
	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

// Loader loads all configuration files and constructs components. Empty
// paths fall back to built-in defaults.
type Loader struct {
	DictDir      string
	StoplistPath string
	PhrasesPath  string
	SpansPath    string
}

// Components holds all loaded configuration components.
type Components struct {
	Dicts     *dict.Manager
	Tagger    *tag.Tagger
	Merger    *phrase.Merger
	Extractor *span.Extractor
}

// Load reads all configuration files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Dictionaries. An empty dir still yields a usable empty manager.
	comp.Dicts = dict.NewManager(l.DictDir)
	if l.DictDir != "" {
		if err := comp.Dicts.Load(); err != nil {
			return nil, fmt.Errorf("load dictionaries: %w", err)
		}
	}

	comp.Tagger = tag.NewTagger(comp.Dicts)
	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Tagger.AddStopwords(stoplist.Terms)
	}

	// Phrase table: built-in groups plus any configured additions.
	comp.Merger = phrase.NewDefaultMerger()
	if l.PhrasesPath != "" {
		phrases, err := LoadPhrases(l.PhrasesPath)
		if err != nil {
			return nil, fmt.Errorf("load phrases: %w", err)
		}
		for _, g := range phrases.Groups {
			for _, p := range g.Phrases {
				comp.Merger.AddString(p, g.Tag, g.Confidence)
			}
		}
	}

	// Span extractor: brands from the dictionaries plus configured entries.
	comp.Extractor = span.NewExtractor()
	for _, e := range comp.Dicts.Entries(dict.Brands) {
		conf := e.Confidence
		if conf == 0 {
			conf = 0.9
		}
		comp.Extractor.AddBrand(e.Word, conf)
	}
	if l.SpansPath != "" {
		spans, err := LoadSpans(l.SpansPath)
		if err != nil {
			return nil, fmt.Errorf("load spans: %w", err)
		}
		for _, e := range spans.Entries {
			typ := span.Type(e.Type)
			if typ == "" {
				typ = span.TypeFixedPhrase
			}
			comp.Extractor.Add(e.Phrase, e.Tag, e.Confidence, typ)
		}
	}

	return comp, nil
}
