// Package dict manages the category dictionaries backing tag lookup:
// brands (global, zh, ja), products, audiences, scenarios, colors,
// features and attributes. Each category is a JSON file under one root
// directory; a word index makes membership checks O(1).
package dict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cognicore/lexitag/pkg/lexitag/internalerr"
)

// Category names. Brands splits by language so script-specific brand
// names stay out of the wrong tokenizer dictionaries.
const (
	Brands     = "brands"
	BrandsZH   = "brands_zh"
	BrandsJA   = "brands_ja"
	Products   = "products"
	Audiences  = "audiences"
	Scenarios  = "scenarios"
	Colors     = "colors"
	Features   = "features"
	Attributes = "attributes"
)

var categoryFiles = map[string]string{
	Brands:     "brands/global.json",
	BrandsZH:   "brands/zh.json",
	BrandsJA:   "brands/ja.json",
	Products:   "products.json",
	Audiences:  "audiences.json",
	Scenarios:  "scenarios.json",
	Colors:     "colors.json",
	Features:   "features.json",
	Attributes: "attributes.json",
}

// brandCategories are folded together when querying the Brands category.
var brandCategories = []string{Brands, BrandsZH, BrandsJA}

// Entry is one dictionary record.
type Entry struct {
	Word       string  `json:"word"`
	Confidence float64 `json:"confidence,omitempty"`
	Source     string  `json:"source,omitempty"`
}

type file struct {
	Entries []Entry `json:"entries"`
}

// SearchHit is one result from Search.
type SearchHit struct {
	Word       string  `json:"word"`
	Category   string  `json:"dictionary"`
	Confidence float64 `json:"confidence"`
}

// Manager loads and serves the category dictionaries. Safe for concurrent
// use; writes persist back to the JSON files.
type Manager struct {
	root string

	mu     sync.RWMutex
	dicts  map[string]*file
	index  map[string]map[string]struct{} // lowercased word -> categories
	loaded bool
}

// NewManager returns a manager rooted at dir. Call Load before querying.
func NewManager(dir string) *Manager {
	return &Manager{
		root:  dir,
		dicts: make(map[string]*file),
		index: make(map[string]map[string]struct{}),
	}
}

// Load reads every category file. Missing files become empty categories;
// unreadable or malformed files are an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dicts = make(map[string]*file)
	m.index = make(map[string]map[string]struct{})

	for name, rel := range categoryFiles {
		path := filepath.Join(m.root, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			m.dicts[name] = &file{}
			continue
		}
		if err != nil {
			return fmt.Errorf("read dictionary %s: %w", name, err)
		}

		var f file
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parse dictionary %s: %w", name, err)
		}
		m.dicts[name] = &f
		for _, e := range f.Entries {
			m.indexWord(e.Word, name)
		}
	}

	m.loaded = true
	return nil
}

// Reload re-reads all category files from disk.
func (m *Manager) Reload() error { return m.Load() }

// Loaded reports whether Load has completed successfully.
func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Stats returns per-category entry counts.
func (m *Manager) Stats() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]int, len(m.dicts))
	for name, f := range m.dicts {
		stats[name] = len(f.Entries)
	}
	return stats
}

// Contains reports whether word is in the named category. The Brands
// category matches any of the three brand dictionaries.
func (m *Manager) Contains(category, word string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cats, ok := m.index[strings.ToLower(word)]
	if !ok {
		return false
	}
	if _, ok := cats[category]; ok {
		return true
	}
	if category == Brands {
		for _, b := range brandCategories {
			if _, ok := cats[b]; ok {
				return true
			}
		}
	}
	return false
}

// Entry returns the record for word in category, or ErrNotFound.
func (m *Manager) Entry(category, word string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lower := strings.ToLower(word)
	for _, e := range m.entries(category) {
		if strings.ToLower(e.Word) == lower {
			return e, nil
		}
	}
	return Entry{}, internalerr.ErrNotFound
}

// Entries returns all records in category. The Brands category folds in
// the language-specific brand dictionaries.
func (m *Manager) Entries(category string) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries(category)
}

func (m *Manager) entries(category string) []Entry {
	if f, ok := m.dicts[category]; ok {
		if category != Brands {
			return f.Entries
		}
	}
	if category == Brands {
		var all []Entry
		for _, b := range brandCategories {
			if f, ok := m.dicts[b]; ok {
				all = append(all, f.Entries...)
			}
		}
		return all
	}
	return nil
}

// Words returns only the word strings in category.
func (m *Manager) Words(category string) []string {
	entries := m.Entries(category)
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Word != "" {
			words = append(words, e.Word)
		}
	}
	return words
}

// Search finds entries whose word contains or is contained by the query,
// across all categories. language filters to the matching brand
// dictionary ("zh" or "ja"); empty means no filter.
func (m *Manager) Search(word, language string) []SearchHit {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lower := strings.ToLower(word)
	var hits []SearchHit
	for name, f := range m.dicts {
		if language == "zh" && !strings.HasSuffix(name, "_zh") {
			continue
		}
		if language == "ja" && !strings.HasSuffix(name, "_ja") {
			continue
		}
		for _, e := range f.Entries {
			entryLower := strings.ToLower(e.Word)
			if entryLower == "" {
				continue
			}
			if strings.Contains(entryLower, lower) || strings.Contains(lower, entryLower) {
				conf := e.Confidence
				if conf == 0 {
					conf = 1.0
				}
				hits = append(hits, SearchHit{Word: e.Word, Category: name, Confidence: conf})
			}
		}
	}
	return hits
}

// Add inserts or updates an entry and persists the category file. For
// brand entries, language "zh" or "ja" routes to the matching brand
// dictionary; anything else goes to the global one.
func (m *Manager) Add(category, language, word string, confidence float64, source string) error {
	if word == "" {
		return internalerr.ErrInvalidInput
	}
	name, err := resolveCategory(category, language)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.dicts[name]
	if !ok {
		f = &file{}
		m.dicts[name] = f
	}

	lower := strings.ToLower(word)
	for i := range f.Entries {
		if strings.ToLower(f.Entries[i].Word) == lower {
			f.Entries[i].Confidence = confidence
			f.Entries[i].Source = source
			return m.save(name)
		}
	}

	f.Entries = append(f.Entries, Entry{Word: word, Confidence: confidence, Source: source})
	m.indexWord(word, name)
	return m.save(name)
}

// Remove deletes an entry from a category and persists the file. Removing
// a word that is not present is a no-op.
func (m *Manager) Remove(category, word string) error {
	name, err := resolveCategory(category, "")
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.dicts[name]
	if !ok {
		return nil
	}

	lower := strings.ToLower(word)
	kept := f.Entries[:0]
	for _, e := range f.Entries {
		if strings.ToLower(e.Word) != lower {
			kept = append(kept, e)
		}
	}
	f.Entries = kept
	if cats, ok := m.index[lower]; ok {
		delete(cats, name)
	}
	return m.save(name)
}

// WordsForTokenizer returns every dictionary word suitable for seeding a
// tokenizer's user dictionary for the given language ("zh" or "ja").
// Brand words in the other language's script are skipped.
func (m *Manager) WordsForTokenizer(language string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var words []string
	for name, f := range m.dicts {
		if language == "zh" && strings.HasSuffix(name, "_ja") {
			continue
		}
		if language == "ja" && strings.HasSuffix(name, "_zh") {
			continue
		}
		for _, e := range f.Entries {
			if e.Word != "" {
				words = append(words, e.Word)
			}
		}
	}
	return words
}

func (m *Manager) indexWord(word, category string) {
	lower := strings.ToLower(word)
	if lower == "" {
		return
	}
	cats, ok := m.index[lower]
	if !ok {
		cats = make(map[string]struct{})
		m.index[lower] = cats
	}
	cats[category] = struct{}{}
}

func (m *Manager) save(category string) error {
	rel, ok := categoryFiles[category]
	if !ok {
		return fmt.Errorf("%w: unknown category %q", internalerr.ErrInvalidInput, category)
	}
	path := filepath.Join(m.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}

	data, err := json.MarshalIndent(m.dicts[category], "", "  ")
	if err != nil {
		return fmt.Errorf("encode dictionary %s: %w", category, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dictionary %s: %w", category, err)
	}
	return nil
}

func resolveCategory(category, language string) (string, error) {
	if _, ok := categoryFiles[category]; !ok {
		return "", fmt.Errorf("%w: unknown category %q", internalerr.ErrInvalidInput, category)
	}
	if category == Brands {
		switch language {
		case "zh":
			return BrandsZH, nil
		case "ja":
			return BrandsJA, nil
		}
	}
	return category, nil
}
