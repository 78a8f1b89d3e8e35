package dict

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexitag/pkg/lexitag/internalerr"
)

func writeDict(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	root := t.TempDir()
	writeDict(t, root, "brands/global.json", `{"entries":[
		{"word":"nike","confidence":1.0},
		{"word":"new balance","confidence":1.0}
	]}`)
	writeDict(t, root, "brands/zh.json", `{"entries":[{"word":"小米"}]}`)
	writeDict(t, root, "products.json", `{"entries":[
		{"word":"yoga mat","confidence":0.95},
		{"word":"leggings","confidence":0.9}
	]}`)
	writeDict(t, root, "colors.json", `{"entries":[{"word":"negro","confidence":0.9}]}`)

	m := NewManager(root)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestManagerLoadMissingFilesAreEmpty(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.Load(); err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if !m.Loaded() {
		t.Error("Loaded() = false after Load")
	}
	if got := m.Stats()[Products]; got != 0 {
		t.Errorf("empty products category has %d entries", got)
	}
}

func TestManagerContains(t *testing.T) {
	m := newTestManager(t)

	if !m.Contains(Products, "yoga mat") {
		t.Error("products should contain yoga mat")
	}
	if !m.Contains(Products, "Yoga Mat") {
		t.Error("Contains should be case-insensitive")
	}
	if m.Contains(Colors, "yoga mat") {
		t.Error("colors should not contain yoga mat")
	}
	// Brands folds in language-specific dictionaries.
	if !m.Contains(Brands, "小米") {
		t.Error("brands should include zh brand entries")
	}
}

func TestManagerEntry(t *testing.T) {
	m := newTestManager(t)

	e, err := m.Entry(Products, "LEGGINGS")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Word != "leggings" || e.Confidence != 0.9 {
		t.Errorf("got %+v, want leggings at 0.9", e)
	}

	if _, err := m.Entry(Products, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Entry(missing) error = %v, want ErrNotFound", err)
	}
}

func TestManagerAddPersistsAndReloads(t *testing.T) {
	m := newTestManager(t)

	if err := m.Add(Colors, "", "rojo", 0.9, "manual"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !m.Contains(Colors, "rojo") {
		t.Error("added word not found")
	}

	// A fresh manager over the same root sees the persisted entry.
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !m.Contains(Colors, "rojo") {
		t.Error("added word lost after reload")
	}
}

func TestManagerAddBrandRoutesByLanguage(t *testing.T) {
	m := newTestManager(t)

	if err := m.Add(Brands, "ja", "ユニクロ", 1.0, "manual"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !m.Contains(BrandsJA, "ユニクロ") {
		t.Error("ja brand should land in brands_ja")
	}
	if !m.Contains(Brands, "ユニクロ") {
		t.Error("brands should fold in brands_ja")
	}
}

func TestManagerAddUpdatesExisting(t *testing.T) {
	m := newTestManager(t)

	if err := m.Add(Products, "", "Leggings", 0.99, "review"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	e, err := m.Entry(Products, "leggings")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Confidence != 0.99 || e.Source != "review" {
		t.Errorf("update not applied: %+v", e)
	}
	if got := len(m.Entries(Products)); got != 2 {
		t.Errorf("update should not add a duplicate, have %d entries", got)
	}
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager(t)

	if err := m.Remove(Products, "yoga mat"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if m.Contains(Products, "yoga mat") {
		t.Error("removed word still present")
	}
}

func TestManagerAddInvalid(t *testing.T) {
	m := newTestManager(t)

	if err := m.Add(Products, "", "", 1.0, ""); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Add empty word error = %v, want ErrInvalidInput", err)
	}
	if err := m.Add("nonsense", "", "word", 1.0, ""); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Add unknown category error = %v, want ErrInvalidInput", err)
	}
}

func TestManagerSearch(t *testing.T) {
	m := newTestManager(t)

	hits := m.Search("yoga", "")
	if len(hits) != 1 || hits[0].Word != "yoga mat" {
		t.Errorf("Search(yoga) = %v, want yoga mat hit", hits)
	}

	if hits := m.Search("nike", "zh"); len(hits) != 0 {
		t.Errorf("zh-filtered search should skip global brands, got %v", hits)
	}
}

func TestManagerWordsForTokenizer(t *testing.T) {
	m := newTestManager(t)

	words := m.WordsForTokenizer("zh")
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	if !seen["小米"] || !seen["yoga mat"] {
		t.Errorf("zh tokenizer words missing expected entries: %v", words)
	}
}
