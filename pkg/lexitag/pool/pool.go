// Package pool stages AI-suggested dictionary entries before they reach
// the real dictionaries. Writing model output straight into the
// dictionaries lets mistakes reinforce themselves, so suggestions
// accumulate here until they earn promotion: seen often enough, confident
// enough, and not conflicting with an existing entry.
package pool

import (
	"context"
	"crypto/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/lexitag/pkg/lexitag/dict"
	"github.com/cognicore/lexitag/pkg/lexitag/internalerr"
	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

// Entry is one staged candidate. Promoted and Rejected are terminal: a
// promoted entry never re-promotes, a rejected one never promotes at all.
type Entry struct {
	ID           string
	Word         string
	Tag          string
	Confidence   float64
	Source       string
	FirstSeen    time.Time
	LastSeen     time.Time
	SeenCount    int
	Contexts     []string
	Promoted     bool
	Rejected     bool
	RejectReason string
}

// Key returns the storage key for a word.
func Key(word string) string { return strings.ToLower(word) }

// Store persists candidate entries keyed by lowercased word.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, e Entry) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) ([]Entry, error)
	Close() error
}

// Options tune the promotion and expiry rules.
type Options struct {
	MinConfidence float64
	MinSeenCount  int
	MaxContexts   int
	ExpireAfter   time.Duration
}

// DefaultOptions mirror a conservative review workflow: five sightings at
// 0.75 confidence, a month until unpromoted entries expire.
func DefaultOptions() Options {
	return Options{
		MinConfidence: 0.75,
		MinSeenCount:  5,
		MaxContexts:   10,
		ExpireAfter:   30 * 24 * time.Hour,
	}
}

// Suggestion is one proposed entry, typically from the AI enhancer.
type Suggestion struct {
	Word       string
	Tag        string
	Confidence float64
	Source     string
}

// Stats summarizes the pool contents.
type Stats struct {
	Total    int
	Promoted int
	Rejected int
	Pending  int
	ByTag    map[string]int
}

// Pool manages staged candidates on top of a Store. Safe for concurrent
// use; the internal mutex serializes read-modify-write cycles.
type Pool struct {
	store Store
	opts  Options
	log   *zap.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New builds a pool. A nil logger defaults to zap.NewNop.
func New(store Store, opts Options, log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxContexts <= 0 {
		opts.MaxContexts = DefaultOptions().MaxContexts
	}
	return &Pool{
		store:   store,
		opts:    opts,
		log:     log,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Add records a sighting of word with the suggested tag. A repeat sighting
// bumps the seen count, averages the confidence in, and appends the
// context sample up to the context cap.
func (p *Pool) Add(ctx context.Context, word, tagName string, confidence float64, contextSample, source string) (Entry, error) {
	if word == "" {
		return Entry{}, internalerr.ErrInvalidInput
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := Key(word)
	now := p.now()

	e, ok, err := p.store.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	if ok {
		e.SeenCount++
		e.LastSeen = now
		e.Confidence = (e.Confidence + confidence) / 2
		if contextSample != "" && !contains(e.Contexts, contextSample) {
			e.Contexts = append(e.Contexts, contextSample)
			if len(e.Contexts) > p.opts.MaxContexts {
				e.Contexts = e.Contexts[len(e.Contexts)-p.opts.MaxContexts:]
			}
		}
	} else {
		e = Entry{
			ID:         ulid.MustNew(ulid.Timestamp(now), p.entropy).String(),
			Word:       word,
			Tag:        tagName,
			Confidence: confidence,
			Source:     source,
			FirstSeen:  now,
			LastSeen:   now,
			SeenCount:  1,
		}
		if contextSample != "" {
			e.Contexts = []string{contextSample}
		}
	}

	if err := p.store.Put(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// AddBatch records a set of suggestions sharing one context sample.
func (p *Pool) AddBatch(ctx context.Context, suggestions []Suggestion, contextSample string) error {
	for _, s := range suggestions {
		if s.Word == "" {
			continue
		}
		tagName := s.Tag
		if tagName == "" {
			tagName = tag.Attribute
		}
		source := s.Source
		if source == "" {
			source = "ai"
		}
		if _, err := p.Add(ctx, s.Word, tagName, s.Confidence, contextSample, source); err != nil {
			return err
		}
	}
	return nil
}

// Promotable lists entries meeting the promotion bar: minimum confidence
// and seen count, not terminal, and no tag conflict against the
// dictionaries when they are provided.
func (p *Pool) Promotable(ctx context.Context, dicts *dict.Manager) ([]Entry, error) {
	entries, err := p.store.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range entries {
		if e.Promoted || e.Rejected {
			continue
		}
		if e.Confidence < p.opts.MinConfidence || e.SeenCount < p.opts.MinSeenCount {
			continue
		}
		if dicts != nil && hasConflict(e, dicts) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// hasConflict reports whether the word already exists in a dictionary
// under a different tag.
func hasConflict(e Entry, dicts *dict.Manager) bool {
	for _, ct := range categoryTags {
		if dicts.Contains(ct.category, e.Word) && ct.tag != e.Tag {
			return true
		}
	}
	return false
}

// Promote writes the entry into the matching dictionary and marks it
// promoted. Promoting an already-promoted word succeeds without effect;
// promoting a rejected or unknown word fails.
func (p *Pool) Promote(ctx context.Context, word string, dicts *dict.Manager) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok, err := p.store.Get(ctx, Key(word))
	if err != nil {
		return err
	}
	if !ok {
		return internalerr.ErrNotFound
	}
	if e.Promoted {
		return nil
	}
	if e.Rejected {
		return internalerr.ErrInvalidInput
	}

	category := categoryForTag(e.Tag)
	source := "ai_promoted:" + strconv.Itoa(e.SeenCount) + "times"
	if err := dicts.Add(category, "", e.Word, e.Confidence, source); err != nil {
		p.log.Warn("promotion failed",
			zap.String("word", e.Word),
			zap.String("tag", e.Tag),
			zap.Error(err))
		return err
	}

	e.Promoted = true
	if err := p.store.Put(ctx, e); err != nil {
		return err
	}
	p.log.Info("candidate promoted",
		zap.String("word", e.Word),
		zap.String("tag", e.Tag),
		zap.Int("seen", e.SeenCount))
	return nil
}

// Reject marks a word as rejected so it never promotes. Rejecting an
// unknown word is a no-op.
func (p *Pool) Reject(ctx context.Context, word, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok, err := p.store.Get(ctx, Key(word))
	if err != nil || !ok {
		return err
	}
	e.Rejected = true
	e.RejectReason = reason
	return p.store.Put(ctx, e)
}

// CleanupExpired deletes unpromoted, unrejected entries not seen within
// the expiry window. Returns the number removed.
func (p *Pool) CleanupExpired(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries, err := p.store.All(ctx)
	if err != nil {
		return 0, err
	}

	threshold := p.now().Add(-p.opts.ExpireAfter)
	removed := 0
	for _, e := range entries {
		if e.Promoted || e.Rejected {
			continue
		}
		if e.LastSeen.Before(threshold) {
			if err := p.store.Delete(ctx, Key(e.Word)); err != nil {
				return removed, err
			}
			removed++
		}
	}
	if removed > 0 {
		p.log.Info("expired candidates removed", zap.Int("count", removed))
	}
	return removed, nil
}

// Stats aggregates pool counters. ByTag only counts pending entries.
func (p *Pool) Stats(ctx context.Context) (Stats, error) {
	entries, err := p.store.All(ctx)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{Total: len(entries), ByTag: make(map[string]int)}
	for _, e := range entries {
		switch {
		case e.Promoted:
			s.Promoted++
		case e.Rejected:
			s.Rejected++
		default:
			s.Pending++
			s.ByTag[e.Tag]++
		}
	}
	return s, nil
}

// PendingReview lists pending entries, most-seen first.
func (p *Pool) PendingReview(ctx context.Context, limit int) ([]Entry, error) {
	entries, err := p.store.All(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Entry
	for _, e := range entries {
		if !e.Promoted && !e.Rejected {
			pending = append(pending, e)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].SeenCount > pending[j].SeenCount
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

var categoryTags = []struct {
	category string
	tag      string
}{
	{dict.Brands, tag.Brand},
	{dict.Products, tag.Product},
	{dict.Audiences, tag.Audience},
	{dict.Scenarios, tag.Scenario},
	{dict.Colors, tag.Color},
	{dict.Features, tag.Feature},
	{dict.Attributes, tag.Attribute},
}

// categoryForTag maps a tag to its dictionary; size has no dictionary of
// its own and files under attributes.
func categoryForTag(tagName string) string {
	for _, ct := range categoryTags {
		if ct.tag == tagName {
			return ct.category
		}
	}
	return dict.Attributes
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
