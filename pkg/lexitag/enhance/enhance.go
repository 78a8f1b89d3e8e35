// Package enhance re-tags low-confidence tokens through a chat completion
// model. Suggestions go into the candidate pool for review rather than
// straight into the dictionaries, and every failure degrades to leaving the
// original tagging untouched.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/cognicore/lexitag/pkg/lexitag/pool"
	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

// Options tune when and how the enhancer fires.
type Options struct {
	// ConfidenceThreshold is the ceiling below which a token is sent out
	// for re-tagging.
	ConfidenceThreshold float64
	// BatchSize caps the number of words per API call.
	BatchSize int
	// CacheSize bounds the processed-word cache.
	CacheSize int
}

// DefaultOptions returns the thresholds used in production.
func DefaultOptions() Options {
	return Options{
		ConfidenceThreshold: 0.6,
		BatchSize:           20,
		CacheSize:           10000,
	}
}

// Suggestion is the model's verdict for one word.
type Suggestion struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
}

// Stats reports the enhancer's runtime state.
type Stats struct {
	Enabled       bool
	CacheSize     int
	Threshold     float64
	PoolConnected bool
}

// Enhancer wires the chat client to the candidate pool. A nil pool disables
// staging; a nil or unconfigured client disables enhancement entirely.
type Enhancer struct {
	client    *Client
	pool      *pool.Pool
	opts      Options
	log       *zap.Logger
	processed *lru.Cache[string, struct{}]
}

// New builds an enhancer. The pool and logger may be nil.
func New(client *Client, p *pool.Pool, opts Options, log *zap.Logger) (*Enhancer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions().BatchSize
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultOptions().CacheSize
	}
	cache, err := lru.New[string, struct{}](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("enhance: cache: %w", err)
	}
	return &Enhancer{
		client:    client,
		pool:      p,
		opts:      opts,
		log:       log,
		processed: cache,
	}, nil
}

// Enabled reports whether the enhancer has a usable endpoint.
func (e *Enhancer) Enabled() bool {
	return e != nil && e.client != nil && e.client.BaseURL != "" && e.client.Model != ""
}

// Enhance re-tags the low-confidence entries in results. The keyword gives
// the model context. Entries the model does not answer for, and everything
// on any failure path, come back unchanged.
func (e *Enhancer) Enhance(ctx context.Context, results []tag.Result, keyword string) []tag.Result {
	if !e.Enabled() {
		return results
	}

	var pending []string
	for _, r := range results {
		if utf8.RuneCountInString(r.Token) <= 1 {
			continue
		}
		if r.Method == "stopword" {
			continue
		}
		if r.Confidence > e.opts.ConfidenceThreshold {
			continue
		}
		if e.processed.Contains(strings.ToLower(r.Token)) {
			continue
		}
		pending = append(pending, r.Token)
	}
	if len(pending) == 0 {
		return results
	}

	suggestions := e.ProcessBatch(ctx, pending, keyword)
	if len(suggestions) == 0 {
		return results
	}

	out := make([]tag.Result, len(results))
	for i, r := range results {
		if s, ok := suggestions[r.Token]; ok {
			out[i] = tag.Result{
				Token:      r.Token,
				Tags:       []string{s.Tag},
				Primary:    s.Tag,
				Confidence: s.Confidence,
				Method:     "ai",
			}
			continue
		}
		out[i] = r
	}
	return out
}

// ProcessBatch tags the given words, staging every answer into the candidate
// pool. Per-batch API failures are logged and skipped.
func (e *Enhancer) ProcessBatch(ctx context.Context, words []string, keyword string) map[string]Suggestion {
	if !e.Enabled() || len(words) == 0 {
		return nil
	}

	unique := dedupe(words)
	all := make(map[string]Suggestion)

	for start := 0; start < len(unique); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(unique) {
			end = len(unique)
		}
		batch := unique[start:end]

		got, err := e.callModel(ctx, batch, keyword)
		if err != nil {
			e.log.Warn("enhancement batch failed",
				zap.Int("words", len(batch)),
				zap.Error(err))
			continue
		}

		suggestions := make([]pool.Suggestion, 0, len(got))
		for word, s := range got {
			all[word] = s
			e.processed.Add(strings.ToLower(word), struct{}{})
			suggestions = append(suggestions, pool.Suggestion{
				Word:       word,
				Tag:        s.Tag,
				Confidence: s.Confidence,
				Source:     "ai",
			})
		}
		if e.pool != nil && len(suggestions) > 0 {
			if err := e.pool.AddBatch(ctx, suggestions, keyword); err != nil {
				e.log.Warn("staging suggestions failed", zap.Error(err))
			}
		}
	}
	return all
}

// ProcessSingle tags one word.
func (e *Enhancer) ProcessSingle(ctx context.Context, word, keyword string) (Suggestion, bool) {
	got := e.ProcessBatch(ctx, []string{word}, keyword)
	s, ok := got[word]
	return s, ok
}

// ClearCache drops the processed-word cache.
func (e *Enhancer) ClearCache() { e.processed.Purge() }

// Stats reports runtime state.
func (e *Enhancer) Stats() Stats {
	return Stats{
		Enabled:       e.Enabled(),
		CacheSize:     e.processed.Len(),
		Threshold:     e.opts.ConfidenceThreshold,
		PoolConnected: e.pool != nil,
	}
}

func (e *Enhancer) callModel(ctx context.Context, words []string, keyword string) (map[string]Suggestion, error) {
	content, err := e.client.Chat(ctx, systemPrompt, buildPrompt(words, keyword))
	if err != nil {
		return nil, err
	}
	got, err := parseSuggestions(content)
	if err != nil {
		return nil, err
	}
	for word, s := range got {
		got[word] = sanitize(s)
	}
	return got, nil
}

// sanitize pins the answer to the tag vocabulary and a sane confidence band.
func sanitize(s Suggestion) Suggestion {
	if !validTags[s.Tag] {
		s.Tag = tag.Attribute
		s.Confidence = 0.7
		return s
	}
	if s.Confidence < 0.6 {
		s.Confidence = 0.6
	}
	if s.Confidence > 0.95 {
		s.Confidence = 0.95
	}
	return s
}

// parseSuggestions decodes the model answer, tolerating a markdown fence
// around the JSON body.
func parseSuggestions(content string) (map[string]Suggestion, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
			lines = lines[1 : len(lines)-1]
		} else {
			lines = lines[1:]
		}
		content = strings.Join(lines, "\n")
	}

	var got map[string]Suggestion
	if err := json.Unmarshal([]byte(content), &got); err != nil {
		return nil, fmt.Errorf("enhance: parse answer: %w", err)
	}
	return got, nil
}

var validTags = func() map[string]bool {
	m := make(map[string]bool, len(tag.All))
	for _, t := range tag.All {
		m[t] = true
	}
	return m
}()

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
