package service

import (
	"fmt"

	"qabot/internal/domain"
	"qabot/internal/logger"
	"qabot/internal/textnorm"
)

const (
	DefaultThreshold = 0.5
	DefaultFallback  = "No estoy seguro de cómo responder eso."
)

var _ domain.Answerer = (*Matcher)(nil)

// MatcherOptions holds the decision parameters of a Matcher.
type MatcherOptions struct {
	// Threshold is the lowest similarity that still counts as an answer.
	Threshold float64
	// Fallback is returned when the best score is below Threshold.
	Fallback string
}

// DefaultMatcherOptions returns a 0.5 threshold and the stock fallback text.
func DefaultMatcherOptions() MatcherOptions {
	return MatcherOptions{Threshold: DefaultThreshold, Fallback: DefaultFallback}
}

// Matcher answers free-text queries from an Index.
type Matcher struct {
	index *Index
	opts  MatcherOptions
	log   logger.Logger
}

// NewMatcher binds a Matcher to a built index.
func NewMatcher(index *Index, opts MatcherOptions, log logger.Logger) (*Matcher, error) {
	if index == nil || index.Len() == 0 {
		return nil, fmt.Errorf("%w: matcher needs a built index", domain.ErrConfiguration)
	}
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %v outside [0, 1]", domain.ErrConfiguration, opts.Threshold)
	}
	return &Matcher{index: index, opts: opts, log: logger.OrDiscard(log)}, nil
}

// Answer returns the answer of the closest corpus question, or the fallback
// when no question is similar enough. It never fails.
func (m *Matcher) Answer(query string) string {
	return m.Lookup(query).Answer
}

// Lookup is Answer with the score and matched position exposed.
func (m *Matcher) Lookup(query string) domain.Match {
	normalized := textnorm.Normalize(query)
	m.log.Debugf("Lookup called, query: %q, normalized: %q", query, normalized)

	fallback := domain.Match{Index: -1, Answer: m.opts.Fallback}

	vec, err := m.index.embedder.Embed(normalized)
	if err != nil {
		m.log.Errorf("Embedding query failed, error: %v", err)
		return fallback
	}

	idx, score, err := m.index.store.Nearest(vec)
	if err != nil {
		m.log.Errorf("Nearest neighbour search failed, error: %v", err)
		return fallback
	}
	m.log.Debugf("Best match, index: %d, max_similarity: %.4f, threshold: %.4f",
		idx, score, m.opts.Threshold)

	entry, ok := m.index.Entry(idx)
	if !ok {
		return fallback
	}

	match := domain.Match{Index: idx, Score: score, Answer: m.opts.Fallback}
	if score < m.opts.Threshold {
		return match
	}
	match.Confident = true
	match.Answer = entry.Answer
	return match
}

// Questions returns the normalized corpus questions for display.
func (m *Matcher) Questions() []string {
	return m.index.Questions()
}
