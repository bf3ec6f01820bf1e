package service

import (
	"errors"
	"fmt"

	"qabot/internal/domain"
	"qabot/internal/embedding/tfidf"
	"qabot/internal/logger"
	"qabot/internal/textnorm"
	"qabot/internal/vectorstore/memory"
)

// Index is the corpus fitted into a vector space. It is built once by
// BuildIndex and never modified afterwards.
type Index struct {
	entries  []domain.Entry
	embedder domain.Embedder
	store    domain.VectorStore
}

// BuildIndex normalizes every question, fits a TF-IDF model over them and
// stores one vector per entry in corpus order. Errors wrap
// domain.ErrConfiguration.
func BuildIndex(entries []domain.Entry, opts tfidf.Options, log logger.Logger) (*Index, error) {
	return buildIndex(entries, tfidf.NewEmbedder(opts), memory.NewStorage(), logger.OrDiscard(log))
}

func buildIndex(
	entries []domain.Entry,
	embedder domain.Embedder,
	store domain.VectorStore,
	log logger.Logger,
) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: dataset has no entries", domain.ErrConfiguration)
	}

	normalized := make([]domain.Entry, len(entries))
	questions := make([]string, len(entries))
	for i, e := range entries {
		raw := e.RawQuestion
		if raw == "" {
			raw = e.Question
		}
		q := textnorm.Normalize(raw)
		normalized[i] = domain.Entry{RawQuestion: raw, Question: q, Answer: e.Answer}
		questions[i] = q
	}

	if err := embedder.Prepare(questions); err != nil {
		if errors.Is(err, tfidf.ErrEmptyVocabulary) || errors.Is(err, tfidf.ErrEmptyCorpus) {
			return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
		return nil, fmt.Errorf("%w: prepare %s embedder: %w", domain.ErrConfiguration, embedder.Name(), err)
	}

	if err := store.Init(embedder.Dimension()); err != nil {
		return nil, fmt.Errorf("%w: init vector store: %w", domain.ErrConfiguration, err)
	}

	vectors := make([][]float64, len(normalized))
	for i, q := range questions {
		vec, err := embedder.Embed(q)
		if err != nil {
			return nil, fmt.Errorf("%w: embed question %d: %w", domain.ErrConfiguration, i, err)
		}
		vectors[i] = vec
	}
	if err := store.Upsert(vectors); err != nil {
		return nil, fmt.Errorf("%w: store vectors: %w", domain.ErrConfiguration, err)
	}

	log.Infof("Corpus index built, entries: %d, embedder: %s, vocabulary_size: %d",
		store.Len(), embedder.Name(), embedder.Dimension())

	return &Index{entries: normalized, embedder: embedder, store: store}, nil
}

// Len returns the number of corpus entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Dimension returns the size of the fitted vocabulary.
func (ix *Index) Dimension() int { return ix.embedder.Dimension() }

// Questions returns the normalized questions in corpus order.
func (ix *Index) Questions() []string {
	out := make([]string, len(ix.entries))
	for i, e := range ix.entries {
		out[i] = e.Question
	}
	return out
}

// Entry returns the corpus entry at position i.
func (ix *Index) Entry(i int) (domain.Entry, bool) {
	if i < 0 || i >= len(ix.entries) {
		return domain.Entry{}, false
	}
	return ix.entries[i], true
}
