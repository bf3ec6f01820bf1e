package tfidf

import (
	"errors"
	"math"
	"sort"

	"qabot/internal/textnorm"
)

var (
	// ErrEmptyCorpus is returned by Prepare when there is nothing to fit.
	ErrEmptyCorpus = errors.New("empty corpus for TF-IDF prepare")

	// ErrEmptyVocabulary is returned by Prepare when no document yields a token.
	ErrEmptyVocabulary = errors.New("no tokens found in corpus; empty vocabulary")

	// ErrNotPrepared is returned by Embed before Prepare succeeded.
	ErrNotPrepared = errors.New("tfidf embedder not prepared")
)

// Options selects the weighting variant.
type Options struct {
	// SmoothIDF adds one to document counts: idf = ln((1+n)/(1+df)) + 1.
	// Without it idf = ln(n/df) + 1.
	SmoothIDF bool `yaml:"smooth_idf"`
	// SublinearTF replaces a raw count c with 1 + ln(c).
	SublinearTF bool `yaml:"sublinear_tf"`
	// MinTokenLength is the shortest token, in runes, that enters the vocabulary.
	MinTokenLength int `yaml:"min_token_length"`
}

// DefaultOptions returns smoothed idf, raw term counts and two-rune tokens.
func DefaultOptions() Options {
	return Options{
		SmoothIDF:      true,
		SublinearTF:    false,
		MinTokenLength: textnorm.DefaultMinTokenLength,
	}
}

// Embedder implements a TF-IDF vectorizer.
// It builds a vocabulary from the corpus and computes IDF values.
// After Prepare it is read-only and safe to share.
type Embedder struct {
	opts       Options
	vocabulary map[string]int
	terms      []string
	idf        []float64
	dimension  int
	prepared   bool
}

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder(opts Options) *Embedder {
	if opts.MinTokenLength < 1 {
		opts.MinTokenLength = 1
	}
	return &Embedder{
		opts:       opts,
		vocabulary: make(map[string]int),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		e.idf[i] = e.inverseDocumentFrequency(n, float64(df[term]))
	}
	e.terms = terms
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

func (e *Embedder) inverseDocumentFrequency(n, df float64) float64 {
	if e.opts.SmoothIDF {
		return math.Log((1+n)/(1+df)) + 1.0
	}
	return math.Log(n/df) + 1.0
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Vocabulary returns the fitted terms in column order.
func (e *Embedder) Vocabulary() []string {
	out := make([]string, len(e.terms))
	copy(out, e.terms)
	return out
}

// IDF returns the fitted weight of term and whether term is in the vocabulary.
func (e *Embedder) IDF(term string) (float64, bool) {
	idx, ok := e.vocabulary[term]
	if !ok {
		return 0, false
	}
	return e.idf[idx], true
}

// Embed computes the L2-normalized TF-IDF vector for text. Terms outside the
// vocabulary are ignored; text with no known term yields the zero vector.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, ErrNotPrepared
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		tfv := float64(count)
		if e.opts.SublinearTF {
			tfv = 1 + math.Log(tfv)
		}
		vec[idx] = tfv * e.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (e *Embedder) tokenize(text string) []string {
	return textnorm.Tokenize(textnorm.Normalize(text), e.opts.MinTokenLength)
}
