package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/domain"
	"qabot/internal/embedding/tfidf"
)

func TestBuildIndex_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Entry
	}{
		{name: "nil corpus", entries: nil},
		{name: "empty corpus", entries: []domain.Entry{}},
		{name: "punctuation only", entries: []domain.Entry{{RawQuestion: "?!", Answer: "x"}, {RawQuestion: "", Answer: "y"}}},
		{name: "single letters only", entries: []domain.Entry{{RawQuestion: "a b c", Answer: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, err := BuildIndex(tt.entries, tfidf.DefaultOptions(), nil)
			assert.Nil(t, ix)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestBuildIndex_NormalizesQuestions(t *testing.T) {
	ix, err := BuildIndex([]domain.Entry{
		{RawQuestion: "What is the Sun?", Answer: "A star."},
		{Question: "Pre-set Question", Answer: "kept"},
	}, tfidf.DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, []string{"what is the sun", "preset question"}, ix.Questions())
	assert.Equal(t, 6, ix.Dimension())

	e, ok := ix.Entry(0)
	require.True(t, ok)
	assert.Equal(t, "What is the Sun?", e.RawQuestion)
	assert.Equal(t, "A star.", e.Answer)

	_, ok = ix.Entry(5)
	assert.False(t, ok)
}

func TestBuildIndex_UsesWeightingOptions(t *testing.T) {
	entries := []domain.Entry{
		{RawQuestion: "x yy", Answer: "1"},
		{RawQuestion: "zz", Answer: "2"},
	}

	ix, err := BuildIndex(entries, tfidf.Options{SmoothIDF: true, MinTokenLength: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Dimension())

	ix, err = BuildIndex(entries, tfidf.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Dimension())
}
