package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/dataset"
	"qabot/internal/embedding/tfidf"
)

func TestBundledDataset(t *testing.T) {
	entries, err := dataset.Load("../../dataset.json")
	require.NoError(t, err)

	index, err := BuildIndex(entries, tfidf.DefaultOptions(), nil)
	require.NoError(t, err)
	m, err := NewMatcher(index, DefaultMatcherOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Una estrella.", m.Answer("QUÉ es el SOL"))
	assert.Equal(t, "París.", m.Answer("¿Cuál es la capital de Francia?"))
	assert.Equal(t, "Miguel de Cervantes.", m.Answer("quién escribió don quijote"))
	assert.Equal(t, DefaultFallback, m.Answer("banana rocket"))
	assert.Equal(t, DefaultFallback, m.Answer("2024"))
	assert.Len(t, m.Questions(), len(entries))
}
