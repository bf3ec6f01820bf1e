package memory

import (
	"errors"

	"qabot/internal/domain"
	"qabot/internal/similarity"
)

var _ domain.VectorStore = (*Storage)(nil)

var (
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmpty             = errors.New("vector store is empty")
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
// It is filled once during index construction and only read afterwards, so it
// does no locking.
type Storage struct {
	dimension int
	vectors   [][]float64
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return ErrInvalidDimension
	}
	s.dimension = dimension
	s.vectors = nil
	return nil
}

// Upsert appends vectors in order; the i-th stored vector belongs to the
// i-th corpus entry.
func (s *Storage) Upsert(vectors [][]float64) error {
	for _, v := range vectors {
		if len(v) != s.dimension {
			return ErrDimensionMismatch
		}
	}
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Nearest scores vector against every stored vector and returns the best
// index. Ties go to the entry inserted first.
func (s *Storage) Nearest(vector []float64) (int, float64, error) {
	if len(s.vectors) == 0 {
		return -1, 0, ErrEmpty
	}
	if len(vector) != s.dimension {
		return -1, 0, ErrDimensionMismatch
	}
	idx, score := similarity.ArgMax(similarity.Batch(vector, s.vectors))
	return idx, score, nil
}

func (s *Storage) Len() int { return len(s.vectors) }
