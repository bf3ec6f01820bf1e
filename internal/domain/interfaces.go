package domain

// Entry is a single question/answer pair of the corpus.
// Question holds the normalized form used for matching; RawQuestion keeps the
// text as it appeared in the dataset.
type Entry struct {
	RawQuestion string
	Question    string
	Answer      string
}

// Match is the outcome of one lookup against the corpus.
type Match struct {
	Index     int
	Score     float64
	Confident bool
	Answer    string
}

// Embedder converts free text into a numeric vector representation.
// Implementations require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// VectorStore holds the corpus vectors and finds the closest one to a query.
// Vectors are addressed by insertion position, which is the corpus index.
type VectorStore interface {
	Init(dimension int) error
	Upsert(vectors [][]float64) error
	Nearest(vector []float64) (index int, score float64, err error)
	Len() int
}

// Answerer is everything the presentation layer needs from the core.
type Answerer interface {
	Answer(query string) string
	Questions() []string
}
