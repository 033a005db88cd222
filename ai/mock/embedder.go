package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// EmbeddingDim is the dimensionality of the vectors the default behavior
// produces. Small enough to keep test stores fast, large enough that
// distinct product descriptions land on distinct directions.
const EmbeddingDim = 384

// MockEmbedder is a test double for ai.Embedder.
//
// Without injected behavior it derives a unit vector from the text itself,
// so the same product description always embeds to the same vector and
// content-addressed fixtures stay stable across runs.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// LastText and LastTexts record the most recent inputs for assertions.
	LastText  string
	LastTexts []string

	callCount int
}

// NewMockEmbedder creates a mock embedder with deterministic defaults.
// Note: Returns concrete type to allow test assertions via GetMockEmbedder().
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText derives a deterministic embedding from the text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	m.LastText = text

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return descriptionVector(text), nil
}

// EmbedTexts derives deterministic embeddings for a batch of texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++
	m.LastTexts = texts

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = descriptionVector(text)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears recorded inputs, the call count, and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.LastText = ""
	m.LastTexts = nil
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// descriptionVector expands the text's FNV-1a hash into EmbeddingDim
// components with a linear congruential generator, then scales the result
// to unit length so dot products behave like cosine similarity.
func descriptionVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, EmbeddingDim)
	var sumSquares float64
	for i := range vector {
		seed = seed*6364136223846793005 + 1442695040888963407
		component := float64(seed>>32)/float64(1<<31) - 1
		vector[i] = float32(component)
		sumSquares += component * component
	}

	if sumSquares > 0 {
		norm := float32(math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] /= norm
		}
	}

	return vector
}
