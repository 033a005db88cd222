package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/pricewise/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReembedder_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store reports and succeeds", func(t *testing.T) {
		repo := setupTestRepository(t)
		var buf bytes.Buffer

		r := NewReembedder(repo, mock.NewMockEmbedder(), nil, &buf)
		require.NoError(t, r.Run(ctx))
		assert.Contains(t, buf.String(), "No documents found")
	})

	t.Run("reembeds every document", func(t *testing.T) {
		repo := setupTestRepository(t)
		seedDocuments(t, repo, 12)
		var buf bytes.Buffer

		config := &Config{
			BatchSize:      5,
			ReportInterval: 5,
			MaxRetries:     2,
			RetryDelay:     time.Millisecond,
		}
		r := NewReembedder(repo, mock.NewMockEmbedder(), config, &buf)
		require.NoError(t, r.Run(ctx))

		docs, err := repo.ListDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 12)
		for _, doc := range docs {
			assert.NotEmpty(t, doc.Vector)
		}

		output := buf.String()
		assert.Contains(t, output, "Starting reembedding of 12 documents")
		assert.Contains(t, output, "Reembedding complete")
	})

	t.Run("default config applied when nil", func(t *testing.T) {
		repo := setupTestRepository(t)
		var buf bytes.Buffer

		r := NewReembedder(repo, mock.NewMockEmbedder(), nil, &buf)
		assert.Equal(t, DefaultConfig().BatchSize, r.config.BatchSize)
	})

	t.Run("embedding failure aborts the run", func(t *testing.T) {
		repo := setupTestRepository(t)
		seedDocuments(t, repo, 3)
		var buf bytes.Buffer

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}

		config := &Config{BatchSize: 2, ReportInterval: 2, MaxRetries: 1, RetryDelay: time.Millisecond}
		r := NewReembedder(repo, embedder, config, &buf)

		err := r.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to process batch")
	})
}
