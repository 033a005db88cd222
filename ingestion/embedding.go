package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/pricewise/ai"
	"github.com/poiesic/pricewise/core"
	"github.com/poiesic/pricewise/storage"
)

// embeddingProcessor generates embeddings for stored documents.
type embeddingProcessor struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	logger    *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(documents storage.DocumentRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if documents == nil {
		return nil, fmt.Errorf("document repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		documents: documents,
		embedder:  embedder,
		logger:    logger.With("processor", "embeddings"),
	}, nil
}

// process generates normalized embeddings for the specified documents.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}
	ep.logger.Info("processing documents for embeddings", "documents", len(ids))

	docs, err := ep.documents.GetDocuments(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving documents", "err", err)
		return err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	ep.logger.Debug("generating embeddings for documents", "documents", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(docs) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(docs), len(embeddings))
	}

	for i := range embeddings {
		docs[i].Vector = core.NormalizeVector(embeddings[i])
	}

	_, err = ep.documents.UpdateDocuments(ctx, docs...)
	return err
}
