package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/pricewise/ai"
	"github.com/poiesic/pricewise/core"
	"github.com/poiesic/pricewise/storage"
)

// SourceDocument is one raw product entry handed to the pipeline.
// Content is the product description; the remaining fields become chunk
// metadata.
type SourceDocument struct {
	Title   string
	URL     string
	Price   string
	Tags    []string
	Content string
}

// Pipeline orchestrates the ingestion and processing of product documents.
// It cleans and chunks source text, stores the chunks, and generates
// embeddings concurrently.
type Pipeline struct {
	documents     storage.DocumentRepository
	embeddingPool *ants.Pool
	embeddingProc processor
	chunker       Chunker
	pending       sync.WaitGroup
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithChunking overrides the chunk size and overlap used when splitting
// source content. Values outside sane bounds fall back to the defaults.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.chunker.Size = size
		}
		if overlap >= 0 && overlap < p.chunker.Size {
			p.chunker.Overlap = overlap
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents:     documents,
		embeddingPool: embeddingPool,
		chunker:       Chunker{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		logger:        slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	embeddingProc, err := newEmbeddingProcessor(documents, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest cleans, chunks, and stores the given source documents, then
// submits the stored chunks for asynchronous embedding. Errors during
// async processing are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, sources ...SourceDocument) ([]*core.Document, error) {
	var docs []*core.Document
	for _, source := range sources {
		docs = append(docs, p.chunkSource(source)...)
	}

	if len(docs) == 0 {
		return nil, nil
	}

	added, err := p.documents.AddDocuments(ctx, docs...)
	if err != nil {
		return nil, err
	}

	ids := make([]core.ID, len(added))
	for i, doc := range added {
		ids[i] = doc.Id
	}

	p.pending.Add(1)
	submitErr := p.embeddingPool.Submit(func() {
		defer p.pending.Done()
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})
	if submitErr != nil {
		p.pending.Done()
		p.logger.Error("error submitting embedding work", "err", submitErr)
	}

	return added, nil
}

// Wait blocks until all submitted embedding work has completed.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// chunkSource cleans and splits one source document into chunk documents
// carrying the source's product metadata.
func (p *Pipeline) chunkSource(source SourceDocument) []*core.Document {
	chunks := p.chunker.Split(CleanText(source.Content))
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]*core.Document, len(chunks))
	for i, chunk := range chunks {
		metadata := map[string]string{
			core.MetaChunkIndex:  strconv.Itoa(i),
			core.MetaTotalChunks: strconv.Itoa(len(chunks)),
		}
		if source.Title != "" {
			metadata[core.MetaTitle] = source.Title
		}
		if source.URL != "" {
			metadata[core.MetaURL] = source.URL
		}
		if source.Price != "" {
			metadata[core.MetaPrice] = source.Price
		}
		if len(source.Tags) > 0 {
			metadata[core.MetaTags] = strings.Join(source.Tags, ",")
		}

		docs[i] = &core.Document{
			Content:  chunk,
			Metadata: metadata,
		}
	}
	return docs
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
