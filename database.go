// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pricewise

import (
	"io"
	"log/slog"

	"github.com/poiesic/pricewise/ai"
	"github.com/poiesic/pricewise/ai/openai"
	"github.com/poiesic/pricewise/index"
	"github.com/poiesic/pricewise/ingestion"
	"github.com/poiesic/pricewise/reembed"
	"github.com/poiesic/pricewise/retrieval"
	"github.com/poiesic/pricewise/storage"
	"github.com/poiesic/pricewise/storage/badger"
)

// Database bundles the document store and AI provider behind one handle.
// It is the entry point for embedding-backed ingestion and retrieval.
type Database struct {
	backend      *badger.Backend
	documentRepo storage.DocumentRepository
	provider     ai.AIProvider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig overrides the default AI endpoint configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemory runs the store without persistence. filePath is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create document repository
	documentRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:      backend,
		documentRepo: documentRepo,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.documentRepo.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.documentRepo
}

// NewIngestionPipeline creates a pipeline that cleans, chunks, stores, and
// embeds product documents.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.documentRepo, db.provider, opts...)
}

// NewRetriever creates a retriever over this database's similarity index.
func (db *Database) NewRetriever(opts ...retrieval.Option) (*retrieval.Retriever, error) {
	idx, err := index.NewStoreIndex(db.documentRepo, db.provider.Embedder())
	if err != nil {
		return nil, err
	}
	return retrieval.NewRetriever(idx, db.provider.Synthesizer(), opts...)
}

// NewIndex creates a similarity index over this database's documents.
func (db *Database) NewIndex(opts ...index.StoreOption) (index.Index, error) {
	return index.NewStoreIndex(db.documentRepo, db.provider.Embedder(), opts...)
}

// NewReembedder creates a reembedder that regenerates every stored vector
// with the database's configured embedder.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.documentRepo, db.provider.Embedder(), config, progress)
}
