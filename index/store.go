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


package index

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/pricewise/ai"
	"github.com/poiesic/pricewise/core"
	"github.com/poiesic/pricewise/query"
	"github.com/poiesic/pricewise/storage"
)

const (
	// DefaultK is the number of candidates returned when the caller
	// passes k <= 0.
	DefaultK = 5
)

// StoreIndex implements Index on top of the document store: it embeds the
// query text and ranks stored documents by vector similarity.
type StoreIndex struct {
	repo          storage.DocumentRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

var _ Index = (*StoreIndex)(nil)

// StoreOption configures a StoreIndex.
type StoreOption func(*StoreIndex) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *StoreIndex) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity floor applied during the store scan.
// The default is 0, which keeps every scored document in contention.
func WithMinSimilarity(min float32) StoreOption {
	return func(s *StoreIndex) error {
		if min < -1 || min > 1 {
			return fmt.Errorf("minimum similarity must be between -1 and 1, got %f", min)
		}
		s.minSimilarity = min
		return nil
	}
}

// NewStoreIndex creates a store-backed similarity index.
// Both the repository and the embedder are required.
func NewStoreIndex(repo storage.DocumentRepository, embedder ai.Embedder, opts ...StoreOption) (*StoreIndex, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &StoreIndex{
		repo:          repo,
		embedder:      embedder,
		minSimilarity: 0,
		logger:        slog.Default().With("component", "store-index"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query and ranks stored documents by similarity.
// A non-nil predicate is applied after the scan with permissive retention:
// documents whose price metadata is missing or unparsable are kept.
func (s *StoreIndex) Search(ctx context.Context, queryText string, k int, pred *Predicate) ([]core.Candidate, error) {
	if k <= 0 {
		k = DefaultK
	}

	vector, err := s.embedder.EmbedText(ctx, queryText)
	if err != nil {
		s.logger.Error("failed to embed query", "err", err)
		return nil, fmt.Errorf("%w: embedding query: %w", core.ErrIndexUnavailable, err)
	}
	vector = core.NormalizeVector(vector)

	candidates, err := s.repo.FindSimilar(ctx, vector, s.minSimilarity, k)
	if err != nil {
		s.logger.Error("similarity scan failed", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrIndexUnavailable, err)
	}

	if pred != nil {
		candidates = applyPredicate(candidates, pred)
	}

	s.logger.Debug("search complete", "k", k, "hits", len(candidates))
	return candidates, nil
}

// applyPredicate prunes candidates whose parsable price falls outside the
// bounds. Order is preserved; candidates without a usable price survive.
func applyPredicate(candidates []core.Candidate, pred *Predicate) []core.Candidate {
	if pred.PriceMin == nil && pred.PriceMax == nil {
		return candidates
	}

	filtered := make([]core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		price, ok := query.CandidatePrice(c)
		if !ok {
			filtered = append(filtered, c)
			continue
		}
		if pred.PriceMax != nil && price > *pred.PriceMax {
			continue
		}
		if pred.PriceMin != nil && price < *pred.PriceMin {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
