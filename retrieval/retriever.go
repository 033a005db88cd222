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


package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/pricewise/ai"
	"github.com/poiesic/pricewise/core"
	"github.com/poiesic/pricewise/index"
	"github.com/poiesic/pricewise/query"
)

const (
	// DefaultTopK is the number of candidates requested from the index when
	// the caller does not specify one.
	DefaultTopK = 5

	// DefaultMaxContentChars limits how much of a document's content appears
	// in the assembled context and in source excerpts.
	DefaultMaxContentChars = 500

	// NoResultsAnswer is returned when no candidates survive filtering.
	// The synthesizer is never invoked in that case.
	NoResultsAnswer = "I couldn't find any products matching your query."
)

// Retriever answers product questions by interpreting the query, retrieving
// candidates from the similarity index, applying price constraints, and
// handing the assembled context to the synthesizer.
//
// A Retriever is stateless per query and safe for concurrent use.
type Retriever struct {
	index           index.Index
	synthesizer     ai.Synthesizer
	topK            int
	maxContentChars int
	callTimeout     time.Duration
	logger          *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTopK sets the default number of candidates requested from the index.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k <= 0 {
			return fmt.Errorf("topK must be positive, got %d", k)
		}
		r.topK = k
		return nil
	}
}

// WithMaxContentChars sets the per-document content limit used for the
// assembled context and source excerpts.
func WithMaxContentChars(n int) Option {
	return func(r *Retriever) error {
		if n <= 0 {
			return fmt.Errorf("maxContentChars must be positive, got %d", n)
		}
		r.maxContentChars = n
		return nil
	}
}

// WithCallTimeout bounds each collaborator call (index search, answer
// synthesis). Zero means no per-call deadline beyond the caller's context.
func WithCallTimeout(d time.Duration) Option {
	return func(r *Retriever) error {
		if d < 0 {
			return fmt.Errorf("call timeout cannot be negative, got %s", d)
		}
		r.callTimeout = d
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(idx index.Index, synthesizer ai.Synthesizer, opts ...Option) (*Retriever, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}

	r := &Retriever{
		index:           idx,
		synthesizer:     synthesizer,
		topK:            DefaultTopK,
		maxContentChars: DefaultMaxContentChars,
		logger:          slog.Default().With("component", "retriever"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// AnswerQuery answers a product question.
// k limits how many candidates are requested from the index; k <= 0 falls
// back to the retriever's configured top-k.
func (r *Retriever) AnswerQuery(ctx context.Context, text string, k int) (*core.Response, error) {
	return r.AnswerQueryWithMonitor(ctx, text, k, nil)
}

// AnswerQueryWithMonitor answers a product question with stage monitoring.
// The monitor receives callbacks at each stage of the pipeline.
func (r *Retriever) AnswerQueryWithMonitor(ctx context.Context, text string, k int, monitor RetrievalMonitor) (*core.Response, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(text) == "" {
		return nil, core.ErrInvalidQuery
	}
	if k <= 0 {
		k = r.topK
	}

	monitor.Start(text)

	// 1. Interpret the query into a search query plus price constraints.
	searchQuery, constraints := query.Interpret(text)
	monitor.AfterInterpret(searchQuery, constraints)

	// 2. Retrieve candidates. The index-native predicate is always nil;
	// constraints are applied by post-filtering below.
	candidates, err := r.search(ctx, searchQuery, k)
	if err != nil {
		r.logger.Error("candidate retrieval failed", "query", text, "err", err)
		return nil, err
	}
	monitor.AfterSearch(candidates)

	// 3. Apply price constraints.
	if !constraints.Empty() {
		candidates = FilterByPrice(candidates, constraints)
	}
	monitor.AfterFilter(candidates)

	// 4. Short-circuit on empty results. The synthesizer is never invoked.
	if len(candidates) == 0 {
		monitor.NoResults()
		response := &core.Response{Answer: NoResultsAnswer}
		monitor.Finish(response)
		return response, nil
	}

	// 5. Assemble context and synthesize the answer.
	assembled := AssembleContext(candidates, r.maxContentChars)
	answer, err := r.generate(ctx, text, assembled)
	if err != nil {
		r.logger.Error("answer synthesis failed", "query", text, "err", err)
		return nil, err
	}

	response := &core.Response{
		Answer:  answer,
		Sources: r.toSources(candidates),
	}
	monitor.Finish(response)

	return response, nil
}

// search calls the index under the configured per-call deadline.
func (r *Retriever) search(ctx context.Context, searchQuery string, k int) ([]core.Candidate, error) {
	callCtx, cancel := r.callContext(ctx)
	defer cancel()

	candidates, err := r.index.Search(callCtx, searchQuery, k, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: similarity search: %w", core.ErrTimedOut, err)
		}
		if errors.Is(err, core.ErrIndexUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", core.ErrIndexUnavailable, err)
	}
	return candidates, nil
}

// generate calls the synthesizer under the configured per-call deadline.
func (r *Retriever) generate(ctx context.Context, text, assembled string) (string, error) {
	callCtx, cancel := r.callContext(ctx)
	defer cancel()

	answer, err := r.synthesizer.GenerateAnswer(callCtx, text, assembled)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: answer synthesis: %w", core.ErrTimedOut, err)
		}
		return "", fmt.Errorf("%w: %w", core.ErrSynthesisFailed, err)
	}
	return answer, nil
}

func (r *Retriever) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.callTimeout > 0 {
		return context.WithTimeout(ctx, r.callTimeout)
	}
	return ctx, func() {}
}

// toSources packages filtered candidates as ranked response sources.
func (r *Retriever) toSources(candidates []core.Candidate) []core.Source {
	sources := make([]core.Source, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Document == nil {
			continue
		}
		sources = append(sources, core.Source{
			Excerpt:  truncateRunes(candidate.Document.Content, r.maxContentChars) + "...",
			Metadata: candidate.Document.Metadata,
			Score:    candidate.Score,
		})
	}
	return sources
}
