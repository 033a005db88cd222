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
	"strings"
	"testing"
	"time"

	"github.com/poiesic/pricewise/ai/mock"
	"github.com/poiesic/pricewise/core"
	"github.com/poiesic/pricewise/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubIndex is a function-backed index.Index for pipeline tests.
type stubIndex struct {
	searchFunc func(ctx context.Context, query string, k int, pred *index.Predicate) ([]core.Candidate, error)
	callCount  int
	lastQuery  string
	lastK      int
}

func (s *stubIndex) Search(ctx context.Context, query string, k int, pred *index.Predicate) ([]core.Candidate, error) {
	s.callCount++
	s.lastQuery = query
	s.lastK = k
	if s.searchFunc != nil {
		return s.searchFunc(ctx, query, k, pred)
	}
	return nil, nil
}

func fixedIndex(candidates []core.Candidate) *stubIndex {
	return &stubIndex{
		searchFunc: func(ctx context.Context, query string, k int, pred *index.Predicate) ([]core.Candidate, error) {
			return candidates, nil
		},
	}
}

func productCandidate(content, title, price string, score float32) core.Candidate {
	md := map[string]string{core.MetaTitle: title}
	if price != "" {
		md[core.MetaPrice] = price
	}
	return core.Candidate{
		Document: &core.Document{Content: content, Metadata: md},
		Score:    score,
	}
}

func TestNewRetriever(t *testing.T) {
	synthesizer := mock.NewMockSynthesizer()

	t.Run("valid", func(t *testing.T) {
		r, err := NewRetriever(&stubIndex{}, synthesizer)
		require.NoError(t, err)
		assert.NotNil(t, r)
		assert.Equal(t, DefaultTopK, r.topK)
		assert.Equal(t, DefaultMaxContentChars, r.maxContentChars)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewRetriever(nil, synthesizer)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("nil synthesizer", func(t *testing.T) {
		_, err := NewRetriever(&stubIndex{}, nil)
		assert.ErrorIs(t, err, ErrSynthesizerRequired)
	})

	t.Run("options", func(t *testing.T) {
		r, err := NewRetriever(&stubIndex{}, synthesizer,
			WithTopK(10),
			WithMaxContentChars(200),
			WithCallTimeout(2*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 10, r.topK)
		assert.Equal(t, 200, r.maxContentChars)
		assert.Equal(t, 2*time.Second, r.callTimeout)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewRetriever(&stubIndex{}, synthesizer, WithTopK(0))
		assert.Error(t, err)

		_, err = NewRetriever(&stubIndex{}, synthesizer, WithMaxContentChars(-1))
		assert.Error(t, err)

		_, err = NewRetriever(&stubIndex{}, synthesizer, WithCallTimeout(-time.Second))
		assert.Error(t, err)
	})
}

func TestRetrieverAnswerQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query", func(t *testing.T) {
		idx := &stubIndex{}
		r, err := NewRetriever(idx, mock.NewMockSynthesizer())
		require.NoError(t, err)

		_, err = r.AnswerQuery(ctx, "   ", 5)
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
		assert.Equal(t, 0, idx.callCount)
	})

	t.Run("answer with sources", func(t *testing.T) {
		candidates := []core.Candidate{
			productCandidate("A quiet mechanical keyboard.", "KeyBoard One", "$89", 0.92),
			productCandidate("A loud mechanical keyboard.", "KeyBoard Two", "$59", 0.85),
		}
		synthesizer := mock.NewMockSynthesizer()
		r, err := NewRetriever(fixedIndex(candidates), synthesizer)
		require.NoError(t, err)

		response, err := r.AnswerQuery(ctx, "best mechanical keyboard", 5)
		require.NoError(t, err)
		assert.NotEmpty(t, response.Answer)
		require.Len(t, response.Sources, 2)
		assert.Equal(t, "A quiet mechanical keyboard....", response.Sources[0].Excerpt)
		assert.Equal(t, float32(0.92), response.Sources[0].Score)
		assert.Equal(t, "KeyBoard One", response.Sources[0].Metadata[core.MetaTitle])
		assert.Equal(t, 1, synthesizer.CallCount())
	})

	t.Run("synthesizer receives query and assembled context", func(t *testing.T) {
		candidates := []core.Candidate{
			productCandidate("Ultra-wide monitor.", "WideView 34", "$499", 0.9),
		}
		synthesizer := mock.NewMockSynthesizer()
		r, err := NewRetriever(fixedIndex(candidates), synthesizer)
		require.NoError(t, err)

		_, err = r.AnswerQuery(ctx, "a monitor for coding", 5)
		require.NoError(t, err)
		assert.Equal(t, "a monitor for coding", synthesizer.LastQuery())
		assert.Contains(t, synthesizer.LastContext(), "[Product 1]")
		assert.Contains(t, synthesizer.LastContext(), "Title: WideView 34")
		assert.Contains(t, synthesizer.LastContext(), "Price: $499")
	})

	t.Run("price constraint filters candidates", func(t *testing.T) {
		candidates := []core.Candidate{
			productCandidate("Budget mouse.", "Mouse A", "$40", 0.9),
			productCandidate("Premium mouse.", "Mouse B", "$120", 0.88),
		}
		synthesizer := mock.NewMockSynthesizer()
		idx := fixedIndex(candidates)
		r, err := NewRetriever(idx, synthesizer)
		require.NoError(t, err)

		response, err := r.AnswerQuery(ctx, "wireless mouse under $50", 5)
		require.NoError(t, err)
		require.Len(t, response.Sources, 1)
		assert.Equal(t, "Mouse A", response.Sources[0].Metadata[core.MetaTitle])
		// The full query text reaches the index unmodified.
		assert.Equal(t, "wireless mouse under $50", idx.lastQuery)
		assert.NotContains(t, synthesizer.LastContext(), "Mouse B")
	})

	t.Run("empty results skip the synthesizer", func(t *testing.T) {
		synthesizer := mock.NewMockSynthesizer()
		r, err := NewRetriever(fixedIndex(nil), synthesizer)
		require.NoError(t, err)

		response, err := r.AnswerQuery(ctx, "nonexistent gadget", 5)
		require.NoError(t, err)
		assert.Equal(t, NoResultsAnswer, response.Answer)
		assert.Empty(t, response.Sources)
		assert.Equal(t, 0, synthesizer.CallCount())
	})

	t.Run("filtered-out results skip the synthesizer", func(t *testing.T) {
		candidates := []core.Candidate{
			productCandidate("Premium laptop.", "Laptop X", "$2,400", 0.9),
		}
		synthesizer := mock.NewMockSynthesizer()
		r, err := NewRetriever(fixedIndex(candidates), synthesizer)
		require.NoError(t, err)

		response, err := r.AnswerQuery(ctx, "laptop under $500", 5)
		require.NoError(t, err)
		assert.Equal(t, NoResultsAnswer, response.Answer)
		assert.Equal(t, 0, synthesizer.CallCount())
	})

	t.Run("k falls back to configured top-k", func(t *testing.T) {
		idx := fixedIndex(nil)
		r, err := NewRetriever(idx, mock.NewMockSynthesizer(), WithTopK(7))
		require.NoError(t, err)

		_, err = r.AnswerQuery(ctx, "anything", 0)
		require.NoError(t, err)
		assert.Equal(t, 7, idx.lastK)

		_, err = r.AnswerQuery(ctx, "anything", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, idx.lastK)
	})

	t.Run("index failure wraps ErrIndexUnavailable", func(t *testing.T) {
		idx := &stubIndex{
			searchFunc: func(ctx context.Context, query string, k int, pred *index.Predicate) ([]core.Candidate, error) {
				return nil, errors.New("backend offline")
			},
		}
		synthesizer := mock.NewMockSynthesizer()
		r, err := NewRetriever(idx, synthesizer)
		require.NoError(t, err)

		_, err = r.AnswerQuery(ctx, "any query", 5)
		assert.ErrorIs(t, err, core.ErrIndexUnavailable)
		assert.Equal(t, 0, synthesizer.CallCount())
	})

	t.Run("index unavailable error is not double wrapped", func(t *testing.T) {
		idx := &stubIndex{
			searchFunc: func(ctx context.Context, query string, k int, pred *index.Predicate) ([]core.Candidate, error) {
				return nil, core.ErrIndexUnavailable
			},
		}
		r, err := NewRetriever(idx, mock.NewMockSynthesizer())
		require.NoError(t, err)

		_, err = r.AnswerQuery(ctx, "any query", 5)
		assert.ErrorIs(t, err, core.ErrIndexUnavailable)
	})

	t.Run("synthesis failure wraps ErrSynthesisFailed", func(t *testing.T) {
		candidates := []core.Candidate{
			productCandidate("Some product.", "Product", "$10", 0.9),
		}
		synthesizer := mock.NewMockSynthesizer()
		synthesizer.GenerateAnswerFunc = func(ctx context.Context, query, contextText string) (string, error) {
			return "", errors.New("model overloaded")
		}
		r, err := NewRetriever(fixedIndex(candidates), synthesizer)
		require.NoError(t, err)

		_, err = r.AnswerQuery(ctx, "any query", 5)
		assert.ErrorIs(t, err, core.ErrSynthesisFailed)
	})

	t.Run("long content is truncated in excerpts", func(t *testing.T) {
		long := strings.Repeat("z", 600)
		candidates := []core.Candidate{
			productCandidate(long, "Long", "$10", 0.9),
		}
		r, err := NewRetriever(fixedIndex(candidates), mock.NewMockSynthesizer(), WithMaxContentChars(100))
		require.NoError(t, err)

		response, err := r.AnswerQuery(ctx, "any query", 5)
		require.NoError(t, err)
		require.Len(t, response.Sources, 1)
		assert.Equal(t, strings.Repeat("z", 100)+"...", response.Sources[0].Excerpt)
	})
}

// recordingMonitor records the pipeline stages it observes.
type recordingMonitor struct {
	stages      []string
	constraints core.Constraints
	searched    int
	filtered    int
}

func (m *recordingMonitor) Start(query string) { m.stages = append(m.stages, "start") }

func (m *recordingMonitor) AfterInterpret(searchQuery string, constraints core.Constraints) {
	m.stages = append(m.stages, "interpret")
	m.constraints = constraints
}

func (m *recordingMonitor) AfterSearch(candidates []core.Candidate) {
	m.stages = append(m.stages, "search")
	m.searched = len(candidates)
}

func (m *recordingMonitor) AfterFilter(candidates []core.Candidate) {
	m.stages = append(m.stages, "filter")
	m.filtered = len(candidates)
}

func (m *recordingMonitor) NoResults() { m.stages = append(m.stages, "noresults") }

func (m *recordingMonitor) Finish(response *core.Response) { m.stages = append(m.stages, "finish") }

func TestRetrieverMonitor(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline", func(t *testing.T) {
		candidates := []core.Candidate{
			productCandidate("Budget item.", "Item A", "$40", 0.9),
			productCandidate("Premium item.", "Item B", "$120", 0.8),
		}
		r, err := NewRetriever(fixedIndex(candidates), mock.NewMockSynthesizer())
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		_, err = r.AnswerQueryWithMonitor(ctx, "items under $50", 5, monitor)
		require.NoError(t, err)

		assert.Equal(t, []string{"start", "interpret", "search", "filter", "finish"}, monitor.stages)
		require.NotNil(t, monitor.constraints.PriceMax)
		assert.Equal(t, 50.0, *monitor.constraints.PriceMax)
		assert.Equal(t, 2, monitor.searched)
		assert.Equal(t, 1, monitor.filtered)
	})

	t.Run("no results path", func(t *testing.T) {
		r, err := NewRetriever(fixedIndex(nil), mock.NewMockSynthesizer())
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		response, err := r.AnswerQueryWithMonitor(ctx, "anything", 5, monitor)
		require.NoError(t, err)
		assert.Equal(t, NoResultsAnswer, response.Answer)
		assert.Equal(t, []string{"start", "interpret", "search", "filter", "noresults", "finish"}, monitor.stages)
	})
}
