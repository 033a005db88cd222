// Package index defines the similarity index contract used by the retrieval
// pipeline, together with a store-backed implementation.
//
// The retriever only ever depends on the Index interface; the concrete index
// behind it (a store scan, a remote vector database) is an implementation
// detail chosen at wiring time.
package index

import (
	"context"

	"github.com/poiesic/pricewise/core"
)

// Index finds documents relevant to a free-text query.
// Implementations must be thread-safe for concurrent use.
type Index interface {
	// Search returns up to k candidates ranked best-first by relevance.
	// pred is an optional index-native filter; implementations that cannot
	// honor it may ignore it, since callers post-filter anyway. A failure to
	// reach the backend must wrap core.ErrIndexUnavailable.
	Search(ctx context.Context, query string, k int, pred *Predicate) ([]core.Candidate, error)
}

// Predicate is an index-native metadata filter. Bounds follow the same
// convention as core.Constraints: nil means unbounded.
type Predicate struct {
	PriceMin *float64
	PriceMax *float64
}
