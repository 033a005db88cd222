package retrieval

import (
	"github.com/poiesic/pricewise/core"
	"github.com/poiesic/pricewise/query"
)

// FilterByPrice prunes candidates whose price falls outside the constraints.
//
// The filter is permissive: candidates with no price metadata, or with price
// metadata that contains no parsable amount, are always retained. Only a
// candidate with a parsable price that violates a bound is excluded. Output
// order is a subsequence of input order; candidates are never reordered.
//
// With empty constraints the input is returned unchanged.
func FilterByPrice(candidates []core.Candidate, c core.Constraints) []core.Candidate {
	if c.Empty() {
		return candidates
	}

	filtered := make([]core.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		price, ok := query.CandidatePrice(candidate)
		if !ok {
			// No usable price, keep the candidate
			filtered = append(filtered, candidate)
			continue
		}

		if c.PriceMax != nil && price > *c.PriceMax {
			continue
		}
		if c.PriceMin != nil && price < *c.PriceMin {
			continue
		}

		filtered = append(filtered, candidate)
	}

	return filtered
}
