package query

import "github.com/poiesic/pricewise/core"

// CandidatePrice extracts the price amount from a candidate's metadata.
// A missing document, missing price entry, or a price string with no
// parsable amount yields ok=false; price filters treat that as "retain",
// so the permissive-retention rule lives here alone.
func CandidatePrice(candidate core.Candidate) (float64, bool) {
	if candidate.Document == nil {
		return 0, false
	}
	return Amount(candidate.Document.Metadata[core.MetaPrice])
}
