package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored documents.
// It is derived from document content so that re-ingesting the same
// source is idempotent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata keys written by the ingestion pipeline and read back during
// retrieval. Values are always plain strings; the price filter re-parses
// the price value on demand.
const (
	MetaTitle       = "title"
	MetaPrice       = "price"
	MetaURL         = "url"
	MetaTags        = "tags"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
)

// Document represents one stored chunk of a product page.
// It may be enriched with an embedding after ingestion.
type Document struct {
	Id         ID
	Content    string
	Metadata   map[string]string // Optional metadata (title, price, url, chunk indices)
	Vector     []float32         // Embedding vector for semantic search (populated by processors)
	InsertedAt time.Time         // When the document was inserted into the database
	UpdatedAt  time.Time         // When the document was last updated
}

// Candidate is one retrieval hit: a document together with the relevance
// score assigned by the similarity index. Candidate lists are ranked
// best-first by the index; downstream stages may prune but never reorder.
type Candidate struct {
	Document *Document
	Score    float32
}

// Constraints holds the numeric bounds extracted from a query.
// A nil field means that bound was not present in the query text,
// which is different from a bound of zero.
type Constraints struct {
	PriceMin *float64
	PriceMax *float64
}

// Empty reports whether no bounds are set.
func (c Constraints) Empty() bool {
	return c.PriceMin == nil && c.PriceMax == nil
}

// Source is one ranked source document in a response.
type Source struct {
	Excerpt  string
	Metadata map[string]string
	Score    float32
}

// Response is the result of answering a query: the synthesized answer and
// the sources it was grounded in. A "no results" outcome is a normal
// Response with an empty source list, not an error.
type Response struct {
	Answer  string
	Sources []Source
}
