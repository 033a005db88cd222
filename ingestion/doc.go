// Package ingestion provides pipeline orchestration for loading product
// documents into the store.
//
// The Pipeline type manages the ingestion workflow for source documents,
// including:
//   - Cleaning raw text and splitting it into overlapping chunks
//   - Adding chunk documents to storage with product metadata
//   - Generating embeddings asynchronously
//
// Embedding is performed concurrently using a worker pool. Errors during
// async processing are logged but do not fail the ingestion operation.
package ingestion
