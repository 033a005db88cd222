// Package reembed provides functionality for reembedding stored product
// documents with new or updated embedding models.
//
// This package supports batch processing of documents, progress tracking,
// retry logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search.
package reembed
