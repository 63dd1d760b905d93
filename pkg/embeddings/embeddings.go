// Package embeddings defines the provider-agnostic contract for converting
// text into vectors, with concrete OpenAI-compatible and Google GenAI
// providers. Which provider serves a given workspace is decided by the
// embedfactory package.
package embeddings

import (
	"context"
)

//go:generate mockgen -source=embeddings.go -destination=../../mocks/mockragmem/embeddings_mock.gen.go -package mockragmem

// Embedder is a pluggable text-embedding provider.
type Embedder interface {
	// EmbedTextInput embeds a single query input.
	EmbedTextInput(ctx context.Context, input string) ([]float32, error)
	// EmbedChunks embeds a batch of document chunks.
	EmbedChunks(ctx context.Context, chunks []string) ([][]float32, error)
}
