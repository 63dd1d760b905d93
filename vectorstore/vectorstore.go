// Package vectorstore provides namespaced vector storage with similarity
// search over embedded documents. A namespace corresponds to a workspace
// slug, so each workspace keeps its own long-term memory.
package vectorstore

import (
	"context"
	"math"

	"github.com/effective-security/ragmem/pkg/embeddings"
	"github.com/effective-security/xlog"
)

//go:generate mockgen -source=vectorstore.go -destination=../mocks/mockragmem/vectorstore_mock.gen.go -package mockragmem

var logger = xlog.NewPackageLogger("github.com/effective-security/ragmem", "vectorstore")

const (
	// DefaultTopK is the number of results returned by a similarity search.
	DefaultTopK = 4
	// DefaultSimilarityThreshold is the minimum cosine similarity for a
	// search result to be included.
	DefaultSimilarityThreshold = 0.25
)

// Document is a chunk of text stored in a namespace with its provenance.
type Document struct {
	ID                 string  `json:"id"`
	DocID              string  `json:"doc_id"`
	URL                string  `json:"url"`
	Title              string  `json:"title"`
	DocAuthor          string  `json:"docAuthor"`
	Description        string  `json:"description"`
	DocSource          string  `json:"docSource"`
	ChunkSource        string  `json:"chunkSource"`
	Published          string  `json:"published"`
	WordCount          int     `json:"word_count"`
	PageContent        string  `json:"pageContent"`
	TokenCountEstimate int     `json:"token_count_estimate"`
	Score              float64 `json:"score,omitempty"`
}

// SearchRequest describes a similarity search over a namespace.
type SearchRequest struct {
	Namespace string
	Input     string
	Embedder  embeddings.Embedder
	// TopK is the maximum number of results, DefaultTopK when 0.
	TopK int
	// SimilarityThreshold filters out weak matches,
	// DefaultSimilarityThreshold when 0.
	SimilarityThreshold float64
}

// SearchResult holds the matched chunks and their source documents.
type SearchResult struct {
	ContextTexts []string
	Sources      []*Document
}

// VectorStore stores embedded documents in namespaces and searches them
// by similarity.
type VectorStore interface {
	// PerformSimilaritySearch embeds the request input and returns the
	// closest documents in the namespace, best match first.
	PerformSimilaritySearch(ctx context.Context, req *SearchRequest) (*SearchResult, error)
	// AddDocumentToNamespace embeds the document content and stores it.
	// The write is atomic, a failed embedding leaves the namespace unchanged.
	AddDocumentToNamespace(ctx context.Context, namespace string, doc *Document, embedder embeddings.Embedder) error
	// HasNamespace reports whether the namespace holds any documents.
	HasNamespace(ctx context.Context, namespace string) (bool, error)
	// NamespaceCount returns the number of documents in the namespace.
	NamespaceCount(ctx context.Context, namespace string) (int, error)
	// DeleteDocumentFromNamespace removes a single document.
	DeleteDocumentFromNamespace(ctx context.Context, namespace, id string) error
	// DeleteNamespace removes the namespace and all its documents.
	DeleteNamespace(ctx context.Context, namespace string) error
}

func (r *SearchRequest) topK() int {
	if r.TopK <= 0 {
		return DefaultTopK
	}
	return r.TopK
}

func (r *SearchRequest) similarityThreshold() float64 {
	if r.SimilarityThreshold <= 0 {
		return DefaultSimilarityThreshold
	}
	return r.SimilarityThreshold
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either vector is zero or the dimensions differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
