package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/pkg/embeddings"
	"github.com/google/uuid"
)

type storedDoc struct {
	doc    *Document
	vector []float32
}

type inMemory struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]*storedDoc
}

// NewMemoryStore returns a VectorStore that keeps all documents in process
// memory. Useful for tests and single-process deployments.
func NewMemoryStore() VectorStore {
	return &inMemory{}
}

func (m *inMemory) PerformSimilaritySearch(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req.Embedder == nil {
		return nil, errors.New("embedder is not set")
	}
	queryVector, err := req.Embedder.EmbedTextInput(ctx, req.Input)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to embed query")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	threshold := req.similarityThreshold()
	var matches []*Document
	for _, stored := range m.namespaces[req.Namespace] {
		score := cosineSimilarity(queryVector, stored.vector)
		if score < threshold {
			continue
		}
		doc := *stored.doc
		doc.Score = score
		matches = append(matches, &doc)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK := req.topK(); len(matches) > topK {
		matches = matches[:topK]
	}

	res := &SearchResult{}
	for _, doc := range matches {
		res.ContextTexts = append(res.ContextTexts, doc.PageContent)
		res.Sources = append(res.Sources, doc)
	}
	return res, nil
}

func (m *inMemory) AddDocumentToNamespace(ctx context.Context, namespace string, doc *Document, embedder embeddings.Embedder) error {
	if embedder == nil {
		return errors.New("embedder is not set")
	}
	vector, err := embedder.EmbedTextInput(ctx, doc.PageContent)
	if err != nil {
		return errors.WithMessage(err, "failed to embed document")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.namespaces == nil {
		// create on first use
		m.namespaces = make(map[string]map[string]*storedDoc)
	}
	if m.namespaces[namespace] == nil {
		m.namespaces[namespace] = make(map[string]*storedDoc)
	}

	stored := *doc
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	m.namespaces[namespace][stored.ID] = &storedDoc{
		doc:    &stored,
		vector: vector,
	}
	return nil
}

func (m *inMemory) HasNamespace(_ context.Context, namespace string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.namespaces[namespace]) > 0, nil
}

func (m *inMemory) NamespaceCount(_ context.Context, namespace string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.namespaces[namespace]), nil
}

func (m *inMemory) DeleteDocumentFromNamespace(_ context.Context, namespace, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ns := m.namespaces[namespace]; ns != nil {
		delete(ns, id)
	}
	return nil
}

func (m *inMemory) DeleteNamespace(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.namespaces != nil {
		delete(m.namespaces, namespace)
	}
	return nil
}
