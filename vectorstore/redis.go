package vectorstore

import (
	"context"
	"encoding/json"
	"path"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/pkg/embeddings"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// The redis store implements the VectorStore interface using Redis as the
// backend. Each document is stored as a JSON record holding the document
// and its embedding vector, and a per-namespace set tracks the document IDs.
// The keys namespace is organized as follows:
// - `/<prefix>/vectorstore/<namespace>/docs/<id>` for storing document records
// - `/<prefix>/vectorstore/<namespace>/ids` for storing a set of document IDs

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a VectorStore backed by Redis.
func NewRedisStore(client *redis.Client, prefix string) VectorStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

type redisRecord struct {
	Document *Document `json:"document"`
	Vector   []float32 `json:"vector"`
}

func (m *redisStore) getRedisDocKey(namespace, id string) string {
	return path.Join(m.prefix, "vectorstore", namespace, "docs", id)
}

func (m *redisStore) getRedisIDsKey(namespace string) string {
	return path.Join(m.prefix, "vectorstore", namespace, "ids")
}

func (m *redisStore) PerformSimilaritySearch(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req.Embedder == nil {
		return nil, errors.New("embedder is not set")
	}
	queryVector, err := req.Embedder.EmbedTextInput(ctx, req.Input)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to embed query")
	}

	ids, err := m.client.SMembers(ctx, m.getRedisIDsKey(req.Namespace)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &SearchResult{}, nil
		}
		return nil, errors.Wrap(err, "failed to list documents from Redis")
	}
	if len(ids) == 0 {
		return &SearchResult{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = m.getRedisDocKey(req.Namespace, id)
	}
	data, err := m.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get documents from Redis")
	}

	threshold := req.similarityThreshold()
	var matches []*Document
	for _, item := range data {
		raw, ok := item.(string)
		if !ok {
			// expired or deleted since SMembers
			continue
		}
		var rec redisRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal document", "err", err.Error())
			continue
		}
		score := cosineSimilarity(queryVector, rec.Vector)
		if score < threshold {
			continue
		}
		doc := *rec.Document
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

func (m *redisStore) AddDocumentToNamespace(ctx context.Context, namespace string, doc *Document, embedder embeddings.Embedder) error {
	if embedder == nil {
		return errors.New("embedder is not set")
	}
	vector, err := embedder.EmbedTextInput(ctx, doc.PageContent)
	if err != nil {
		return errors.WithMessage(err, "failed to embed document")
	}

	stored := *doc
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	data, err := json.Marshal(redisRecord{
		Document: &stored,
		Vector:   vector,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal document")
	}

	_, err = m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, m.getRedisDocKey(namespace, stored.ID), data, 0)
		pipe.SAdd(ctx, m.getRedisIDsKey(namespace), stored.ID)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to store document in Redis")
	}
	return nil
}

func (m *redisStore) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	count, err := m.NamespaceCount(ctx, namespace)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *redisStore) NamespaceCount(ctx context.Context, namespace string) (int, error) {
	count, err := m.client.SCard(ctx, m.getRedisIDsKey(namespace)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to count documents in Redis")
	}
	return int(count), nil
}

func (m *redisStore) DeleteDocumentFromNamespace(ctx context.Context, namespace, id string) error {
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, m.getRedisDocKey(namespace, id))
		pipe.SRem(ctx, m.getRedisIDsKey(namespace), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete document from Redis")
	}
	return nil
}

func (m *redisStore) DeleteNamespace(ctx context.Context, namespace string) error {
	ids, err := m.client.SMembers(ctx, m.getRedisIDsKey(namespace)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "failed to list documents from Redis")
	}

	_, err = m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, m.getRedisDocKey(namespace, id))
		}
		pipe.Del(ctx, m.getRedisIDsKey(namespace))
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete namespace from Redis")
	}
	return nil
}
