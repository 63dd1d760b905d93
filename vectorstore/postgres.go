package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/pkg/embeddings"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the VectorStore interface using Postgres with
// the pgvector extension. Similarity search runs in SQL using the cosine
// distance operator, so only the matching rows cross the wire.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ VectorStore = (*PostgresStore)(nil)

// NewPostgresStore connects to Postgres and returns a pgvector-backed store.
// CreateSchema must be called once before use.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to Postgres")
	}
	return &PostgresStore{db: db}, nil
}

const postgresSchema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS rag_documents (
    id TEXT PRIMARY KEY,
    namespace TEXT NOT NULL,
    doc_id TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    doc_author TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    doc_source TEXT NOT NULL DEFAULT '',
    chunk_source TEXT NOT NULL DEFAULT '',
    published TEXT NOT NULL DEFAULT '',
    word_count INTEGER NOT NULL DEFAULT 0,
    page_content TEXT NOT NULL,
    token_count_estimate INTEGER NOT NULL DEFAULT 0,
    embedding vector,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS rag_documents_namespace_idx ON rag_documents (namespace);
`

// CreateSchema ensures the pgvector extension and documents table exist.
func (m *PostgresStore) CreateSchema(ctx context.Context) error {
	_, err := m.db.Exec(ctx, postgresSchema)
	if err != nil {
		return errors.Wrap(err, "failed to create schema")
	}
	return nil
}

func (m *PostgresStore) PerformSimilaritySearch(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req.Embedder == nil {
		return nil, errors.New("embedder is not set")
	}
	queryVector, err := req.Embedder.EmbedTextInput(ctx, req.Input)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to embed query")
	}

	rows, err := m.db.Query(ctx, `
        SELECT id, doc_id, url, title, doc_author, description, doc_source, chunk_source,
               published, word_count, page_content, token_count_estimate,
               1 - (embedding <=> $2::vector) AS score
        FROM rag_documents
        WHERE namespace = $1 AND 1 - (embedding <=> $2::vector) >= $3
        ORDER BY embedding <=> $2::vector
        LIMIT $4;
        `, req.Namespace, vectorLiteral(queryVector), req.similarityThreshold(), req.topK())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query documents")
	}
	defer rows.Close()

	res := &SearchResult{}
	for rows.Next() {
		doc := &Document{}
		if err := rows.Scan(&doc.ID, &doc.DocID, &doc.URL, &doc.Title, &doc.DocAuthor,
			&doc.Description, &doc.DocSource, &doc.ChunkSource, &doc.Published,
			&doc.WordCount, &doc.PageContent, &doc.TokenCountEstimate, &doc.Score); err != nil {
			return nil, errors.Wrap(err, "failed to scan document")
		}
		res.ContextTexts = append(res.ContextTexts, doc.PageContent)
		res.Sources = append(res.Sources, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read documents")
	}
	return res, nil
}

func (m *PostgresStore) AddDocumentToNamespace(ctx context.Context, namespace string, doc *Document, embedder embeddings.Embedder) error {
	if embedder == nil {
		return errors.New("embedder is not set")
	}
	vector, err := embedder.EmbedTextInput(ctx, doc.PageContent)
	if err != nil {
		return errors.WithMessage(err, "failed to embed document")
	}

	id := doc.ID
	if id == "" {
		id = uuid.New().String()
	}
	_, err = m.db.Exec(ctx, `
        INSERT INTO rag_documents (id, namespace, doc_id, url, title, doc_author, description,
                doc_source, chunk_source, published, word_count, page_content,
                token_count_estimate, embedding)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::vector);
        `, id, namespace, doc.DocID, doc.URL, doc.Title, doc.DocAuthor, doc.Description,
		doc.DocSource, doc.ChunkSource, doc.Published, doc.WordCount, doc.PageContent,
		doc.TokenCountEstimate, vectorLiteral(vector))
	if err != nil {
		return errors.Wrap(err, "failed to store document")
	}
	return nil
}

func (m *PostgresStore) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	count, err := m.NamespaceCount(ctx, namespace)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *PostgresStore) NamespaceCount(ctx context.Context, namespace string) (int, error) {
	var count int
	err := m.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM rag_documents WHERE namespace = $1`, namespace).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to count documents")
	}
	return count, nil
}

func (m *PostgresStore) DeleteDocumentFromNamespace(ctx context.Context, namespace, id string) error {
	_, err := m.db.Exec(ctx,
		`DELETE FROM rag_documents WHERE namespace = $1 AND id = $2`, namespace, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete document")
	}
	return nil
}

func (m *PostgresStore) DeleteNamespace(ctx context.Context, namespace string) error {
	_, err := m.db.Exec(ctx,
		`DELETE FROM rag_documents WHERE namespace = $1`, namespace)
	if err != nil {
		return errors.Wrap(err, "failed to delete namespace")
	}
	return nil
}

// Close releases the underlying connection pool.
func (m *PostgresStore) Close() {
	m.db.Close()
}

// vectorLiteral renders a vector in the pgvector input format, e.g. [0.1,0.2].
func vectorLiteral(vector []float32) string {
	data, _ := json.Marshal(vector)
	return fmt.Sprintf("[%s]", strings.Trim(string(data), "[]"))
}
