package embeddings

import (
	"context"

	"github.com/cockroachdb/errors"
	"google.golang.org/genai"
)

const defaultGoogleAIEmbeddingModel = "text-embedding-004"

// maxGoogleAIBatchSize is the request batch limit of the Gemini embeddings API.
const maxGoogleAIBatchSize = 100

// GoogleAI is an Embedder backed by the Gemini embeddings API.
type GoogleAI struct {
	Model string

	client *genai.Client
}

var _ Embedder = (*GoogleAI)(nil)

// NewGoogleAI returns a new Gemini embedder.
func NewGoogleAI(ctx context.Context, apiKey, model string) (*GoogleAI, error) {
	if apiKey == "" {
		return nil, errors.New("googleai: api key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	if model == "" {
		model = defaultGoogleAIEmbeddingModel
	}
	return &GoogleAI{
		Model:  model,
		client: client,
	}, nil
}

// EmbedTextInput embeds a single query input.
func (c *GoogleAI) EmbedTextInput(ctx context.Context, input string) ([]float32, error) {
	vectors, err := c.EmbedChunks(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("empty response")
	}
	return vectors[0], nil
}

// EmbedChunks embeds a batch of document chunks.
func (c *GoogleAI) EmbedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += maxGoogleAIBatchSize {
		end := min(start+maxGoogleAIBatchSize, len(chunks))

		contents := make([]*genai.Content, 0, end-start)
		for _, chunk := range chunks[start:end] {
			contents = append(contents, genai.NewContentFromText(chunk, genai.RoleUser))
		}

		resp, err := c.client.Models.EmbedContent(ctx, c.Model, contents, nil)
		if err != nil {
			return nil, errors.Wrap(err, "embed content")
		}
		if len(resp.Embeddings) != end-start {
			return nil, errors.Errorf("expected %d embeddings, got %d", end-start, len(resp.Embeddings))
		}
		for _, emb := range resp.Embeddings {
			vectors = append(vectors, emb.Values)
		}
	}
	return vectors, nil
}
