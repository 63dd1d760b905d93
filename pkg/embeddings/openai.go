package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// DefaultOpenAIBaseURL is the OpenAI API endpoint, also served by
	// API-compatible providers (Azure front-ends, local inference servers).
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	defaultOpenAIEmbeddingModel = "text-embedding-ada-002"
)

// Doer performs a HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenAI is an Embedder backed by the OpenAI embeddings API.
type OpenAI struct {
	Model string

	token        string
	baseURL      string
	organization string
	httpClient   Doer
}

var _ Embedder = (*OpenAI)(nil)

// OpenAIOption is an option for the OpenAI embedder.
type OpenAIOption func(*OpenAI)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(c *OpenAI) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) OpenAIOption {
	return func(c *OpenAI) {
		c.organization = org
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient Doer) OpenAIOption {
	return func(c *OpenAI) {
		c.httpClient = httpClient
	}
}

// NewOpenAI returns a new OpenAI embedder.
func NewOpenAI(token, model string, opts ...OpenAIOption) (*OpenAI, error) {
	if token == "" {
		return nil, errors.New("openai: token is not set")
	}
	c := &OpenAI{
		Model:      model,
		token:      token,
		baseURL:    DefaultOpenAIBaseURL,
		httpClient: http.DefaultClient,
	}
	if c.Model == "" {
		c.Model = defaultOpenAIEmbeddingModel
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// EmbedTextInput embeds a single query input.
func (c *OpenAI) EmbedTextInput(ctx context.Context, input string) ([]float32, error) {
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
func (c *OpenAI) EmbedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	resp, err := c.createEmbedding(ctx, &embeddingPayload{
		Model: c.Model,
		Input: chunks,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(chunks) {
		return nil, errors.Errorf("expected %d embeddings, got %d", len(chunks), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

type embeddingPayload struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponsePayload struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

type errorMessage struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAI) createEmbedding(ctx context.Context, payload *embeddingPayload) (*embeddingResponsePayload, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	c.setHeaders(req)

	r, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer func() {
		_ = r.Body.Close()
	}()

	if r.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("API returned unexpected status code: %d", r.StatusCode)

		// No need to check the error here: if it fails, we'll just return the
		// status code.
		var errResp errorMessage
		if err := json.NewDecoder(r.Body).Decode(&errResp); err != nil {
			return nil, errors.New(msg)
		}

		return nil, errors.Errorf("%s: %s", msg, errResp.Error.Message)
	}

	var response embeddingResponsePayload
	if err := json.NewDecoder(r.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	return &response, nil
}

func (c *OpenAI) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.organization != "" {
		req.Header.Set("OpenAI-Organization", c.organization)
	}
}
