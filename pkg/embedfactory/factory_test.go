package embedfactory_test

import (
	"context"
	"testing"

	"github.com/effective-security/ragmem/chatmodel"
	"github.com/effective-security/ragmem/pkg/embedfactory"
	"github.com/effective-security/ragmem/pkg/embeddings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Factory(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "fakekey")
	t.Setenv("AZURE_API_KEY", "fakekey")
	t.Setenv("GOOGLEAI_TOKEN", "fakekey")

	cfg, err := embedfactory.LoadConfig("testdata/embed.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Providers)

	embedfactory.NewEmbedder = func(cfg *embedfactory.ProviderConfig, preferredModels ...string) (embeddings.Embedder, error) {
		return &fakeEmbedder{provider: cfg.Name, model: cfg.FindModel(preferredModels...)}, nil
	}
	defer func() {
		embedfactory.NewEmbedder = embedfactory.CreateEmbedder
	}()

	f := embedfactory.New(cfg)
	embedder, err := f.DefaultEmbedder()
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe := embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-ada-002", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)

	// Test EmbedderByName with single model
	embedder, err = f.EmbedderByName("text-embedding-3-small")
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-3-small", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)

	// Test EmbedderByName with multiple preferred models
	embedder, err = f.EmbedderByName("unknown-model", "azure-embedding-large")
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "azure-embedding-large", fe.model)
	assert.Equal(t, "AZURE", fe.provider)

	// Test EmbedderByName with non-existent models (should fallback to default)
	embedder, err = f.EmbedderByName("non-existent-model")
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-ada-002", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)

	// Test EmbedderForWorkspace with specific mapping
	embedder, err = f.EmbedderForWorkspace(&chatmodel.Workspace{Slug: "research"})
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-3-large", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)

	// Test EmbedderForWorkspace with default mapping
	embedder, err = f.EmbedderForWorkspace(&chatmodel.Workspace{Slug: "unknown-workspace"})
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-ada-002", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)

	// The workspace chat configuration wins over the slug mapping
	embedder, err = f.EmbedderForWorkspace(&chatmodel.Workspace{
		Slug:         "research",
		ChatProvider: "AZURE",
		ChatModel:    "azure-embedding-large",
	})
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "azure-embedding-large", fe.model)
	assert.Equal(t, "AZURE", fe.provider)

	// Chat model alone resolves across providers
	embedder, err = f.EmbedderForWorkspace(&chatmodel.Workspace{
		Slug:      "research",
		ChatModel: "text-embedding-3-small",
	})
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-3-small", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)

	// Unknown chat provider is a configuration error
	_, err = f.EmbedderForWorkspace(&chatmodel.Workspace{
		Slug:         "research",
		ChatProvider: "no-such-provider",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider: no-such-provider")

	// Nil workspace uses the default mapping
	embedder, err = f.EmbedderForWorkspace(nil)
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-ada-002", fe.model)

	// Test with empty providers list
	emptyCfg := &embedfactory.Config{}
	emptyFactory := embedfactory.New(emptyCfg)
	_, err = emptyFactory.DefaultEmbedder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no providers configured")

	// Test with invalid default provider
	invalidCfg := &embedfactory.Config{
		DefaultProvider: "non-existent",
		Providers:       cfg.Providers,
	}
	invalidFactory := embedfactory.New(invalidCfg)
	embedder, err = invalidFactory.DefaultEmbedder()
	require.NoError(t, err)
	require.NotNil(t, embedder)
	fe = embedder.(*fakeEmbedder)
	assert.Equal(t, "text-embedding-ada-002", fe.model)
	assert.Equal(t, "OPENAI", fe.provider)
}

func Test_Load(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "fakekey")
	t.Setenv("AZURE_API_KEY", "fakekey")
	t.Setenv("GOOGLEAI_TOKEN", "fakekey")

	// Test successful load
	f, err := embedfactory.Load("testdata/embed.yaml")
	require.NoError(t, err)
	require.NotNil(t, f)

	// Test load with non-existent file
	_, err = embedfactory.Load("testdata/non-existent.yaml")
	require.Error(t, err)
}

func Test_LoadConfig(t *testing.T) {
	// Empty location returns an empty config
	cfg, err := embedfactory.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Providers)

	// Test loading non-existent file
	_, err = embedfactory.LoadConfig("testdata/non-existent.yaml")
	require.Error(t, err)

	// Test loading invalid YAML
	_, err = embedfactory.LoadConfig("testdata/invalid.yaml")
	require.Error(t, err)
}

func Test_CreateEmbedder(t *testing.T) {
	cfg := &embedfactory.ProviderConfig{
		Name:            "test-provider",
		Token:           "fakekey",
		Provider:        "OPENAI",
		AvailableModels: []string{"text-embedding-ada-002"},
		DefaultModel:    "text-embedding-ada-002",
	}

	embedder, err := embedfactory.CreateEmbedder(cfg)
	require.NoError(t, err)
	require.NotNil(t, embedder)

	// Azure uses the OpenAI-compatible API
	cfg.Provider = "AZURE"
	cfg.BaseURL = "https://myorg.openai.azure.com"
	embedder, err = embedfactory.CreateEmbedder(cfg)
	require.NoError(t, err)
	require.NotNil(t, embedder)

	// Test unsupported provider
	cfg.Provider = "UNSUPPORTED"
	_, err = embedfactory.CreateEmbedder(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider type")
}

// Test_EmbedderCaching tests that embedders are properly cached
func Test_EmbedderCaching(t *testing.T) {
	cfg := &embedfactory.Config{
		Providers: []*embedfactory.ProviderConfig{
			{
				Name:            "OPENAI",
				Provider:        "OPENAI",
				AvailableModels: []string{"text-embedding-ada-002", "text-embedding-3-small"},
				DefaultModel:    "text-embedding-ada-002",
			},
		},
	}

	embedfactory.NewEmbedder = func(cfg *embedfactory.ProviderConfig, preferredModels ...string) (embeddings.Embedder, error) {
		return &fakeEmbedder{provider: cfg.Name, model: cfg.FindModel(preferredModels...)}, nil
	}
	defer func() {
		embedfactory.NewEmbedder = embedfactory.CreateEmbedder
	}()

	f := embedfactory.New(cfg)

	// First call should create the embedder
	e1, err := f.EmbedderByName("text-embedding-3-small")
	require.NoError(t, err)
	require.NotNil(t, e1)

	// Second call should return cached embedder
	e2, err := f.EmbedderByName("text-embedding-3-small")
	require.NoError(t, err)
	require.NotNil(t, e2)

	assert.Same(t, e1, e2)
}

func Test_ProviderConfigFindModel(t *testing.T) {
	cfg := &embedfactory.ProviderConfig{
		AvailableModels: []string{"text-embedding-ada-002", "text-embedding-3-small"},
		DefaultModel:    "text-embedding-ada-002",
	}

	// Test finding existing model
	model := cfg.FindModel("text-embedding-3-small")
	assert.Equal(t, "text-embedding-3-small", model)

	// Test fallback to default when model not found
	model = cfg.FindModel("non-existent-model")
	assert.Equal(t, "text-embedding-ada-002", model)

	// Test with empty preferred models
	model = cfg.FindModel()
	assert.Equal(t, "text-embedding-ada-002", model)

	// Test with nil available models
	cfg.AvailableModels = nil
	model = cfg.FindModel("text-embedding-3-small")
	assert.Equal(t, "text-embedding-ada-002", model)
}

type fakeEmbedder struct {
	provider string
	model    string
}

func (f *fakeEmbedder) EmbedTextInput(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedChunks(_ context.Context, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}
