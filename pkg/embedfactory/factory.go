package embedfactory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/chatmodel"
	"github.com/effective-security/ragmem/pkg/embeddings"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/ragmem", "embedfactory")

// NewEmbedder is a wrapper for CreateEmbedder to allow for overriding the default implementation.
var NewEmbedder = CreateEmbedder

// Factory is the interface for creating and managing embedding models.
type Factory interface {
	// DefaultEmbedder returns the default embedding model.
	DefaultEmbedder() (embeddings.Embedder, error)
	// EmbedderByName returns an embedding model by its name,
	// if the model is not found, it will return the default model.
	EmbedderByName(preferredModels ...string) (embeddings.Embedder, error)
	// EmbedderForWorkspace returns an embedding model for a workspace.
	EmbedderForWorkspace(ws *chatmodel.Workspace) (embeddings.Embedder, error)
}

// Load returns an embedder factory from a config file
func Load(location string) (Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

type factory struct {
	cfg *Config

	defaultProvider *ProviderConfig
	workspaceModels map[string][]string
	byName          map[string]embeddings.Embedder
	lock            sync.Mutex
}

// New creates a new embedder factory
func New(cfg *Config) Factory {
	f := &factory{
		cfg:             cfg,
		byName:          make(map[string]embeddings.Embedder),
		workspaceModels: make(map[string][]string),
	}

	for k, v := range cfg.WorkspaceModels {
		f.workspaceModels[k] = slices.Clone(v)
	}

	if cfg.DefaultProvider != "" {
		for _, provider := range cfg.Providers {
			if provider.Name == cfg.DefaultProvider {
				f.defaultProvider = provider
				break
			}
		}
	}

	if f.defaultProvider == nil && len(f.cfg.Providers) > 0 {
		f.defaultProvider = f.cfg.Providers[0]
	}

	return f
}

func CreateEmbedder(cfg *ProviderConfig, preferredModels ...string) (embeddings.Embedder, error) {
	provType := strings.ToUpper(cfg.Provider)
	switch provType {
	case "OPENAI", "OPEN_AI", "AZURE":
		return newOpenAI(cfg, preferredModels...)
	case "GOOGLEAI":
		return newGoogleAI(cfg, preferredModels...)
	}
	return nil, errors.Errorf("unsupported provider type: %s", provType)
}

func newOpenAI(cfg *ProviderConfig, preferredModels ...string) (embeddings.Embedder, error) {
	var opts []embeddings.OpenAIOption
	model := cfg.FindModel(preferredModels...)
	if cfg.BaseURL != "" {
		opts = append(opts, embeddings.WithBaseURL(cfg.BaseURL))
	}
	return embeddings.NewOpenAI(cfg.Token, model, opts...)
}

func newGoogleAI(cfg *ProviderConfig, preferredModels ...string) (embeddings.Embedder, error) {
	model := cfg.FindModel(preferredModels...)
	return embeddings.NewGoogleAI(context.Background(), cfg.Token, model)
}

// DefaultEmbedder returns the default embedding model.
func (f *factory) DefaultEmbedder() (embeddings.Embedder, error) {
	if len(f.cfg.Providers) == 0 || f.defaultProvider == nil {
		return nil, errors.New("no providers configured")
	}

	return NewEmbedder(f.defaultProvider, f.defaultProvider.DefaultModel)
}

func (f *factory) EmbedderByName(modelNames ...string) (embeddings.Embedder, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, modelName := range modelNames {
		if client, ok := f.byName[modelName]; ok {
			return client, nil
		}

		for _, cfg := range f.cfg.Providers {
			if slices.Contains(cfg.AvailableModels, modelName) {
				embedder, err := NewEmbedder(cfg, modelNames...)
				if err != nil {
					logger.KV(xlog.ERROR,
						"reason", "NewEmbedder",
						"type", cfg.Provider,
						"models", modelNames,
					)
					continue
				}

				logger.KV(xlog.DEBUG,
					"status", "created_embedder",
					"type", cfg.Provider,
					"name", cfg.Name)

				f.byName[modelName] = embedder
				return embedder, nil
			}
		}
	}
	return f.DefaultEmbedder()
}

// EmbedderForWorkspace returns an embedding model for a workspace.
// The workspace chat configuration takes precedence over the slug mapping.
func (f *factory) EmbedderForWorkspace(ws *chatmodel.Workspace) (embeddings.Embedder, error) {
	if ws != nil {
		if ws.ChatProvider != "" {
			return f.embedderForProvider(ws.ChatProvider, ws.ChatModel)
		}
		if ws.ChatModel != "" {
			return f.EmbedderByName(ws.ChatModel)
		}

		// Check if we have a specific model mapping for this workspace
		if modelNames, ok := f.workspaceModels[ws.Slug]; ok {
			return f.EmbedderByName(modelNames...)
		}
	}

	// Check for default model mapping
	if modelNames, ok := f.workspaceModels["default"]; ok {
		return f.EmbedderByName(modelNames...)
	}

	return f.DefaultEmbedder()
}

// embedderForProvider resolves the named provider and creates an embedder for
// the requested model, falling back to the provider's default model.
func (f *factory) embedderForProvider(providerName, modelName string) (embeddings.Embedder, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	key := providerName + "/" + modelName
	if client, ok := f.byName[key]; ok {
		return client, nil
	}

	for _, cfg := range f.cfg.Providers {
		if strings.EqualFold(cfg.Name, providerName) {
			embedder, err := NewEmbedder(cfg, modelName)
			if err != nil {
				return nil, errors.WithMessagef(err, "provider: %s", cfg.Name)
			}

			logger.KV(xlog.DEBUG,
				"status", "created_embedder",
				"type", cfg.Provider,
				"name", cfg.Name)

			f.byName[key] = embedder
			return embedder, nil
		}
	}
	return nil, errors.Errorf("unknown provider: %s", providerName)
}
