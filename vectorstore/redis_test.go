package vectorstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/effective-security/ragmem/vectorstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	rediscon "github.com/testcontainers/testcontainers-go/modules/redis"
)

func Test_RedisStore(t *testing.T) {
	ctx := context.Background()
	redisContainer, err := rediscon.Run(ctx, "redis:7",
		testcontainers.WithConfigModifier(func(config *container.Config) {
			config.Env = []string{
				"ALLOW_EMPTY_PASSWORD=yes",
				"REDIS_PASSWORD=redis",
				"REDIS_TLS_PORT=16379",
			}
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, redisContainer.Terminate(ctx))
	})

	state, err := redisContainer.State(ctx)
	require.NoError(t, err)
	require.True(t, state.Running)

	root := fmt.Sprintf("test-%d", time.Now().Unix())

	host, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)

	options, err := redis.ParseURL(host)
	require.NoError(t, err)

	client := redis.NewClient(options)

	rs := client.Ping(ctx) // Ensure the connection is established
	require.NoError(t, rs.Err(), "failed to connect to Redis")

	st := vectorstore.NewRedisStore(client, root)
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"api keys rotate every 90 days": {1, 0, 0},
			"the deploy runs on fridays":    {0, 1, 0},
			"how often do api keys rotate?": {0.9, 0.1, 0},
		},
	}

	ok, err := st.HasNamespace(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)

	err = st.AddDocumentToNamespace(ctx, "acme", &vectorstore.Document{
		ID:          "note-1",
		Title:       "note-1",
		PageContent: "api keys rotate every 90 days",
	}, embedder)
	require.NoError(t, err)
	err = st.AddDocumentToNamespace(ctx, "acme", &vectorstore.Document{
		ID:          "note-2",
		Title:       "note-2",
		PageContent: "the deploy runs on fridays",
	}, embedder)
	require.NoError(t, err)

	ok, err = st.HasNamespace(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := st.NamespaceCount(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	res, err := st.PerformSimilaritySearch(ctx, &vectorstore.SearchRequest{
		Namespace: "acme",
		Input:     "how often do api keys rotate?",
		Embedder:  embedder,
	})
	require.NoError(t, err)
	require.Len(t, res.ContextTexts, 1)
	assert.Equal(t, "api keys rotate every 90 days", res.ContextTexts[0])
	require.Len(t, res.Sources, 1)
	assert.Equal(t, "note-1", res.Sources[0].ID)
	assert.Greater(t, res.Sources[0].Score, 0.8)

	// Empty namespace returns an empty result, not an error
	res, err = st.PerformSimilaritySearch(ctx, &vectorstore.SearchRequest{
		Namespace: "empty",
		Input:     "how often do api keys rotate?",
		Embedder:  embedder,
	})
	require.NoError(t, err)
	assert.Empty(t, res.ContextTexts)
	assert.Empty(t, res.Sources)

	err = st.DeleteDocumentFromNamespace(ctx, "acme", "note-2")
	require.NoError(t, err)
	count, err = st.NamespaceCount(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = st.DeleteNamespace(ctx, "acme")
	require.NoError(t, err)
	ok, err = st.HasNamespace(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)
}
