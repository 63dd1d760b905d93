package schema_test

import (
	"reflect"
	"testing"

	"github.com/effective-security/ragmem/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRequest struct {
	Action  string `json:"action" jsonschema:"enum=search,enum=store,description=The action to take."`
	Content string `json:"content" jsonschema:"description=The plain text to search with or to store."`
}

func Test_New(t *testing.T) {
	sc, err := schema.New(reflect.TypeOf(memoryRequest{}))
	require.NoError(t, err)
	require.NotNil(t, sc.Parameters)

	exp := `{
	"properties": {
		"action": {
			"type": "string",
			"enum": [
				"search",
				"store"
			],
			"description": "The action to take."
		},
		"content": {
			"type": "string",
			"description": "The plain text to search with or to store."
		}
	},
	"additionalProperties": false,
	"type": "object",
	"required": [
		"action",
		"content"
	]
}`
	assert.Equal(t, exp, sc.String())

	// cached instance for the same type
	sc2, err := schema.New(reflect.TypeOf(memoryRequest{}))
	require.NoError(t, err)
	assert.Same(t, sc, sc2)
}

func Test_FromAny(t *testing.T) {
	sc, err := schema.FromAny(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type": "string",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "object", sc.Type)

	assert.NotPanics(t, func() {
		schema.MustFromAny(map[string]any{"type": "object"})
	})
}
