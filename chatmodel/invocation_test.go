package chatmodel_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/chatmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Invocation(t *testing.T) {
	ctx := context.Background()

	_, err := chatmodel.GetInvocation(ctx)
	assert.EqualError(t, err, "invalid invocation context")
	assert.True(t, errors.Is(err, chatmodel.ErrInvalidInvocation))
	assert.Empty(t, chatmodel.GetWorkspaceSlug(ctx))

	ws := &chatmodel.Workspace{
		Slug:         "support-kb",
		ChatProvider: "openai",
		ChatModel:    "gpt-5-mini",
	}
	inv := chatmodel.NewInvocation(ws, "@agent")
	ctx = chatmodel.WithInvocation(ctx, inv)

	got, err := chatmodel.GetInvocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, ws, got.GetWorkspace())
	assert.Equal(t, "@agent", got.GetCaller())
	assert.Equal(t, "support-kb", chatmodel.GetWorkspaceSlug(ctx))

	_, ok := got.GetMetadata("key")
	assert.False(t, ok)
	got.SetMetadata("key", "value")
	v, ok := got.GetMetadata("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}

func Test_Invocation_DefaultCaller(t *testing.T) {
	inv := chatmodel.NewInvocation(&chatmodel.Workspace{Slug: "ws"}, "")
	assert.Equal(t, "@agent", inv.GetCaller())
}

func Test_Invocation_MissingWorkspace(t *testing.T) {
	ctx := chatmodel.WithInvocation(context.Background(), chatmodel.NewInvocation(nil, "@agent"))
	_, err := chatmodel.GetInvocation(ctx)
	assert.True(t, errors.Is(err, chatmodel.ErrInvalidInvocation))
}

func Test_Stringify(t *testing.T) {
	assert.Equal(t, `{"slug":"a"}`, chatmodel.Stringify(&chatmodel.Workspace{Slug: "a"}))
}
