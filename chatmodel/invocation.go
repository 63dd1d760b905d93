// Package chatmodel defines the per-run invocation context threaded into
// every tool handler: the workspace the call operates against and the caller
// identity used for observability.
package chatmodel

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
)

var (
	ErrInvalidInvocation = errors.New("invalid invocation context")
)

// Workspace identifies the logical collection a tool call operates against.
// Slug is used as the vector-store namespace.
type Workspace struct {
	Slug string `json:"slug" yaml:"slug"`
	// ChatProvider and ChatModel select the active LLM configuration
	// for the workspace, resolved by the embedder factory.
	ChatProvider string `json:"chat_provider,omitempty" yaml:"chat_provider,omitempty"`
	ChatModel    string `json:"chat_model,omitempty" yaml:"chat_model,omitempty"`
}

// Invocation carries per-run data into every tool handler.
// It is created once per agent run (or per delegated sub-agent) and is
// read-only for the duration of that run.
type Invocation interface {
	GetWorkspace() *Workspace
	// GetCaller returns the logical actor that issued the call.
	// It is used only for observability, never for authorization.
	GetCaller() string
	// GetMetadata retrieves run metadata by key
	GetMetadata(key string) (value any, ok bool)
	// SetMetadata sets run metadata by key
	SetMetadata(key string, value any)
}

type invocation struct {
	workspace *Workspace
	caller    string
	metadata  sync.Map
}

func (c *invocation) GetWorkspace() *Workspace {
	return c.workspace
}

func (c *invocation) GetCaller() string {
	return c.caller
}

func (c *invocation) GetMetadata(key string) (value any, ok bool) {
	return c.metadata.Load(key)
}

func (c *invocation) SetMetadata(key string, value any) {
	c.metadata.Store(key, value)
}

// NewInvocation creates an Invocation for one agent run.
func NewInvocation(workspace *Workspace, caller string) Invocation {
	return &invocation{
		workspace: workspace,
		caller:    values.StringsCoalesce(caller, "@agent"),
	}
}

type contextKey int

const (
	keyInvocation contextKey = iota
)

// WithInvocation returns a new context carrying the Invocation value.
func WithInvocation(ctx context.Context, inv Invocation) context.Context {
	return context.WithValue(ctx, keyInvocation, inv)
}

// GetInvocation retrieves the Invocation from the context.
// It returns ErrInvalidInvocation when the context does not carry one,
// or when the invocation has no workspace.
func GetInvocation(ctx context.Context) (Invocation, error) {
	inv, ok := ctx.Value(keyInvocation).(Invocation)
	if !ok || inv.GetWorkspace() == nil || inv.GetWorkspace().Slug == "" {
		return nil, errors.WithStack(ErrInvalidInvocation)
	}
	return inv, nil
}

// GetWorkspaceSlug returns the workspace slug from the context,
// or an empty string when the context carries no invocation.
func GetWorkspaceSlug(ctx context.Context) string {
	if inv, ok := ctx.Value(keyInvocation).(Invocation); ok {
		if ws := inv.GetWorkspace(); ws != nil {
			return ws.Slug
		}
	}
	return ""
}
