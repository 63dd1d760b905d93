// Package memory implements the "rag-memory" tool: long-term agent memory
// backed by a namespaced vector store. The tool exposes two actions, search
// and store, scoped to the workspace of the current invocation.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/callbacks"
	"github.com/effective-security/ragmem/chatmodel"
	"github.com/effective-security/ragmem/pkg/embedfactory"
	"github.com/effective-security/ragmem/pkg/llmutils"
	"github.com/effective-security/ragmem/pkg/metricskey"
	"github.com/effective-security/ragmem/pkg/schema"
	"github.com/effective-security/ragmem/tools"
	"github.com/effective-security/ragmem/vectorstore"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/ragmem", "memory")

const ToolName = "rag-memory"

const (
	// ActionSearch queries the workspace vector store.
	ActionSearch = "search"
	// ActionStore persists a snippet into the workspace vector store.
	ActionStore = "store"
)

// Responses the tool returns to the agent loop. The agent prompt depends on
// this wording, change with care.
const (
	noContextResponse = "There was no additional context found for that query. We should search the web for this information."
	embedFailResponse = "The content was failed to be embedded properly."
	storedResponse    = "The content given was successfully embedded. There is nothing else to do."
	nothingToDo       = "There was nothing to do."
)

// Request represents the tool input.
type Request struct {
	Action  string `json:"action" yaml:"action" jsonschema:"enum=search,enum=store,description=The action we want to take to search for existing similar context or storage of new context."`
	Content string `json:"content" yaml:"content" jsonschema:"description=The plain text to search our local documents with or to store in our vector database."`
}

// Result represents the tool output.
type Result struct {
	Content string `json:"content"`
}

func (r *Result) GetContent() string {
	return r.Content
}

// Tool provides workspace-scoped long-term memory over a vector store.
type Tool struct {
	name        string
	description string
	funcParams  any

	embedders    embedfactory.Factory
	store        vectorstore.VectorStore
	introspector callbacks.Introspector
}

// ensure Tool implements the tool interface
var _ tools.Tool[Request, Result] = (*Tool)(nil)

// New returns the memory tool over the given embedder factory and store.
func New(embedders embedfactory.Factory, store vectorstore.VectorStore) (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Tool{
		name:         ToolName,
		description:  "Search against local documents for context that is relevant to the query or store a snippet of text into memory for retrieval later. You should use this tool before search the internet for information.",
		funcParams:   sc.Parameters,
		embedders:    embedders,
		store:        store,
		introspector: callbacks.NewNoop(),
	}, nil
}

// WithIntrospector sets the receiver of user-visible progress notifications.
func (t *Tool) WithIntrospector(in callbacks.Introspector) *Tool {
	t.introspector = in
	return t
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	return t.funcParams
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req Request
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithStack(chatmodel.ErrFailedUnmarshalInput)
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// Run executes the requested action. An unrecognized action is a no-op,
// not an error, matching what the agent loop expects.
func (t *Tool) Run(ctx context.Context, req *Request) (*Result, error) {
	inv, err := chatmodel.GetInvocation(ctx)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case ActionSearch:
		return t.search(ctx, inv, req.Content)
	case ActionStore:
		return t.storeContent(ctx, inv, req.Content)
	default:
		logger.ContextKV(ctx, xlog.DEBUG, "reason", "unknown_action", "action", req.Action)
		return &Result{Content: nothingToDo}, nil
	}
}

func (t *Tool) search(ctx context.Context, inv chatmodel.Invocation, query string) (*Result, error) {
	started := time.Now()
	ws := inv.GetWorkspace()

	embedder, err := t.embedders.EmbedderForWorkspace(ws)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get embedder")
	}

	res, err := t.store.PerformSimilaritySearch(ctx, &vectorstore.SearchRequest{
		Namespace: ws.Slug,
		Input:     query,
		Embedder:  embedder,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to search vector store")
	}

	metricskey.StatsMemorySearches.IncrCounter(1, ws.Slug)
	metricskey.PerfSimilaritySearch.MeasureSince(started, ws.Slug)

	if len(res.ContextTexts) == 0 {
		return &Result{Content: noContextResponse}, nil
	}

	t.introspector.Introspect(ctx, fmt.Sprintf(
		"%s: Found %d additional piece of context to help answer this question.",
		inv.GetCaller(), len(res.ContextTexts)))

	combined := "Additional context for query:\n"
	for _, text := range res.ContextTexts {
		combined += text + "\n\n"
	}
	return &Result{Content: combined}, nil
}

func (t *Tool) storeContent(ctx context.Context, inv chatmodel.Invocation, content string) (*Result, error) {
	ws := inv.GetWorkspace()

	embedder, err := t.embedders.EmbedderForWorkspace(ws)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get embedder")
	}

	doc := &vectorstore.Document{
		ID:          uuid.New().String(),
		DocID:       uuid.New().String(),
		URL:         "file://embed-via-agent.txt",
		Title:       "agent-chat-document.txt",
		DocAuthor:   "@workspace",
		Description: "Unknown",
		DocSource:   "a text file stored by the workspace agent.",
		ChunkSource: "",
		Published:   time.Now().Format(time.RFC3339),
		WordCount:   llmutils.WordCount(content),
		PageContent: content,
		// kept at zero, the embedding path does not estimate tokens
		TokenCountEstimate: 0,
	}

	err = t.store.AddDocumentToNamespace(ctx, ws.Slug, doc, embedder)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "AddDocumentToNamespace", "namespace", ws.Slug, "err", err.Error())
		return &Result{Content: embedFailResponse}, nil
	}

	metricskey.StatsMemoryDocsStored.IncrCounter(1, ws.Slug)

	t.introspector.Introspect(ctx, fmt.Sprintf(
		"%s: I saved the content to long-term memory in this workspaces vector database.",
		inv.GetCaller()))

	return &Result{Content: storedResponse}, nil
}
