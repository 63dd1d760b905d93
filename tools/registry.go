package tools

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/pkg/llmutils"
	"github.com/effective-security/ragmem/pkg/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/ragmem", "tools")

// DuplicatedCallResult is returned by Dispatch when a call with the same
// tool name and arguments already ran. The wording is shaped like a
// successful result so the agent conversation continues.
const DuplicatedCallResult = "This was a duplicated call and it's output will be ignored."

// FunctionDefinition describes a registered tool for the LLM
// function-calling surface.
type FunctionDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

type registeredTool struct {
	tool   ITool
	dedupe *Deduplicator
	// serializes dispatch per tool so the duplicate check and TrackRun
	// are strictly ordered
	mu sync.Mutex
}

// Registry holds the tools for one agent run and dispatches calls to them.
// Dispatch never returns an error, all failures become result strings so
// the agent conversation stays alive.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*registeredTool
	ordered  []*registeredTool
	callback Callback
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCallback sets the callback notified of dispatch events.
func WithCallback(cb Callback) RegistryOption {
	return func(r *Registry) {
		r.callback = cb
	}
}

// NewRegistry returns an empty tool registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName: make(map[string]*registeredTool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool to the registry. Tool names are case-insensitive.
// Each tool gets its own Deduplicator scoped to this registry's run.
func (r *Registry) Register(tool ITool) error {
	name := strings.ToLower(tool.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return errors.WithMessagef(ErrDuplicateToolName, "tool: %s", tool.Name())
	}
	entry := &registeredTool{
		tool:   tool,
		dedupe: NewDeduplicator(),
	}
	r.byName[name] = entry
	r.ordered = append(r.ordered, entry)
	return nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []ITool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]ITool, len(r.ordered))
	for i, entry := range r.ordered {
		list[i] = entry.tool
	}
	return list
}

// Definitions returns the function definitions for all registered tools,
// in registration order.
func (r *Registry) Definitions() []*FunctionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*FunctionDefinition, len(r.ordered))
	for i, entry := range r.ordered {
		defs[i] = &FunctionDefinition{
			Name:        entry.tool.Name(),
			Description: entry.tool.Description(),
			Parameters:  entry.tool.Parameters(),
		}
	}
	return defs
}

// Dispatch routes a call to the named tool and returns its result.
// All failures are converted to human-readable result strings:
// an unknown tool, non-canonicalizable arguments, a duplicated call,
// and a handler error each produce a descriptive message instead of an
// error. Only successful runs are tracked by the tool's Deduplicator,
// so a failed call can be retried with the same arguments.
func (r *Registry) Dispatch(ctx context.Context, toolName, rawArgs string) string {
	r.mu.RLock()
	entry, ok := r.byName[strings.ToLower(toolName)]
	names := make([]string, len(r.ordered))
	for i, t := range r.ordered {
		names[i] = t.tool.Name()
	}
	r.mu.RUnlock()

	if !ok {
		if r.callback != nil {
			r.callback.OnToolNotFound(ctx, toolName)
		}
		metricskey.StatsToolCallsNotFound.IncrCounter(1, toolName)
		availableTools := strings.Join(names, ", ")
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "tool_not_found",
			"tool_name", toolName,
			"available_tools", availableTools,
		)
		return errors.WithMessagef(ErrUnknownTool,
			"Tool `%s` not found. Please check the tool name and try again with exact match. Available tools: %s",
			toolName, availableTools).Error()
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	tool := entry.tool
	started := time.Now()

	args, err := canonicalArgs(rawArgs)
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, tool.Name())
		return "There was an error while calling the function. " + err.Error()
	}

	dup, err := entry.dedupe.IsDuplicate(tool.Name(), args)
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, tool.Name())
		return "There was an error while calling the function. " + err.Error()
	}
	if dup {
		if r.callback != nil {
			r.callback.OnToolDuplicated(ctx, tool, rawArgs)
		}
		metricskey.StatsToolCallsDeduplicated.IncrCounter(1, tool.Name())
		logger.ContextKV(ctx, xlog.DEBUG, "reason", "duplicated_call", "tool", tool.Name())
		return DuplicatedCallResult
	}

	if r.callback != nil {
		r.callback.OnToolStart(ctx, tool, rawArgs)
	}

	output, err := tool.Call(ctx, rawArgs)
	if err != nil {
		if r.callback != nil {
			r.callback.OnToolError(ctx, tool, rawArgs, err)
		}
		metricskey.StatsToolCallsFailed.IncrCounter(1, tool.Name())
		logger.ContextKV(ctx, xlog.ERROR, "reason", "tool_call", "tool", tool.Name(), "err", err.Error())
		return "There was an error while calling the function. " + err.Error()
	}

	// only successful runs are tracked
	_ = entry.dedupe.TrackRun(tool.Name(), args)

	if r.callback != nil {
		r.callback.OnToolEnd(ctx, tool, rawArgs, output)
	}
	metricskey.StatsToolCallsSucceeded.IncrCounter(1, tool.Name())
	metricskey.PerfToolCall.MeasureSince(started, tool.Name())
	return output
}

// canonicalArgs parses the raw argument JSON into a map so the fingerprint
// does not depend on formatting or key order. Empty input is an empty
// argument set.
func canonicalArgs(rawArgs string) (map[string]any, error) {
	input := strings.TrimSpace(string(llmutils.CleanJSON([]byte(rawArgs))))
	if input == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return nil, errors.WithMessage(ErrSerialization, err.Error())
	}
	return args, nil
}
