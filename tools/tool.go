package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/ragmem/pkg/llmutils"
)

//go:generate mockgen -source=tool.go -destination=../mocks/mockragmem/tools_mock.gen.go -package mockragmem

var (
	// ErrDuplicateToolName is returned by Register when a tool with the
	// same name is already registered.
	ErrDuplicateToolName = errors.New("a tool with the same name is already registered")
	// ErrUnknownTool is the base error for dispatching to a tool that was
	// never registered.
	ErrUnknownTool = errors.New("unknown tool")
)

// ITool is a tool for the llm agent to interact with different applications.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	// Should not exceed LLM model limit.
	Description() string
	// Parameters returns the parameters definition of the function, to be used in the prompt.
	Parameters() any

	// Call executes the tool with the given input and returns the result.
	// If the tool fails to parse the input, it should return ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
	OnToolNotFound(ctx context.Context, tool string)
	OnToolDuplicated(context.Context, ITool, string)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}
