package callbacks_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/effective-security/ragmem/callbacks"
	"github.com/stretchr/testify/assert"
)

type fakeTool struct {
	name string
}

func (t *fakeTool) Name() string        { return t.name }
func (t *fakeTool) Description() string { return "fake tool" }
func (t *fakeTool) Parameters() any     { return nil }
func (t *fakeTool) Call(_ context.Context, _ string) (string, error) {
	return "", nil
}

func TestCallback(t *testing.T) {
	var buf bytes.Buffer
	cb := callbacks.NewPrinter(&buf, callbacks.ModeVerbose)

	tool := &fakeTool{name: "test-tool"}

	cb.OnToolStart(context.Background(), tool, "test input")
	cb.OnToolEnd(context.Background(), tool, "test input", "test output")
	cb.OnToolError(context.Background(), tool, "test input", errors.New("test error"))
	cb.OnToolNotFound(context.Background(), "missing-tool")
	cb.OnToolDuplicated(context.Background(), tool, "test input")
	cb.Introspect(context.Background(), "@agent: thinking about it")

	res := buf.String()
	assert.Contains(t, res, "Tool Start: test-tool")
	assert.Contains(t, res, "Input: test input")
	assert.Contains(t, res, "Tool End: test-tool")
	assert.Contains(t, res, "Output: test output")
	assert.Contains(t, res, "Tool Error: test-tool: test error")
	assert.Contains(t, res, "Tool Not Found: missing-tool")
	assert.Contains(t, res, "Tool Duplicated: test-tool")
	assert.Contains(t, res, "@agent: thinking about it")
}

func TestFanout(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	fan := callbacks.NewFanout(
		callbacks.NewPrinter(&buf1, callbacks.ModeVerbose),
		callbacks.NewNoop(),
	)
	fan.Add(callbacks.NewPrinter(&buf2, callbacks.ModeDefault))

	tool := &fakeTool{name: "test-tool"}
	fan.OnToolStart(context.Background(), tool, "test input")
	fan.OnToolEnd(context.Background(), tool, "test input", "test output")
	fan.OnToolError(context.Background(), tool, "test input", errors.New("test error"))
	fan.OnToolNotFound(context.Background(), "missing-tool")
	fan.OnToolDuplicated(context.Background(), tool, "test input")
	fan.Introspect(context.Background(), "note")

	for _, buf := range []*bytes.Buffer{&buf1, &buf2} {
		res := buf.String()
		assert.Contains(t, res, "Tool Start: test-tool")
		assert.Contains(t, res, "Tool End: test-tool")
		assert.Contains(t, res, "Tool Error: test-tool: test error")
		assert.Contains(t, res, "Tool Not Found: missing-tool")
		assert.Contains(t, res, "Tool Duplicated: test-tool")
		assert.Contains(t, res, "note")
	}

	// verbose prints the output, default does not
	assert.Contains(t, buf1.String(), "Output: test output")
	assert.NotContains(t, buf2.String(), "Output: test output")
}
