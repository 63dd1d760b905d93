package llmutils_test

import (
	"testing"

	"github.com/effective-security/ragmem/pkg/llmutils"
	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	tcases := []struct {
		name string
		in   string
		exp  string
	}{
		{"plain", `{"action":"search"}`, `{"action":"search"}`},
		{"prefixed", `Sure, here you go: {"action":"search"}`, `{"action":"search"}`},
		{"suffixed", `{"action":"store"} hope that helps!`, `{"action":"store"}`},
		{"array", `the list: [1,2,3] done`, `[1,2,3]`},
		{"no_json", `nothing here`, `nothing here`},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, string(llmutils.CleanJSON([]byte(tc.in))))
		})
	}
}

func TestTrimBackticks(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	assert.Equal(t, `{"a":1}`, llmutils.TrimBackticks(in))
	assert.Equal(t, `{"a":1}`, llmutils.TrimBackticks(`{"a":1}`))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, llmutils.WordCount(""))
	assert.Equal(t, 0, llmutils.WordCount("   "))
	assert.Equal(t, 2, llmutils.WordCount("hello world"))
	assert.Equal(t, 2, llmutils.WordCount("  hello \t world \n"))
	assert.Equal(t, 8, llmutils.WordCount("Remember: the API key rotates every 90 days."))
}

func TestBackticksJSON(t *testing.T) {
	assert.Equal(t, "```json\n{}\n```", llmutils.BackticksJSON("{}"))
}
