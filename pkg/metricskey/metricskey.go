// Package metricskey describes the metrics emitted by this repo.
package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsDeduplicated = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_deduplicated",
		Help:         "stats_tool_calls_deduplicated provides total tool calls skipped as duplicates",
		RequiredTags: []string{"tool"},
	}

	StatsMemoryDocsStored = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_memory_docs_stored",
		Help:         "stats_memory_docs_stored provides total documents stored to long-term memory",
		RequiredTags: []string{"namespace"},
	}

	StatsMemorySearches = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_memory_searches",
		Help:         "stats_memory_searches provides total similarity searches performed",
		RequiredTags: []string{"namespace"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfSimilaritySearch = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_similarity_search",
		Help:         "perf_similarity_search provides duration of vector similarity search",
		RequiredTags: []string{"namespace"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfSimilaritySearch,
	&PerfToolCall,
	&StatsMemoryDocsStored,
	&StatsMemorySearches,
	&StatsToolCallsDeduplicated,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
