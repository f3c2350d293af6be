package fixes

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

func detect(t *testing.T, p Pass, text string) []Suggestion {
	t.Helper()

	return p.Detect(semantic.Build(text), knowledge.MustDefault())
}

// only asserts a single suggestion and returns it.
func only(t *testing.T, suggestions []Suggestion) Suggestion {
	t.Helper()
	require.Len(t, suggestions, 1, "suggestions: %v", suggestions)

	return suggestions[0]
}

// apply rewrites text with non-overlapping suggestions.
func apply(text string, suggestions []Suggestion) string {
	lines := strings.Split(text, "\n")

	sorted := slices.Clone(suggestions)
	slices.SortFunc(sorted, func(a, b Suggestion) int { return b.Line - a.Line })

	for _, s := range sorted {
		if s.Remove {
			lines = slices.Delete(lines, s.Line-1, s.EndLine)
			continue
		}

		lines[s.Line-1] = s.Replacement
	}

	return strings.Join(lines, "\n")
}
