package fixer

import (
	"slices"

	"yaml-fixer/internal/fixes"
)

// claim selects, in order, the suggestions whose lines are not yet taken.
// A removal takes its whole range. The rest are deferred to the next
// iteration.
func claim(accepted []fixes.Suggestion) (selected, deferred []fixes.Suggestion) {
	claimed := make(map[int]bool)

	for _, s := range accepted {
		end := s.Line
		if s.Remove {
			end = s.EndLine
		}

		free := true

		for l := s.Line; l <= end; l++ {
			if claimed[l] {
				free = false
				break
			}
		}

		if !free {
			deferred = append(deferred, s)
			continue
		}

		for l := s.Line; l <= end; l++ {
			claimed[l] = true
		}

		selected = append(selected, s)
	}

	return selected, deferred
}

// apply rewrites lines with non-overlapping suggestions, last line first
// so earlier line numbers stay valid.
func apply(lines []string, suggestions []fixes.Suggestion) []string {
	out := slices.Clone(lines)

	ordered := slices.Clone(suggestions)
	slices.SortStableFunc(ordered, func(a, b fixes.Suggestion) int { return b.Line - a.Line })

	for _, s := range ordered {
		if s.Line < 1 || s.Line > len(out) {
			continue
		}

		if s.Remove {
			out = slices.Delete(out, s.Line-1, min(s.EndLine, len(out)))
			continue
		}

		out[s.Line-1] = s.Replacement
	}

	return out
}

// byLine orders suggestions for reporting.
func byLine(suggestions []fixes.Suggestion) []fixes.Suggestion {
	out := slices.Clone(suggestions)
	slices.SortStableFunc(out, func(a, b fixes.Suggestion) int { return a.Line - b.Line })

	return out
}
