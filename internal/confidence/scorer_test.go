package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/fixes"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		aggressive bool
		expected   float64
	}{
		{"default", 0, false, 0.8},
		{"negative means default", -1, false, 0.8},
		{"explicit", 0.9, false, 0.9},
		{"aggressive lowers default", 0, true, 0.6},
		{"aggressive keeps lower", 0.5, true, 0.5},
		{"aggressive caps higher", 0.95, true, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Threshold(tt.base, tt.aggressive), 1e-9)
		})
	}
}

func TestFilter(t *testing.T) {
	suggestions := []fixes.Suggestion{
		{Line: 1, Confidence: 0.95},
		{Line: 2, Confidence: 0.6},
		{Line: 3, Confidence: 0.8},
		{Line: 4, Confidence: 0.79},
	}

	accepted, rejected := Filter(suggestions, 0.8)

	assert.Equal(t, []int{1, 3}, lines(accepted))
	assert.Equal(t, []int{2, 4}, lines(rejected))

	accepted, rejected = Filter(nil, 0.8)
	assert.Empty(t, accepted)
	assert.Empty(t, rejected)
}

func TestFilter_Monotonic(t *testing.T) {
	suggestions := []fixes.Suggestion{
		{Confidence: 0.95}, {Confidence: 0.9}, {Confidence: 0.85},
		{Confidence: 0.75}, {Confidence: 0.7}, {Confidence: 0.6},
	}

	prev := len(suggestions) + 1

	for _, threshold := range []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0} {
		accepted, _ := Filter(suggestions, threshold)
		assert.LessOrEqual(t, len(accepted), prev, "threshold %.1f", threshold)
		prev = len(accepted)
	}
}

func TestAggregate(t *testing.T) {
	assert.InDelta(t, 1.0, Aggregate(nil), 1e-9)

	applied := []fixes.Suggestion{
		{Severity: diagnostic.SeverityCritical, Confidence: 0.9},
		{Severity: diagnostic.SeverityError, Confidence: 0.95},
		{Severity: diagnostic.SeverityWarning, Confidence: 0.7},
		{Severity: diagnostic.SeverityInfo, Confidence: 0.9},
	}

	// (1.5*0.9 + 1.0*0.95 + 0.7*0.7 + 0.5*0.9) / (1.5+1.0+0.7+0.5)
	expected := (1.35 + 0.95 + 0.49 + 0.45) / 3.7
	assert.InDelta(t, expected, Aggregate(applied), 1e-9)

	single := []fixes.Suggestion{{Severity: diagnostic.SeverityWarning, Confidence: 0.7}}
	assert.InDelta(t, 0.7, Aggregate(single), 1e-9)
}

func lines(s []fixes.Suggestion) []int {
	out := make([]int, 0, len(s))
	for _, x := range s {
		out = append(out, x.Line)
	}

	return out
}
