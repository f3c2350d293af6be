// Package confidence filters fix suggestions by confidence and summarizes
// the confidence of an applied set.
package confidence

import (
	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/fixes"
)

const (
	// DefaultThreshold is the minimum confidence for a fix to be applied.
	DefaultThreshold = 0.8
	// AggressiveThreshold caps the threshold in aggressive mode.
	AggressiveThreshold = 0.6
)

// Severity weights for Aggregate.
var weights = map[diagnostic.Severity]float64{
	diagnostic.SeverityCritical: 1.5,
	diagnostic.SeverityError:    1.0,
	diagnostic.SeverityWarning:  0.7,
	diagnostic.SeverityInfo:     0.5,
}

// Threshold resolves the effective threshold. A non-positive base selects
// DefaultThreshold; aggressive mode lowers it to at most AggressiveThreshold.
func Threshold(base float64, aggressive bool) float64 {
	if base <= 0 {
		base = DefaultThreshold
	}

	if aggressive {
		return min(base, AggressiveThreshold)
	}

	return base
}

// Filter splits suggestions into those at or above threshold and the rest,
// preserving order.
func Filter(suggestions []fixes.Suggestion, threshold float64) (accepted, rejected []fixes.Suggestion) {
	for _, s := range suggestions {
		if s.Confidence >= threshold {
			accepted = append(accepted, s)
		} else {
			rejected = append(rejected, s)
		}
	}

	return accepted, rejected
}

// Aggregate returns the severity-weighted mean confidence of applied
// suggestions. An empty set scores 1.
func Aggregate(applied []fixes.Suggestion) float64 {
	if len(applied) == 0 {
		return 1.0
	}

	var sum, total float64

	for _, s := range applied {
		w, ok := weights[s.Severity]
		if !ok {
			w = weights[diagnostic.SeverityInfo]
		}

		sum += w * s.Confidence
		total += w
	}

	return sum / total
}
