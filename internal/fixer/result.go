package fixer

import (
	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/fixes"
)

// CategoryWhitespace marks tab expansion and trailing-whitespace changes.
const CategoryWhitespace = "whitespace"

// Result is the outcome of Fix.
type Result struct {
	// Text is the repaired text, or the best effort when Valid is false.
	Text string `json:"text"`
	// FixCount is the number of applied fixes, whitespace excluded.
	FixCount int `json:"fixCount"`
	// Changes lists applied changes in the order they were made.
	Changes []Change `json:"changes"`
	// Errors lists problems left in Text.
	Errors []diagnostic.Diagnostic `json:"errors"`
	// Valid reports whether Text parses.
	Valid bool `json:"valid"`
	// Confidence is the severity-weighted confidence of the applied fixes.
	Confidence float64 `json:"confidence"`
	// Iterations is the largest number of detect-apply rounds any document took.
	Iterations int `json:"iterations"`
	// Documents is the number of non-empty documents.
	Documents int `json:"documents"`
}

// Change is one applied modification. Line refers to the text as it was
// when the change was applied.
type Change struct {
	Line       int                 `json:"line"`
	Category   string              `json:"category"`
	Original   string              `json:"original"`
	Fixed      string              `json:"fixed"`
	Reason     string              `json:"reason"`
	Severity   diagnostic.Severity `json:"severity"`
	Confidence float64             `json:"confidence"`
	Pass       string              `json:"pass"`
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	// Clean is true when no problem was found.
	Clean  bool                    `json:"clean"`
	Errors []diagnostic.Diagnostic `json:"errors"`
	// IndentUnit is the detected indentation width.
	IndentUnit int `json:"indentUnit"`
}

func changeOf(s fixes.Suggestion, offset int) Change {
	c := Change{
		Line:       s.Line + offset,
		Category:   s.Type.String(),
		Original:   s.Original,
		Fixed:      s.Replacement,
		Reason:     s.Reason,
		Severity:   s.Severity,
		Confidence: s.Confidence,
		Pass:       s.Pass,
	}

	if s.Remove {
		c.Fixed = ""
	}

	return c
}
