package fixes

import (
	"fmt"
	"math"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

//go:generate go tool stringer -type=FixType -linecomment -output=fixtype_string.go

// FixType tags the kind of repair a suggestion makes.
type FixType int

const (
	FixMissingColon       FixType = iota // missing-colon
	FixMissingSpace                      // missing-space
	FixFieldNormalization                // field-normalization
	FixIndentation                       // indentation
	FixDuplicateKey                      // duplicate-key
	FixTypeCoercion                      // type-coercion
	FixFieldRelocation                   // field-relocation
	FixListRestructure                   // list-restructure
	FixQuoteBalance                      // quote-balance
	FixWhitespace                        // whitespace
)

// Code returns the diagnostic code reported when the fix is not applied.
func (t FixType) Code() string {
	switch t {
	case FixMissingColon:
		return diagnostic.CodeMissingColon
	case FixMissingSpace:
		return diagnostic.CodeMissingSpace
	case FixFieldNormalization:
		return diagnostic.CodeFieldTypo
	case FixIndentation:
		return diagnostic.CodeBadIndentation
	case FixDuplicateKey:
		return diagnostic.CodeDuplicateKey
	case FixTypeCoercion:
		return diagnostic.CodeTypeMismatch
	case FixFieldRelocation:
		return diagnostic.CodeMisplacedField
	case FixListRestructure:
		return diagnostic.CodeBrokenListItem
	case FixQuoteBalance:
		return diagnostic.CodeUnclosedQuote
	default:
		return t.String()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t FixType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Suggestion is a candidate repair of one line or, for removals, a range
// of lines. Suggestions are values and are never modified after creation.
type Suggestion struct {
	// Line is the 1-based line the fix applies to.
	Line int
	// EndLine is the last line removed when Remove is set; equals Line otherwise.
	EndLine int
	Type    FixType
	// Original is the current text of Line.
	Original string
	// Replacement is the new text of Line. Unused when Remove is set.
	Replacement string
	// Remove drops lines Line..EndLine.
	Remove     bool
	Reason     string
	Confidence float64
	Severity   diagnostic.Severity
	// Pass is the name of the pass that produced the suggestion.
	Pass string
}

// Diagnostic converts the suggestion into a fixable diagnostic.
func (s Suggestion) Diagnostic() diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: s.Severity,
		Code:     s.Type.Code(),
		Message:  s.Reason,
		Line:     s.Line,
		Fixable:  true,
	}

	if !s.Remove {
		d.Suggestion = s.Replacement
	}

	return d
}

// String returns a one-line description used in logs.
func (s Suggestion) String() string {
	if s.Remove {
		return fmt.Sprintf("%s@%d-%d remove (%.2f)", s.Type, s.Line, s.EndLine, s.Confidence)
	}

	return fmt.Sprintf("%s@%d %q -> %q (%.2f)", s.Type, s.Line, s.Original, s.Replacement, s.Confidence)
}

// Pass detects problems in a tree and proposes fixes. Passes are pure and
// may run concurrently over the same tree.
type Pass interface {
	Name() string
	Detect(tree *semantic.Tree, kb *knowledge.Base) []Suggestion
}

// DefaultPasses returns the detection passes in the order their
// suggestions claim lines.
func DefaultPasses() []Pass {
	return []Pass{
		QuotePass{},
		ColonPass{},
		TypoPass{},
		ListPass{},
		CoercePass{},
		DuplicatePass{},
	}
}

// RunPasses runs every pass over tree and concatenates the results in pass order.
func RunPasses(passes []Pass, tree *semantic.Tree, kb *knowledge.Base) []Suggestion {
	var all []Suggestion
	for _, p := range passes {
		all = append(all, p.Detect(tree, kb)...)
	}

	return all
}

func replace(line *semantic.Line, typ FixType, replacement, reason string, confidence float64,
	severity diagnostic.Severity, pass string,
) Suggestion {
	return Suggestion{
		Line:        line.Number,
		EndLine:     line.Number,
		Type:        typ,
		Original:    line.Raw,
		Replacement: replacement,
		Reason:      reason,
		Confidence:  roundConfidence(confidence),
		Severity:    severity,
		Pass:        pass,
	}
}

// roundConfidence caps c at 1 and rounds it to two decimals so that sums
// such as 0.7+0.1 compare equal to their threshold.
func roundConfidence(c float64) float64 {
	return math.Round(min(c, 1.0)*100) / 100
}
