package match

import (
	"strconv"
	"strings"
)

// ScalarKind is the inferred kind of a raw YAML scalar.
type ScalarKind int

const (
	// ScalarUnknown is used for flow collections and anything not classified.
	ScalarUnknown ScalarKind = iota
	ScalarNull
	ScalarBoolean
	ScalarNumber
	ScalarString
)

// String returns a human-readable name for the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case ScalarNull:
		return "null"
	case ScalarBoolean:
		return "boolean"
	case ScalarNumber:
		return "number"
	case ScalarString:
		return "string"
	default:
		return "unknown"
	}
}

// Compatibility represents how well a raw scalar fits an expected kind.
type Compatibility int

const (
	// Incompatible means the scalar cannot be rewritten into the expected kind.
	Incompatible Compatibility = iota
	// Coercible means a known rewrite turns the scalar into the expected kind.
	Coercible
	// Identical means the scalar already has the expected kind.
	Identical
)

// String returns a human-readable name for the compatibility level.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case Coercible:
		return "coercible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult contains the verdict plus the rewrite that achieves it.
type CompatibilityResult struct {
	Compatibility Compatibility
	// Rewritten is the coerced scalar text when Compatibility is Coercible.
	Rewritten string
	// Reason is a human-readable explanation.
	Reason string
	// Confidence of the rewrite (0-1); zero unless Coercible.
	Confidence float64
}

var numberWords = map[string]string{
	"zero":  "0",
	"one":   "1",
	"two":   "2",
	"three": "3",
	"four":  "4",
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
	"ten":   "10",
}

var booleanWords = map[string]string{
	"yes":   "true",
	"y":     "true",
	"on":    "true",
	"1":     "true",
	"true":  "true",
	"no":    "false",
	"n":     "false",
	"off":   "false",
	"0":     "false",
	"false": "false",
}

// InferScalarKind classifies raw scalar text the way a YAML 1.2 core schema
// resolver would. Quoted scalars are always strings.
func InferScalarKind(raw string) ScalarKind {
	s := strings.TrimSpace(raw)

	switch {
	case s == "", s == "~", s == "null", s == "Null", s == "NULL":
		return ScalarNull
	case IsQuoted(s):
		return ScalarString
	case strings.HasPrefix(s, "{"), strings.HasPrefix(s, "["):
		return ScalarUnknown
	case s == "true", s == "false", s == "True", s == "False", s == "TRUE", s == "FALSE":
		return ScalarBoolean
	case isNumber(s):
		return ScalarNumber
	default:
		return ScalarString
	}
}

// ScoreScalar determines whether raw fits expected and, if not, whether one
// of the known rewrites (quoted numbers, number words, yes/no booleans) fixes it.
func ScoreScalar(raw string, expected ScalarKind) CompatibilityResult {
	s := strings.TrimSpace(raw)
	kind := InferScalarKind(s)

	if expected == ScalarUnknown || kind == ScalarNull || kind == ScalarUnknown {
		return CompatibilityResult{Compatibility: Identical, Reason: "nothing to check"}
	}

	switch expected {
	case ScalarNumber:
		return scoreNumber(s, kind)
	case ScalarBoolean:
		return scoreBoolean(s, kind)
	}

	if kind == expected {
		return CompatibilityResult{Compatibility: Identical, Reason: "kinds are identical"}
	}

	return CompatibilityResult{Compatibility: Incompatible, Reason: "no rewrite known"}
}

func scoreNumber(s string, kind ScalarKind) CompatibilityResult {
	if kind == ScalarNumber {
		return CompatibilityResult{Compatibility: Identical, Reason: "kinds are identical"}
	}

	inner := Unquote(s)

	if IsQuoted(s) && isNumber(inner) {
		return CompatibilityResult{
			Compatibility: Coercible,
			Rewritten:     inner,
			Reason:        "quoted number",
			Confidence:    0.9,
		}
	}

	if digits, ok := numberWords[strings.ToLower(inner)]; ok {
		return CompatibilityResult{
			Compatibility: Coercible,
			Rewritten:     digits,
			Reason:        "number word",
			Confidence:    0.85,
		}
	}

	return CompatibilityResult{Compatibility: Incompatible, Reason: "not a number"}
}

func scoreBoolean(s string, kind ScalarKind) CompatibilityResult {
	if kind == ScalarBoolean && (s == "true" || s == "false") {
		return CompatibilityResult{Compatibility: Identical, Reason: "kinds are identical"}
	}

	if b, ok := booleanWords[strings.ToLower(Unquote(s))]; ok {
		return CompatibilityResult{
			Compatibility: Coercible,
			Rewritten:     b,
			Reason:        "boolean spelling",
			Confidence:    0.9,
		}
	}

	return CompatibilityResult{Compatibility: Incompatible, Reason: "not a boolean"}
}

// IsQuoted reports whether s is wrapped in matching single or double quotes.
func IsQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}

	return (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')
}

// Unquote strips one pair of matching quotes.
func Unquote(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}

	return s
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}

	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		// reject the spellings ParseFloat accepts but YAML does not
		lower := strings.ToLower(s)

		return !strings.Contains(lower, "inf") && !strings.Contains(lower, "nan") && !strings.HasPrefix(lower, "0x")
	}

	return false
}
