package diagnostic

import (
	"fmt"
	"sort"
	"strings"
)

// Machine-readable diagnostic codes.
const (
	CodeMissingColon   = "missing_colon"
	CodeMissingSpace   = "missing_space"
	CodeUnclosedQuote  = "unclosed_quote"
	CodeDuplicateKey   = "duplicate_key"
	CodeBadIndentation = "bad_indentation"
	CodeFieldTypo      = "field_typo"
	CodeTypeMismatch   = "type_mismatch"
	CodeMisplacedField = "misplaced_field"
	CodeBrokenListItem = "broken_list_item"
	CodeParseError     = "parse_error"
)

// Diagnostics holds all diagnostic information from a fix or validation run.
type Diagnostics struct {
	Criticals []Diagnostic
	Errors    []Diagnostic
	Warnings  []Diagnostic
	Infos     []Diagnostic
}

// Diagnostic represents a single problem found in a document.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Line is the 1-based line number (0 if unknown).
	Line int `json:"line"`
	// Column is the 1-based column number (0 if unknown).
	Column int `json:"column,omitempty"`
	// Fixable is true when a repair was proposed for the problem.
	Fixable bool `json:"fixable"`
	// Suggestion is the proposed replacement text, if any.
	Suggestion string `json:"suggestion,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name back into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Add appends a diagnostic to the bucket matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityCritical:
		d.Criticals = append(d.Criticals, diag)
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Criticals) + len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic ordered by line, then by descending severity.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Criticals...)
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}

		return all[i].Severity > all[j].Severity
	})

	return all
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix string

	switch {
	case d.Line > 0 && d.Column > 0:
		prefix = fmt.Sprintf("line %d:%d", d.Line, d.Column)
	case d.Line > 0:
		prefix = fmt.Sprintf("line %d", d.Line)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if prefix != "" {
		return prefix + ": " + msg
	}

	return msg
}
