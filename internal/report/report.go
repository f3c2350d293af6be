// Package report renders fix and validation results for the terminal or
// as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/fixer"
	"yaml-fixer/internal/workspace"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

// Printer writes human-readable reports.
type Printer struct {
	w io.Writer

	path     *color.Color
	ok       *color.Color
	change   *color.Color
	dim      *color.Color
	severity map[diagnostic.Severity]*color.Color
}

// NewPrinter creates a printer. Colors are emitted only when useColor is
// set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:      w,
		path:   color.New(color.Bold),
		ok:     color.New(color.FgGreen),
		change: color.New(color.FgGreen),
		dim:    color.New(color.Faint),
		severity: map[diagnostic.Severity]*color.Color{
			diagnostic.SeverityInfo:     color.New(color.FgCyan),
			diagnostic.SeverityWarning:  color.New(color.FgYellow),
			diagnostic.SeverityError:    color.New(color.FgRed),
			diagnostic.SeverityCritical: color.New(color.FgRed, color.Bold),
		},
	}

	if useColor {
		for _, c := range p.all() {
			c.EnableColor()
		}
	} else {
		for _, c := range p.all() {
			c.DisableColor()
		}
	}

	return p
}

func (p *Printer) all() []*color.Color {
	out := []*color.Color{p.path, p.ok, p.change, p.dim}
	for _, c := range p.severity {
		out = append(out, c)
	}

	return out
}

// Fix prints the changes and remaining problems of each file, then a
// summary line.
func (p *Printer) Fix(results []workspace.FileResult) {
	var fixes, invalid, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			p.failure(r)

			continue
		}

		fixes += r.Fix.FixCount
		if !r.Fix.Valid {
			invalid++
		}

		p.fixFile(r)
	}

	fmt.Fprintf(p.w, "%d file(s), %d fix(es), %d invalid, %d failed\n", len(results), fixes, invalid, failed)
}

// Validate prints the problems of each file, then a summary line.
func (p *Printer) Validate(results []workspace.FileResult) {
	var dirty, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			p.failure(r)

			continue
		}

		if !r.Validation.Clean {
			dirty++
		}

		p.validateFile(r)
	}

	fmt.Fprintf(p.w, "%d file(s), %d with problems, %d failed\n", len(results), dirty, failed)
}

// FixResult prints the outcome for one file without a summary.
func (p *Printer) FixResult(r workspace.FileResult) {
	if r.Err != nil {
		p.failure(r)
		return
	}

	p.fixFile(r)
}

func (p *Printer) failure(r workspace.FileResult) {
	fmt.Fprintf(p.w, "%s: %s\n", p.path.Sprint(r.Path), p.severity[diagnostic.SeverityCritical].Sprint(r.Err))
}

func (p *Printer) fixFile(r workspace.FileResult) {
	res := r.Fix

	status := p.ok.Sprint("valid")
	if !res.Valid {
		status = p.severity[diagnostic.SeverityCritical].Sprint("invalid")
	}

	suffix := ""
	if r.Written {
		suffix = " (written)"
	}

	fmt.Fprintf(p.w, "%s: %d fix(es), confidence %.2f, %s%s\n",
		p.path.Sprint(r.Path), res.FixCount, res.Confidence, status, suffix)

	p.Changes(res.Changes)
	p.Diagnostics(res.Errors)
}

func (p *Printer) validateFile(r workspace.FileResult) {
	res := r.Validation

	if res.Clean {
		fmt.Fprintf(p.w, "%s: %s\n", p.path.Sprint(r.Path), p.ok.Sprint("clean"))
		return
	}

	fmt.Fprintf(p.w, "%s: %d problem(s)\n", p.path.Sprint(r.Path), len(res.Errors))
	p.Diagnostics(res.Errors)
}

// Changes prints one line per applied change.
func (p *Printer) Changes(changes []fixer.Change) {
	for _, c := range changes {
		fixed := fmt.Sprintf("%q", c.Fixed)
		if c.Fixed == "" && c.Original != "" && c.Category != fixer.CategoryWhitespace {
			fixed = "(removed)"
		}

		fmt.Fprintf(p.w, "  %s %s %q -> %s %s\n",
			p.dim.Sprintf("%4d", c.Line),
			p.change.Sprintf("%-19s", c.Category),
			c.Original,
			fixed,
			p.dim.Sprintf("(%.2f) %s", c.Confidence, c.Reason),
		)
	}
}

// Diagnostics prints one line per diagnostic.
func (p *Printer) Diagnostics(diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		sev := p.severity[d.Severity]
		if sev == nil {
			sev = p.dim
		}

		line := fmt.Sprintf("  %s %s", sev.Sprintf("%-8s", d.Severity), d.String())
		if d.Fixable && d.Suggestion != "" {
			line += p.dim.Sprintf(" (suggest %q)", d.Suggestion)
		}

		fmt.Fprintln(p.w, line)
	}
}

type jsonFile struct {
	workspace.FileResult
	Error string `json:"error,omitempty"`
}

// JSON writes the results as an indented JSON array.
func JSON(w io.Writer, results []workspace.FileResult) error {
	out := make([]jsonFile, 0, len(results))
	for _, r := range results {
		f := jsonFile{FileResult: r}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}

		out = append(out, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}
