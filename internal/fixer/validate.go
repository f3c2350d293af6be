package fixer

import (
	"slices"

	"yaml-fixer/internal/common"
	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/fixes"
	"yaml-fixer/internal/semantic"
)

// Validate reports every problem the passes find without changing the
// text. Indentation is checked against opts.IndentUnit; the detected
// style is returned alongside.
func (f *Fixer) Validate(text string, opts Options) *ValidationResult {
	opts = opts.withDefaults()

	lines, _ := common.SplitLines(text)
	lines, _ = normalize(lines, opts.IndentUnit)

	passes := append(slices.Clone(f.passes), fixes.IndentPass{Unit: opts.IndentUnit})

	var errs diagnostic.Diagnostics

	offset := 0

	for _, d := range splitDocuments(lines) {
		if !d.empty() {
			for _, diag := range f.validateDocument(d.lines, passes, opts) {
				diag.Line += offset
				errs.Add(diag)
			}
		}

		offset += len(d.lines)
		if d.separator != nil {
			offset++
		}
	}

	res := &ValidationResult{
		Clean:      errs.Len() == 0,
		Errors:     errs.All(),
		IndentUnit: DetectIndentStyle(text),
	}

	if res.Errors == nil {
		res.Errors = []diagnostic.Diagnostic{}
	}

	return res
}

func (f *Fixer) validateDocument(lines []string, passes []fixes.Pass, opts Options) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	for _, s := range fixes.RunPasses(passes, semantic.BuildLines(lines), f.kb) {
		out = append(out, s.Diagnostic())
	}

	nodes, err := f.codec.Parse(joinText(lines))
	if err != nil {
		return append(out, parseDiagnostic(err))
	}

	relocator := fixes.Relocator{KB: f.kb, DryRun: true}

	for _, m := range relocator.Relocate(nodes) {
		d := m.Suggestion().Diagnostic()
		d.Severity = diagnostic.SeverityInfo
		d.Fixable = opts.Aggressive && !m.Conflict

		if m.Conflict {
			d.Suggestion = ""
		}

		out = append(out, d)
	}

	return out
}
