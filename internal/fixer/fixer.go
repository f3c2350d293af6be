package fixer

import (
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"yaml-fixer/internal/common"
	"yaml-fixer/internal/confidence"
	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/fixes"
	"yaml-fixer/internal/semantic"
	"yaml-fixer/internal/yamlio"
)

// outcome is the state of one document while it is being fixed. Line
// numbers in it are local to the document.
type outcome struct {
	lines       []string
	applied     []fixes.Suggestion
	changes     []Change
	diagnostics []diagnostic.Diagnostic
	iterations  int
	valid       bool
}

func (o *outcome) record(suggestions []fixes.Suggestion) {
	for _, s := range byLine(suggestions) {
		o.applied = append(o.applied, s)
		o.changes = append(o.changes, changeOf(s, 0))
	}
}

// Fix repairs text. It never fails: whatever could not be repaired is
// reported in Result.Errors next to the best-effort text.
func (f *Fixer) Fix(text string, opts Options) *Result {
	opts = opts.withDefaults()

	lines, trailingNewline := common.SplitLines(text)
	lines, whitespace := normalize(lines, opts.IndentUnit)

	res := &Result{
		Changes: whitespace,
		Valid:   true,
	}

	var (
		applied []fixes.Suggestion
		errs    diagnostic.Diagnostics
	)

	docs := splitDocuments(lines)
	offset := 0

	for i := range docs {
		d := &docs[i]

		if !d.empty() {
			res.Documents++

			out := f.fixDocument(d.lines, opts, res.Documents)
			d.lines = out.lines

			for _, c := range out.changes {
				c.Line += offset
				res.Changes = append(res.Changes, c)
			}

			for _, diag := range out.diagnostics {
				diag.Line += offset
				errs.Add(diag)
			}

			applied = append(applied, out.applied...)
			res.Iterations = max(res.Iterations, out.iterations)
			res.Valid = res.Valid && out.valid
		}

		offset += len(d.lines)
		if d.separator != nil {
			offset++
		}
	}

	res.Text = common.JoinLines(joinDocuments(docs), trailingNewline)
	res.FixCount = len(applied)
	res.Confidence = confidence.Aggregate(applied)
	res.Errors = errs.All()

	if res.Changes == nil {
		res.Changes = []Change{}
	}

	if res.Errors == nil {
		res.Errors = []diagnostic.Diagnostic{}
	}

	f.log.Debug("fix finished",
		zap.Int("documents", res.Documents),
		zap.Int("fixes", res.FixCount),
		zap.Int("errors", len(res.Errors)),
		zap.Bool("valid", res.Valid),
		zap.Float64("confidence", res.Confidence))

	return res
}

func (f *Fixer) fixDocument(lines []string, opts Options, index int) outcome {
	out := outcome{lines: lines}
	log := f.log.With(zap.Int("document", index))
	threshold := opts.Threshold()

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		tree := semantic.BuildLines(out.lines)

		accepted, _ := confidence.Filter(fixes.RunPasses(f.passes, tree, f.kb), threshold)

		selected, deferred := claim(accepted)
		if len(selected) == 0 {
			break
		}

		out.lines = apply(out.lines, selected)
		out.record(selected)
		out.iterations = iter

		_, err := f.codec.Parse(joinText(out.lines))

		log.Debug("fix iteration",
			zap.Int("iteration", iter),
			zap.Int("accepted", len(selected)),
			zap.Int("deferred", len(deferred)),
			zap.Bool("parsed", err == nil))

		if err == nil && len(deferred) == 0 {
			break
		}
	}

	nodes, err := f.codec.Parse(joinText(out.lines))
	if err != nil {
		nodes, err = f.degrade(&out, opts.IndentUnit, threshold, log)
	}

	if err != nil {
		out.diagnostics = append(out.diagnostics, parseDiagnostic(err))
	} else {
		out.valid = true
		f.relocate(&out, nodes, opts, log)
	}

	out.diagnostics = append(out.diagnostics, f.remaining(out.lines, out.valid, threshold)...)

	return out
}

// degrade snaps indentation and, if that is not enough, repairs lines one
// by one. Only suggestions at or above the threshold are applied, and the
// repaired text is kept only if it parses.
func (f *Fixer) degrade(out *outcome, unit int, threshold float64, log *zap.Logger) ([]*yaml.Node, error) {
	indented, _ := confidence.Filter(
		fixes.IndentPass{Unit: unit}.Detect(semantic.BuildLines(out.lines), f.kb), threshold)
	candidate := apply(out.lines, indented)

	if len(indented) > 0 {
		if nodes, err := f.codec.Parse(joinText(candidate)); err == nil {
			log.Debug("indentation snapping repaired document", zap.Int("changes", len(indented)))

			out.lines = candidate
			out.record(indented)

			return nodes, nil
		}
	}

	fallback, rejected := confidence.Filter(fixes.Fallback(candidate, unit), threshold)
	if len(fallback) == 0 {
		log.Debug("line-level fallback below threshold", zap.Int("rejected", len(rejected)))

		_, err := f.codec.Parse(joinText(out.lines))

		return nil, err
	}

	repaired := apply(candidate, fallback)

	nodes, err := f.codec.Parse(joinText(repaired))
	if err != nil {
		log.Debug("line-level fallback failed", zap.Error(err))

		_, err = f.codec.Parse(joinText(out.lines))

		return nil, err
	}

	log.Debug("line-level fallback repaired document",
		zap.Int("indentation", len(indented)),
		zap.Int("lines", len(fallback)))

	out.lines = repaired
	out.record(indented)
	out.record(fallback)

	return nodes, nil
}

// relocate moves misplaced fields in aggressive mode and reports them
// otherwise.
func (f *Fixer) relocate(out *outcome, nodes []*yaml.Node, opts Options, log *zap.Logger) {
	relocator := fixes.Relocator{KB: f.kb, DryRun: !opts.Aggressive}

	var moved []fixes.Suggestion

	for _, m := range relocator.Relocate(nodes) {
		s := m.Suggestion()

		if m.Conflict || relocator.DryRun {
			d := s.Diagnostic()
			d.Severity = diagnostic.SeverityInfo
			d.Fixable = !m.Conflict

			if m.Conflict {
				d.Suggestion = ""
			}

			out.diagnostics = append(out.diagnostics, d)

			continue
		}

		moved = append(moved, s)
	}

	if len(moved) == 0 {
		return
	}

	serialized, err := f.codec.Serialize(nodes, opts.IndentUnit)
	if err != nil {
		log.Warn("failed to serialize relocated document", zap.Error(err))
		return
	}

	lines, _ := common.SplitLines(serialized)

	out.lines = lines
	out.record(moved)
}

// remaining reports what the passes still find in the final text.
func (f *Fixer) remaining(lines []string, valid bool, threshold float64) []diagnostic.Diagnostic {
	tree := semantic.BuildLines(lines)

	var out []diagnostic.Diagnostic

	for _, s := range fixes.RunPasses(f.passes, tree, f.kb) {
		d := s.Diagnostic()
		if valid && s.Confidence < threshold && d.Severity > diagnostic.SeverityWarning {
			// leftovers in text that parses are at most warnings
			d.Severity = diagnostic.SeverityWarning
		}

		out = append(out, d)
	}

	return out
}

func parseDiagnostic(err error) diagnostic.Diagnostic {
	se, ok := yamlio.AsSyntaxError(err)
	if !ok {
		se = &yamlio.SyntaxError{Line: 1, Column: 1, Message: err.Error()}
	}

	return diagnostic.Diagnostic{
		Severity: diagnostic.SeverityCritical,
		Code:     diagnostic.CodeParseError,
		Message:  se.Message,
		Line:     se.Line,
		Column:   se.Column,
	}
}

// normalize expands tab indentation and strips trailing whitespace.
func normalize(lines []string, unit int) ([]string, []Change) {
	out := slices.Clone(lines)

	var changes []Change

	for i, line := range lines {
		fixed := common.StripTrailing(common.ExpandTabs(line, unit))
		if fixed == line {
			continue
		}

		reason := "trailing whitespace removed"
		if lead := len(line) - len(strings.TrimLeft(line, " \t")); strings.Contains(line[:lead], "\t") {
			reason = "tab indentation expanded"
		}

		out[i] = fixed
		changes = append(changes, Change{
			Line:       i + 1,
			Category:   CategoryWhitespace,
			Original:   line,
			Fixed:      fixed,
			Reason:     reason,
			Severity:   diagnostic.SeverityInfo,
			Confidence: 1,
			Pass:       "normalize",
		})
	}

	return out, changes
}
