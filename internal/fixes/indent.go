package fixes

import (
	"fmt"
	"math"

	"yaml-fixer/internal/common"
	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

const (
	confidenceSnap      = 0.85
	confidenceNestUnder = 0.9
	defaultIndentUnit   = 2
)

// IndentPass snaps every line's indentation to a multiple of Unit. A line
// that directly follows "- key:" and sits inside the dash's content column
// is pushed one unit deeper so it nests under the key.
type IndentPass struct {
	Unit int
}

func (IndentPass) Name() string { return "indent" }

func (p IndentPass) Detect(tree *semantic.Tree, _ *knowledge.Base) []Suggestion {
	unit := p.Unit
	if unit < 1 {
		unit = defaultIndentUnit
	}

	var out []Suggestion

	// the previous structural line after re-indentation
	var (
		prev       *semantic.Line
		prevIndent int
	)

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if !line.IsStructural() {
			if line.Type == semantic.LineSeparator {
				prev = nil
			}

			continue
		}

		target := Snap(line.Indent, unit)
		reason := fmt.Sprintf("indentation %d is not a multiple of %d", line.Indent, unit)
		confidence := confidenceSnap

		if prev != nil && opensListMapping(prev) {
			dash := prevIndent
			content := dash + (prev.KeyColumn - prev.Indent)

			if line.Indent > dash && line.Indent <= content && !line.IsListItem {
				target = Snap(content, unit) + unit
				reason = fmt.Sprintf("nest under %q of the list item above", prev.Key)
				confidence = confidenceNestUnder
			}
		}

		if line.Type == semantic.LineBlockScalar && target > line.Indent && blockBodyIndent(tree, i) <= target {
			// moving the header right would swallow its body
			target = line.Indent
		}

		prev = line
		prevIndent = target

		if target == line.Indent {
			continue
		}

		out = append(out, replace(line, FixIndentation, common.Reindent(line.Raw, target),
			reason, confidence, diagnostic.SeverityWarning, p.Name()))
	}

	return out
}

// Snap rounds indent to the nearest multiple of unit.
func Snap(indent, unit int) int {
	if unit < 1 {
		return indent
	}

	return int(math.Round(float64(indent)/float64(unit))) * unit
}

func opensListMapping(line *semantic.Line) bool {
	return line.IsListItem && line.HasColon && line.Value == "" && line.Type == semantic.LineListItem
}

// blockBodyIndent returns the indent of the first non-blank body line of
// the block scalar opened at i, or a large value when the body is empty.
func blockBodyIndent(tree *semantic.Tree, i int) int {
	for j := i + 1; j < len(tree.Lines); j++ {
		next := &tree.Lines[j]
		if !next.Verbatim {
			break
		}

		if next.Type != semantic.LineBlank {
			return next.Indent
		}
	}

	return math.MaxInt
}
