package fixer

import (
	"yaml-fixer/internal/common"
	"yaml-fixer/internal/fixes"
	"yaml-fixer/internal/semantic"
)

// DetectIndentStyle returns 4 when more indented lines sit on multiples
// of 4 than on multiples of 2 only, and 2 otherwise. Block scalar content
// is not counted.
func DetectIndentStyle(text string) int {
	lines, _ := common.SplitLines(text)
	tree := semantic.BuildLines(lines)

	four, twoOnly := 0, 0

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if !line.IsStructural() || line.Indent == 0 {
			continue
		}

		switch {
		case line.Indent%4 == 0:
			four++
		case line.Indent%2 == 0:
			twoOnly++
		}
	}

	if four > twoOnly {
		return 4
	}

	return 2
}

// NormalizeIndentation expands tabs, strips trailing whitespace and snaps
// every structural line to a multiple of unit. It does not parse the text.
func NormalizeIndentation(text string, unit int) string {
	if unit < 1 {
		unit = DefaultIndentUnit
	}

	lines, trailingNewline := common.SplitLines(text)
	lines, _ = normalize(lines, unit)

	tree := semantic.BuildLines(lines)
	snapped := fixes.IndentPass{Unit: unit}.Detect(tree, nil)

	return common.JoinLines(apply(lines, snapped), trailingNewline)
}
