package common

import "strings"

// SplitLines splits text into lines without their terminators. A single
// trailing newline does not produce an empty last line; trailingNewline
// records whether it was present so JoinLines can restore it.
func SplitLines(text string) (lines []string, trailingNewline bool) {
	if text == "" {
		return nil, false
	}

	trailingNewline = strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	lines = strings.Split(text, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines, trailingNewline
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, trailingNewline bool) string {
	text := strings.Join(lines, "\n")
	if trailingNewline && len(lines) > 0 {
		text += "\n"
	}

	return text
}

// CountIndent returns the number of leading spaces of line.
func CountIndent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// Indent returns n spaces.
func Indent(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(" ", n)
}

// Reindent replaces the leading spaces of line with n spaces.
func Reindent(line string, n int) string {
	return Indent(n) + strings.TrimLeft(line, " ")
}

// ExpandTabs replaces every tab in the leading whitespace of line with unit
// spaces. Tabs after the first non-whitespace character are kept.
func ExpandTabs(line string, unit int) string {
	end := len(line) - len(strings.TrimLeft(line, " \t"))
	if !strings.Contains(line[:end], "\t") {
		return line
	}

	return strings.ReplaceAll(line[:end], "\t", Indent(unit)) + line[end:]
}

// StripTrailing removes trailing spaces, tabs and carriage returns.
func StripTrailing(line string) string {
	return strings.TrimRight(line, " \t\r")
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
