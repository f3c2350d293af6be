package fixer

import (
	"strings"

	"yaml-fixer/internal/common"
)

// document is a run of lines between separators. The separator that ends
// it, if any, is kept apart and never rewritten.
type document struct {
	lines     []string
	separator *string
}

// empty reports whether the document holds only blanks and comments.
func (d document) empty() bool {
	for _, line := range d.lines {
		content := strings.TrimSpace(line)
		if content != "" && !strings.HasPrefix(content, "#") {
			return false
		}
	}

	return true
}

// isDocumentSeparator matches a line that is exactly "---". Lines such as
// "--- # note" stay inside the current document.
func isDocumentSeparator(line string) bool {
	return line == "---"
}

func splitDocuments(lines []string) []document {
	docs := []document{{}}

	for _, line := range lines {
		if isDocumentSeparator(common.StripTrailing(line)) {
			sep := line
			docs[len(docs)-1].separator = &sep
			docs = append(docs, document{})

			continue
		}

		last := &docs[len(docs)-1]
		last.lines = append(last.lines, line)
	}

	return docs
}

func joinDocuments(docs []document) []string {
	var out []string

	for _, d := range docs {
		out = append(out, d.lines...)
		if d.separator != nil {
			out = append(out, *d.separator)
		}
	}

	return out
}

func joinText(lines []string) string {
	return common.JoinLines(lines, true)
}
