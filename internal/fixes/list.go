package fixes

import (
	"fmt"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

// secondFields maps the usual second key of a named list entry to the
// confidence that a bare scalar before it is the entry's name.
var secondFields = map[string]struct {
	entry      string
	confidence float64
}{
	"value":     {"environment variable", 0.85},
	"valueFrom": {"environment variable", 0.85},
	"image":     {"container", 0.85},
	"mountPath": {"volume mount", 0.8},
}

// ListPass turns "- NAME" followed by "value:" (or image:, mountPath:)
// into "- name: NAME".
type ListPass struct{}

func (ListPass) Name() string { return "list" }

func (p ListPass) Detect(tree *semantic.Tree, _ *knowledge.Base) []Suggestion {
	var out []Suggestion

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if line.Type != semantic.LineListItem || line.HasColon || line.Value == "" {
			continue
		}

		next := tree.NextStructural(i)
		if next < 0 {
			continue
		}

		child := &tree.Lines[next]
		if child.Parent != i || child.IsListItem || !child.HasColon {
			continue
		}

		second, ok := secondFields[child.Key]
		if !ok {
			continue
		}

		replacement := line.Prefix() + "name: " + line.Value
		if line.Comment != "" {
			replacement += " " + line.Comment
		}

		out = append(out, replace(line, FixListRestructure, replacement,
			fmt.Sprintf("%s entry %q is missing its name key", second.entry, line.Value),
			second.confidence, diagnostic.SeverityError, p.Name()))
	}

	return out
}
