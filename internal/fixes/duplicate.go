package fixes

import (
	"fmt"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

const confidenceDuplicate = 0.95

// DuplicatePass removes repeated keys of one mapping, keeping the first.
// Keys are tracked per column; a line clears every deeper column and a
// new list item clears the columns of the previous item.
type DuplicatePass struct{}

func (DuplicatePass) Name() string { return "duplicate" }

func (p DuplicatePass) Detect(tree *semantic.Tree, _ *knowledge.Base) []Suggestion {
	var out []Suggestion

	seen := make(map[int]map[string]int)

	clearFrom := func(column int) {
		for c := range seen {
			if c > column {
				delete(seen, c)
			}
		}
	}

	// skipUntil hides lines nested under a removed duplicate
	skipUntil := -1

	for i := range tree.Lines {
		line := &tree.Lines[i]

		if line.Type == semantic.LineSeparator && !line.Verbatim {
			clear(seen)
			continue
		}

		if !line.IsStructural() || i <= skipUntil {
			continue
		}

		if line.IsListItem {
			clearFrom(line.Indent)
		} else {
			clearFrom(line.KeyColumn)
		}

		if !line.HasColon || line.NoSpace {
			continue
		}

		column := line.KeyColumn
		if seen[column] == nil {
			seen[column] = make(map[string]int)
		}

		first, dup := seen[column][line.Key]
		if !dup {
			seen[column][line.Key] = line.Number
			continue
		}

		end := tree.BlockEnd(i)
		skipUntil = end

		s := Suggestion{
			Line:       line.Number,
			EndLine:    end + 1,
			Type:       FixDuplicateKey,
			Original:   line.Raw,
			Remove:     true,
			Reason:     fmt.Sprintf("duplicate key %q, first defined on line %d", line.Key, first),
			Confidence: confidenceDuplicate,
			Severity:   diagnostic.SeverityWarning,
			Pass:       p.Name(),
		}

		out = append(out, s)
	}

	return out
}
