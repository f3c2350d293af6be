package fixes

import (
	"fmt"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/match"
	"yaml-fixer/internal/semantic"
)

// CoercePass rewrites scalars of numeric and boolean fields into their
// canonical form: "3" -> 3, three -> 3, yes -> true.
type CoercePass struct{}

func (CoercePass) Name() string { return "coerce" }

func (p CoercePass) Detect(tree *semantic.Tree, kb *knowledge.Base) []Suggestion {
	var out []Suggestion

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if !line.IsStructural() || !line.HasColon || line.NoSpace || line.Value == "" {
			continue
		}

		if line.Type == semantic.LineBlockScalar || kb.InFreeForm(line.Path) {
			continue
		}

		expected := kb.ExpectedType(line.Key)

		kind := expected.ScalarKind()
		if kind != match.ScalarNumber && kind != match.ScalarBoolean {
			continue
		}

		result := match.ScoreScalar(line.Value, kind)
		if result.Compatibility != match.Coercible {
			continue
		}

		replacement := line.Raw[:line.ValueColumn] + result.Rewritten + line.Raw[line.ValueEnd:]

		severity := diagnostic.SeverityWarning
		if match.IsQuoted(line.Value) {
			severity = diagnostic.SeverityInfo
		}

		out = append(out, replace(line, FixTypeCoercion, replacement,
			fmt.Sprintf("%s expects a %s, %s %s", line.Key, expected, result.Reason, line.Value),
			result.Confidence, severity, p.Name()))
	}

	return out
}
