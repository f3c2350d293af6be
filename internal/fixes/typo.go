package fixes

import (
	"fmt"
	"strings"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/match"
	"yaml-fixer/internal/semantic"
)

const (
	confidenceAlias    = 0.9
	plausibilityBoost  = 0.1
	ambiguityPenalty   = 0.15
	minKeyLenDistance2 = 5
	maxTypoKeyLength   = 64
)

// TypoPass renames unknown keys to the known field they most likely mean.
type TypoPass struct{}

func (TypoPass) Name() string { return "typo" }

func (p TypoPass) Detect(tree *semantic.Tree, kb *knowledge.Base) []Suggestion {
	var out []Suggestion

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if !line.IsStructural() || line.Key == "" || line.NoSpace {
			continue
		}

		if s, ok := p.detectLine(line, kb); ok {
			out = append(out, s)
		}
	}

	return out
}

func (p TypoPass) detectLine(line *semantic.Line, kb *knowledge.Base) (Suggestion, bool) {
	key := line.Key

	switch {
	case kb.IsKnown(key):
		return Suggestion{}, false
	case kb.InFreeForm(line.Path):
		return Suggestion{}, false
	case len(key) > maxTypoKeyLength, match.IsEnvVarName(key):
		return Suggestion{}, false
	case strings.ContainsAny(key, `"'/.:`):
		// quoted, dotted or domain-prefixed keys are user data
		return Suggestion{}, false
	}

	parent := line.ParentKey()

	canonical, confidence, reason := p.resolve(key, parent, kb)
	if canonical == "" {
		return Suggestion{}, false
	}

	if kb.PlausibleUnder(parent, canonical) {
		confidence += plausibilityBoost
	}

	replacement := line.Raw[:line.KeyColumn] + canonical + line.Raw[line.KeyColumn+len(key):]

	return replace(line, FixFieldNormalization, replacement, reason,
		confidence, diagnostic.SeverityWarning, p.Name()), true
}

// resolve returns the canonical field for key, its base confidence and the reason.
func (p TypoPass) resolve(key, parent string, kb *knowledge.Base) (string, float64, string) {
	if canonical, ok := kb.Alias(key); ok {
		return canonical, confidenceAlias, fmt.Sprintf("%q is an alias of %q", key, canonical)
	}

	if strings.Contains(key, " ") || (!match.IsFieldName(key) && !isCapitalizedField(key)) {
		return "", 0, ""
	}

	plausible := func(name string) bool { return kb.PlausibleUnder(parent, name) }

	ranked := match.RankCandidates(key, kb.Fields(), match.DefaultMaxDistance, plausible)

	best := ranked.Best()
	if best == nil {
		return "", 0, ""
	}

	if best.Distance == match.DefaultMaxDistance && len(key) < minKeyLenDistance2 {
		return "", 0, ""
	}

	if ranked.IsAmbiguous() {
		return best.Name, best.Confidence - ambiguityPenalty,
			fmt.Sprintf("unknown field %q, did you mean one of %s (distance %d)",
				key, strings.Join(ranked.Top(2).Names(), ", "), best.Distance)
	}

	return best.Name, best.Confidence,
		fmt.Sprintf("unknown field %q, did you mean %q (distance %d)", key, best.Name, best.Distance)
}

func isCapitalizedField(key string) bool {
	if key == "" || key[0] < 'A' || key[0] > 'Z' {
		return false
	}

	return match.IsFieldName(strings.ToLower(key[:1]) + key[1:])
}
