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
	confidenceKnownKey   = 0.95
	confidenceTypedValue = 0.85
	confidenceParentKey  = 0.85
	confidenceBareToken  = 0.75
	confidenceBarePhrase = 0.6
	confidenceSiblings   = 0.85
	siblingColonRatio    = 0.8
)

// ColonPass inserts missing colons after keys and missing spaces after colons.
type ColonPass struct{}

func (ColonPass) Name() string { return "colon" }

func (p ColonPass) Detect(tree *semantic.Tree, kb *knowledge.Base) []Suggestion {
	var out []Suggestion

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if !line.IsStructural() || line.Type == semantic.LineBlockScalar {
			continue
		}

		if isContinuation(tree, i) {
			continue
		}

		switch {
		case line.HasColon && line.NoSpace:
			if s, ok := p.missingSpace(line, kb); ok {
				out = append(out, s)
			}
		case !line.HasColon:
			if s, ok := p.missingColon(tree, i, kb); ok {
				out = append(out, s)
			}
		}
	}

	return out
}

func (p ColonPass) missingSpace(line *semantic.Line, kb *knowledge.Base) (Suggestion, bool) {
	if strings.HasPrefix(line.Value, "//") {
		return Suggestion{}, false
	}

	if line.IsListItem && !isListKey(kb, line, line.Key) {
		// "- nginx:1.25" and "- --port:8080" are plain scalars
		return Suggestion{}, false
	}

	known := isKnownOrAlias(kb, line.Key)
	if !known && !match.IsFieldName(line.Key) {
		return Suggestion{}, false
	}

	after := line.KeyColumn + len(line.Key)
	colon := strings.IndexByte(line.Raw[after:], ':')

	if colon < 0 {
		return Suggestion{}, false
	}

	colon += after
	replacement := line.Raw[:colon+1] + " " + line.Raw[colon+1:]

	confidence := confidenceTypedValue
	if known {
		confidence = confidenceKnownKey
	}

	return replace(line, FixMissingSpace, replacement,
		fmt.Sprintf("missing space after colon of %q", line.Key),
		confidence, diagnostic.SeverityError, p.Name()), true
}

func (p ColonPass) missingColon(tree *semantic.Tree, i int, kb *knowledge.Base) (Suggestion, bool) {
	line := &tree.Lines[i]

	text := line.Value
	if line.IsBareKey() {
		text = line.Key
	}

	tok, rest := splitToken(text)
	if tok == "" {
		return Suggestion{}, false
	}

	known := isKnownOrAlias(kb, tok)

	if line.IsListItem {
		// list scalars are only split on known fields: "- name web"
		if rest == "" || !isListKey(kb, line, tok) {
			return Suggestion{}, false
		}
	} else if !known && !match.IsFieldName(tok) {
		return Suggestion{}, false
	}

	hasChildren := false
	if next := tree.NextStructural(i); next >= 0 && tree.Lines[next].Indent > line.Indent {
		hasChildren = true
	}

	var confidence float64

	switch {
	case known:
		confidence = confidenceKnownKey
	case rest != "" && isTypedValue(rest):
		confidence = confidenceTypedValue
	case rest == "" && hasChildren:
		confidence = confidenceParentKey
	case rest != "" && !strings.ContainsAny(rest, " \t"):
		confidence = confidenceBareToken
	default:
		confidence = confidenceBarePhrase
	}

	if confidence < confidenceSiblings && siblingsUseColons(tree, i) {
		confidence = confidenceSiblings
	}

	replacement := line.Prefix() + tok + ":"
	if rest != "" {
		replacement += " " + rest
	}

	if line.Comment != "" {
		replacement += " " + line.Comment
	}

	reason := fmt.Sprintf("missing colon after %q", tok)
	if rest == "" && hasChildren {
		reason = fmt.Sprintf("%q owns nested lines but has no colon", tok)
	}

	return replace(line, FixMissingColon, replacement, reason,
		confidence, diagnostic.SeverityError, p.Name()), true
}

// siblingsUseColons reports whether at least 80% of the line's siblings
// are written with a colon.
func siblingsUseColons(tree *semantic.Tree, i int) bool {
	siblings := tree.Siblings(i)
	if len(siblings) == 0 {
		return false
	}

	withColon := 0

	for _, j := range siblings {
		if tree.Lines[j].HasColon {
			withColon++
		}
	}

	return float64(withColon) >= siblingColonRatio*float64(len(siblings))
}

// isContinuation reports whether line i continues the plain scalar of
// the previous structural line.
func isContinuation(tree *semantic.Tree, i int) bool {
	line := &tree.Lines[i]

	for j := i - 1; j >= 0; j-- {
		prev := &tree.Lines[j]
		if prev.Verbatim || prev.Type == semantic.LineBlank || prev.Type == semantic.LineComment {
			continue
		}

		if prev.Type == semantic.LineSeparator || prev.Value == "" {
			return false
		}

		if !prev.HasColon && !prev.IsListItem {
			// a broken line itself; its follower is judged on its own
			return false
		}

		if prev.NoSpace {
			return false
		}

		column := prev.Indent
		if prev.HasColon {
			column = prev.KeyColumn
		}

		return line.Indent > column && !line.IsListItem
	}

	return false
}

func splitToken(text string) (tok, rest string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		return text[:idx], strings.TrimSpace(text[idx:])
	}

	return text, ""
}

func isTypedValue(value string) bool {
	switch match.InferScalarKind(value) {
	case match.ScalarNumber, match.ScalarBoolean:
		return true
	case match.ScalarString:
		return match.IsQuoted(value)
	default:
		return false
	}
}

func isKnownOrAlias(kb *knowledge.Base, key string) bool {
	if kb.IsKnown(key) {
		return true
	}

	_, ok := kb.Alias(key)

	return ok
}

// isListKey reports whether tok, the first token of a list item, can be a
// mapping key. Only exact field names count, never flags, and never inside
// lists of plain strings such as command and args.
func isListKey(kb *knowledge.Base, line *semantic.Line, tok string) bool {
	if strings.HasPrefix(tok, "-") || !kb.IsKnown(tok) {
		return false
	}

	return !kb.IsScalarList(line.ParentKey())
}
