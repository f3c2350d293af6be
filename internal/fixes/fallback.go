package fixes

import (
	"regexp"
	"strings"

	"yaml-fixer/internal/common"
	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/semantic"
)

const (
	confidenceFallback = 0.6
	fallbackPass       = "fallback"
)

var (
	tightColonPattern = regexp.MustCompile(`^(\s*(?:- )?)([a-z][A-Za-z0-9_-]*):([^\s/].*)$`)
	spacedKeyPattern  = regexp.MustCompile(`^(\s*(?:- )?)([a-z][A-Za-z0-9_-]*)\s+(\S.*)$`)
	bareKeyLine       = regexp.MustCompile(`^(\s*)([a-z][A-Za-z0-9_-]*)$`)
)

// Fallback repairs lines one at a time with plain patterns, without a
// tree: colon spacing, colon insertion, quote balancing and indent
// snapping. It is the last resort when the text still does not parse.
func Fallback(lines []string, unit int) []Suggestion {
	var out []Suggestion

	inBlock := false
	blockIndent := 0

	for i, raw := range lines {
		indent := common.CountIndent(raw)
		blank := common.IsBlank(raw)

		if inBlock {
			if blank || indent > blockIndent {
				continue
			}

			inBlock = false
		}

		content := strings.TrimSpace(raw)
		if blank || strings.HasPrefix(content, "#") || semantic.IsSeparator(content) {
			continue
		}

		fixed := fallbackLine(raw)
		if snapped := Snap(common.CountIndent(fixed), unit); snapped != common.CountIndent(fixed) {
			fixed = common.Reindent(fixed, snapped)
		}

		line := semantic.Classify(fixed)
		if line.Type == semantic.LineBlockScalar {
			inBlock = true
			blockIndent = line.Indent
		}

		if fixed == raw {
			continue
		}

		out = append(out, Suggestion{
			Line:        i + 1,
			EndLine:     i + 1,
			Type:        fallbackType(raw, fixed),
			Original:    raw,
			Replacement: fixed,
			Reason:      "line-level repair",
			Confidence:  confidenceFallback,
			Severity:    diagnostic.SeverityWarning,
			Pass:        fallbackPass,
		})
	}

	return out
}

func fallbackLine(raw string) string {
	if !strings.Contains(raw, "#") {
		switch {
		case tightColonPattern.MatchString(raw):
			raw = tightColonPattern.ReplaceAllString(raw, "$1$2: $3")
		case !strings.Contains(raw, ":") && spacedKeyPattern.MatchString(raw):
			raw = spacedKeyPattern.ReplaceAllString(raw, "$1$2: $3")
		case bareKeyLine.MatchString(raw):
			raw += ":"
		}
	}

	if closed, ok := closeQuote(raw); ok {
		raw = closed
	}

	return raw
}

func fallbackType(raw, fixed string) FixType {
	switch {
	case strings.TrimSpace(raw) == strings.TrimSpace(fixed):
		return FixIndentation
	case strings.Count(fixed, ":") > strings.Count(raw, ":"):
		return FixMissingColon
	case strings.Count(fixed, ": ") > strings.Count(raw, ": "):
		return FixMissingSpace
	default:
		return FixQuoteBalance
	}
}
