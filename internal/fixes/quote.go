package fixes

import (
	"fmt"
	"strings"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

// QuotePass closes values that open a quote and never close it.
type QuotePass struct{}

func (QuotePass) Name() string { return "quote" }

func (p QuotePass) Detect(tree *semantic.Tree, _ *knowledge.Base) []Suggestion {
	var out []Suggestion

	for i := range tree.Lines {
		line := &tree.Lines[i]
		if !line.IsStructural() {
			continue
		}

		q, ok := UnbalancedQuote(line.Value)
		if !ok {
			continue
		}

		out = append(out, replace(line, FixQuoteBalance,
			line.Raw+string(q),
			fmt.Sprintf("unclosed %c quote", q),
			0.9, diagnostic.SeverityCritical, p.Name()))
	}

	return out
}

// UnbalancedQuote reports whether value opens a quote without closing it
// and returns the quote character.
func UnbalancedQuote(value string) (byte, bool) {
	if value == "" {
		return 0, false
	}

	q := value[0]
	if q != '"' && q != '\'' {
		return 0, false
	}

	count := 0

	for i := 0; i < len(value); i++ {
		if value[i] != q {
			continue
		}

		if q == '"' && i > 0 && value[i-1] == '\\' && !escapedBackslash(value, i-1) {
			continue
		}

		count++
	}

	return q, count%2 == 1
}

// escapedBackslash reports whether the backslash at i is itself escaped.
func escapedBackslash(s string, i int) bool {
	n := 0
	for i >= 0 && s[i] == '\\' {
		n++
		i--
	}

	return n%2 == 0
}

// closeQuote is the line-level form of the pass used without a tree.
func closeQuote(raw string) (string, bool) {
	line := semantic.Classify(raw)

	q, ok := UnbalancedQuote(line.Value)
	if !ok {
		return raw, false
	}

	return strings.TrimRight(raw, " ") + string(q), true
}
