package semantic

import (
	"regexp"
	"strings"

	"yaml-fixer/internal/common"
)

var (
	// blockIndicatorPattern matches literal/folded scalar headers such as |, >-, |2+.
	blockIndicatorPattern = regexp.MustCompile(`^[|>][-+0-9]*$`)
	// bareKeyPattern matches a lone identifier that could be a key missing its colon.
	bareKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
)

// Classify determines the type of a single line and extracts its key and
// value. Tree linking and block-scalar state are not computed here.
func Classify(raw string) Line {
	line := Line{
		Raw:     raw,
		Content: strings.TrimSpace(raw),
		Indent:  common.CountIndent(raw),
		Parent:  NoParent,
	}
	line.KeyColumn = line.Indent

	c := line.Content

	switch {
	case c == "":
		line.Type = LineBlank
		return line
	case strings.HasPrefix(c, "#"):
		line.Type = LineComment
		return line
	case IsSeparator(c):
		line.Type = LineSeparator
		return line
	}

	body := c
	offset := line.Indent

	if c == "-" || strings.HasPrefix(c, "- ") {
		line.IsListItem = true
		rest := strings.TrimLeft(c[1:], " ")
		offset += len(c) - len(rest)
		body = rest
		line.KeyColumn = offset
	}

	splitBody(&line, body, offset)

	switch {
	case line.HasColon && isBlockIndicator(line.Value):
		line.Type = LineBlockScalar
	case !line.HasColon && line.IsListItem && isBlockIndicator(line.Value):
		line.Type = LineBlockScalar
	case line.IsListItem:
		line.Type = LineListItem
	case line.HasColon && line.Value != "":
		line.Type = LineKeyValue
	case line.HasColon:
		line.Type = LineKeyOnly
	case bareKeyPattern.MatchString(body):
		line.Type = LineKeyOnly
		line.Key = body
		line.Value = ""
		line.ValueColumn = offset + len(body)
		line.ValueEnd = line.ValueColumn
	default:
		line.Type = LineValueOnly
	}

	return line
}

// IsSeparator reports whether trimmed content is a document boundary.
func IsSeparator(content string) bool {
	return content == "---" || content == "..." || strings.HasPrefix(content, "--- ")
}

func isBlockIndicator(value string) bool {
	return blockIndicatorPattern.MatchString(value)
}

// splitBody extracts key, value and comment from body, which starts at
// byte offset in the raw line.
func splitBody(line *Line, body string, offset int) {
	if body == "" {
		line.ValueColumn = offset
		line.ValueEnd = offset

		return
	}

	valueStart := 0

	if body[0] != '{' && body[0] != '[' {
		colon, spaced := findKeyColon(body)
		if colon > 0 {
			key := strings.TrimRight(body[:colon], " ")
			if key != "" {
				line.Key = key
				line.HasColon = true
				line.NoSpace = !spaced
				valueStart = colon + 1
			}
		}
	}

	rest := body[valueStart:]
	trimmed := strings.TrimLeft(rest, " ")
	valueStart += len(rest) - len(trimmed)

	value, comment := splitComment(trimmed)

	line.Value = value
	line.Comment = comment
	line.ValueColumn = offset + valueStart
	line.ValueEnd = line.ValueColumn + len(value)
}

// findKeyColon returns the index of the colon that ends the key, or -1.
// A colon followed by a space or the end of the body is preferred; the
// first unquoted colon is used otherwise and reported as not spaced.
func findKeyColon(body string) (int, bool) {
	first := -1

	var quote byte

	for i := 0; i < len(body); i++ {
		ch := body[i]

		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			if i == 0 {
				quote = ch
			}
		case ch == '#' && i > 0 && body[i-1] == ' ':
			return first, false
		case ch == ':':
			if i+1 == len(body) || body[i+1] == ' ' {
				if first >= 0 {
					return first, false
				}

				return i, true
			}

			if first < 0 {
				first = i
			}
		}
	}

	return first, false
}

// splitComment separates a trailing " #" comment from a value, ignoring
// '#' inside quotes.
func splitComment(s string) (value, comment string) {
	if strings.HasPrefix(s, "#") {
		return "", s
	}

	var quote byte

	for i := 0; i < len(s); i++ {
		ch := s[i]

		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case (ch == '"' || ch == '\'') && (i == 0 || s[i-1] == ' ' || s[i-1] == '['):
			quote = ch
		case ch == '#' && i > 0 && (s[i-1] == ' ' || s[i-1] == '\t'):
			return strings.TrimRight(s[:i], " \t"), s[i:]
		}
	}

	return s, ""
}
