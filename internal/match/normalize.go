package match

import (
	"regexp"
	"strings"
	"unicode"
)

// fieldNamePattern accepts the key spellings found in manifests:
// lowercase, camelCase and hyphen/underscore separated words.
var fieldNamePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*(?:[-_][a-zA-Z0-9]+)*$`)

// NormalizeIdent normalizes an identifier for fuzzy matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, spaces).
//
// "container_port", "Container-Port" and "containerPort" all normalize to "containerport".
func NormalizeIdent(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.ToLower(strings.Join(tokens, ""))

	return stripSeparators(joined)
}

// IsFieldName reports whether s has the shape of a manifest field name.
func IsFieldName(s string) bool {
	return fieldNamePattern.MatchString(s)
}

// IsEnvVarName reports whether s looks like an environment variable name
// (DATABASE_URL, LOG_LEVEL, PORT).
func IsEnvVarName(s string) bool {
	if s == "" {
		return false
	}

	hasLetter := false

	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return hasLetter
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "containerPort" -> ["container", "Port"]
//   - "imagePullPolicy" -> ["image", "Pull", "Policy"]
//   - "hostIPC" -> ["host", "IPC"]
//   - "readOnlyRootFilesystem" -> ["read", "Only", "Root", "Filesystem"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// lower -> Upper: "containerPort" splits before 'P'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// end of an acronym: "hostIPCMode" splits before 'M'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

// stripSeparators removes common separators from a string.
func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
