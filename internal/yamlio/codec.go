// Package yamlio parses and serializes YAML documents for the fixer.
//
// The fixer only needs two things from a YAML library: a strict parse that
// reports where the text is broken, and a serializer for documents edited
// as node trees. Codec captures exactly that so the orchestrator can be
// tested with a fake.
package yamlio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"yaml-fixer/internal/common"
)

// Codec parses text into document nodes and serializes them back.
type Codec interface {
	Parse(text string) ([]*yaml.Node, error)
	Serialize(docs []*yaml.Node, indent int) (string, error)
}

// SyntaxError is returned by Parse when the text is not valid YAML.
type SyntaxError struct {
	// Line is 1-based.
	Line int
	// Column is the 1-based column of the first non-space character of Line.
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
}

// YAMLCodec is the Codec backed by gopkg.in/yaml.v3. Parsing also decodes
// every document once so that duplicate keys are reported as errors.
type YAMLCodec struct{}

var (
	errorLinePattern   = regexp.MustCompile(`line (\d+)`)
	errorPrefixPattern = regexp.MustCompile(`^(?:yaml: )?(?:line \d+: )?`)
)

// Parse returns the documents of text. Empty text has no documents.
func (YAMLCodec) Parse(text string) (docs []*yaml.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			docs = nil
			err = &SyntaxError{Line: 1, Column: 1, Message: fmt.Sprintf("parser failure: %v", r)}
		}
	}()

	dec := yaml.NewDecoder(strings.NewReader(text))

	for {
		var doc yaml.Node

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, newSyntaxError(text, err)
		}

		var value any
		if err := doc.Decode(&value); err != nil {
			return nil, newSyntaxError(text, err)
		}

		docs = append(docs, &doc)
	}

	return docs, nil
}

// Serialize encodes docs with the given indent, separated by "---".
func (YAMLCodec) Serialize(docs []*yaml.Node, indent int) (string, error) {
	if indent < 1 {
		indent = 2
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	for i, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("failed to encode document %d: %w", i+1, err)
		}
	}

	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to flush encoder: %w", err)
	}

	return buf.String(), nil
}

func newSyntaxError(text string, err error) *SyntaxError {
	msg := err.Error()

	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}

	line := 1
	if m := errorLinePattern.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
			line = n
		}
	}

	lines, _ := common.SplitLines(text)
	if line > len(lines) && len(lines) > 0 {
		line = len(lines)
	}

	column := 1
	if line <= len(lines) {
		column = common.CountIndent(lines[line-1]) + 1
	}

	return &SyntaxError{
		Line:    line,
		Column:  column,
		Message: errorPrefixPattern.ReplaceAllString(msg, ""),
	}
}

// AsSyntaxError unwraps err into a *SyntaxError.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	ok := errors.As(err, &se)

	return se, ok
}
