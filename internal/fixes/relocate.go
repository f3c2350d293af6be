package fixes

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
)

const confidenceRelocation = 0.85

// Move records one field moved (or, in a dry run, to be moved) to its
// canonical parent.
type Move struct {
	Field string
	From  []string
	To    []string
	// Line is the 1-based line of the key before the move.
	Line int
	// Conflict is set when the destination already holds the field; the
	// field is then left in place.
	Conflict bool
}

// Suggestion describes the move in the common suggestion shape.
func (m Move) Suggestion() Suggestion {
	from := pathString(m.From)
	to := pathString(m.To)

	reason := fmt.Sprintf("%s belongs under %s, found under %s", m.Field, to, from)
	if m.Conflict {
		reason = fmt.Sprintf("%s belongs under %s, which already defines it", m.Field, to)
	}

	return Suggestion{
		Line:        m.Line,
		EndLine:     m.Line,
		Type:        FixFieldRelocation,
		Original:    from + "." + m.Field,
		Replacement: to + "." + m.Field,
		Reason:      reason,
		Confidence:  confidenceRelocation,
		Severity:    diagnostic.SeverityWarning,
		Pass:        "relocate",
	}
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}

	return strings.Join(path, ".")
}

// Relocator moves misplaced top-level Kubernetes fields on parsed documents.
type Relocator struct {
	KB *knowledge.Base
	// DryRun plans moves without changing the documents.
	DryRun bool
}

// Relocate processes every document and returns the moves made (or
// planned). Documents without a kind are left alone.
func (r Relocator) Relocate(docs []*yaml.Node) []Move {
	var moves []Move

	for _, doc := range docs {
		root := documentRoot(doc)
		if root == nil {
			continue
		}

		kind := scalarValue(lookup(root, "kind"))
		if kind == "" {
			continue
		}

		moves = append(moves, r.relocateDocument(root, kind)...)
	}

	return moves
}

func (r Relocator) relocateDocument(root *yaml.Node, kind string) []Move {
	var moves []Move

	for _, field := range r.KB.MetadataFields() {
		moves = append(moves, r.move(root, nil, field, []string{"metadata"})...)
	}

	placement, ok := r.KB.PlacementFor(kind)
	if !ok {
		return moves
	}

	for _, field := range placement.SpecFields {
		moves = append(moves, r.move(root, nil, field, []string{"spec"})...)
	}

	if len(placement.PodPath) == 0 {
		return moves
	}

	for _, field := range placement.PodFields {
		moves = append(moves, r.move(root, nil, field, placement.PodPath)...)

		if !slices.Equal(placement.PodPath, []string{"spec"}) {
			moves = append(moves, r.move(root, []string{"spec"}, field, placement.PodPath)...)
		}
	}

	return moves
}

// move relocates field from the mapping at from to the mapping at to.
func (r Relocator) move(root *yaml.Node, from []string, field string, to []string) []Move {
	src := walk(root, from)
	if src == nil {
		return nil
	}

	idx := keyIndex(src, field)
	if idx < 0 {
		return nil
	}

	key := src.Content[idx]
	m := Move{Field: field, From: from, To: to, Line: key.Line}

	if dst := walk(root, to); dst != nil && keyIndex(dst, field) >= 0 {
		m.Conflict = true
		return []Move{m}
	}

	if r.DryRun {
		return []Move{m}
	}

	value := src.Content[idx+1]
	src.Content = slices.Delete(src.Content, idx, idx+2)

	dst := r.ensure(root, to)
	dst.Content = append(dst.Content, key, value)

	return []Move{m}
}

// ensure returns the mapping at path, creating missing mappings. A pod
// template created on the way gets metadata labels copied from the
// selector so the workload stays valid.
func (r Relocator) ensure(root *yaml.Node, path []string) *yaml.Node {
	node := root

	for i, key := range path {
		next := lookup(node, key)

		if next == nil || next.Kind != yaml.MappingNode {
			next = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

			if i == 0 {
				setRootKey(node, key, next)
			} else {
				setKey(node, key, next)
			}

			if key == "template" && i == 1 && path[0] == "spec" {
				r.seedTemplate(root, next)
			}
		}

		node = next
	}

	return node
}

func (r Relocator) seedTemplate(root, template *yaml.Node) {
	labels := lookup(walk(root, []string{"spec", "selector"}), "matchLabels")

	metadata := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if labels != nil && labels.Kind == yaml.MappingNode {
		setKey(metadata, "labels", cloneNode(labels))
	}

	setKey(template, "metadata", metadata)
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}

	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}

		node = node.Content[0]
	}

	if node.Kind != yaml.MappingNode {
		return nil
	}

	return node
}

// walk follows path through nested mappings.
func walk(node *yaml.Node, path []string) *yaml.Node {
	for _, key := range path {
		node = lookup(node, key)
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
	}

	return node
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	idx := keyIndex(node, key)
	if idx < 0 {
		return nil
	}

	return node.Content[idx+1]
}

func keyIndex(node *yaml.Node, key string) int {
	if node == nil || node.Kind != yaml.MappingNode {
		return -1
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return i
		}
	}

	return -1
}

func setKey(node *yaml.Node, key string, value *yaml.Node) {
	if idx := keyIndex(node, key); idx >= 0 {
		node.Content[idx+1] = value
		return
	}

	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// rootOrder is the conventional order of top-level manifest keys.
var rootOrder = map[string]int{"apiVersion": 0, "kind": 1, "metadata": 2, "spec": 3}

// setRootKey is setKey for the document root: a new key is inserted before
// the first key that conventionally follows it.
func setRootKey(root *yaml.Node, key string, value *yaml.Node) {
	rank, ranked := rootOrder[key]
	if !ranked || keyIndex(root, key) >= 0 {
		setKey(root, key, value)
		return
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if r, ok := rootOrder[root.Content[i].Value]; ok && r > rank {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
			root.Content = slices.Insert(root.Content, i, keyNode, value)

			return
		}
	}

	setKey(root, key, value)
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}

	return node.Value
}

func cloneNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	c := *node
	c.Content = make([]*yaml.Node, len(node.Content))

	for i, child := range node.Content {
		c.Content[i] = cloneNode(child)
	}

	return &c
}
