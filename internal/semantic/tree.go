package semantic

import (
	"yaml-fixer/internal/common"
)

// Tree is the classified form of a text. Lines are stored in an arena
// indexed by line number minus one; links between lines are indices.
type Tree struct {
	Lines []Line
	// Documents holds the context of each document in order.
	Documents []Context
}

// Build classifies every line of text and links children to parents.
func Build(text string) *Tree {
	raw, _ := common.SplitLines(text)

	return BuildLines(raw)
}

// BuildLines is Build for text already split into lines.
func BuildLines(raw []string) *Tree {
	tree := &Tree{Lines: make([]Line, 0, len(raw))}
	tracker := NewTracker()

	for i, text := range raw {
		line := Classify(text)
		line.Number = i + 1

		if tracker.InBlock(line.Indent, line.Type == LineBlank) {
			line = verbatim(line)
		}

		line.Document = tracker.Context().Document

		switch {
		case line.Verbatim, line.Type == LineBlank, line.Type == LineComment:
		case line.Type == LineSeparator:
			tree.Documents = append(tree.Documents, tracker.Context())
			tracker.Reset()
		default:
			tree.link(tracker, &line, i)
		}

		tree.Lines = append(tree.Lines, line)
	}

	tree.Documents = append(tree.Documents, tracker.Context())

	return tree
}

// link attaches line to the innermost open scope and opens its own scopes.
func (t *Tree) link(tracker *Tracker, line *Line, index int) {
	tracker.Process(line.Indent, line.IsListItem)

	line.Path = tracker.CurrentPath()

	if top, ok := tracker.Top(); ok {
		line.Parent = top.Line
		t.Lines[top.Line].Children = append(t.Lines[top.Line].Children, index)
	}

	if line.HasColon && !line.NoSpace {
		tracker.Observe(line.Key, line.Value)
	}

	if line.Type == LineBlockScalar {
		tracker.OpenBlock(line.Indent)
	}

	if !line.CanHaveChildren() {
		return
	}

	if line.IsListItem {
		tracker.Push(IndentLevel{Indent: line.Indent, Kind: FrameList, Line: index})

		if line.Key != "" && line.Value == "" && line.HasColon {
			tracker.Push(IndentLevel{Indent: line.KeyColumn, Key: line.Key, Kind: FrameObject, Line: index})
		}

		return
	}

	tracker.Push(IndentLevel{Indent: line.Indent, Key: line.Key, Kind: FrameObject, Line: index})
}

func verbatim(line Line) Line {
	typ := LineValueOnly
	if line.Type == LineBlank {
		typ = LineBlank
	}

	return Line{
		Number:      line.Number,
		Raw:         line.Raw,
		Content:     line.Content,
		Indent:      line.Indent,
		Type:        typ,
		Value:       line.Content,
		KeyColumn:   line.Indent,
		ValueColumn: line.Indent,
		ValueEnd:    line.Indent + len(line.Content),
		Parent:      NoParent,
		Verbatim:    true,
	}
}

// Line returns the line with the 1-based number n, or nil.
func (t *Tree) Line(n int) *Line {
	if n < 1 || n > len(t.Lines) {
		return nil
	}

	return &t.Lines[n-1]
}

// Kind returns the resource kind of document doc.
func (t *Tree) Kind(doc int) string {
	if doc < 0 || doc >= len(t.Documents) {
		return ""
	}

	return t.Documents[doc].Kind
}

// NextStructural returns the index of the first structural line after i, or -1.
func (t *Tree) NextStructural(i int) int {
	for j := i + 1; j < len(t.Lines); j++ {
		if t.Lines[j].IsStructural() {
			return j
		}
	}

	return -1
}

// Siblings returns the indices of the structural lines that share i's
// parent and indent, excluding i.
func (t *Tree) Siblings(i int) []int {
	line := &t.Lines[i]

	var siblings []int

	if line.Parent != NoParent {
		for _, j := range t.Lines[line.Parent].Children {
			if j != i && t.Lines[j].Indent == line.Indent {
				siblings = append(siblings, j)
			}
		}

		return siblings
	}

	for j := range t.Lines {
		other := &t.Lines[j]
		if j != i && other.Parent == NoParent && other.IsStructural() &&
			other.Document == line.Document && other.Indent == line.Indent {
			siblings = append(siblings, j)
		}
	}

	return siblings
}

// BlockEnd returns the index of the last line nested under line i: the
// last following line, before the first structural line at or left of
// i's key column, that is indented deeper or is verbatim.
func (t *Tree) BlockEnd(i int) int {
	line := &t.Lines[i]
	column := line.KeyColumn
	end := i

	for j := i + 1; j < len(t.Lines); j++ {
		next := &t.Lines[j]

		switch {
		case next.Verbatim && next.Type != LineBlank:
			end = j
		case next.Verbatim, next.Type == LineBlank, next.Type == LineComment:
		case next.Type == LineSeparator:
			return end
		case next.Indent > column:
			end = j
		case next.IsListItem && next.Indent == column && line.HasColon && line.Value == "":
			// compact sequence under a mapping key
			end = j
		default:
			return end
		}
	}

	return end
}
