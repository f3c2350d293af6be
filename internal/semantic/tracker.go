package semantic

import "slices"

// FrameKind distinguishes mapping scopes from sequence scopes.
type FrameKind int

const (
	FrameObject FrameKind = iota
	FrameList
)

// IndentLevel is one open scope on the tracker stack.
type IndentLevel struct {
	Indent int
	Key    string
	Kind   FrameKind
	// Line is the arena index of the line that opened the scope.
	Line int
}

// Context is the per-document state seen so far.
type Context struct {
	Kind       string
	APIVersion string
	Document   int

	InBlockScalar bool
	BlockIndent   int
	// blockFirst is set until the line right after the indicator is consumed.
	blockFirst bool
}

// Tracker maintains the stack of open scopes while lines are read in order.
// Indents on the stack strictly increase from bottom to top.
type Tracker struct {
	stack []IndentLevel
	ctx   Context
}

// NewTracker returns an empty tracker positioned at the first document.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Process closes every scope that a line at indent leaves. A list item at
// the indent of an open mapping key stays inside it (compact sequences),
// while a sibling list item closes the previous item.
func (t *Tracker) Process(indent int, listItem bool) {
	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]

		switch {
		case top.Indent > indent:
		case top.Indent == indent && (!listItem || top.Kind == FrameList):
		default:
			return
		}

		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Push registers a scope owned by a line.
func (t *Tracker) Push(level IndentLevel) {
	t.stack = append(t.stack, level)
}

// Top returns the innermost open scope.
func (t *Tracker) Top() (IndentLevel, bool) {
	if len(t.stack) == 0 {
		return IndentLevel{}, false
	}

	return t.stack[len(t.stack)-1], true
}

// Depth returns the number of open scopes.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// CurrentPath returns the keys of the open mapping scopes, outermost first.
func (t *Tracker) CurrentPath() []string {
	path := make([]string, 0, len(t.stack))
	for _, level := range t.stack {
		if level.Kind == FrameObject && level.Key != "" {
			path = append(path, level.Key)
		}
	}

	return slices.Clip(path)
}

// Reset starts a new document.
func (t *Tracker) Reset() {
	t.stack = t.stack[:0]
	t.ctx = Context{Document: t.ctx.Document + 1}
}

// Context returns the current document context.
func (t *Tracker) Context() Context {
	return t.ctx
}

// Observe records document-level facts from a root-level key.
func (t *Tracker) Observe(key, value string) {
	if len(t.stack) != 0 {
		return
	}

	switch key {
	case "kind":
		t.ctx.Kind = value
	case "apiVersion":
		t.ctx.APIVersion = value
	}
}

// OpenBlock starts a block scalar whose indicator line sits at indent.
func (t *Tracker) OpenBlock(indent int) {
	t.ctx.InBlockScalar = true
	t.ctx.BlockIndent = indent
	t.ctx.blockFirst = true
}

// InBlock reports whether a line belongs to the open block scalar and
// closes the block when it does not.
func (t *Tracker) InBlock(indent int, blank bool) bool {
	if !t.ctx.InBlockScalar {
		return false
	}

	if t.ctx.blockFirst {
		t.ctx.blockFirst = false
		return true
	}

	if blank || indent > t.ctx.BlockIndent {
		return true
	}

	t.ctx.InBlockScalar = false

	return false
}
