package semantic

//go:generate go tool stringer -type=LineType -linecomment -output=linetype_string.go

// LineType is the structural role of one line.
type LineType int

const (
	LineUnknown     LineType = iota // unknown
	LineKeyValue                    // key-value
	LineKeyOnly                     // key-only
	LineValueOnly                   // value-only
	LineListItem                    // list-item
	LineComment                     // comment
	LineBlank                       // blank
	LineSeparator                   // separator
	LineBlockScalar                 // block-scalar
)

// NoParent marks a line without an enclosing line.
const NoParent = -1

// Line is one classified source line.
type Line struct {
	// Number is the 1-based line number.
	Number int
	// Raw is the line as it appears in the text.
	Raw string
	// Content is Raw without surrounding whitespace.
	Content string
	// Indent is the count of leading spaces.
	Indent int
	Type   LineType

	// Key is the raw key text, empty when the line has none.
	Key string
	// Value is the raw value text without a trailing comment.
	Value string
	// Comment is the trailing comment including the '#'.
	Comment string

	IsListItem bool
	HasColon   bool
	// NoSpace is set when the key colon is directly followed by the value.
	NoSpace bool

	// KeyColumn is the byte offset of the key (or list body) in Raw.
	KeyColumn int
	// ValueColumn and ValueEnd delimit Value in Raw.
	ValueColumn int
	ValueEnd    int

	// Parent is the index of the enclosing line or NoParent.
	Parent   int
	Children []int

	// Path holds the keys of the enclosing mappings, outermost first.
	Path []string
	// Document is the 0-based document index.
	Document int
	// Verbatim marks content of a block scalar.
	Verbatim bool
}

// IsStructural reports whether the line takes part in the document structure.
func (l *Line) IsStructural() bool {
	if l.Verbatim {
		return false
	}

	switch l.Type {
	case LineBlank, LineComment, LineSeparator:
		return false
	default:
		return true
	}
}

// CanHaveChildren reports whether lines indented below l belong to it.
func (l *Line) CanHaveChildren() bool {
	if l.Verbatim {
		return false
	}

	return l.Type == LineKeyOnly || l.Type == LineListItem
}

// IsBareKey reports whether the line is a lone identifier without a colon.
func (l *Line) IsBareKey() bool {
	return l.Type == LineKeyOnly && !l.HasColon
}

// ParentKey returns the key the line is nested under ("" at document root).
func (l *Line) ParentKey() string {
	if len(l.Path) == 0 {
		return ""
	}

	return l.Path[len(l.Path)-1]
}

// Prefix returns Raw up to the key or list body.
func (l *Line) Prefix() string {
	return l.Raw[:l.KeyColumn]
}
