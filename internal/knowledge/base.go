package knowledge

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"yaml-fixer/internal/match"
)

//go:embed kubernetes.yaml
var kubernetesYAML []byte

// FieldType is the expected type of a field's value.
type FieldType string

const (
	TypeUnknown FieldType = ""
	TypeBoolean FieldType = "boolean"
	TypeNumber  FieldType = "number"
	TypeString  FieldType = "string"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// ScalarKind maps the field type onto the scalar kinds used for coercion.
// Collection types map to match.ScalarUnknown.
func (t FieldType) ScalarKind() match.ScalarKind {
	switch t {
	case TypeBoolean:
		return match.ScalarBoolean
	case TypeNumber:
		return match.ScalarNumber
	case TypeString:
		return match.ScalarString
	default:
		return match.ScalarUnknown
	}
}

// Placement describes where top-level fields of one class of kinds belong.
type Placement struct {
	// Class is the name of the kind class (workload, pod, service).
	Class string
	// SpecFields belong directly under spec.
	SpecFields []string
	// PodFields belong under PodPath. Empty when the class has no pod template.
	PodFields []string
	// PodPath is the key path of the pod spec.
	PodPath []string
}

// Base is the immutable field knowledge. It is safe for concurrent use.
type Base struct {
	types     map[string]FieldType
	known     map[string]struct{}
	fields    []string
	aliases   map[string]string
	normIndex map[string]string
	contexts  map[string]map[string]struct{}
	freeForm  map[string]struct{}
	scalars   map[string]struct{}
	metadata  []string
	byKind    map[string]Placement
}

// document is the on-disk shape of the knowledge file.
type document struct {
	Types     map[FieldType][]string `yaml:"types"`
	Aliases   map[string]string      `yaml:"aliases"`
	Placement struct {
		Metadata []string `yaml:"metadata"`
		PodSpec  []string `yaml:"podSpec"`
		Classes  []struct {
			Name    string   `yaml:"name"`
			Kinds   []string `yaml:"kinds"`
			PodPath []string `yaml:"podPath"`
			Spec    []string `yaml:"spec"`
		} `yaml:"classes"`
	} `yaml:"placement"`
	Contexts    map[string][]string `yaml:"contexts"`
	ScalarLists []string            `yaml:"scalarLists"`
	FreeForm    []string            `yaml:"freeForm"`
}

// Default returns the embedded Kubernetes knowledge base. It is parsed once.
var Default = sync.OnceValues(func() (*Base, error) {
	return Parse(kubernetesYAML)
})

// MustDefault returns Default and panics if the embedded data is invalid.
func MustDefault() *Base {
	kb, err := Default()
	if err != nil {
		panic(err)
	}

	return kb
}

// Parse builds a Base from YAML knowledge data.
func Parse(data []byte) (*Base, error) {
	var doc document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse knowledge YAML: %w", err)
	}

	kb := &Base{
		types:     make(map[string]FieldType),
		known:     make(map[string]struct{}),
		aliases:   make(map[string]string, len(doc.Aliases)),
		normIndex: make(map[string]string),
		contexts:  make(map[string]map[string]struct{}, len(doc.Contexts)),
		freeForm:  make(map[string]struct{}, len(doc.FreeForm)),
		scalars:   make(map[string]struct{}, len(doc.ScalarLists)),
		metadata:  doc.Placement.Metadata,
		byKind:    make(map[string]Placement),
	}

	for typ, names := range doc.Types {
		switch typ {
		case TypeBoolean, TypeNumber, TypeString, TypeObject, TypeArray:
		default:
			return nil, fmt.Errorf("unknown field type %q", typ)
		}

		for _, name := range names {
			if prev, ok := kb.types[name]; ok && prev != typ {
				return nil, fmt.Errorf("field %q declared as both %s and %s", name, prev, typ)
			}

			kb.types[name] = typ
			kb.addKnown(name)
		}
	}

	for parent, children := range doc.Contexts {
		set := make(map[string]struct{}, len(children))
		for _, child := range children {
			set[child] = struct{}{}
			kb.addKnown(child)
		}

		kb.contexts[parent] = set
	}

	for _, name := range doc.FreeForm {
		kb.freeForm[name] = struct{}{}
	}

	for _, name := range doc.ScalarLists {
		if kb.types[name] != TypeArray {
			return nil, fmt.Errorf("scalar list %q is not declared as an array", name)
		}

		kb.scalars[name] = struct{}{}
	}

	for _, name := range doc.Placement.Metadata {
		kb.addKnown(name)
	}

	for _, class := range doc.Placement.Classes {
		p := Placement{
			Class:      class.Name,
			SpecFields: class.Spec,
			PodPath:    class.PodPath,
		}
		if len(class.PodPath) > 0 {
			p.PodFields = doc.Placement.PodSpec
		}

		for _, kind := range class.Kinds {
			kb.byKind[kind] = p
		}
	}

	for alias, canonical := range doc.Aliases {
		if _, ok := kb.known[canonical]; !ok {
			return nil, fmt.Errorf("alias %q points to unknown field %q", alias, canonical)
		}

		kb.aliases[alias] = canonical
	}

	kb.fields = make([]string, 0, len(kb.known))
	for name := range kb.known {
		kb.fields = append(kb.fields, name)
		kb.normIndex[match.NormalizeIdent(name)] = name
	}

	sort.Strings(kb.fields)

	return kb, nil
}

func (kb *Base) addKnown(name string) {
	kb.known[name] = struct{}{}
}

// IsKnown reports whether name is a known field.
func (kb *Base) IsKnown(name string) bool {
	_, ok := kb.known[name]
	return ok
}

// Fields returns all known field names in sorted order.
func (kb *Base) Fields() []string {
	return kb.fields
}

// Alias resolves key to a canonical field through the alias table, then
// through separator- and case-insensitive comparison with known fields.
func (kb *Base) Alias(key string) (string, bool) {
	if canonical, ok := kb.aliases[key]; ok {
		return canonical, true
	}

	canonical, ok := kb.normIndex[match.NormalizeIdent(key)]
	if !ok || canonical == key {
		return "", false
	}

	return canonical, true
}

// ExpectedType returns the declared type of a field's value.
func (kb *Base) ExpectedType(field string) FieldType {
	return kb.types[field]
}

// PlausibleUnder reports whether field is expected directly under parent.
// parent is the last key of the path ("" at document root). Unknown parents
// accept nothing.
func (kb *Base) PlausibleUnder(parent, field string) bool {
	children, ok := kb.contexts[parent]
	if !ok {
		return false
	}

	_, ok = children[field]

	return ok
}

// IsScalarList reports whether the items of field are plain strings
// (command, args).
func (kb *Base) IsScalarList(field string) bool {
	_, ok := kb.scalars[field]
	return ok
}

// IsFreeForm reports whether keys under parent are user data.
func (kb *Base) IsFreeForm(parent string) bool {
	_, ok := kb.freeForm[parent]
	return ok
}

// InFreeForm reports whether any key of path is a free-form parent.
func (kb *Base) InFreeForm(path []string) bool {
	return slices.ContainsFunc(path, kb.IsFreeForm)
}

// MetadataFields returns the fields that belong under metadata.
func (kb *Base) MetadataFields() []string {
	return kb.metadata
}

// PlacementFor returns the placement rules of kind.
func (kb *Base) PlacementFor(kind string) (Placement, bool) {
	p, ok := kb.byKind[kind]
	return p, ok
}
