// Package ir defines photon's intermediate-representation node catalog: a
// tagged union of node kinds (spec.md §3/§9's "dynamic typing -> sum
// types" note) realized as one Go interface implemented by one struct per
// kind, each embedding a common Base that carries identity, type,
// namespace, and the backend-facing imports/links sets.
package ir

// Mode controls whether emission of a node introduces a new binding
// (declaration) or merely references one (expression).
type Mode string

const (
	ModeDeclaration Mode = "declaration"
	ModeExpression  Mode = "expression"
)

// Node is the interface every IR kind satisfies. Kind-specific children
// (Args, Block, Params, ...) are reached by type-switching or
// type-asserting to the concrete struct; Node only exposes the fields
// every kind shares and that the scope manager and loader need uniformly.
type Node interface {
	Index() string
	Type() *Type
	SetType(*Type)
	Namespace() string
	SetNamespace(string)
	Imports() map[string]struct{}
	Links() map[string]struct{}
	Mode() Mode
	Kind() string
}

// Base is embedded by every concrete node type. It is not itself a Node;
// embedding it plus a Kind string gives each concrete type Node's common
// methods for free.
type Base struct {
	KindName   string
	IndexValue string
	TypeValue  *Type
	NamespaceV string
	ImportSet  map[string]struct{}
	LinkSet    map[string]struct{}
	ModeValue  Mode

	nameHint string
	attrHint string
}

func newBase(kind string) Base {
	return Base{
		KindName:  kind,
		TypeValue: Unknown(),
		ImportSet: map[string]struct{}{},
		LinkSet:   map[string]struct{}{},
		ModeValue: ModeExpression,
	}
}

func (b *Base) Kind() string      { return b.KindName }
func (b *Base) Index() string     { return b.IndexValue }
func (b *Base) Type() *Type       { return b.TypeValue }
func (b *Base) SetType(t *Type)   { b.TypeValue = t }
func (b *Base) Namespace() string { return b.NamespaceV }
func (b *Base) SetNamespace(ns string) {
	b.NamespaceV = ns
	b.IndexValue = MakeIndex(ns, b.nameHint, b.attrHint)
}
func (b *Base) Imports() map[string]struct{} { return b.ImportSet }
func (b *Base) Links() map[string]struct{}   { return b.LinkSet }
func (b *Base) Mode() Mode                   { return b.ModeValue }

// nameHint/attrHint let SetNamespace recompute Index (namespace, name[,
// attribute]) without every call site having to know the derivation; set
// once by the constructor that knows the node's name.
func (b *Base) setIdentity(ns, name, attr string) {
	b.NamespaceV = ns
	b.nameHint = name
	b.attrHint = attr
	b.IndexValue = MakeIndex(ns, name, attr)
}

// MakeIndex derives the canonical scope key for (namespace, name[,
// attribute]) per spec.md's Index/Namespace glossary entries.
func MakeIndex(namespace, name, attribute string) string {
	if name == "" {
		return ""
	}
	idx := name
	if namespace != "" {
		idx = namespace + "." + name
	}
	if attribute != "" {
		idx = idx + "#" + attribute
	}
	return idx
}
