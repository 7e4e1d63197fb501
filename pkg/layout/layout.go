package layout

// Layout objects describe the presentational arrangement of a form: nested
// container divisions, references to individual fields, and raw passthrough
// mappings. The tree is declared by the form owner and flattened by Parse
// into a uniform JSON-friendly structure for remote renderers.

// Node is one element of a layout tree.
type Node interface {
	layoutNode()
}

// Layout is the root container. It carries a type tag only, no attributes.
type Layout struct {
	Children []Node
}

// Div is a grouping container. TypeName customises the emitted type tag
// ("row", "column", ...); when empty the node is emitted as a plain "div".
// FlatAttrs holds extra attributes in XML-attribute syntax, e.g.
// `data-grid="true" aria-label="Address"`.
type Div struct {
	TypeName  string
	CSSClass  string
	FlatAttrs string
	Children  []Node
}

// FieldRef is a leaf node referencing exactly one form field by name. Attrs
// carries widget attributes for the remote renderer. A FieldRef never has
// children.
type FieldRef struct {
	Names []string
	Attrs map[string]string
}

// Raw is an opaque mapping merged verbatim into the parsed node.
type Raw map[string]any

func (*Layout) layoutNode()   {}
func (*Div) layoutNode()      {}
func (*FieldRef) layoutNode() {}
func (Raw) layoutNode()       {}

// Children lists the nested nodes of container variants. Field references and
// raw mappings have none.
func children(node Node) []Node {
	switch n := node.(type) {
	case *Layout:
		return n.Children
	case *Div:
		return n.Children
	default:
		return nil
	}
}
