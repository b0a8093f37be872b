// Package svgtree implements the in-memory representation of an SVG
// document, together with the traversal engine used by the optimization
// plugins, and the conversion from and to text.
package svgtree

import "slices"

// Node is one of *Root, *Element, *Text, *CData, *Comment,
// *Instruction or *Doctype.
type Node interface {
	// Parent returns the node whose child list currently contains
	// this node, or nil for a root or a detached node.
	Parent() Parent
	setParent(Parent)
}

// Parent is a node owning children : *Root or *Element.
type Parent interface {
	Node
	// Children returns the current child list. It must not be modified
	// directly : use the ownership methods instead.
	Children() []Node
	AppendChild(n Node)
	InsertChild(index int, n Node)
	RemoveChild(n Node) bool
	ReplaceChildren(nodes ...Node)
	SortChildren(cmp func(a, b Node) int)
}

// link is the parent back-reference. It is only written by
// the ownership methods of container.
type link struct {
	parent Parent
}

func (l *link) Parent() Parent     { return l.parent }
func (l *link) setParent(p Parent) { l.parent = p }

// container owns an ordered list of children.
type container struct {
	self     Parent
	children []Node
}

func (c *container) Children() []Node { return c.children }

// AppendChild adds n at the end of the child list.
// It panics if n already belongs to a parent.
func (c *container) AppendChild(n Node) {
	c.InsertChild(len(c.children), n)
}

// InsertChild inserts n at position index (clamped to the list bounds).
// It panics if n already belongs to a parent.
func (c *container) InsertChild(index int, n Node) {
	if n.Parent() != nil {
		panic("svgtree: node already has a parent")
	}
	if index < 0 {
		index = 0
	}
	if index > len(c.children) {
		index = len(c.children)
	}
	c.children = slices.Insert(c.children, index, n)
	n.setParent(c.self)
}

// RemoveChild removes n, compared by identity, and clears its parent
// linkage. It returns false if n was not a child.
func (c *container) RemoveChild(n Node) bool {
	i := slices.Index(c.children, n)
	if i == -1 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	n.setParent(nil)
	return true
}

// ReplaceChildren detaches every current child then takes ownership of
// nodes, removing them from their previous parent first.
func (c *container) ReplaceChildren(nodes ...Node) {
	for _, child := range c.children {
		child.setParent(nil)
	}
	c.children = nil
	for _, n := range nodes {
		if p := n.Parent(); p != nil {
			p.RemoveChild(n)
		}
		c.AppendChild(n)
	}
}

// SortChildren reorders the children with a stable sort.
func (c *container) SortChildren(cmp func(a, b Node) int) {
	slices.SortStableFunc(c.children, cmp)
}

// Root is the top level node of a document.
type Root struct {
	container
}

// NewRoot returns an empty document.
func NewRoot() *Root {
	r := &Root{}
	r.self = r
	return r
}

func (*Root) Parent() Parent   { return nil }
func (*Root) setParent(Parent) {}

// Element is a markup element, like <path d="..."/>.
type Element struct {
	link
	container
	Name  string
	Attrs Attributes
}

// NewElement returns a detached element with the given attributes.
func NewElement(name string, attrs ...Attr) *Element {
	el := &Element{Name: name}
	el.self = el
	for _, a := range attrs {
		el.Attrs.SetAttr(a)
	}
	return el
}

// Text is a character data run.
type Text struct {
	link
	Value string
}

// CData is a <![CDATA[...]]> section.
type CData struct {
	link
	Value string
}

// Comment is a <!-- --> comment, without its delimiters.
type Comment struct {
	link
	Value string
}

// Instruction is a processing instruction, like <?xml version="1.0"?>.
type Instruction struct {
	link
	Name  string
	Value string
}

// Doctype stores the raw declaration following <!DOCTYPE.
type Doctype struct {
	link
	Value string
}

// Detach removes node from the child list of parent, by identity.
// Nothing happens if node is not a child of parent.
func Detach(node Node, parent Parent) {
	if parent == nil {
		return
	}
	parent.RemoveChild(node)
}

// Elements returns the element children of p.
func Elements(p Parent) []*Element {
	var out []*Element
	for _, c := range p.Children() {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}
