package svgtree

import "slices"

// Action is returned by an enter callback to drive the traversal.
type Action uint8

const (
	// Continue visits the children, then calls the exit callback.
	Continue Action = iota
	// SkipChildren neither visits the children nor calls the exit callback.
	SkipChildren
)

// Hooks are the callbacks of a visitor for one kind of node.
// Both are optional.
type Hooks[N Node] struct {
	Enter func(node N, parent Parent) Action
	Exit  func(node N, parent Parent)
}

func (h Hooks[N]) enter(n N, parent Parent) Action {
	if h.Enter == nil {
		return Continue
	}
	return h.Enter(n, parent)
}

func (h Hooks[N]) exit(n N, parent Parent) {
	if h.Exit != nil {
		h.Exit(n, parent)
	}
}

// Visitor groups the callbacks triggered by Visit, per node kind.
type Visitor struct {
	Root        Hooks[*Root]
	Element     Hooks[*Element]
	Text        Hooks[*Text]
	CData       Hooks[*CData]
	Comment     Hooks[*Comment]
	Instruction Hooks[*Instruction]
	Doctype     Hooks[*Doctype]
}

// Visit walks the tree starting at node, calling enter callbacks in
// pre-order and exit callbacks in post-order, siblings left to right.
//
// Callbacks may detach nodes : the children of a parent are iterated over
// a snapshot of its child list, and the subtree of an element is skipped
// when the element was removed from its parent by its enter callback.
func Visit(node Node, v *Visitor) {
	visit(node, v, nil)
}

func visit(node Node, v *Visitor, parent Parent) {
	switch n := node.(type) {
	case *Root:
		if v.Root.enter(n, parent) == SkipChildren {
			return
		}
		for _, child := range slices.Clone(n.children) {
			visit(child, v, n)
		}
		v.Root.exit(n, parent)
	case *Element:
		if v.Element.enter(n, parent) == SkipChildren {
			return
		}
		if parent == nil || n.Parent() == parent {
			for _, child := range slices.Clone(n.children) {
				visit(child, v, n)
			}
		}
		v.Element.exit(n, parent)
	case *Text:
		if v.Text.enter(n, parent) == Continue {
			v.Text.exit(n, parent)
		}
	case *CData:
		if v.CData.enter(n, parent) == Continue {
			v.CData.exit(n, parent)
		}
	case *Comment:
		if v.Comment.enter(n, parent) == Continue {
			v.Comment.exit(n, parent)
		}
	case *Instruction:
		if v.Instruction.enter(n, parent) == Continue {
			v.Instruction.exit(n, parent)
		}
	case *Doctype:
		if v.Doctype.enter(n, parent) == Continue {
			v.Doctype.exit(n, parent)
		}
	}
}
