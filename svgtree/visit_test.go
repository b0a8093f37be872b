package svgtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() *Root {
	root := NewRoot()
	svg := NewElement("svg")
	root.AppendChild(svg)
	g := NewElement("g", Attr{Name: "id", Value: "g"})
	svg.AppendChild(g)
	g.AppendChild(NewElement("rect"))
	g.AppendChild(NewElement("circle"))
	svg.AppendChild(NewElement("path"))
	return root
}

func TestVisitOrder(t *testing.T) {
	var events []string
	Visit(buildTree(), &Visitor{
		Element: Hooks[*Element]{
			Enter: func(n *Element, _ Parent) Action {
				events = append(events, "enter "+n.Name)
				return Continue
			},
			Exit: func(n *Element, _ Parent) {
				events = append(events, "exit "+n.Name)
			},
		},
	})
	assert.Equal(t, []string{
		"enter svg", "enter g", "enter rect", "exit rect", "enter circle", "exit circle",
		"exit g", "enter path", "exit path", "exit svg",
	}, events)
}

func TestVisitSkipChildren(t *testing.T) {
	var events []string
	Visit(buildTree(), &Visitor{
		Element: Hooks[*Element]{
			Enter: func(n *Element, _ Parent) Action {
				events = append(events, "enter "+n.Name)
				if n.Name == "g" {
					return SkipChildren
				}
				return Continue
			},
			Exit: func(n *Element, _ Parent) {
				events = append(events, "exit "+n.Name)
			},
		},
	})
	assert.Equal(t, []string{"enter svg", "enter g", "enter path", "exit path", "exit svg"}, events)
}

func TestVisitDetach(t *testing.T) {
	root := buildTree()
	var entered []string
	Visit(root, &Visitor{
		Element: Hooks[*Element]{
			Enter: func(n *Element, parent Parent) Action {
				entered = append(entered, n.Name)
				if n.Name == "g" {
					Detach(n, parent)
				}
				return Continue
			},
		},
	})
	// the subtree of the detached group is not visited, its siblings are
	assert.Equal(t, []string{"svg", "g", "path"}, entered)

	svg := root.Children()[0].(*Element)
	require.Len(t, svg.Children(), 1)
	assert.Equal(t, "path", svg.Children()[0].(*Element).Name)
}

func TestVisitDetachSiblings(t *testing.T) {
	root := buildTree()
	g := root.Children()[0].(*Element).Children()[0].(*Element)
	var entered []string
	Visit(g, &Visitor{
		Element: Hooks[*Element]{
			Enter: func(n *Element, parent Parent) Action {
				entered = append(entered, n.Name)
				if n.Name == "rect" || n.Name == "circle" {
					Detach(n, parent)
				}
				return Continue
			},
		},
	})
	assert.Equal(t, []string{"g", "rect", "circle"}, entered)
	assert.Empty(t, g.Children())
}

func TestDetachByIdentity(t *testing.T) {
	root := NewRoot()
	a, b := NewElement("path"), NewElement("path")
	root.AppendChild(a)
	root.AppendChild(b)

	Detach(b, root)
	require.Len(t, root.Children(), 1)
	assert.Same(t, a, root.Children()[0])
	assert.Nil(t, b.Parent())
	assert.Equal(t, Parent(root), a.Parent())

	// no-op on a node which is not a child
	Detach(b, root)
	assert.Len(t, root.Children(), 1)
}

func TestOwnership(t *testing.T) {
	root := buildTree()
	svg := root.Children()[0].(*Element)
	path := svg.Children()[1].(*Element)

	assert.Panics(t, func() { root.AppendChild(path) })

	defs := NewElement("defs")
	svg.InsertChild(0, defs)
	defs.ReplaceChildren(path)
	assert.Equal(t, Parent(defs), path.Parent())
	assert.Len(t, svg.Children(), 2)
	assert.Equal(t, "defs", svg.Children()[0].(*Element).Name)
}

func TestAttributes(t *testing.T) {
	var as Attributes
	as.Set("b", "1")
	as.Set("a", "2")
	as.Set("b", "3")
	assert.Equal(t, []Attr{{Name: "b", Value: "3"}, {Name: "a", Value: "2"}}, as.All())

	for _, a := range as.All() {
		as.Delete(a.Name)
	}
	assert.Equal(t, 0, as.Len())
	_, ok := as.Get("a")
	assert.False(t, ok)
}
