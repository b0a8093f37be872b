package svgtree

import "slices"

// Attr is one attribute of an element.
type Attr struct {
	Name  string
	Value string
	// Valueless is true for a bare attribute, written without "=".
	Valueless bool
}

// Attributes is an ordered list of attributes with unique names.
// The zero value is an empty list, ready to use.
type Attributes struct {
	list []Attr
}

func (as *Attributes) index(name string) int {
	for i, a := range as.list {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the attribute name, and whether it is present.
func (as *Attributes) Get(name string) (string, bool) {
	if i := as.index(name); i != -1 {
		return as.list[i].Value, true
	}
	return "", false
}

// Value returns the value of name, or "" if absent.
func (as *Attributes) Value(name string) string {
	v, _ := as.Get(name)
	return v
}

// Has returns true if the attribute name is present.
func (as *Attributes) Has(name string) bool { return as.index(name) != -1 }

// Set updates the value of name in place, or appends a new attribute.
func (as *Attributes) Set(name, value string) {
	as.SetAttr(Attr{Name: name, Value: value})
}

// SetAttr is like Set but also stores the valueless flag.
func (as *Attributes) SetAttr(a Attr) {
	if i := as.index(a.Name); i != -1 {
		as.list[i] = a
		return
	}
	as.list = append(as.list, a)
}

// Delete removes name, returning true if it was present.
func (as *Attributes) Delete(name string) bool {
	i := as.index(name)
	if i == -1 {
		return false
	}
	as.list = slices.Delete(as.list, i, i+1)
	return true
}

// Len returns the number of attributes.
func (as *Attributes) Len() int { return len(as.list) }

// All returns a copy of the attributes, in insertion order,
// so that callers may modify the list while ranging over it.
func (as *Attributes) All() []Attr { return slices.Clone(as.list) }

// Clone returns an independent copy.
func (as *Attributes) Clone() Attributes { return Attributes{list: slices.Clone(as.list)} }

// Equal returns true if both lists hold the same names and values,
// regardless of order.
func (as *Attributes) Equal(other *Attributes) bool {
	if len(as.list) != len(other.list) {
		return false
	}
	for _, a := range as.list {
		v, ok := other.Get(a.Name)
		if !ok || v != a.Value {
			return false
		}
	}
	return true
}
