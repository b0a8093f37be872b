// Package svgstyle resolves the CSS properties applying to the elements of
// a document, combining presentation attributes, <style> sheets and
// inline style attributes.
//
// Stylesheets are parsed with douceur, and selectors are evaluated with
// cascadia on an HTML mirror of the element tree.
package svgstyle

import (
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/svgo/internal/svglog"
	"github.com/benoitkugler/svgo/svgtree"
	"golang.org/x/net/html"
)

// Value is the computed value of one property.
type Value struct {
	// Value is empty for dynamic values.
	Value string
	// Dynamic is true when the value depends on the rendering context,
	// like a media query or a pseudo-class.
	Dynamic bool
	// Inherited is true when the value comes from an ancestor.
	Inherited bool
}

// Computed maps property names to their computed values.
type Computed map[string]Value

// Static returns the value of the property name, if it is
// present and does not depend on the rendering context.
func (c Computed) Static(name string) (string, bool) {
	v, ok := c[name]
	if !ok || v.Dynamic {
		return "", false
	}
	return v.Value, true
}

// Has returns true if the property is set, statically or not.
func (c Computed) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Rule is one selector of a style rule.
type Rule struct {
	// Selector is the selector with its pseudo-classes removed.
	Selector     string
	Specificity  Specificity
	Dynamic      bool
	Declarations []*css.Declaration
}

// Stylesheet stores the rules found in the <style> elements of a
// document, sorted by increasing specificity, and the elements they
// match.
type Stylesheet struct {
	Rules []Rule

	matches map[*svgtree.Element][]int // indices into Rules
}

// Collect parses every <style> element of the document and evaluates
// the selectors against the current tree.
func Collect(root *svgtree.Root) *Stylesheet {
	ss := &Stylesheet{matches: make(map[*svgtree.Element][]int)}
	svgtree.Visit(root, &svgtree.Visitor{
		Element: svgtree.Hooks[*svgtree.Element]{
			Enter: func(el *svgtree.Element, _ svgtree.Parent) svgtree.Action {
				if el.Name != "style" {
					return svgtree.Continue
				}
				if typ := el.Attrs.Value("type"); typ != "" && typ != "text/css" {
					return svgtree.Continue
				}
				media, hasMedia := el.Attrs.Get("media")
				dynamic := hasMedia && media != "all"
				for _, child := range el.Children() {
					switch child := child.(type) {
					case *svgtree.Text:
						ss.Rules = append(ss.Rules, parseStylesheet(child.Value, dynamic)...)
					case *svgtree.CData:
						ss.Rules = append(ss.Rules, parseStylesheet(child.Value, dynamic)...)
					}
				}
				return svgtree.Continue
			},
		},
	})
	slices.SortStableFunc(ss.Rules, func(a, b Rule) int { return a.Specificity.Compare(b.Specificity) })
	ss.match(root)
	return ss
}

func parseStylesheet(text string, dynamic bool) []Rule {
	sheet, err := parser.Parse(text)
	if err != nil {
		svglog.Logger().Warn("ignoring invalid stylesheet", "error", err)
		return nil
	}
	var rules []Rule
	for _, rule := range sheet.Rules {
		rules = appendRules(rules, rule, dynamic)
	}
	return rules
}

func appendRules(rules []Rule, rule *css.Rule, dynamic bool) []Rule {
	if rule.Kind == css.AtRule {
		if strings.HasSuffix(rule.Name, "keyframes") {
			return rules
		}
		// rules nested in @media or @supports only apply in some contexts
		for _, nested := range rule.Rules {
			rules = appendRules(rules, nested, true)
		}
		return rules
	}
	for _, sel := range rule.Selectors {
		stripped, hasPseudoClass := stripPseudoClasses(sel)
		rules = append(rules, Rule{
			Selector:     stripped,
			Specificity:  specificity(sel),
			Dynamic:      dynamic || hasPseudoClass,
			Declarations: rule.Declarations,
		})
	}
	return rules
}

// match evaluates the selectors on a mirror of the element tree.
// Selector names are case insensitive, so the mirror uses lower case
// element and attribute names.
func (ss *Stylesheet) match(root *svgtree.Root) {
	if len(ss.Rules) == 0 {
		return
	}
	doc := &html.Node{Type: html.DocumentNode}
	elements := make(map[*html.Node]*svgtree.Element)
	var build func(parent *html.Node, p svgtree.Parent)
	build = func(parent *html.Node, p svgtree.Parent) {
		for _, el := range svgtree.Elements(p) {
			n := &html.Node{Type: html.ElementNode, Data: strings.ToLower(el.Name)}
			for _, attr := range el.Attrs.All() {
				n.Attr = append(n.Attr, html.Attribute{Key: strings.ToLower(attr.Name), Val: attr.Value})
			}
			parent.AppendChild(n)
			elements[n] = el
			build(n, el)
		}
	}
	build(doc, root)

	for i, rule := range ss.Rules {
		sel, err := cascadia.Parse(rule.Selector)
		if err != nil {
			svglog.Logger().Debug("unsupported selector", "selector", rule.Selector, "error", err)
			continue
		}
		for _, n := range cascadia.QueryAll(doc, sel) {
			if el := elements[n]; el != nil {
				ss.matches[el] = append(ss.matches[el], i)
			}
		}
	}
}

// ParseDeclarations parses the content of a style attribute.
// Invalid content yields no declarations.
func ParseDeclarations(style string) []*css.Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	// the parser only completes a declaration on a semicolon
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		svglog.Logger().Debug("ignoring invalid style attribute", "style", style, "error", err)
		return nil
	}
	return decls
}

func (ss *Stylesheet) ownStyle(el *svgtree.Element) Computed {
	out := make(Computed)
	important := make(map[string]bool)
	for _, attr := range el.Attrs.All() {
		if IsPresentation(attr.Name) {
			out[attr.Name] = Value{Value: attr.Value}
			important[attr.Name] = false
		}
	}
	apply := func(decls []*css.Declaration, dynamic bool) {
		for _, decl := range decls {
			current, ok := out[decl.Property]
			if ok && current.Dynamic {
				continue
			}
			if dynamic {
				out[decl.Property] = Value{Dynamic: true}
				continue
			}
			wasImportant, seen := important[decl.Property]
			if !ok || decl.Important || (seen && !wasImportant) {
				out[decl.Property] = Value{Value: decl.Value}
				important[decl.Property] = decl.Important
			}
		}
	}
	for _, i := range ss.matches[el] {
		apply(ss.Rules[i].Declarations, ss.Rules[i].Dynamic)
	}
	if style, ok := el.Attrs.Get("style"); ok {
		apply(ParseDeclarations(style), false)
	}
	return out
}

// Compute returns the properties applying to el : its own presentation
// attributes, then the matching rules by increasing specificity, then
// its style attribute, "!important" declarations taking precedence.
// Inheritable properties not set on el are inherited from its ancestors.
func (ss *Stylesheet) Compute(el *svgtree.Element) Computed {
	out := ss.ownStyle(el)
	for p := el.Parent(); p != nil; p = p.Parent() {
		parent, ok := p.(*svgtree.Element)
		if !ok {
			break
		}
		for name, value := range ss.ownStyle(parent) {
			if out.Has(name) || !IsInheritable(name) || IsNonInheritableGroupAttr(name) {
				continue
			}
			value.Inherited = true
			out[name] = value
		}
	}
	return out
}
