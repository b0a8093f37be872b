package svgplugins

import (
	"regexp"
	"strings"

	"github.com/benoitkugler/svgo/svgtree"
)

var (
	regReferencesURL   = regexp.MustCompile(`\burl\(["']?#(.+?)["']?\)`)
	regReferencesHref  = regexp.MustCompile(`^#(.+)$`)
	regReferencesBegin = regexp.MustCompile(`(\D+)\.`)
)

const idChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// nextID increments the digits of id, in base len(idChars),
// starting from "a".
func nextID(id []int) []int {
	if id == nil {
		return []int{0}
	}
	id[len(id)-1]++
	for i := len(id) - 1; i > 0; i-- {
		if id[i] == len(idChars) {
			id[i] = 0
			id[i-1]++
		}
	}
	if id[0] == len(idChars) {
		id[0] = 0
		id = append([]int{0}, id...)
	}
	return id
}

func idString(id []int) string {
	var sb strings.Builder
	for _, i := range id {
		sb.WriteByte(idChars[i])
	}
	return sb.String()
}

// idReference is an attribute pointing to an id.
type idReference struct {
	element *svgtree.Element
	name    string
	value   string
}

// referencedID returns the id the attribute points to, if any.
func referencedID(name, value string) (string, bool) {
	var id string
	if referencesProps[name] {
		if match := regReferencesURL.FindStringSubmatch(value); match != nil {
			id = match[1]
		}
	}
	if name == "href" || strings.HasSuffix(name, ":href") {
		if match := regReferencesHref.FindStringSubmatch(value); match != nil {
			id = match[1]
		}
	}
	if name == "begin" {
		if match := regReferencesBegin.FindStringSubmatch(value); match != nil {
			id = match[1]
		}
	}
	return id, id != ""
}

// hasOnlyDefs returns true if all the children of el are <defs>.
func hasOnlyDefs(el *svgtree.Element) bool {
	for _, child := range el.Children() {
		if child, ok := child.(*svgtree.Element); !ok || child.Name != "defs" {
			return false
		}
	}
	return true
}

var cleanupIds = Plugin{
	Name:        "cleanupIds",
	Description: "removes unused IDs and minifies used",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		remove := params.Bool("remove", true)
		minify := params.Bool("minify", true)
		preserve := set(params.Strings("preserve")...)
		preservePrefixes := params.Strings("preservePrefixes")
		force := params.Bool("force", false)

		isPreserved := func(id string) bool {
			if preserve[id] {
				return true
			}
			for _, prefix := range preservePrefixes {
				if strings.HasPrefix(id, prefix) {
					return true
				}
			}
			return false
		}

		var (
			nodeByID   = make(map[string]*svgtree.Element)
			ids        []string // in document order
			references = make(map[string][]idReference)
			referenced []string // in document order
		)
		deoptimized := false
		return &svgtree.Visitor{
			Element: svgtree.Hooks[*svgtree.Element]{
				Enter: func(el *svgtree.Element, _ svgtree.Parent) svgtree.Action {
					if !force {
						// styles and scripts may use any id
						if (el.Name == "style" || el.Name == "script") && len(el.Children()) > 0 {
							deoptimized = true
							return svgtree.Continue
						}
						// a sprite of definitions is referenced from the outside
						if el.Name == "svg" && hasOnlyDefs(el) {
							return svgtree.SkipChildren
						}
					}
					for _, attr := range el.Attrs.All() {
						if attr.Name == "id" {
							if _, seen := nodeByID[attr.Value]; seen {
								el.Attrs.Delete("id")
							} else {
								nodeByID[attr.Value] = el
								ids = append(ids, attr.Value)
							}
							continue
						}
						if id, ok := referencedID(attr.Name, attr.Value); ok {
							if _, seen := references[id]; !seen {
								referenced = append(referenced, id)
							}
							references[id] = append(references[id], idReference{el, attr.Name, attr.Value})
						}
					}
					return svgtree.Continue
				},
			},
			Root: svgtree.Hooks[*svgtree.Root]{
				Exit: func(*svgtree.Root, svgtree.Parent) {
					if deoptimized {
						return
					}
					var current []int
					for _, id := range referenced {
						el := nodeByID[id]
						if el == nil {
							continue
						}
						if minify && !isPreserved(id) {
							var minified string
							for {
								current = nextID(current)
								if minified = idString(current); !isPreserved(minified) {
									break
								}
							}
							el.Attrs.Set("id", minified)
							for _, ref := range references[id] {
								if strings.Contains(ref.value, "#") {
									ref.element.Attrs.Set(ref.name, strings.Replace(ref.value, "#"+id, "#"+minified, 1))
								} else {
									ref.element.Attrs.Set(ref.name, strings.Replace(ref.value, id+".", minified+".", 1))
								}
							}
						}
						delete(nodeByID, id)
					}
					if !remove {
						return
					}
					for _, id := range ids {
						if el := nodeByID[id]; el != nil && !isPreserved(id) {
							el.Attrs.Delete("id")
						}
					}
				},
			},
		}, nil
	},
}
