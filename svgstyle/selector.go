package svgstyle

import (
	"cmp"
	"strings"
)

// Specificity is the weight of a selector : the number of id selectors,
// of class, attribute and pseudo-class selectors, and of type selectors.
type Specificity [3]int

// Compare returns -1, 0 or 1, comparing component by component.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		if c := cmp.Compare(s[i], other[i]); c != 0 {
			return c
		}
	}
	return 0
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '-' || c >= 0x80
}

func isIdentChar(c byte) bool { return isIdentStart(c) || '0' <= c && c <= '9' }

// skipIdent returns the index after the identifier starting at i
func skipIdent(s string, i int) int {
	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		case isIdentChar(s[i]):
			i++
		default:
			return i
		}
	}
	return i
}

// skipGroup returns the index after the group opened at i,
// or i if s[i] is not open
func skipGroup(s string, i int, open, close byte) int {
	if i >= len(s) || s[i] != open {
		return i
	}
	depth := 0
	for ; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

func specificity(sel string) Specificity {
	var s Specificity
	for i := 0; i < len(sel); {
		c := sel[i]
		switch {
		case c == '#':
			s[0]++
			i = skipIdent(sel, i+1)
		case c == '.':
			s[1]++
			i = skipIdent(sel, i+1)
		case c == '[':
			s[1]++
			i = skipGroup(sel, i, '[', ']')
		case c == ':' && i+1 < len(sel) && sel[i+1] == ':': // pseudo-element
			s[2]++
			i = skipGroup(sel, skipIdent(sel, i+2), '(', ')')
		case c == ':':
			s[1]++
			i = skipGroup(sel, skipIdent(sel, i+1), '(', ')')
		case isIdentStart(c):
			s[2]++
			i = skipIdent(sel, i)
		default:
			i++
		}
	}
	return s
}

// stripPseudoClasses removes the pseudo-classes of sel, which are not
// evaluated statically. It returns true if at least one was found.
func stripPseudoClasses(sel string) (string, bool) {
	var (
		sb    strings.Builder
		found bool
	)
	for i := 0; i < len(sel); {
		switch {
		case sel[i] == '\\' && i+1 < len(sel):
			sb.WriteString(sel[i : i+2])
			i += 2
		case sel[i] == '[':
			j := skipGroup(sel, i, '[', ']')
			sb.WriteString(sel[i:j])
			i = j
		case sel[i] == ':' && i+1 < len(sel) && sel[i+1] == ':':
			j := skipIdent(sel, i+2)
			sb.WriteString(sel[i:j])
			i = j
		case sel[i] == ':':
			found = true
			i = skipGroup(sel, skipIdent(sel, i+1), '(', ')')
		default:
			sb.WriteByte(sel[i])
			i++
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" || strings.ContainsAny(out[len(out)-1:], ">+~") {
		out += "*"
	}
	return out, found
}
