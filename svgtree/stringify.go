package svgtree

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Indent is the string used for one level of indentation in pretty mode.
// The zero value means four spaces.
type Indent struct {
	value string
	set   bool
}

// IndentWidth returns an indentation of n spaces, or a tab if n is negative.
func IndentWidth(n int) Indent {
	if n < 0 {
		return Indent{value: "\t", set: true}
	}
	return Indent{value: strings.Repeat(" ", n), set: true}
}

// IndentString uses s as literal indentation.
func IndentString(s string) Indent { return Indent{value: s, set: true} }

func (ind Indent) String() string {
	if !ind.set {
		return "    "
	}
	return ind.value
}

// UnmarshalYAML accepts an integer width or a literal string.
func (ind *Indent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!int" {
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return err
		}
		*ind = IndentWidth(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*ind = IndentString(s)
	return nil
}

// StringifyOptions controls the text output of a tree.
// The zero value produces compact output.
type StringifyOptions struct {
	Indent       Indent `yaml:"indent"`
	Pretty       bool   `yaml:"pretty"`
	EOL          string `yaml:"eol"` // "lf" (default) or "crlf"
	FinalNewline bool   `yaml:"finalNewline"`
	// UseShortTags writes childless elements as <a/> instead of <a></a>.
	// Defaults to true.
	UseShortTags *bool `yaml:"useShortTags"`
}

var (
	textEscaper  = strings.NewReplacer("&", "&amp;", "'", "&apos;", `"`, "&quot;", ">", "&gt;", "<", "&lt;")
	valueEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", ">", "&gt;", "<", "&lt;")
)

// delimiters, with the end of line appended in pretty mode
type delimiters struct {
	doctypeEnd, procInstEnd, commentEnd, cdataEnd string
	tagShortEnd, tagOpenEnd, tagCloseEnd, textEnd string
}

type stringifier struct {
	delimiters
	indent      string
	pretty      bool
	shortTags   bool
	level       int
	textContext *Element
	sb          strings.Builder
}

// Stringify serializes the tree.
func Stringify(root *Root, opts StringifyOptions) string {
	eol := "\n"
	if opts.EOL == "crlf" {
		eol = "\r\n"
	}
	s := stringifier{
		indent:    opts.Indent.String(),
		pretty:    opts.Pretty,
		shortTags: opts.UseShortTags == nil || *opts.UseShortTags,
		delimiters: delimiters{
			doctypeEnd: ">", procInstEnd: "?>", commentEnd: "-->", cdataEnd: "]]>",
			tagShortEnd: "/>", tagOpenEnd: ">", tagCloseEnd: ">",
		},
	}
	if opts.Pretty {
		d := &s.delimiters
		for _, field := range []*string{
			&d.doctypeEnd, &d.procInstEnd, &d.commentEnd, &d.cdataEnd,
			&d.tagShortEnd, &d.tagOpenEnd, &d.tagCloseEnd, &d.textEnd,
		} {
			*field += eol
		}
	}
	s.children(root)
	out := s.sb.String()
	if opts.FinalNewline && len(out) > 0 && !strings.HasSuffix(out, "\n") {
		out += eol
	}
	return out
}

func (s *stringifier) createIndent() string {
	if s.pretty && s.textContext == nil {
		return strings.Repeat(s.indent, s.level-1)
	}
	return ""
}

func (s *stringifier) children(p Parent) {
	s.level++
	for _, child := range p.Children() {
		switch n := child.(type) {
		case *Element:
			s.element(n)
		case *Text:
			s.sb.WriteString(s.createIndent())
			s.sb.WriteString(textEscaper.Replace(n.Value))
			if s.textContext == nil {
				s.sb.WriteString(s.textEnd)
			}
		case *Doctype:
			s.sb.WriteString("<!DOCTYPE" + n.Value + s.doctypeEnd)
		case *Instruction:
			s.sb.WriteString(s.createIndent() + "<?" + n.Name + " " + n.Value + s.procInstEnd)
		case *Comment:
			s.sb.WriteString(s.createIndent() + "<!--" + n.Value + s.commentEnd)
		case *CData:
			s.sb.WriteString(s.createIndent() + "<![CDATA[" + n.Value + s.cdataEnd)
		}
	}
	s.level--
}

func (s *stringifier) attributes(el *Element) {
	for _, a := range el.Attrs.list {
		s.sb.WriteByte(' ')
		s.sb.WriteString(a.Name)
		if a.Valueless {
			continue
		}
		s.sb.WriteString(`="`)
		s.sb.WriteString(valueEscaper.Replace(a.Value))
		s.sb.WriteByte('"')
	}
}

func (s *stringifier) element(el *Element) {
	if len(el.children) == 0 {
		s.sb.WriteString(s.createIndent() + "<" + el.Name)
		s.attributes(el)
		if s.shortTags {
			s.sb.WriteString(s.tagShortEnd)
		} else {
			s.sb.WriteString(s.tagOpenEnd + "</" + el.Name + s.tagCloseEnd)
		}
		return
	}

	tagOpenEnd, tagCloseEnd := s.tagOpenEnd, s.tagCloseEnd
	openIndent, closeIndent := s.createIndent(), s.createIndent()
	if s.textContext != nil {
		tagOpenEnd, tagCloseEnd = ">", ">"
		openIndent = ""
	} else if textElems[el.Name] {
		tagOpenEnd = ">"
		closeIndent = ""
		s.textContext = el
	}

	s.sb.WriteString(openIndent + "<" + el.Name)
	s.attributes(el)
	s.sb.WriteString(tagOpenEnd)
	s.children(el)
	if s.textContext == el {
		s.textContext = nil
	}
	s.sb.WriteString(closeIndent + "</" + el.Name + tagCloseEnd)
}
