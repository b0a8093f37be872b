package svgtree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"golang.org/x/net/html/charset"
)

// textElems keep their text content verbatim, whitespace included.
var textElems = map[string]bool{
	"a": true, "altGlyph": true, "altGlyphDef": true, "altGlyphItem": true,
	"glyph": true, "glyphRef": true, "text": true, "textPath": true,
	"tref": true, "tspan": true, "pre": true, "title": true,
}

// IsTextElement returns true for the elements whose text content is
// significant, including whitespace.
func IsTextElement(name string) bool { return textElems[name] }

var (
	xmlDeclEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding\s*=\s*["']([^"']+)["']`)
	doctypeEntity   = regexp.MustCompile(`<!ENTITY\s+(\S+)\s+(?:'([^']*)'|"([^"]*)")\s*>`)
)

// ParseError is returned for malformed markup.
type ParseError struct {
	Message string
	Line    int // 1-based
	Column  int // 1-based
	Path    string
	Source  string
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", path, e.Line, e.Column, e.Message)
}

// Snippet renders the error with the surrounding source lines and a
// caret under the offending column.
func (e *ParseError) Snippet() string {
	lines := strings.Split(strings.ReplaceAll(e.Source, "\r\n", "\n"), "\n")
	start := max(e.Line-3, 0)
	end := min(e.Line+2, len(lines))
	width := len(strconv.Itoa(end))

	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n\n")
	for i := start; i < end; i++ {
		number := i + 1
		gutter := fmt.Sprintf(" %*d | ", width, number)
		if number != e.Line {
			fmt.Fprintf(&sb, " %s%s\n", gutter, lines[i])
			continue
		}
		fmt.Fprintf(&sb, ">%s%s\n", gutter, lines[i])
		// keep tabs so that the caret lines up
		prefix := lines[i][:min(max(e.Column-1, 0), len(lines[i]))]
		spacing := strings.Map(func(r rune) rune {
			if r == '\t' {
				return r
			}
			return ' '
		}, prefix)
		fmt.Fprintf(&sb, " %s|%s ^\n", strings.Repeat(" ", len(gutter)-2), spacing)
	}
	return sb.String()
}

// decodeCharset transcodes documents declaring a legacy encoding
// in their XML declaration.
func decodeCharset(data string) (string, error) {
	m := xmlDeclEncoding.FindStringSubmatch(data)
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(strings.TrimSpace(m[1]))
	if label == "utf-8" || label == "utf8" {
		return data, nil
	}
	r, err := charset.NewReaderLabel(label, strings.NewReader(data))
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parser builds a tree from the lexer tokens.
type parser struct {
	src      string
	path     string
	root     *Root
	stack    []Parent
	entities map[string]string

	current *Element // element whose start tag is being read
	pi      *Instruction
	piAttrs []string
}

func (p *parser) top() Parent { return p.stack[len(p.stack)-1] }

func (p *parser) errorAt(offset int, format string, args ...any) error {
	line, col := 1, 1
	for i := 0; i < offset && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  col,
		Path:    p.path,
		Source:  p.src,
	}
}

// Parse builds the tree of the given document. path is only used
// in error messages and may be empty.
//
// Unclosed elements at the end of the input are accepted; other
// markup errors are reported as *ParseError.
func Parse(data, path string) (*Root, error) {
	data, err := decodeCharset(data)
	if err != nil {
		return nil, fmt.Errorf("svgtree: unsupported encoding: %w", err)
	}
	p := parser{
		src:      data,
		path:     path,
		root:     NewRoot(),
		entities: map[string]string{},
	}
	p.stack = []Parent{p.root}

	in := parse.NewInputString(data)
	lexer := xml.NewLexer(in)
	for {
		tt, raw := lexer.Next()
		start := in.Offset() - len(raw)
		switch tt {
		case xml.ErrorToken:
			if err := lexer.Err(); err != io.EOF {
				return nil, p.errorAt(in.Offset(), "%s", err)
			}
			// unclosed elements are tolerated
			return p.root, nil
		case xml.CommentToken:
			value := trimDelims(raw, "<!--", "-->")
			p.top().AppendChild(&Comment{Value: strings.TrimSpace(value)})
		case xml.DOCTYPEToken:
			value := trimDelims(raw, "<!DOCTYPE", ">")
			for _, m := range doctypeEntity.FindAllStringSubmatch(value, -1) {
				p.entities[m[1]] = m[2] + m[3]
			}
			p.top().AppendChild(&Doctype{Value: value})
		case xml.CDATAToken:
			p.top().AppendChild(&CData{Value: trimDelims(raw, "<![CDATA[", "]]>")})
		case xml.StartTagPIToken:
			p.pi = &Instruction{Name: string(lexer.Text())}
			p.piAttrs = p.piAttrs[:0]
		case xml.StartTagToken:
			p.current = NewElement(string(lexer.Text()))
		case xml.AttributeToken:
			name := string(lexer.Text())
			val := lexer.AttrVal()
			if p.pi != nil {
				p.piAttrs = append(p.piAttrs, name+"="+string(val))
				continue
			}
			if p.current == nil {
				continue
			}
			if len(val) == 0 {
				p.current.Attrs.SetAttr(Attr{Name: name, Valueless: true})
				continue
			}
			p.current.Attrs.Set(name, p.decodeEntities(unquote(val)))
		case xml.StartTagClosePIToken:
			if p.pi != nil {
				p.pi.Value = strings.Join(p.piAttrs, " ")
				p.top().AppendChild(p.pi)
				p.pi = nil
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if p.current == nil {
				continue
			}
			p.top().AppendChild(p.current)
			if tt == xml.StartTagCloseToken {
				p.stack = append(p.stack, p.current)
			}
			p.current = nil
		case xml.EndTagToken:
			name := string(lexer.Text())
			el, ok := p.top().(*Element)
			if !ok {
				return nil, p.errorAt(start, "Unmatched closing tag: %s", name)
			}
			if el.Name != name {
				return nil, p.errorAt(start, "Unexpected close tag: expected </%s>, got </%s>", el.Name, name)
			}
			p.stack = p.stack[:len(p.stack)-1]
		case xml.TextToken:
			if err := p.text(raw, start); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) text(raw []byte, offset int) error {
	el, ok := p.top().(*Element)
	if !ok {
		if len(bytes.TrimSpace(raw)) != 0 {
			return p.errorAt(offset, "Text data outside of root node.")
		}
		return nil
	}
	value := p.decodeEntities(string(raw))
	if textElems[el.Name] {
		el.AppendChild(&Text{Value: value})
	} else if strings.TrimSpace(value) != "" {
		el.AppendChild(&Text{Value: strings.TrimSpace(value)})
	}
	return nil
}

var errBadEntity = errors.New("invalid entity")

// decodeEntities replaces the predefined, numeric and declared
// entities. Unknown entities are kept as is.
func (p *parser) decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var sb strings.Builder
	for {
		i := strings.IndexByte(s, '&')
		if i == -1 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		s = s[i:]
		end := strings.IndexByte(s, ';')
		if end == -1 {
			sb.WriteString(s)
			return sb.String()
		}
		value, err := p.entity(s[1:end])
		if err != nil {
			sb.WriteByte('&')
			s = s[1:]
			continue
		}
		sb.WriteString(value)
		s = s[end+1:]
	}
}

func (p *parser) entity(name string) (string, error) {
	switch name {
	case "amp":
		return "&", nil
	case "lt":
		return "<", nil
	case "gt":
		return ">", nil
	case "quot":
		return `"`, nil
	case "apos":
		return "'", nil
	}
	if v, ok := p.entities[name]; ok {
		return v, nil
	}
	if strings.HasPrefix(name, "#") {
		var (
			code uint64
			err  error
		)
		if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
			code, err = strconv.ParseUint(name[2:], 16, 32)
		} else {
			code, err = strconv.ParseUint(name[1:], 10, 32)
		}
		if err == nil {
			return string(rune(code)), nil
		}
	}
	return "", errBadEntity
}

func trimDelims(raw []byte, prefix, suffix string) string {
	s := string(raw)
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		s = s[len(prefix):]
	}
	return strings.TrimSuffix(s, suffix)
}

func unquote(val []byte) string {
	if n := len(val); n >= 2 && (val[0] == '"' || val[0] == '\'') && val[n-1] == val[0] {
		return string(val[1 : n-1])
	}
	return string(val)
}
