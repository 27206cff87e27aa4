// Package markdown renders exercise descriptions for the terminal.
package markdown

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var parser = goldmark.New().Parser()

var blankRuns = regexp.MustCompile(`\n{3,}`)

// PlainText renders markdown source as plain text. Headings and blocks go on
// their own lines, list items get bullets or numbers, emphasis markers are
// dropped and code spans keep their backticks.
func PlainText(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	source := []byte(src)
	doc := parser.Parse(text.NewReader(source))

	r := &plainRenderer{src: source}
	_ = ast.Walk(doc, r.walk)

	out := blankRuns.ReplaceAllString(r.buf.String(), "\n\n")
	return strings.TrimSpace(out)
}

type plainRenderer struct {
	src   []byte
	buf   bytes.Buffer
	lists []listState
}

type listState struct {
	ordered bool
	next    int
}

func (r *plainRenderer) blockBreak() {
	b := r.buf.Bytes()
	switch {
	case len(b) == 0:
	case bytes.HasSuffix(b, []byte("\n\n")):
	case b[len(b)-1] == '\n':
		r.buf.WriteByte('\n')
	default:
		r.buf.WriteString("\n\n")
	}
}

func (r *plainRenderer) lineBreak() {
	if b := r.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		r.buf.WriteByte('\n')
	}
}

func (r *plainRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Heading, *ast.Paragraph, *ast.Blockquote, *ast.ThematicBreak:
		switch {
		case len(r.lists) == 0:
			r.blockBreak()
		case !entering:
			r.lineBreak()
		}
		if _, ok := n.(*ast.ThematicBreak); ok && entering {
			r.buf.WriteString("---")
		}

	case *ast.TextBlock:
		if !entering {
			r.lineBreak()
		}

	case *ast.List:
		if entering {
			if len(r.lists) == 0 {
				r.blockBreak()
			}
			r.lists = append(r.lists, listState{ordered: n.IsOrdered(), next: n.Start})
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			r.lineBreak()
		}

	case *ast.ListItem:
		if entering {
			r.lineBreak()
			r.writeBullet()
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			r.blockBreak()
			lines := n.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				r.buf.WriteString("    ")
				r.buf.Write(seg.Value(r.src))
			}
			r.lineBreak()
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeSpan:
		r.buf.WriteByte('`')

	case *ast.Link:
		if !entering {
			if dest := string(n.Destination); dest != "" && !strings.HasSuffix(r.buf.String(), dest) {
				r.buf.WriteString(" (" + dest + ")")
			}
		}

	case *ast.AutoLink:
		if entering {
			r.buf.Write(n.URL(r.src))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			r.buf.Write(n.Segment.Value(r.src))
			switch {
			case n.HardLineBreak():
				r.buf.WriteByte('\n')
			case n.SoftLineBreak():
				r.buf.WriteByte(' ')
			}
		}

	case *ast.String:
		if entering {
			r.buf.Write(n.Value)
		}

	case *ast.RawHTML, *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *plainRenderer) writeBullet() {
	depth := len(r.lists)
	if depth == 0 {
		return
	}
	r.buf.WriteString(strings.Repeat("  ", depth-1))
	l := &r.lists[depth-1]
	if l.ordered {
		r.buf.WriteString(strconv.Itoa(l.next) + ". ")
		l.next++
		return
	}
	r.buf.WriteString("• ")
}
