package content

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blocks end the current paragraph when they open or close
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Hr: true, atom.Blockquote: true, atom.Table: true, atom.Ul: true, atom.Ol: true,
}

// Paragraphs flattens HTML into text paragraphs for terminal display.
// Whitespace inside a paragraph is collapsed; an empty string marks a
// blank line produced by an empty block.
func Paragraphs(src string) []string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return strings.Split(src, "\n")
	}

	var (
		out     []string
		current strings.Builder
	)
	flush := func(keepEmpty bool) {
		text := strings.Join(strings.Fields(current.String()), " ")
		current.Reset()
		if text != "" || (keepEmpty && len(out) > 0 && out[len(out)-1] != "") {
			out = append(out, text)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			current.WriteByte(' ')
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
			if blocks[n.DataAtom] {
				flush(n.DataAtom == atom.Br)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blocks[n.DataAtom] {
			flush(false)
		}
	}
	walk(doc)
	flush(false)

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
