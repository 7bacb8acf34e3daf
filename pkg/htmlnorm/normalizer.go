// Package htmlnorm repairs invalid HTML nesting and re-indents documents.
// It leans on a forgiving HTML5 parser for the heavy lifting (unclosed tags,
// mis-nesting) and applies structural fixes the parser does not: block-level
// elements inside <p>, and whitespace normalization. Formatting never fails;
// progressively simpler fallbacks take over when parsing does not cooperate.
package htmlnorm

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags are block-level elements that are invalid inside <p>.
var blockTags = []string{
	"div", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "table",
	"form", "fieldset", "hr", "pre", "blockquote",
}

var blockSet = toSet(blockTags)

// selfClosing are void elements serialized without a closing tag.
var selfClosing = toSet([]string{
	"br", "hr", "img", "input", "meta", "link", "area", "base", "col",
	"embed", "source", "track", "wbr",
})

// rawText elements keep their content verbatim; only the enclosing indent is
// applied to their lines.
var rawText = toSet([]string{"script", "style", "textarea"})

// preserveSpace elements are exempt from whitespace normalization.
var preserveSpace = toSet([]string{"script", "style", "pre", "code"})

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// Config holds the normalizer's formatting options.
type Config struct {
	// Indent is the string emitted per nesting level.
	Indent string
}

// DefaultConfig returns the standard 2-space indentation config.
func DefaultConfig() *Config {
	return &Config{Indent: "  "}
}

// Normalizer repairs and pretty-prints HTML.
type Normalizer struct {
	config *Config
	tree   Tree
}

// New creates a Normalizer. A nil config selects DefaultConfig.
func New(config *Config) *Normalizer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Normalizer{config: config, tree: domTree{}}
}

// Format repairs and re-indents HTML using the default configuration.
func Format(content string) string {
	return New(nil).Format(content)
}

// Format repairs structural issues and re-indents the document. It always
// returns a string: a parse failure degrades to the streaming tag walker, and
// any panic in tree manipulation degrades to the line-based indenter.
func (n *Normalizer) Format(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = lineIndent(content, n.config.Indent)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil || len(doc.Nodes) == 0 {
		return n.streamFormat(content)
	}

	n.splitBlockParagraphs(doc)
	n.normalizeWhitespace(doc.Nodes[0])

	return collapseTextLines(n.render(doc.Nodes[0]))
}

// splitBlockParagraphs fixes <p> elements containing block-level descendants:
// non-block children stay inside the <p>, direct block children are re-inserted
// as following siblings, and a <p> left without text is removed.
func (n *Normalizer) splitBlockParagraphs(doc *goquery.Document) {
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		p := s.Nodes[0]
		if len(n.tree.FindDescendantsOfType(p, blockTags...)) == 0 {
			return
		}

		var blocks []*html.Node
		for _, child := range n.tree.ChildrenOf(p) {
			if child.Type == html.ElementNode && blockSet[child.Data] {
				blocks = append(blocks, child)
			}
		}

		ref := p
		for _, b := range blocks {
			n.tree.Remove(b)
			n.tree.InsertAfter(ref, b)
			ref = b
		}

		if strings.TrimSpace(textContent(p)) == "" {
			n.tree.Remove(p)
		}
	})
}

// normalizeWhitespace collapses runs of whitespace in text nodes to single
// spaces, except inside script/style/pre/code.
func (n *Normalizer) normalizeWhitespace(root *html.Node) {
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			parent := node.Parent
			if parent != nil && parent.Type == html.ElementNode && preserveSpace[parent.Data] {
				return
			}
			if strings.TrimSpace(node.Data) != "" {
				node.Data = strings.Join(strings.Fields(node.Data), " ")
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// render serializes the tree with indentation reflecting nesting depth.
func (n *Normalizer) render(root *html.Node) string {
	var lines []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		n.renderNode(&lines, c, 0)
	}
	return strings.Join(lines, "\n")
}

func (n *Normalizer) renderNode(lines *[]string, node *html.Node, depth int) {
	indent := strings.Repeat(n.config.Indent, depth)

	switch node.Type {
	case html.DoctypeNode:
		*lines = append(*lines, "<!DOCTYPE "+node.Data+">")
	case html.CommentNode:
		*lines = append(*lines, indent+"<!--"+node.Data+"-->")
	case html.TextNode:
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*lines = append(*lines, indent+html.EscapeString(text))
		}
	case html.ElementNode:
		open := "<" + node.Data + renderAttrs(node)
		if selfClosing[node.Data] {
			*lines = append(*lines, indent+open+"/>")
			return
		}
		*lines = append(*lines, indent+open+">")
		if rawText[node.Data] {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.TextNode {
					continue
				}
				for _, raw := range strings.Split(c.Data, "\n") {
					if strings.TrimSpace(raw) != "" {
						*lines = append(*lines, indent+strings.TrimRight(raw, " \t"))
					}
				}
			}
		} else {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				n.renderNode(lines, c, depth+1)
			}
		}
		*lines = append(*lines, indent+"</"+node.Data+">")
	}
}

func renderAttrs(node *html.Node) string {
	var sb strings.Builder
	for _, attr := range node.Attr {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		if attr.Val != "" {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(attr.Val))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}

// collapseTextLines re-collapses whitespace the pretty-printer reintroduced
// in pure-text lines (lines containing no tags), preserving indentation.
func collapseTextLines(formatted string) string {
	lines := strings.Split(formatted, "\n")
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.Contains(stripped, "<") {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		lines[i] = indent + strings.Join(strings.Fields(stripped), " ")
	}
	return strings.Join(lines, "\n")
}
