package htmlnorm

import "golang.org/x/net/html"

// Tree is the minimal mutable-tree capability the normalizer needs from a
// forgiving HTML5 parser: child enumeration, sibling insertion, node removal,
// and descendant lookup by tag name.
type Tree interface {
	ChildrenOf(n *html.Node) []*html.Node
	InsertAfter(ref, node *html.Node)
	Remove(n *html.Node)
	FindDescendantsOfType(root *html.Node, tags ...string) []*html.Node
}

// domTree implements Tree over the x/net/html node tree that goquery parses
// into.
type domTree struct{}

func (domTree) ChildrenOf(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

func (domTree) InsertAfter(ref, node *html.Node) {
	parent := ref.Parent
	if parent == nil {
		return
	}
	if ref.NextSibling != nil {
		parent.InsertBefore(node, ref.NextSibling)
	} else {
		parent.AppendChild(node)
	}
}

func (domTree) Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (domTree) FindDescendantsOfType(root *html.Node, tags ...string) []*html.Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && want[c.Data] {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(root)
	return found
}

// textContent returns the concatenated text of a subtree.
func textContent(n *html.Node) string {
	var buf []byte
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf = append(buf, n.Data...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return string(buf)
}
