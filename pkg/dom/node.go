// Package dom is the host render surface of the xdom runtime: a tree of
// golang.org/x/net/html nodes, plus a Document that records structural
// changes made through it and delivers them as a mutation feed.
package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodePath is the list of child indexes leading from a root to a node.
// Example: [0, 2] means root -> child[0] -> child[2].
type NodePath []int

// NewElement creates a detached element node.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Parse parses a fragment in the context of a <body> element and returns the
// top-level nodes, detached.
func Parse(content string) ([]*html.Node, error) {
	ctx := NewElement("body")
	return html.ParseFragment(strings.NewReader(content), ctx)
}

// Render converts a node tree to its HTML text.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderChildren renders the children of n, without n itself.
func RenderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Elements returns the element children of n in order.
func Elements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ElementCount returns the number of element children of n.
func ElementCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// ElementAt returns the element child of n at index, or nil.
func ElementAt(n *html.Node, index int) *html.Node {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == index {
			return c
		}
		i++
	}
	return nil
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// PathOf returns the path from the top of n's tree down to n.
func PathOf(n *html.Node) NodePath {
	var path NodePath
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		path = append(path, childIndex(cur.Parent, cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Precedes reports whether a comes before b in document (pre-order) order.
// Nodes of different trees compare false.
func Precedes(a, b *html.Node) bool {
	if a == b || topOf(a) != topOf(b) {
		return false
	}
	pa, pb := PathOf(a), PathOf(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	// An ancestor precedes its descendants.
	return len(pa) < len(pb)
}

func topOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func childIndex(parent, child *html.Node) int {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return count
		}
		count++
	}
	return -1
}

// NodeAt follows path from root and returns the node it leads to, or nil.
func NodeAt(root *html.Node, path NodePath) *html.Node {
	cur := root
	for _, idx := range path {
		next := cur.FirstChild
		for i := 0; next != nil && i < idx; i++ {
			next = next.NextSibling
		}
		if next == nil || idx < 0 {
			return nil
		}
		cur = next
	}
	return cur
}

// FindByID returns the first element under root, in document order, whose
// id attribute is id.
func FindByID(root *html.Node, id string) *html.Node {
	if root.Type == html.ElementNode && GetAttr(root, "id") == id {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
