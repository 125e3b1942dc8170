package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/binding"
)

// Prop is a string-valued property of a host node.
type Prop = binding.Property[html.Node, string]

// GetAttr returns the value of attribute key, or "".
func GetAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether attribute key is present.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets attribute key, adding it if missing.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// TextContent returns the concatenated text of n's descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// SetTextContent replaces the children of n with a single text node. When n
// already holds exactly one text node its data is updated in place.
func SetTextContent(n *html.Node, text string) {
	if c := n.FirstChild; c != nil && c == n.LastChild && c.Type == html.TextNode {
		c.Data = text
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if text != "" {
		n.AppendChild(NewText(text))
	}
}

// Attr returns the property for attribute key.
func Attr(key string) Prop {
	return binding.Accessor[html.Node, string]{
		Key:    key,
		Getter: func(n *html.Node) string { return GetAttr(n, key) },
		Setter: func(n *html.Node, v string) { SetAttr(n, key, v) },
	}
}

// Class is the property for the class attribute.
func Class() Prop { return Attr("class") }

// Text is the property for the text content of a node. Setting it replaces
// the node's children.
func Text() Prop {
	return binding.Accessor[html.Node, string]{
		Key:    "text",
		Getter: TextContent,
		Setter: SetTextContent,
	}
}
