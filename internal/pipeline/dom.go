package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrHTMLParse indicates the input could not be parsed into a DOM.
var ErrHTMLParse = errors.New("HTML parsing failed")

// ParseHTML parses a complete or fragmentary HTML document.
func ParseHTML(content string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}
	return doc, nil
}

// RenderHTML serializes a DOM back to HTML.
func RenderHTML(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return b.String(), nil
}

// Walk visits n and its descendants in document order. Children of a node
// are skipped when visit returns false.
func Walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		// Capture the sibling first so visit may detach c.
		next := c.NextSibling
		Walk(c, visit)
		c = next
	}
}

// FindElement returns the first element with the given tag name, or nil.
func FindElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := FindElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// TextContent extracts the text of a node and its descendants with
// whitespace runs collapsed. Script and style content is skipped.
func TextContent(n *html.Node) string {
	var b strings.Builder
	textContentRecursive(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

// RawTextContent returns the text of a node without whitespace collapsing.
func RawTextContent(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func textContentRecursive(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template":
			return
		case "br":
			b.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContentRecursive(c, b)
	}
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrValue returns the value of the named attribute, or "".
func AttrValue(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attributes returns the attributes of n as a map, excluding the given keys.
func Attributes(n *html.Node, exclude ...string) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + attr.Key
		}
		if containsString(exclude, key) {
			continue
		}
		attrs[key] = attr.Val
	}
	return attrs
}

// RemoveNode detaches n from its parent.
func RemoveNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// UnwrapNode replaces n with its children.
func UnwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
