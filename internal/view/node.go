// Package view defines the visual tree produced by the renderers.
//
// A Node is either a native primitive (Tag set) or a raw text leaf (Tag
// empty). The tree is consumed in-process by the terminal painter.
package view

import (
	"strings"

	"github.com/henri123lemoine/vista/internal/graphic"
)

// Node is one node of a rendered visual tree.
type Node struct {
	Tag      string
	Props    graphic.Props
	Class    string
	Style    map[string]string
	Text     string
	Children []*Node
}

// Text returns a raw text leaf.
func Text(s string) *Node {
	return &Node{Text: s}
}

// El returns a primitive node with the given children.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// WithClass sets the class string and returns n.
func (n *Node) WithClass(class string) *Node {
	n.Class = class
	return n
}

// WithStyle sets a style entry and returns n.
func (n *Node) WithStyle(key, value string) *Node {
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[key] = value
	return n
}

// IsText reports whether n is a raw text leaf.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// HasClass reports whether the class string contains token.
func (n *Node) HasClass(token string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == token {
			return true
		}
	}
	return false
}

// TextContent concatenates every text leaf under n, depth-first.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Find returns the first node with the given tag, depth-first, or nil.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindClass returns the first node carrying the class token, or nil.
func (n *Node) FindClass(token string) *Node {
	if n == nil {
		return nil
	}
	if n.HasClass(token) {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindClass(token); found != nil {
			return found
		}
	}
	return nil
}

var blockTags = map[string]bool{
	"div": true, "section": true, "article": true, "header": true,
	"footer": true, "main": true, "aside": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "ul": true, "ol": true, "li": true, "pre": true,
	"blockquote": true, "hr": true,
}

var inlineTags = map[string]bool{
	"span": true, "strong": true, "b": true, "em": true, "i": true,
	"u": true, "code": true, "small": true, "a": true, "label": true,
	"mark": true, "br": true,
}

// IsPrimitive reports whether tag is a native primitive.
func IsPrimitive(tag string) bool {
	return blockTags[tag] || inlineTags[tag]
}

// IsBlock reports whether tag lays out as a block. Unknown tags are blocks.
func IsBlock(tag string) bool {
	if tag == "" {
		return false
	}
	return !inlineTags[tag]
}
