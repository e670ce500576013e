package main

import (
	"encoding/xml"
	"strings"
)

const (
	nsInkscape = "http://www.inkscape.org/namespaces/inkscape"
	nsSodipodi = "http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
)

// Document is a parsed SVG drawing. It is read-only once loaded.
type Document struct {
	Root *Node

	// Unit is the linear unit of one user-space coordinate ("mm", "px", ...).
	Unit string

	// Width and Height are the drawing size in user units.
	Width, Height float64
}

// Node is an element of the SVG tree.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Parent   *Node
	Children []*Node
}

func (n *Node) lookup(match func(space string) bool, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local && match(a.Name.Space) {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the value of the un-namespaced attribute local.
func (n *Node) Attr(local string) string {
	v, _ := n.lookup(func(space string) bool { return space == "" }, local)
	return v
}

// HasAttr reports whether the un-namespaced attribute local is present.
func (n *Node) HasAttr(local string) bool {
	_, ok := n.lookup(func(space string) bool { return space == "" }, local)
	return ok
}

// InkscapeAttr returns the value of inkscape:local. Documents that forget to
// declare the namespace are accepted too.
func (n *Node) InkscapeAttr(local string) string {
	v, _ := n.lookup(func(space string) bool {
		return space == nsInkscape || space == "inkscape"
	}, local)
	return v
}

func (n *Node) ID() string { return n.Attr("id") }

func (n *Node) IsGroup() bool { return n.Name.Local == "g" }

// IsLayer reports whether n is an Inkscape layer group.
func (n *Node) IsLayer() bool {
	return n.IsGroup() && n.InkscapeAttr("groupmode") == "layer"
}

// Label returns the display name of a layer, falling back to the id.
func (n *Node) Label() string {
	if l := n.InkscapeAttr("label"); l != "" {
		return l
	}
	return n.ID()
}

// IsShape reports whether n carries geometry the converter understands.
func (n *Node) IsShape() bool {
	switch n.Name.Local {
	case "path", "polygon", "polyline":
		return true
	}
	return false
}

// Hidden reports whether the element is switched off with display:none.
func (n *Node) Hidden() bool {
	d := styleProperty(n.Attr("style"), "display")
	if d == "" {
		d = n.Attr("display")
	}
	return strings.EqualFold(strings.TrimSpace(d), "none")
}

// styleProperty returns the value of key in a CSS declaration list such as
// "stroke:#000000;display:none".
func styleProperty(style, key string) string {
	if style == "" {
		return ""
	}
	for _, p := range strings.Split(style, ";") {
		kv := strings.SplitN(strings.TrimSpace(p), ":", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return strings.TrimSpace(kv[1])
		}
	}
	return ""
}
