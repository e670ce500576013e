package main

import (
	"iter"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// autoLayer selects the output layer from each SVG layer's label.
const autoLayer = "AUTO"

// Layer binds an SVG layer to the KiCad layer its polygons are written to.
type Layer struct {
	Label string // inkscape:label of the layer group
	Name  string // KiCad layer name
}

// LayerBinder decides the KiCad layer for each SVG layer.
type LayerBinder struct {
	// Force, when set to anything but AUTO, names the layer for every
	// polygon.
	Force string

	// Map renames SVG layer labels. Labels without an entry keep their
	// own name.
	Map map[string]string

	// SkipHidden drops layers hidden with display:none.
	SkipHidden bool
}

// Bind returns the layer binding for a layer group.
func (b LayerBinder) Bind(n *Node) Layer {
	label := n.Label()
	l := Layer{Label: label, Name: label}
	if name, ok := b.lookup(label); ok {
		l.Name = name
	}
	if b.Force != "" && b.Force != autoLayer {
		l.Name = b.Force
	}
	return l
}

func (b LayerBinder) lookup(label string) (string, bool) {
	if len(b.Map) == 0 {
		return "", false
	}
	want := norm.NFC.String(label)
	if name, ok := b.Map[want]; ok {
		return name, true
	}
	for k, name := range b.Map {
		if norm.NFC.String(k) == want {
			return name, true
		}
	}
	return "", false
}

// walkLayers yields every shape beneath a layer group together with the
// binding of its nearest enclosing layer, in document order. Shapes outside
// of all layers are not visited.
func walkLayers(doc *Document, b LayerBinder) iter.Seq2[Layer, *Node] {
	return func(yield func(Layer, *Node) bool) {
		if doc == nil || doc.Root == nil {
			return
		}
		var visit func(n *Node, layer *Layer) bool
		visit = func(n *Node, layer *Layer) bool {
			if n.IsLayer() {
				if b.SkipHidden && n.Hidden() {
					return true
				}
				l := b.Bind(n)
				layer = &l
			}
			if layer != nil && n.IsShape() {
				if !yield(*layer, n) {
					return false
				}
			}
			for _, c := range n.Children {
				if !visit(c, layer) {
					return false
				}
			}
			return true
		}
		visit(doc.Root, nil)
	}
}

// kicadLayers lists the layer names KiCad accepts for footprint graphics.
var kicadLayers = map[string]bool{
	"F.Cu": true, "B.Cu": true,
	"F.Adhes": true, "B.Adhes": true,
	"F.Paste": true, "B.Paste": true,
	"F.SilkS": true, "B.SilkS": true,
	"F.Mask": true, "B.Mask": true,
	"F.CrtYd": true, "B.CrtYd": true,
	"F.Fab": true, "B.Fab": true,
	"Dwgs.User": true, "Cmts.User": true,
	"Eco1.User": true, "Eco2.User": true,
	"Edge.Cuts": true, "Margin": true,
}

// knownKiCadLayer reports whether name is a layer KiCad will recognise,
// including inner copper layers In1.Cu to In30.Cu.
func knownKiCadLayer(name string) bool {
	if kicadLayers[name] {
		return true
	}
	if n, ok := strings.CutPrefix(name, "In"); ok {
		if num, ok := strings.CutSuffix(n, ".Cu"); ok && num != "" {
			v := 0
			for _, c := range num {
				if c < '0' || c > '9' {
					return false
				}
				v = v*10 + int(c-'0')
			}
			return v >= 1 && v <= 30
		}
	}
	return false
}
