package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// unitMM is the length of one unit in millimetres.
var unitMM = map[string]float64{
	"mm": 1,
	"cm": 10,
	"q":  0.25,
	"in": 25.4,
	"pt": 25.4 / 72,
	"pc": 25.4 / 6,
	"px": 25.4 / 96,
}

// parseSVG reads an SVG document into a node tree. Documents declaring a
// non-UTF-8 encoding are converted on the fly.
func parseSVG(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode token: %w", ErrDocumentUnavailable, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			t = t.Copy()
			n := &Node{Name: t.Name, Attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				n.Parent = parent
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil || root.Name.Local != "svg" {
		return nil, fmt.Errorf("%w: no <svg> root element", ErrDocumentUnavailable)
	}

	doc := &Document{Root: root, Unit: documentUnit(root)}
	doc.Width, doc.Height = documentSize(root)
	return doc, nil
}

// documentUnit works out which unit one user-space coordinate stands for.
// The root width together with the viewBox decides; sodipodi:namedview is
// consulted when they do not.
func documentUnit(root *Node) string {
	w, unit := splitLength(root.Attr("width"))
	if unit != "" {
		vb, ok := parseViewBox(root.Attr("viewBox"))
		if !ok || vb[2] <= 0 {
			return unit
		}
		userMM := w / vb[2] * unitMM[unit]
		if math.Abs(w-vb[2]) <= 1e-6*math.Max(1, math.Abs(w)) {
			return unit
		}
		for _, u := range []string{"mm", "cm", "in", "pt", "pc", "px", "q"} {
			if math.Abs(userMM-unitMM[u]) <= 1e-4*unitMM[u] {
				return u
			}
		}
	}

	for _, c := range root.Children {
		if c.Name.Local != "namedview" {
			continue
		}
		if c.Name.Space != nsSodipodi && c.Name.Space != "sodipodi" {
			continue
		}
		if u := c.InkscapeAttr("document-units"); u != "" {
			return u
		}
	}
	return "px"
}

func documentSize(root *Node) (w, h float64) {
	if vb, ok := parseViewBox(root.Attr("viewBox")); ok {
		return vb[2], vb[3]
	}
	w, _ = splitLength(root.Attr("width"))
	h, _ = splitLength(root.Attr("height"))
	return w, h
}

// splitLength splits an SVG length such as "210mm" into its number and its
// unit. Unknown units, including percentages, are reported as "".
func splitLength(s string) (float64, string) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z' || s[i-1] >= 'A' && s[i-1] <= 'Z' || s[i-1] == '%') {
		i--
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return 0, ""
	}
	unit := strings.ToLower(s[i:])
	if _, ok := unitMM[unit]; !ok {
		unit = ""
	}
	return v, unit
}

// parseViewBox parses "minX minY width height".
func parseViewBox(s string) ([4]float64, bool) {
	var vb [4]float64
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(parts) != 4 {
		return vb, false
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	return vb, true
}
