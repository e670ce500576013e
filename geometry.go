package main

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Transforms use the SVG matrix(a,b,c,d,e,f) layout:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// A.Mul(B) applies A first, then B.

// apply maps p through m.
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := m.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// transformChain collects the transforms from n up to the document root,
// nearest first. Nodes without a transform attribute contribute nothing.
func transformChain(n *Node) ([]matrix.Matrix, error) {
	var chain []matrix.Matrix
	for ; n != nil; n = n.Parent {
		if !n.HasAttr("transform") {
			continue
		}
		m, err := parseTransformAttr(n.Attr("transform"))
		if err != nil {
			return nil, err
		}
		chain = append(chain, m)
	}
	return chain, nil
}

// composeChain multiplies a chain from transformChain into the single matrix
// that maps the local frame of the node to the root frame.
func composeChain(chain []matrix.Matrix) matrix.Matrix {
	m := matrix.Identity
	for _, t := range chain {
		m = m.Mul(t)
	}
	return m
}

// parseTransformAttr parses an SVG transform list such as
// "translate(10,5) rotate(45)". The rightmost transform applies first.
func parseTransformAttr(s string) (matrix.Matrix, error) {
	m := matrix.Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		close := strings.IndexByte(rest, ')')
		if open <= 0 || close < open {
			return m, &TransformError{Value: s, Msg: "expected name(args)"}
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : close])
		if err != nil {
			return m, &TransformError{Value: s, Msg: err.Error()}
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return m, &TransformError{Value: s, Msg: err.Error()}
		}
		m = t.Mul(m)
		rest = strings.TrimLeft(rest[close+1:], " \t\r\n,")
	}
	return m, nil
}

func transformFunc(name string, args []float64) (matrix.Matrix, error) {
	n := len(args)
	switch name {
	case "matrix":
		if n == 6 {
			return matrix.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, nil
		}
	case "translate":
		switch n {
		case 1:
			return matrix.Translate(args[0], 0), nil
		case 2:
			return matrix.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch n {
		case 1:
			return matrix.Scale(args[0], args[0]), nil
		case 2:
			return matrix.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch n {
		case 1:
			return matrix.RotateDeg(args[0]), nil
		case 3:
			cx, cy := args[1], args[2]
			return matrix.Translate(-cx, -cy).Mul(matrix.RotateDeg(args[0])).Mul(matrix.Translate(cx, cy)), nil
		}
	case "skewX":
		if n == 1 {
			return matrix.Matrix{1, 0, math.Tan(args[0] * math.Pi / 180), 1, 0, 0}, nil
		}
	case "skewY":
		if n == 1 {
			return matrix.Matrix{1, math.Tan(args[0] * math.Pi / 180), 0, 1, 0, 0}, nil
		}
	default:
		return matrix.Identity, errUnknownTransform(name)
	}
	return matrix.Identity, errArity(name, n)
}

type transformArgError string

func (e transformArgError) Error() string { return string(e) }

func errUnknownTransform(name string) error {
	return transformArgError("unknown transform " + strconv.Quote(name))
}

func errArity(name string, n int) error {
	return transformArgError(name + " does not take " + strconv.Itoa(n) + " arguments")
}

// parseNumberList splits a comma and/or whitespace separated list of numbers.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, transformArgError("invalid number " + strconv.Quote(f))
		}
		out = append(out, v)
	}
	return out, nil
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// distPointToLine returns the distance of p from the infinite line through
// a and b, or from a when a and b coincide.
func distPointToLine(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	if d.X == 0 && d.Y == 0 {
		return p.Sub(a).Length()
	}
	return math.Abs(d.X*(p.Y-a.Y)-d.Y*(p.X-a.X)) / d.Length()
}

func almostEqualPoint(a, b vec.Vec2) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
