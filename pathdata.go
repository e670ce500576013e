package main

import (
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Knot is an anchor point with its incoming and outgoing handles. Segment i
// of a Subpath is the cubic Knots[i].Anchor, Knots[i].Out, Knots[i+1].In,
// Knots[i+1].Anchor.
type Knot struct {
	In, Anchor, Out vec.Vec2
}

// Subpath is one contour of a path, made only of cubic segments.
type Subpath struct {
	Knots  []Knot
	Closed bool
}

func (sp *Subpath) last() vec.Vec2 { return sp.Knots[len(sp.Knots)-1].Anchor }

func (sp *Subpath) lineTo(p vec.Vec2) {
	sp.Knots = append(sp.Knots, Knot{In: p, Anchor: p, Out: p})
}

func (sp *Subpath) cubeTo(c1, c2, p vec.Vec2) {
	sp.Knots[len(sp.Knots)-1].Out = c1
	sp.Knots = append(sp.Knots, Knot{In: c2, Anchor: p, Out: p})
}

func (sp *Subpath) close() {
	if first := sp.Knots[0].Anchor; !almostEqualPoint(sp.last(), first) {
		sp.lineTo(first)
	}
	sp.Closed = true
}

// decodeSubpaths parses SVG path data into cubic subpaths.
func decodeSubpaths(d string) ([]Subpath, error) {
	p, err := decodePathData(d)
	if err != nil {
		return nil, err
	}
	return subpathsFromData(p), nil
}

// subpathsFromData splits p at every MoveTo. Quadratic curves come out in
// cubic form.
func subpathsFromData(p *path.Data) []Subpath {
	var out []Subpath
	for cmd, pts := range p.Iter().ToCubic() {
		cur := len(out) - 1
		switch cmd {
		case path.CmdMoveTo:
			out = append(out, Subpath{Knots: []Knot{{In: pts[0], Anchor: pts[0], Out: pts[0]}}})
		case path.CmdLineTo:
			out[cur].lineTo(pts[0])
		case path.CmdCubeTo:
			out[cur].cubeTo(pts[0], pts[1], pts[2])
		case path.CmdClose:
			out[cur].close()
		}
	}
	return out
}

// decodePathData parses SVG path data into absolute path commands.
// Elliptical arcs are not supported.
func decodePathData(d string) (*path.Data, error) {
	sc := &pathScanner{s: d}
	p := &path.Data{}

	var cur, start, ctrl vec.Vec2
	var cmd, prev byte
	started := false
	reopen := false

	moveTo := func(pt vec.Vec2) {
		p.MoveTo(pt)
		cur, start = pt, pt
		started, reopen = true, false
	}
	// draw prepares for a drawing command: after a closepath the next
	// segment starts a new subpath at the previous start point.
	draw := func() {
		if reopen {
			moveTo(start)
		}
	}

	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}

		if c := sc.s[sc.pos]; isPathLetter(c) {
			if !strings.ContainsRune("MmLlHhVvCcSsQqTtZz", rune(c)) {
				return nil, sc.errorf("unsupported command %q", string(c))
			}
			if !started && c != 'M' && c != 'm' {
				return nil, sc.errorf("path data must start with a moveto command")
			}
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return nil, sc.errorf("path data must start with a moveto command")
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, sc.errorf("unexpected number after closepath")
		}

		rel := cmd >= 'a'
		var base vec.Vec2
		if rel {
			base = cur
		}

		switch cmd {
		case 'M', 'm':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			moveTo(pt)
			// further coordinate pairs are implicit lineto commands
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}

		case 'L', 'l':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			draw()
			p.LineTo(pt)
			cur = pt

		case 'H', 'h', 'V', 'v':
			v, err := sc.number()
			if err != nil {
				return nil, err
			}
			pt := cur
			switch cmd {
			case 'H':
				pt.X = v
			case 'h':
				pt.X += v
			case 'V':
				pt.Y = v
			case 'v':
				pt.Y += v
			}
			draw()
			p.LineTo(pt)
			cur = pt

		case 'C', 'c', 'S', 's':
			var c1 vec.Vec2
			if cmd == 'C' || cmd == 'c' {
				var err error
				if c1, err = sc.point(base); err != nil {
					return nil, err
				}
			} else {
				c1 = cur
				if strings.IndexByte("CcSs", prev) >= 0 {
					c1 = cur.Mul(2).Sub(ctrl)
				}
			}
			c2, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			draw()
			p.CubeTo(c1, c2, pt)
			cur, ctrl = pt, c2

		case 'Q', 'q', 'T', 't':
			var q vec.Vec2
			if cmd == 'Q' || cmd == 'q' {
				var err error
				if q, err = sc.point(base); err != nil {
					return nil, err
				}
			} else {
				q = cur
				if strings.IndexByte("QqTt", prev) >= 0 {
					q = cur.Mul(2).Sub(ctrl)
				}
			}
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			draw()
			p.QuadTo(q, pt)
			cur, ctrl = pt, q

		case 'Z', 'z':
			if !reopen {
				p.Close()
			}
			cur = start
			reopen = true
		}
		prev = cmd
	}
	return p, nil
}

// pathScanner walks SVG path data byte by byte.
type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) errorf(format string, args ...any) error {
	return &MalformedPathError{Data: sc.s, Offset: sc.pos, Msg: fmt.Sprintf(format, args...)}
}

// number scans one SVG number: sign, digits, fraction and exponent.
// "0.5.5" is two numbers.
func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	begin := sc.pos
	i := sc.pos
	s := sc.s
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		if sc.done() {
			return 0, sc.errorf("unexpected end of path data")
		}
		return 0, sc.errorf("expected number")
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[begin:i], 64)
	if err != nil {
		return 0, sc.errorf("invalid number %q", s[begin:i])
	}
	sc.pos = i
	return v, nil
}

// point scans a coordinate pair and offsets it by base.
func (sc *pathScanner) point(base vec.Vec2) (vec.Vec2, error) {
	x, err := sc.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := sc.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	return vec.Vec2{X: base.X + x, Y: base.Y + y}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isPathLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') && c != 'e' && c != 'E'
}

// shapePathData returns the geometry of a path, polygon or polyline element.
func shapePathData(n *Node) (*path.Data, error) {
	switch n.Name.Local {
	case "path":
		return decodePathData(n.Attr("d"))
	case "polygon":
		return decodePoints(n.Attr("points"), true)
	case "polyline":
		return decodePoints(n.Attr("points"), false)
	}
	return &path.Data{}, nil
}

// decodePoints parses the points attribute of polygon and polyline into a
// single subpath, closed for polygons.
func decodePoints(s string, closed bool) (*path.Data, error) {
	sc := &pathScanner{s: s}
	p := &path.Data{}
	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}
		pt, err := sc.point(vec.Vec2{})
		if err != nil {
			return nil, err
		}
		if len(p.Cmds) == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	if closed && len(p.Cmds) > 0 {
		p.Close()
	}
	return p, nil
}
