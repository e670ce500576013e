package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// polygonWidth is the stroke width of every fp_poly, in mm.
const polygonWidth = "0.1"

// formatHeader returns the opening of a footprint module, including the
// hidden reference and value labels.
func formatHeader(name string) string {
	name = quoteAtom(name)
	var b strings.Builder
	b.WriteString("(module " + name + " (layer F.Cu) (tedit 00000000)\n")
	b.WriteString("  (fp_text reference REF** (at 0 0.5) (layer F.SilkS) hide" +
		" (effects (font (size 1 1) (thickness 0.15))))\n")
	b.WriteString("  (fp_text value " + name + " (at 0 -0.5) (layer F.Fab) hide" +
		" (effects (font (size 1 1) (thickness 0.15))))\n")
	return b.String()
}

// formatPolygon returns one fp_poly record, without indentation or newline.
func formatPolygon(layer string, pts []vec.Vec2) string {
	buf := make([]byte, 0, 32+26*len(pts))
	buf = append(buf, "(fp_poly (pts "...)
	for _, p := range pts {
		buf = append(buf, "(xy "...)
		buf = strconv.AppendFloat(buf, p.X, 'f', 6, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Y, 'f', 6, 64)
		buf = append(buf, ") "...)
	}
	buf = append(buf, ") (layer "...)
	buf = append(buf, quoteAtom(layer)...)
	buf = append(buf, ") (width "+polygonWidth+"))"...)
	return string(buf)
}

func formatFooter() string {
	return ")\n"
}

// quoteAtom returns s unchanged when it is a valid bare s-expression atom
// and as a quoted string otherwise.
func quoteAtom(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\r\n()\"\\") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// footprintWriter writes a footprint to a sink. Every record is formatted
// in full before any of it is written.
type footprintWriter struct {
	w   *bufio.Writer
	err error
}

func newFootprintWriter(w io.Writer) *footprintWriter {
	return &footprintWriter{w: bufio.NewWriter(w)}
}

func (fw *footprintWriter) write(s string) error {
	if fw.err != nil {
		return fw.err
	}
	_, fw.err = fw.w.WriteString(s)
	return fw.err
}

func (fw *footprintWriter) Header(name string) error {
	return fw.write(formatHeader(name))
}

func (fw *footprintWriter) Polygon(layer string, pts []vec.Vec2) error {
	return fw.write("  " + formatPolygon(layer, pts) + "\n")
}

// Footer closes the module and flushes buffered output.
func (fw *footprintWriter) Footer() error {
	if err := fw.write(formatFooter()); err != nil {
		return err
	}
	return fw.Flush()
}

func (fw *footprintWriter) Flush() error {
	if fw.err != nil {
		return fw.err
	}
	fw.err = fw.w.Flush()
	return fw.err
}
