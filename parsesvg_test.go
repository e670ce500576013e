package main

import (
	"errors"
	"strings"
	"testing"
)

const svgHead = `<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
     xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
     width="100mm" height="50mm" viewBox="0 0 100 50">
`

// mmDoc wraps body in an svg element whose user unit is the millimetre.
func mmDoc(body string) string {
	return svgHead + body + "\n</svg>\n"
}

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := parseSVG(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseSVGTree(t *testing.T) {
	doc := mustParse(t, mmDoc(`<g id="a" inkscape:groupmode="layer" inkscape:label="Edge.Cuts">
  <path id="p" d="M0 0 L1 1"/>
</g>`))

	if doc.Unit != "mm" {
		t.Errorf("unit = %q, want mm", doc.Unit)
	}
	if doc.Width != 100 || doc.Height != 50 {
		t.Errorf("size = %gx%g, want 100x50", doc.Width, doc.Height)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(doc.Root.Children))
	}
	layer := doc.Root.Children[0]
	if !layer.IsLayer() || layer.Label() != "Edge.Cuts" {
		t.Errorf("layer: IsLayer=%v Label=%q", layer.IsLayer(), layer.Label())
	}
	p := layer.Children[0]
	if p.Parent != layer || layer.Parent != doc.Root || doc.Root.Parent != nil {
		t.Error("parent links are broken")
	}
	if !p.IsShape() || p.Attr("d") != "M0 0 L1 1" || p.ID() != "p" {
		t.Errorf("path node: shape=%v d=%q id=%q", p.IsShape(), p.Attr("d"), p.ID())
	}
}

func TestDocumentUnit(t *testing.T) {
	cases := []struct {
		root string
		want string
	}{
		{`<svg width="100mm" height="100mm" viewBox="0 0 100 100">`, "mm"},
		{`<svg width="100mm" height="100mm">`, "mm"},
		{`<svg width="210mm" height="297mm" viewBox="0 0 793.7007874 1122.519685">`, "px"},
		{`<svg width="4in" height="4in" viewBox="0 0 101.6 101.6">`, "mm"},
		{`<svg width="10cm" height="10cm" viewBox="0 0 10 10">`, "cm"},
		{`<svg width="100%" height="100%"><sodipodi:namedview xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" inkscape:document-units="mm"/>`, "mm"},
		{`<svg width="100" height="100">`, "px"},
	}
	for _, c := range cases {
		doc := mustParse(t, c.root+"</svg>")
		if doc.Unit != c.want {
			t.Errorf("%s: unit = %q, want %q", c.root, doc.Unit, c.want)
		}
	}
}

func TestParseSVGCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		mmDoc("<g inkscape:groupmode=\"layer\" inkscape:label=\"Caf\xe9\"/>")
	doc := mustParse(t, src)
	if got := doc.Root.Children[0].Label(); got != "Café" {
		t.Errorf("label = %q, want %q", got, "Café")
	}
}

func TestParseSVGErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"<svg><g></svg>",
		"<html></html>",
		"not xml at all",
	} {
		_, err := parseSVG(strings.NewReader(src))
		if !errors.Is(err, ErrDocumentUnavailable) {
			t.Errorf("%q: got %v, want ErrDocumentUnavailable", src, err)
		}
	}
}

func TestNodeHidden(t *testing.T) {
	doc := mustParse(t, mmDoc(`<g style="fill:none;display:none"/><g display="none"/><g style="display:inline"/>`))
	want := []bool{true, true, false}
	for i, c := range doc.Root.Children {
		if c.Hidden() != want[i] {
			t.Errorf("child %d: Hidden() = %v, want %v", i, c.Hidden(), want[i])
		}
	}
}
