package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const layeredBody = `<path id="outside" d="M0 0 L1 1"/>
<g id="layer1" inkscape:groupmode="layer" inkscape:label="Edge.Cuts">
  <path id="p1" d="M0 0 L1 1"/>
  <g id="sub">
    <path id="p2" d="M0 0 L2 2"/>
    <g id="layer2" inkscape:groupmode="layer" inkscape:label="F.SilkS">
      <path id="p3" d="M0 0 L3 3"/>
    </g>
  </g>
  <polygon id="p4" points="0,0 1,0 1,1"/>
  <rect id="r" width="1" height="1"/>
</g>
<g id="layer3" inkscape:groupmode="layer" inkscape:label="Drafts" style="display:none">
  <path id="p5" d="M0 0 L1 0"/>
</g>`

type binding struct {
	Layer Layer
	ID    string
}

func collect(doc *Document, b LayerBinder) []binding {
	var out []binding
	for l, n := range walkLayers(doc, b) {
		out = append(out, binding{l, n.ID()})
	}
	return out
}

func TestWalkLayers(t *testing.T) {
	doc := mustParse(t, mmDoc(layeredBody))
	edge := Layer{Label: "Edge.Cuts", Name: "Edge.Cuts"}
	silk := Layer{Label: "F.SilkS", Name: "F.SilkS"}
	drafts := Layer{Label: "Drafts", Name: "Drafts"}

	want := []binding{
		{edge, "p1"},
		{edge, "p2"}, // through a plain subgroup
		{silk, "p3"}, // nearest layer wins
		{edge, "p4"},
		{drafts, "p5"},
	}
	if d := cmp.Diff(want, collect(doc, LayerBinder{Force: autoLayer})); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	want = want[:4]
	if d := cmp.Diff(want, collect(doc, LayerBinder{SkipHidden: true})); d != "" {
		t.Errorf("skip hidden (-want +got):\n%s", d)
	}
}

func TestWalkLayersForce(t *testing.T) {
	doc := mustParse(t, mmDoc(layeredBody))
	for l, n := range walkLayers(doc, LayerBinder{Force: "Cmts.User"}) {
		if l.Name != "Cmts.User" {
			t.Errorf("%s: layer %q, want Cmts.User", n.ID(), l.Name)
		}
	}
}

func TestWalkLayersMap(t *testing.T) {
	doc := mustParse(t, mmDoc(`<g inkscape:groupmode="layer" inkscape:label="Caf&#xe9;"><path id="a" d="M0 0 L1 0"/></g>
<g inkscape:groupmode="layer" inkscape:label="Copper"><path id="b" d="M0 0 L1 0"/></g>
<g inkscape:groupmode="layer" inkscape:label="Other"><path id="c" d="M0 0 L1 0"/></g>`))

	b := LayerBinder{Map: map[string]string{
		"Cafe\u0301": "F.Fab", // decomposed form of the label
		"Copper":      "F.Cu",
	}}
	want := []binding{
		{Layer{Label: "Caf\u00e9", Name: "F.Fab"}, "a"},
		{Layer{Label: "Copper", Name: "F.Cu"}, "b"},
		{Layer{Label: "Other", Name: "Other"}, "c"},
	}
	if d := cmp.Diff(want, collect(doc, b)); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestWalkLayersStop(t *testing.T) {
	doc := mustParse(t, mmDoc(layeredBody))
	count := 0
	for range walkLayers(doc, LayerBinder{}) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("visited %d shapes after break, want 1", count)
	}
}

func TestWalkLayersNoDocument(t *testing.T) {
	for range walkLayers(nil, LayerBinder{}) {
		t.Fatal("nil document yielded a shape")
	}
}

func TestLayerLabelFallback(t *testing.T) {
	doc := mustParse(t, mmDoc(`<g id="layer7" inkscape:groupmode="layer"><path id="p" d="M0 0 L1 0"/></g>`))
	got := collect(doc, LayerBinder{})
	want := []binding{{Layer{Label: "layer7", Name: "layer7"}, "p"}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestKnownKiCadLayer(t *testing.T) {
	cases := map[string]bool{
		"F.Cu":      true,
		"Edge.Cuts": true,
		"Cmts.User": true,
		"In1.Cu":    true,
		"In30.Cu":   true,
		"In31.Cu":   false,
		"In.Cu":     false,
		"InX.Cu":    false,
		"Layer 1":   false,
		"":          false,
	}
	for name, want := range cases {
		if got := knownKiCadLayer(name); got != want {
			t.Errorf("knownKiCadLayer(%q) = %v, want %v", name, got, want)
		}
	}
}
