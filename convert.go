package main

import (
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/geom/vec"
)

// Stats summarises a conversion run.
type Stats struct {
	Layers   int // layers that contained at least one shape
	Shapes   int // shapes converted
	Polygons int // fp_poly records written
	Skipped  int // shapes skipped because of malformed geometry
}

// checkDocument reports document-level problems. It runs before any output
// is produced.
func checkDocument(doc *Document) error {
	if doc == nil || doc.Root == nil {
		return ErrDocumentUnavailable
	}
	if doc.Unit != expectedUnit {
		return &UnitMismatchError{Got: doc.Unit, Want: expectedUnit}
	}
	return nil
}

// convert writes doc as a footprint called name to w.
//
// Document-level errors are returned before anything is written. A shape
// with malformed geometry is skipped with a warning, unless cfg.Strict is
// set, in which case the run stops at that shape and the footer is not
// written.
func convert(doc *Document, w io.Writer, name string, cfg Config, log *slog.Logger) (Stats, error) {
	var stats Stats
	if log == nil {
		log = newNopLogger()
	}
	if err := checkDocument(doc); err != nil {
		return stats, err
	}
	if err := cfg.validate(); err != nil {
		return stats, err
	}

	log.Debug("document", "unit", doc.Unit, "width", doc.Width, "height", doc.Height)

	fw := newFootprintWriter(w)
	if err := fw.Header(name); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	seen := make(map[Layer]bool)
	for layer, n := range walkLayers(doc, cfg.binder()) {
		if !seen[layer] {
			seen[layer] = true
			stats.Layers++
			log.Debug("processing layer", "svg", layer.Label, "kicad", layer.Name)
			if !knownKiCadLayer(layer.Name) {
				log.Warn("not a KiCad layer name", "layer", layer.Name)
			}
		}

		polys, err := shapePolylines(n, cfg.Resolution)
		if err != nil {
			if cfg.Strict || !isPathError(err) {
				if ferr := fw.Flush(); ferr != nil {
					log.Warn("flush output", "error", ferr)
				}
				return stats, fmt.Errorf("shape %q in layer %q: %w", n.ID(), layer.Label, err)
			}
			log.Warn("skipping shape", "id", n.ID(), "layer", layer.Label, "error", err)
			stats.Skipped++
			continue
		}
		stats.Shapes++

		for _, pts := range polys {
			log.Debug("polygon", "id", n.ID(), "points", len(pts))
			if err := fw.Polygon(layer.Name, pts); err != nil {
				return stats, fmt.Errorf("write polygon: %w", err)
			}
			stats.Polygons++
		}
	}

	if err := fw.Footer(); err != nil {
		return stats, fmt.Errorf("write footer: %w", err)
	}
	return stats, nil
}

// shapePolylines runs one shape through the geometry pipeline and returns
// one transformed polyline per non-degenerate subpath. Nothing is returned
// unless the whole shape converts.
func shapePolylines(n *Node, tolerance float64) ([][]vec.Vec2, error) {
	chain, err := transformChain(n)
	if err != nil {
		return nil, err
	}
	m := composeChain(chain)
	p, err := shapePathData(n)
	if err != nil {
		return nil, err
	}

	var out [][]vec.Vec2
	for _, sp := range subpathsFromData(p) {
		if len(sp.Knots) < 2 {
			continue
		}
		pts := flatten(sp, tolerance)
		for i := range pts {
			pts[i] = apply(m, pts[i])
		}
		out = append(out, pts)
	}
	return out, nil
}
