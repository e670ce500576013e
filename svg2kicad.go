// Command svg2kicad converts the layers of an Inkscape drawing into a KiCad
// footprint made of filled polygons.
//
// Every path, polygon and polyline inside an Inkscape layer becomes one
// fp_poly record per subpath, on the KiCad layer named like the Inkscape
// layer. Curves are flattened to within -resolution millimetres. The drawing
// must use millimetres as its user unit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// now is replaced in tests.
var now = time.Now

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("svg2kicad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input SVG file (default: first argument, or stdin)")
	outPath := fs.String("output", "", "output footprint file (default: stdout)")
	layer := fs.String("layer", autoLayer, "KiCad layer for all polygons, or AUTO to use the SVG layer names")
	name := fs.String("name", "", "footprint name (default: FOOTPRINT<unix time>)")
	resolution := fs.Float64("resolution", defaultResolution, "curve flattening tolerance (mm)")
	strict := fs.Bool("strict", false, "stop at the first malformed path instead of skipping it")
	skipHidden := fs.Bool("skip-hidden", false, "ignore layers hidden with display:none")
	configPath := fs.String("config", "", "YAML configuration file")
	verbose := fs.Bool("v", false, "log every path and polygon")
	fs.String("tabs", "", "ignored (Inkscape passes the active notebook tab)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	log := newLogger(stderr, *verbose)

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadConfigFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	// flags given on the command line override the configuration file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = *outPath
		case "layer":
			cfg.Layer = *layer
		case "name":
			cfg.Name = *name
		case "resolution":
			cfg.Resolution = *resolution
		case "strict":
			cfg.Strict = *strict
		case "skip-hidden":
			cfg.SkipHidden = *skipHidden
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	input := *inPath
	if input == "" && fs.NArg() > 0 {
		input = fs.Arg(0)
	}
	doc, err := readDocument(input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error parsing SVG: %v\n", err)
		return 1
	}
	if err := checkDocument(doc); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	footprint := cfg.footprintName(now())
	if cfg.Name == "" {
		log.Debug("using generated footprint name", "name", footprint)
	}

	if err := writeFootprint(doc, footprint, cfg, stdout, log); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// readDocument parses the SVG file at path, or stdin when path is empty
// or "-".
func readDocument(path string, stdin io.Reader) (*Document, error) {
	if path == "" || path == "-" {
		return parseSVG(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseSVG(f)
}

// writeFootprint opens the configured sink, converts doc into it and closes
// it again on every exit path.
func writeFootprint(doc *Document, footprint string, cfg Config, stdout io.Writer, log *slog.Logger) (err error) {
	out, closeOut, err := openSink(cfg.Output, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
		}
	}()

	stats, err := convert(doc, out, footprint, cfg, log)
	if err != nil {
		return err
	}
	log.Debug("footprint written",
		"name", footprint,
		"layers", stats.Layers,
		"polygons", stats.Polygons,
		"skipped", stats.Skipped)
	return nil
}

// openSink returns the writer for path together with the function that
// releases it. An empty path or "-" selects stdout, which is left open.
func openSink(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, &SinkUnavailableError{Path: path, Err: err}
	}
	return f, f.Close, nil
}
