// Command shapes checks a custom shape library and rewrites it in canonical
// form: numeric ids in file order, mirror declarations resolved, ports
// emptied.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Luexks/luexks-shroud-editor-sub000/export"
	"github.com/Luexks/luexks-shroud-editor-sub000/importer"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Input shape library path")
		output    = flag.String("o", "", "Output file path (default: stdout)")
		check     = flag.Bool("check", false, "Only report problems, write nothing")
	)

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	lib := shape.Vanilla()
	res, err := importer.NewImporterRegistry(lib).ImportWithFormat(string(content), "shapes")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing shapes: %v\n", err)
		os.Exit(1)
	}
	set := res.Shapes

	if err := lib.AddCustom(set.Shapes, set.Mirrors); err != nil {
		fmt.Fprintf(os.Stderr, "Error building library: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "%d shapes, %d mirror pairs\n", len(set.Shapes), len(set.Mirrors))
	for _, p := range lib.MirrorPairs() {
		fmt.Fprintf(os.Stderr, "  %s mirrors %s\n", lib.At(p.Mirror).ID, lib.At(p.Source).ID)
	}
	if *check {
		return
	}

	text, err := export.ExportShapes(lib)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing shapes: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully wrote shapes to %s\n", *output)
	} else {
		fmt.Print(text)
	}
}
