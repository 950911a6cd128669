package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/psdf/atlas"
	"github.com/npillmayer/psdf/preview"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runPreviewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	traceOnly(flags)
	input := strings.TrimSpace(args["input"].Value)
	if input == "" {
		fatalf("input is required")
	}
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	if outPath = strings.TrimSpace(outPath); outPath == "" {
		fatalf("output path is empty")
	}
	scale := mustFlagInt(flags["scale"], "scale")
	if scale <= 0 {
		fatalf("--scale must be > 0")
	}
	st, err := os.Stat(input)
	if err != nil {
		fatalf("%v", err)
	}
	if st.IsDir() {
		n := previewIcons(input, mustFlagInt(flags["cell"], "cell"), scale, outPath)
		pterm.Success.Printf("wrote %s (icons=%d)\n", outPath, n)
		return
	}
	w, h := previewAtlas(input, scale, outPath)
	pterm.Success.Printf("wrote %s (%d×%d)\n", outPath, w, h)
}

// previewAtlas writes the bitmap of an atlas. The bitmap is expected as
// atlas.bin next to the layout file.
func previewAtlas(layout string, scale int, outPath string) (int, int) {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(layout), "atlas.bin"))
	if err != nil {
		fatalf("%v", err)
	}
	var w, h int
	if ia, err := atlas.ReadIconAtlas(layout); err == nil && len(ia.Icons) > 0 {
		w, h = ia.Atlas.Width, ia.Atlas.Height
	} else {
		fa, err := atlas.ReadFontAtlas(layout)
		if err != nil {
			fatalf("%s is neither an icon nor a font atlas: %v", layout, err)
		}
		w, h = fa.Atlas.Width, fa.Atlas.Height
		data = fa.NormalizePixels(data)
	}
	if err := preview.AtlasPNG(data, w, h, scale, outPath); err != nil {
		fatalf("%v", err)
	}
	return w, h
}

// previewIcons writes a sheet of the SVG icons of a directory.
func previewIcons(dir string, cell, scale int, outPath string) int {
	if cell <= 0 {
		fatalf("--cell must be > 0")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		fatalf("%v", err)
	}
	var svgs [][]byte
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			fatalf("%v", err)
		}
		svgs = append(svgs, b)
	}
	if len(svgs) == 0 {
		fatalf("no SVG files in %s", dir)
	}
	if err := preview.IconSheetPNG(svgs, cell, scale, outPath); err != nil {
		fatalf("%v", err)
	}
	return len(svgs)
}
