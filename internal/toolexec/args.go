package toolexec

import "strconv"

// AtlasGenOptions configures a msdf-atlas-gen run.
type AtlasGenOptions struct {
	Font     string // TTF file
	Charset  string // charset file
	ImageOut string // binary atlas output
	JSON     string // layout output
	FontName string
	Type     string // psdf, msdf, ...
	Size     int    // em size in pixels
	PxRange  int    // distance range in pixels
}

// AtlasGenArgs creates the msdf-atlas-gen arguments for a font. All file
// arguments are made absolute.
func AtlasGenArgs(o AtlasGenOptions) []string {
	return []string{
		"-font", abs(o.Font),
		"-type", o.Type,
		"-format", "bin",
		"-imageout", abs(o.ImageOut),
		"-json", abs(o.JSON),
		"-potr",
		"-size", strconv.Itoa(o.Size),
		"-pxrange", strconv.Itoa(o.PxRange),
		"-charset", abs(o.Charset),
		"-fontname", o.FontName,
	}
}

// IconGenOptions configures a msdfgen run for a single icon layer.
type IconGenOptions struct {
	SVG     string // source SVG
	Out     string // binary bitmap output
	Size    int    // width and height of the bitmap in pixels
	PxRange int
	// Transform holds optional -scale/-translate arguments.
	Transform []string
}

// IconGenArgs creates the msdfgen arguments to render one icon layer as a
// PSDF bitmap.
func IconGenArgs(o IconGenOptions) []string {
	px := strconv.Itoa(o.Size)
	args := []string{
		"psdf",
		"-svg", abs(o.SVG),
		"-dimensions", px, px,
		"-pxrange", strconv.Itoa(o.PxRange),
		"-format", "bin",
		"-o", abs(o.Out),
	}
	return append(args, o.Transform...)
}

// StrokeToPathArgs creates the Inkscape arguments to convert every object
// of an SVG file to a path and every stroke to an outline.
func StrokeToPathArgs(in, out string) []string {
	return []string{
		abs(in),
		"--export-plain-svg",
		"--export-overwrite",
		"--export-filename=" + abs(out),
		"--actions=select-all;object-to-path;object-stroke-to-path",
	}
}
