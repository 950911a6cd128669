/*
Package svgicon inspects SVG icon sources before they are handed to msdfgen.

SVG files are not parsed into a document tree. The functions of this package
look at the source text with a few regular expressions, which is sufficient
for the flat, editor-exported icons this pipeline consumes:

  - the viewBox is mapped to a scale/translate transform for msdfgen,
  - every <path> element is split off into a single-layer SVG,
  - strokes are detected, so they can be converted to outlines first.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package svgicon

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/psdf/codegen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.svgicon'
func tracer() tracing.Trace {
	return tracing.Select("psdf.svgicon")
}

// ErrNoViewBox is flagged if an SVG has no usable viewBox attribute.
var ErrNoViewBox = errors.New("svgicon: no valid viewBox")

// scanLimit is the prefix length of an SVG source searched for viewBox and
// stroke attributes.
const scanLimit = 256 * 1024

func head(svg []byte) []byte {
	if len(svg) > scanLimit {
		return svg[:scanLimit]
	}
	return svg
}

// --- viewBox and transform -------------------------------------------------

// Box is an SVG viewBox.
type Box struct {
	X, Y, W, H float64
}

var (
	viewBoxDQ = regexp.MustCompile(`(?i)\bviewBox\s*=\s*"([^"]+)"`)
	viewBoxSQ = regexp.MustCompile(`(?i)\bviewBox\s*=\s*'([^']+)'`)
	listSep   = regexp.MustCompile(`[\s,]+`)
)

// ParseViewBox extracts the first viewBox attribute of an SVG source. The
// attribute must consist of exactly four numbers, with positive width and
// height.
func ParseViewBox(svg []byte) (Box, error) {
	s := head(svg)
	m := viewBoxDQ.FindSubmatch(s)
	if m == nil {
		m = viewBoxSQ.FindSubmatch(s)
	}
	if m == nil {
		return Box{}, ErrNoViewBox
	}
	parts := listSep.Split(strings.TrimSpace(string(m[1])), -1)
	if len(parts) != 4 {
		return Box{}, fmt.Errorf("%w: %q", ErrNoViewBox, m[1])
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Box{}, fmt.Errorf("%w: %q", ErrNoViewBox, m[1])
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return Box{}, fmt.Errorf("%w: empty box %q", ErrNoViewBox, m[1])
	}
	return Box{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// ViewBox is like ParseViewBox, reporting failure with a flag.
func ViewBox(svg []byte) (Box, bool) {
	box, err := ParseViewBox(svg)
	if err != nil {
		tracer().Debugf("%v", err)
		return Box{}, false
	}
	return box, true
}

// Xform is a transform as expected by msdfgen's -scale and -translate
// options. Translation is given in viewBox units.
type Xform struct {
	Scale, TX, TY float64
}

// Transform fits a viewBox into a px×px bitmap, preserving the aspect ratio
// and centering the shorter side. With flipY set, the y axis is flipped from
// SVG's y-down to msdfgen's y-up convention.
func Transform(box Box, px int, flipY bool) (Xform, bool) {
	if box.W <= 0 || box.H <= 0 {
		return Xform{}, false
	}
	size := float64(px)
	scale := math.Min(size/box.W, size/box.H)
	offX := (size - box.W*scale) * 0.5 / scale
	offY := (size - box.H*scale) * 0.5 / scale
	x := Xform{Scale: scale, TX: -box.X + offX}
	if flipY {
		x.TY = box.H + box.Y - offY
	} else {
		x.TY = -box.Y + offY
	}
	return x, true
}

// Args returns the msdfgen command line arguments for the transform.
func (x Xform) Args() []string {
	return []string{
		"-scale", codegen.FormatFloat(x.Scale),
		"-translate", codegen.FormatFloat(x.TX), codegen.FormatFloat(x.TY),
	}
}

// --- layers ----------------------------------------------------------------

// Layer is a single <path> element of an icon, wrapped into its own SVG
// document.
type Layer struct {
	Name       string // layer0, layer1, ...
	SVG        string // stand-alone SVG source
	Stroke     bool   // path has a stroke attribute
	StrokeOnly bool   // path has a stroke but no fill
}

var (
	svgOpenTag  = regexp.MustCompile(`(?i)<svg\b[^>]*>`)
	pathElement = regexp.MustCompile(`(?is)<path\b[^>]*/\s*>|<path\b[^>]*>.*?</path>`)
	opacityDQ   = regexp.MustCompile(`(?i)\s+(opacity|fill-opacity|stroke-opacity)\s*=\s*"[^"]*"`)
	opacitySQ   = regexp.MustCompile(`(?i)\s+(opacity|fill-opacity|stroke-opacity)\s*=\s*'[^']*'`)
	strokeAttr  = regexp.MustCompile(`(?i)\bstroke\s*=`)
	fillAttr    = regexp.MustCompile(`(?i)\bfill\s*=`)
	strokeValue = regexp.MustCompile(`(?i)\bstroke\s*=\s*("[^"]*"|'[^']*')`)
	fillValue   = regexp.MustCompile(`(?i)\bfill\s*=\s*("[^"]*"|'[^']*')`)
	strokeInCSS = regexp.MustCompile(`(?i)\bstroke\s*:`)
	blackFill   = `fill="black"`
	blackStroke = `stroke="black"`
)

// SplitLayers creates one layer per <path> element of an SVG source.
// Opacity attributes are removed and fill and stroke colors are forced to
// solid black. SplitLayers returns nil if the source has no <svg> tag or
// no <path> elements.
func SplitLayers(svg []byte) []Layer {
	s := string(svg)
	open := svgOpenTag.FindString(s)
	if open == "" {
		return nil
	}
	paths := pathElement.FindAllString(s, -1)
	if len(paths) == 0 {
		return nil
	}
	layers := make([]Layer, len(paths))
	for i, p := range paths {
		p = strings.TrimSpace(p)
		p = opacityDQ.ReplaceAllLiteralString(p, "")
		p = opacitySQ.ReplaceAllLiteralString(p, "")
		l := Layer{Name: fmt.Sprintf("layer%d", i)}
		l.Stroke = strokeAttr.MatchString(p)
		hasFill := fillAttr.MatchString(p)
		l.StrokeOnly = l.Stroke && !hasFill
		if hasFill {
			p = fillValue.ReplaceAllLiteralString(p, blackFill)
		}
		if l.Stroke {
			p = strokeValue.ReplaceAllLiteralString(p, blackStroke)
		}
		l.SVG = open + p + "</svg>"
		layers[i] = l
	}
	tracer().Debugf("split SVG into %d layers", len(layers))
	return layers
}

// HasStroke reports whether an SVG source uses strokes, either as an
// attribute or as a style property.
func HasStroke(svg []byte) bool {
	s := head(svg)
	return strokeAttr.Match(s) || strokeInCSS.Match(s)
}

// --- naming ----------------------------------------------------------------

// IconName is the C++ identifier of an icon layer. Layers of a split icon
// append the camel-cased layer name to the icon name.
func IconName(base, layer string, split bool) string {
	name := codegen.CamelFromFile(base)
	if split || layer != "layer0" {
		name += codegen.SnakeToCamel("_" + layer)
	}
	return codegen.SafeIdent(name)
}

// IconAlias is the lower-case alias of an icon layer, e.g. "battery_layer1".
func IconAlias(base, layer string, split bool) string {
	alias := strings.ToLower(base)
	if split || layer != "layer0" {
		alias += "_" + strings.ToLower(layer)
	}
	return codegen.SafeIdent(alias)
}
