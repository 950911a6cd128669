package atlas

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Bounds is a rectangle as written by msdf-atlas-gen.
type Bounds struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

// Info is the 'atlas' section of a font atlas layout file.
type Info struct {
	Type          string  `json:"type"`
	DistanceRange float64 `json:"distanceRange"`
	Size          float64 `json:"size"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	YOrigin       string  `json:"yOrigin"`
}

// BottomUp reports whether atlas rows are stored bottom to top.
// A missing yOrigin counts as 'top'.
func (info Info) BottomUp() bool {
	return strings.ToLower(strings.TrimSpace(info.YOrigin)) == "bottom"
}

// Metrics is the 'metrics' section of a font atlas layout file.
type Metrics struct {
	EmSize             float64 `json:"emSize"`
	LineHeight         float64 `json:"lineHeight"`
	Ascender           float64 `json:"ascender"`
	Descender          float64 `json:"descender"`
	UnderlineY         float64 `json:"underlineY"`
	UnderlineThickness float64 `json:"underlineThickness"`
}

// GlyphRecord is one entry of the 'glyphs' section. Whitespace glyphs
// usually come without bounds.
type GlyphRecord struct {
	Unicode     *int64  `json:"unicode,omitempty"`
	Index       *int64  `json:"index,omitempty"`
	Advance     float64 `json:"advance"`
	PlaneBounds *Bounds `json:"planeBounds,omitempty"`
	AtlasBounds *Bounds `json:"atlasBounds,omitempty"`
}

// FontAtlas is the layout description written by msdf-atlas-gen.
type FontAtlas struct {
	Atlas   *Info         `json:"atlas"`
	Metrics Metrics       `json:"metrics"`
	Records []GlyphRecord `json:"glyphs"`
}

// Glyph is a renderable glyph of a font atlas, with atlas bounds relative
// to a top-left origin.
type Glyph struct {
	Codepoint uint32
	Advance   float64
	Plane     Bounds
	Atlas     Bounds
}

// ReadFontAtlas reads and parses a layout file.
func ReadFontAtlas(path string) (*FontAtlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fa, err := ParseFontAtlas(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fa, nil
}

// ParseFontAtlas parses a layout file from memory.
func ParseFontAtlas(data []byte) (*FontAtlas, error) {
	fa := &FontAtlas{}
	if err := json.Unmarshal(data, fa); err != nil {
		return nil, fmt.Errorf("atlas: cannot decode layout: %w", err)
	}
	if fa.Atlas == nil {
		return nil, ErrNoAtlas
	}
	tracer().Debugf("atlas %dx%d, %d glyph records, yOrigin=%q",
		fa.Atlas.Width, fa.Atlas.Height, len(fa.Records), fa.Atlas.YOrigin)
	return fa, nil
}

// Glyphs returns the glyphs usable for rendering, sorted by code point.
//
// Records without a code point or without bounds are dropped. If the atlas
// is stored bottom-up, atlas bounds are converted to a top-left origin.
// Set raw to keep atlas bounds exactly as written by the generator.
func (fa *FontAtlas) Glyphs(raw bool) []Glyph {
	var h float64
	flip := false
	if fa.Atlas != nil {
		h = float64(fa.Atlas.Height)
		flip = !raw && fa.Atlas.BottomUp() && fa.Atlas.Height > 0
	}
	glyphs := make([]Glyph, 0, len(fa.Records))
	for _, rec := range fa.Records {
		if rec.Unicode == nil || rec.PlaneBounds == nil || rec.AtlasBounds == nil {
			continue
		}
		g := Glyph{
			Codepoint: uint32(*rec.Unicode),
			Advance:   rec.Advance,
			Plane:     *rec.PlaneBounds,
			Atlas:     *rec.AtlasBounds,
		}
		if flip {
			bottom, top := g.Atlas.Bottom, g.Atlas.Top
			g.Atlas.Bottom = h - top
			g.Atlas.Top = h - bottom
		}
		glyphs = append(glyphs, g)
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].Codepoint < glyphs[j].Codepoint
	})
	return glyphs
}

// Lookup finds the glyph for a code point.
func (fa *FontAtlas) Lookup(r rune) (Glyph, bool) {
	glyphs := fa.Glyphs(false)
	i := sort.Search(len(glyphs), func(i int) bool {
		return glyphs[i].Codepoint >= uint32(r)
	})
	if i < len(glyphs) && glyphs[i].Codepoint == uint32(r) {
		return glyphs[i], true
	}
	return Glyph{}, false
}

// NormalizePixels converts the pixel dump of this atlas to a top-left origin.
func (fa *FontAtlas) NormalizePixels(data []byte) []byte {
	if fa.Atlas == nil || !fa.Atlas.BottomUp() {
		return data
	}
	return FlipRows(data, fa.Atlas.Width, fa.Atlas.Height)
}

// FlipRows reverses the row order of a single-channel pixel buffer.
// Buffers whose size does not match w×h are returned unchanged.
func FlipRows(data []byte, w, h int) []byte {
	if w <= 0 || h <= 0 || len(data) != w*h {
		tracer().Debugf("not flipping pixel buffer: %d bytes for %dx%d", len(data), w, h)
		return data
	}
	flipped := make([]byte, len(data))
	for y := 0; y < h; y++ {
		src := (h - 1 - y) * w
		copy(flipped[y*w:(y+1)*w], data[src:src+w])
	}
	return flipped
}
