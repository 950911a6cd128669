package atlas

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutJSON = `{
  "atlas": {"type": "psdf", "distanceRange": 8, "size": 48, "width": 4, "height": 3, "yOrigin": "bottom"},
  "metrics": {"emSize": 1, "lineHeight": 1.25, "ascender": 0.95, "descender": -0.25},
  "glyphs": [
    {"unicode": 66, "advance": 0.6,
     "planeBounds": {"left": 0.1, "bottom": -0.1, "right": 0.5, "top": 0.7},
     "atlasBounds": {"left": 0.5, "bottom": 0.5, "right": 2.5, "top": 2.5}},
    {"unicode": 32, "advance": 0.25},
    {"index": 7, "advance": 0.5,
     "planeBounds": {"left": 0, "bottom": 0, "right": 1, "top": 1},
     "atlasBounds": {"left": 0, "bottom": 0, "right": 1, "top": 1}},
    {"unicode": 65, "advance": 0.55,
     "planeBounds": {"left": 0, "bottom": 0, "right": 0.5, "top": 0.7},
     "atlasBounds": {"left": 2.5, "bottom": 0.5, "right": 3.5, "top": 1.5}}
  ]
}`

func TestParseFontAtlas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.atlas")
	defer teardown()

	fa, err := ParseFontAtlas([]byte(layoutJSON))
	require.NoError(t, err)
	assert.Equal(t, 4, fa.Atlas.Width)
	assert.Equal(t, 3, fa.Atlas.Height)
	assert.True(t, fa.Atlas.BottomUp())
	assert.Equal(t, 1.25, fa.Metrics.LineHeight)
	assert.Len(t, fa.Records, 4)
}

func TestParseFontAtlasWithoutAtlasSection(t *testing.T) {
	_, err := ParseFontAtlas([]byte(`{"glyphs": []}`))
	assert.ErrorIs(t, err, ErrNoAtlas)
	_, err = ParseFontAtlas([]byte(`{`))
	assert.Error(t, err)
}

func TestGlyphsAreFilteredSortedAndFlipped(t *testing.T) {
	fa, err := ParseFontAtlas([]byte(layoutJSON))
	require.NoError(t, err)

	glyphs := fa.Glyphs(false)
	require.Len(t, glyphs, 2, "space and index-only glyphs must be dropped")
	assert.Equal(t, uint32('A'), glyphs[0].Codepoint)
	assert.Equal(t, uint32('B'), glyphs[1].Codepoint)
	// height 3: bottom' = 3 - top, top' = 3 - bottom
	assert.Equal(t, Bounds{Left: 2.5, Bottom: 1.5, Right: 3.5, Top: 2.5}, glyphs[0].Atlas)
	assert.Equal(t, Bounds{Left: 0.5, Bottom: 0.5, Right: 2.5, Top: 2.5}, glyphs[1].Atlas)

	raw := fa.Glyphs(true)
	assert.Equal(t, Bounds{Left: 2.5, Bottom: 0.5, Right: 3.5, Top: 1.5}, raw[0].Atlas)
}

func TestGlyphsTopOriginUnchanged(t *testing.T) {
	fa := &FontAtlas{
		Atlas: &Info{Width: 2, Height: 10},
		Records: []GlyphRecord{{
			Unicode:     ptr(int64('x')),
			PlaneBounds: &Bounds{},
			AtlasBounds: &Bounds{Bottom: 1, Top: 4},
		}},
	}
	g := fa.Glyphs(false)
	require.Len(t, g, 1)
	assert.Equal(t, 1.0, g[0].Atlas.Bottom)
	assert.Equal(t, 4.0, g[0].Atlas.Top)
}

func TestLookup(t *testing.T) {
	fa, err := ParseFontAtlas([]byte(layoutJSON))
	require.NoError(t, err)
	g, ok := fa.Lookup('B')
	require.True(t, ok)
	assert.Equal(t, 0.6, g.Advance)
	_, ok = fa.Lookup(' ')
	assert.False(t, ok)
}

func TestFlipRows(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	assert.Equal(t, []byte{5, 6, 3, 4, 1, 2}, FlipRows(data, 2, 3))
	assert.Equal(t, data, FlipRows(data, 4, 3), "size mismatch leaves buffer untouched")
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, data, "input must not be modified")
}

func TestNormalizePixels(t *testing.T) {
	fa := &FontAtlas{Atlas: &Info{Width: 1, Height: 2, YOrigin: "Bottom"}}
	assert.Equal(t, []byte{2, 1}, fa.NormalizePixels([]byte{1, 2}))
	fa.Atlas.YOrigin = "top"
	assert.Equal(t, []byte{1, 2}, fa.NormalizePixels([]byte{1, 2}))
}

func TestIconAtlasRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons", "atlas.json")
	ia := &IconAtlas{
		Atlas: IconInfo{Width: 48, Height: 96, DistanceRange: 8, Size: 48},
		Icons: []IconBox{
			{Name: "BatteryLayer0", X: 0, Y: 0, W: 48, H: 48},
			{Name: "ErrorLayer0", X: 0, Y: 48},
		},
	}
	require.NoError(t, WriteIconAtlas(path, ia))
	back, err := ReadIconAtlas(path)
	require.NoError(t, err)
	assert.Equal(t, ia.Atlas, back.Atlas)
	box, ok := back.Lookup("ErrorLayer0")
	require.True(t, ok)
	assert.Equal(t, IconBox{Name: "ErrorLayer0", X: 0, Y: 48, W: 48, H: 48}, box, "missing size defaults to icon size")
	_, ok = back.Lookup("nope")
	assert.False(t, ok)
}

func ptr[T any](v T) *T {
	return &v
}
