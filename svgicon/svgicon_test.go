package svgicon

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const battery = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24">
  <path d="M2 6h18v12H2z" fill="#333" opacity="0.5"/>
  <path d="M4 8h6v8H4z" fill='red' fill-opacity='.3'></path>
  <path d="M20 10v4" stroke="#000" stroke-width="2"
        stroke-opacity="0.8"/>
</svg>
`

func TestViewBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.svgicon")
	defer teardown()

	box, ok := ViewBox([]byte(battery))
	require.True(t, ok)
	assert.Equal(t, Box{0, 0, 24, 24}, box)

	box, ok = ViewBox([]byte(`<svg VIEWBOX = '2,4, 20 10'>`))
	require.True(t, ok)
	assert.Equal(t, Box{2, 4, 20, 10}, box)

	for _, bad := range []string{
		`<svg>`,
		`<svg viewBox="0 0 24">`,
		`<svg viewBox="0 0 0 24">`,
		`<svg viewBox="0 0 a 24">`,
		`<svg viewBox="0 0 -1 24">`,
	} {
		_, ok := ViewBox([]byte(bad))
		assert.False(t, ok, bad)
		_, err := ParseViewBox([]byte(bad))
		assert.True(t, errors.Is(err, ErrNoViewBox), bad)
	}
}

func TestTransform(t *testing.T) {
	x, ok := Transform(Box{0, 0, 24, 24}, 48, true)
	require.True(t, ok)
	assert.InDelta(t, 2.0, x.Scale, 1e-9)
	assert.InDelta(t, 0.0, x.TX, 1e-9)
	assert.InDelta(t, 24.0, x.TY, 1e-9)

	x, ok = Transform(Box{2, 4, 20, 10}, 48, true)
	require.True(t, ok)
	assert.InDelta(t, 2.4, x.Scale, 1e-9)
	assert.InDelta(t, -2.0, x.TX, 1e-9)
	assert.InDelta(t, 9.0, x.TY, 1e-9)
	assert.Equal(t, []string{"-scale", "2.4", "-translate", "-2.0", "9.0"}, x.Args())

	x, ok = Transform(Box{2, 4, 20, 10}, 48, false)
	require.True(t, ok)
	assert.InDelta(t, 1.0, x.TY, 1e-9)

	_, ok = Transform(Box{}, 48, true)
	assert.False(t, ok)
}

func TestSplitLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.svgicon")
	defer teardown()

	layers := SplitLayers([]byte(battery))
	require.Len(t, layers, 3)
	open := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24">`

	assert.Equal(t, "layer0", layers[0].Name)
	assert.Equal(t, open+`<path d="M2 6h18v12H2z" fill="black"/></svg>`, layers[0].SVG)
	assert.False(t, layers[0].Stroke)

	assert.Equal(t, open+`<path d="M4 8h6v8H4z" fill="black"></path></svg>`, layers[1].SVG)

	l := layers[2]
	assert.Equal(t, "layer2", l.Name)
	assert.True(t, l.Stroke)
	assert.True(t, l.StrokeOnly)
	assert.Contains(t, l.SVG, `stroke="black"`)
	assert.Contains(t, l.SVG, `stroke-width="2"`)
	assert.NotContains(t, l.SVG, "opacity")
	assert.True(t, strings.HasSuffix(l.SVG, "/></svg>"))
}

func TestSplitLayersWithoutPaths(t *testing.T) {
	assert.Nil(t, SplitLayers([]byte(`<svg viewBox="0 0 1 1"><circle r="1"/></svg>`)))
	assert.Nil(t, SplitLayers([]byte(`<path d="M0 0"/>`)))
}

func TestHasStroke(t *testing.T) {
	assert.True(t, HasStroke([]byte(battery)))
	assert.True(t, HasStroke([]byte(`<path style="fill:none; STROKE: #000"/>`)))
	assert.False(t, HasStroke([]byte(`<path d="M0 0" stroke-width="2" fill="red"/>`)))

	late := strings.Repeat(" ", scanLimit) + `stroke="red"`
	assert.False(t, HasStroke([]byte(late)))
}

func TestIconNames(t *testing.T) {
	assert.Equal(t, "BatteryLayer1", IconName("battery", "layer1", true))
	assert.Equal(t, "battery_layer1", IconAlias("battery", "layer1", true))
	assert.Equal(t, "WifiStrong", IconName("wifi-strong", "layer0", false))
	assert.Equal(t, "wifi_strong", IconAlias("wifi-strong", "layer0", false))
	assert.Equal(t, "I3dBoxLayer0", IconName("3d_box", "layer0", true))
	assert.Equal(t, "F_3d_box_layer0", IconAlias("3D_Box", "layer0", true))
}
