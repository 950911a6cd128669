package main

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/psdf/atlas"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd := parseCommand("  glyph  U+0041 ")
	assert.Equal(t, GLYPH, cmd.code)
	assert.Equal(t, "U+0041", cmd.arg)
	assert.Equal(t, QUIT, parseCommand("Quit").code)
	assert.Equal(t, HELP, parseCommand("frobnicate now").code)
	assert.Equal(t, "", parseCommand("frobnicate now").arg)
}

func TestParseRune(t *testing.T) {
	for in, want := range map[string]rune{"A": 'A', "U+0041": 'A', "u+20bd": '₽', "0x416": 'Ж', "Ё": 'Ё'} {
		r, err := parseRune(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, r, in)
	}
	for _, in := range []string{"", "AB", "U+XYZ", "U+110000"} {
		_, err := parseRune(in)
		assert.Error(t, err, in)
	}
}

func TestOps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf")
	defer teardown()

	intp := &Intp{}
	err, _ := intp.execute(parseCommand("glyph A"))
	assert.ErrorIs(t, err, errNoFont)
	err, _ = intp.execute(parseCommand("info"))
	assert.Error(t, err)

	require.NoError(t, intp.loadFontAtlas(filepath.Join("..", "codegen", "testdata", "atlas.json")))
	intp.icons = &atlas.IconAtlas{
		Atlas: atlas.IconInfo{Width: 48, Height: 96, DistanceRange: 8, Size: 48},
		Icons: []atlas.IconBox{
			{Name: "BatteryLayer0", X: 0, Y: 0, W: 48, H: 48},
			{Name: "Dot", X: 0, Y: 48, W: 48, H: 48},
		},
	}
	err, stop := intp.execute(parseCommand("glyph A"))
	assert.NoError(t, err)
	assert.False(t, stop)
	err, _ = intp.execute(parseCommand("glyph Z"))
	assert.EqualError(t, err, "no glyph for U+005A LATIN CAPITAL LETTER Z")
	err, _ = intp.execute(parseCommand("icon dot"))
	assert.NoError(t, err)
	err, _ = intp.execute(parseCommand("icon Square"))
	assert.Error(t, err)
	err, _ = intp.execute(parseCommand("list"))
	assert.NoError(t, err)
	err, _ = intp.execute(parseCommand("list kerning"))
	assert.Error(t, err)
	err, _ = intp.execute(parseCommand("info"))
	assert.NoError(t, err)
	err, stop = intp.execute(parseCommand("quit"))
	assert.NoError(t, err)
	assert.True(t, stop)
}

func TestTableRows(t *testing.T) {
	fa, err := atlas.ReadFontAtlas(filepath.Join("..", "codegen", "testdata", "atlas.json"))
	require.NoError(t, err)
	g, ok := fa.Lookup('B')
	require.True(t, ok)
	rows := glyphRows(g)
	assert.Equal(t, []string{"Code point", "U+0042 B"}, rows[0])
	assert.Equal(t, []string{"Advance", "0.6"}, rows[1])
	// atlas is stored bottom-up, bounds are shown top-down
	assert.Equal(t, []string{"Atlas bounds", "0.5, 0.5, 2.5, 2.5"}, rows[3])

	list := glyphListRows(fa.Glyphs(false))
	assert.Equal(t, []string{"Code point", "Char", "Advance", "Atlas box"}, list[0])
	assert.Equal(t, []string{"U+0041", "A", "0.55", "1.0×1.0"}, list[1])

	info := fontInfoRows(fa)
	assert.Equal(t, []string{"Y origin", "bottom"}, info[4])
}
