package preview

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<path d="M0 0h10v10H0z" fill="black"/></svg>`

const bar = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10">
<path d="M0 0h20v10H0z" fill="black"/></svg>`

func TestAtlasImage(t *testing.T) {
	data := []byte{0, 64, 128, 255, 1, 2}
	img, err := AtlasImage(data, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.GrayAt(0, 1).Y)
	assert.Equal(t, uint8(128), img.GrayAt(2, 0).Y)

	_, err = AtlasImage(data, 4, 2)
	assert.True(t, errors.Is(err, ErrSize))
	_, err = AtlasImage(data, 0, 2)
	assert.True(t, errors.Is(err, ErrSize))
}

func TestAtlasPNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.preview")
	defer teardown()

	path := filepath.Join(t.TempDir(), "out", "atlas.png")
	require.NoError(t, AtlasPNG([]byte{0, 255, 255, 0}, 2, 2, 4, path))
	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	r, _, _, _ := img.At(5, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	r, _, _, _ = img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestIconSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.preview")
	defer teardown()

	sheet, err := IconSheet([][]byte{[]byte(square), []byte(bar)}, 16)
	require.NoError(t, err)
	// two icons on a 1×2 grid
	assert.Equal(t, 16, sheet.Bounds().Dx())
	assert.Equal(t, 32, sheet.Bounds().Dy())

	// square fills its cell
	r, _, _, _ := sheet.At(8, 8).RGBA()
	assert.Less(t, r, uint32(0x1000))
	// bar is centered vertically: top rows of the second cell stay white
	r, _, _, _ = sheet.At(8, 16+1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	r, _, _, _ = sheet.At(8, 16+8).RGBA()
	assert.Less(t, r, uint32(0x1000))

	path := filepath.Join(t.TempDir(), "sheet.png")
	require.NoError(t, IconSheetPNG([][]byte{[]byte(square)}, 8, 2, path))
	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestIconSheetBrokenSVG(t *testing.T) {
	_, err := IconSheet([][]byte{[]byte("not xml at all <<<")}, 8)
	assert.Error(t, err)
}
