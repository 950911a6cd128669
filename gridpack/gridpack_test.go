package gridpack

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestGrid(t *testing.T) {
	want := [][2]int{
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {2, 2}, {1, 5}, {2, 3},
		{1, 7}, {2, 4}, {3, 3}, {2, 5}, {1, 11}, {3, 4},
	}
	for n, w := range want {
		cols, rows := BestGrid(n)
		assert.Equal(t, w, [2]int{cols, rows}, "BestGrid(%d)", n)
	}
	cols, rows := BestGrid(-3)
	assert.Equal(t, 1, cols)
	assert.Equal(t, 0, rows)
}

func TestLayout(t *testing.T) {
	g := Layout(5, 48)
	assert.Equal(t, 1, g.Cols)
	assert.Equal(t, 5, g.Rows)
	assert.Equal(t, 48, g.Width)
	assert.Equal(t, 240, g.Height)
	require.Len(t, g.Boxes, 5)
	assert.Equal(t, Box{X: 0, Y: 192, W: 48, H: 48}, g.Boxes[4])

	g = Layout(9, 10)
	assert.Equal(t, Box{X: 20, Y: 10, W: 10, H: 10}, g.Boxes[5])
	assert.Equal(t, 30, g.Width)

	g = Layout(0, 48)
	assert.Empty(t, g.Boxes)
	assert.Equal(t, 0, g.Height)
}

func TestCompose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.gridpack")
	defer teardown()

	cell := 2
	bitmaps := [][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8, 99}, // trailing byte ignored
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	g, data, err := Compose(bitmaps, cell)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Cols)
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, []byte{
		1, 2, 5, 6,
		3, 4, 7, 8,
		9, 10, 13, 14,
		11, 12, 15, 16,
	}, data)

	// 3 icons on a 1×3 grid
	g, data, err = Compose(bitmaps[:3], cell)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Cols)
	assert.Len(t, data, 2*6)

	_, _, err = Compose([][]byte{{1, 2, 3}}, cell)
	assert.True(t, errors.Is(err, ErrBitmapSize))
}

func TestComposeNoIcons(t *testing.T) {
	g, data, err := Compose(nil, 48)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, 48, g.Width)
	assert.Equal(t, 0, g.Height)
}

func TestBoxesReconcile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.gridpack")
	defer teardown()

	boxes := []Box{{0, 0, 48, 48}, {0, 48, 48, 48}}
	g := Boxes(boxes, 48, 96, 2, 48)
	assert.Equal(t, boxes, g.Boxes)
	assert.Equal(t, 96, g.Height)

	g = Boxes(boxes, 48, 96, 4, 48)
	require.Len(t, g.Boxes, 4)
	assert.Equal(t, 96, g.Width)
	assert.Equal(t, 96, g.Height)
	assert.Equal(t, Box{X: 48, Y: 48, W: 48, H: 48}, g.Boxes[3])

	g = Boxes(nil, 500, 20, 1, 48)
	assert.Equal(t, 500, g.Width)
	assert.Equal(t, 48, g.Height)
}
