/*
Package gridpack packs equally sized icon bitmaps into a grid atlas.

All cells of the grid have the same square size. The grid shape is chosen
to waste as few cells as possible while keeping the atlas close to square.
Cells are filled row-major, starting at the top-left corner.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gridpack

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.gridpack'
func tracer() tracing.Trace {
	return tracing.Select("psdf.gridpack")
}

// ErrBitmapSize is flagged if an icon bitmap holds fewer than cell×cell pixels.
var ErrBitmapSize = errors.New("gridpack: icon bitmap smaller than grid cell")

// Box is the position of an icon within the atlas, in pixels.
type Box struct {
	X, Y, W, H int
}

// Grid is a grid layout for a number of icons.
type Grid struct {
	Cols, Rows    int
	Cell          int // edge length of a cell in pixels
	Width, Height int // atlas dimensions in pixels
	Boxes         []Box
}

// BestGrid selects the number of columns and rows for n cells.
//
// The grid with the smallest number of cells wins. Among grids of equal
// area, the one closest to square wins; if still tied, the one with fewer
// columns. For n <= 0 BestGrid returns (1, 0).
func BestGrid(n int) (cols, rows int) {
	if n <= 0 {
		return 1, 0
	}
	cols, rows = 1, n
	bestArea, bestAspect := cols*rows, abs(cols-rows)
	for c := 1; c <= n; c++ {
		r := (n + c - 1) / c
		area, aspect := c*r, abs(c-r)
		if area < bestArea || (area == bestArea && aspect < bestAspect) {
			cols, rows = c, r
			bestArea, bestAspect = area, aspect
		}
	}
	return
}

// Layout positions n cells of size cell×cell on the best grid.
func Layout(n, cell int) Grid {
	cols, rows := BestGrid(n)
	g := Grid{
		Cols:   cols,
		Rows:   rows,
		Cell:   cell,
		Width:  cols * cell,
		Height: rows * cell,
	}
	if n > 0 {
		g.Boxes = make([]Box, n)
	}
	for i := 0; i < n; i++ {
		g.Boxes[i] = Box{X: (i % cols) * cell, Y: (i / cols) * cell, W: cell, H: cell}
	}
	return g
}

// Compose lays out one cell per bitmap and copies the bitmaps into a single
// one-byte-per-pixel atlas buffer. Every bitmap must hold at least cell×cell
// pixels in row-major order; extra bytes are ignored.
func Compose(bitmaps [][]byte, cell int) (Grid, []byte, error) {
	g := Layout(len(bitmaps), cell)
	data := make([]byte, g.Width*g.Height)
	for i, bm := range bitmaps {
		if len(bm) < cell*cell {
			return g, nil, fmt.Errorf("%w: bitmap #%d has %d bytes, need %d",
				ErrBitmapSize, i, len(bm), cell*cell)
		}
		box := g.Boxes[i]
		for y := 0; y < cell; y++ {
			dst := (box.Y+y)*g.Width + box.X
			copy(data[dst:dst+cell], bm[y*cell:(y+1)*cell])
		}
	}
	tracer().Debugf("composed %d icons into %dx%d atlas (%d×%d grid)",
		len(bitmaps), g.Width, g.Height, g.Cols, g.Rows)
	return g, data, nil
}

// Boxes reconciles icon boxes read from an existing atlas description with
// the number n of icons expected. If the counts match, boxes and atlas
// dimensions are kept as they are. Otherwise a fresh grid layout for n icons
// is computed and the atlas dimensions are grown to hold it.
func Boxes(boxes []Box, width, height, n, cell int) Grid {
	if len(boxes) == n {
		return Grid{Cell: cell, Width: width, Height: height, Boxes: boxes}
	}
	tracer().Infof("atlas lists %d icons, expected %d: re-computing layout", len(boxes), n)
	g := Layout(n, cell)
	g.Width = max(width, g.Width)
	g.Height = max(height, g.Height)
	return g
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
