/*
Package preview renders PNG images of generated atlases and their sources,
for eyeballing the output of a build.

A PSDF atlas is a one-byte-per-pixel distance field; its preview is a
grayscale image, upscaled without interpolation so single texels stay
visible. An icon sheet rasterizes the SVG layers that went into an icon
atlas, arranged on the same grid, to compare source and result.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/psdf/gridpack"
	"github.com/npillmayer/schuko/tracing"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// tracer traces with key 'psdf.preview'
func tracer() tracing.Trace {
	return tracing.Select("psdf.preview")
}

// ErrSize is flagged if atlas data does not match the atlas dimensions.
var ErrSize = errors.New("preview: data does not match atlas size")

// AtlasImage wraps one-byte-per-pixel atlas data as a grayscale image.
func AtlasImage(data []byte, w, h int) (*image.Gray, error) {
	if w <= 0 || h <= 0 || len(data) < w*h {
		return nil, fmt.Errorf("%w: %d bytes for %d×%d", ErrSize, len(data), w, h)
	}
	return &image.Gray{
		Pix:    data[:w*h],
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

// AtlasPNG saves atlas data as a PNG image, upscaled by an integer factor.
func AtlasPNG(data []byte, w, h, scale int, path string) error {
	img, err := AtlasImage(data, w, h)
	if err != nil {
		return err
	}
	return save(img, scale, path)
}

// IconSheet rasterizes SVG sources into cells of size cell×cell, laid out
// like an icon atlas. Icons are scaled to fit a cell, preserving their
// aspect ratio, and drawn black on white.
func IconSheet(svgs [][]byte, cell int) (*image.NRGBA, error) {
	g := gridpack.Layout(len(svgs), cell)
	if g.Height == 0 {
		return imaging.New(max(g.Width, 1), 1, color.White), nil
	}
	sheet := imaging.New(g.Width, g.Height, color.White)
	for i, svg := range svgs {
		tile, err := rasterize(svg, cell)
		if err != nil {
			return nil, fmt.Errorf("icon #%d: %w", i, err)
		}
		box := g.Boxes[i]
		sheet = imaging.Overlay(sheet, tile, image.Pt(box.X, box.Y), 1.0)
	}
	tracer().Debugf("icon sheet with %d icons, %d×%d", len(svgs), g.Width, g.Height)
	return sheet, nil
}

// IconSheetPNG saves an icon sheet as a PNG image.
func IconSheetPNG(svgs [][]byte, cell, scale int, path string) error {
	sheet, err := IconSheet(svgs, cell)
	if err != nil {
		return err
	}
	return save(sheet, scale, path)
}

func rasterize(svg []byte, cell int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, cell, cell))
	vb := icon.ViewBox
	if vb.W > 0 && vb.H > 0 {
		size := float64(cell)
		s := math.Min(size/vb.W, size/vb.H)
		w, h := vb.W*s, vb.H*s
		icon.SetTarget((size-w)/2, (size-h)/2, w, h)
	} else {
		icon.SetTarget(0, 0, float64(cell), float64(cell))
	}
	scanner := rasterx.NewScannerGV(cell, cell, img, img.Bounds())
	dasher := rasterx.NewDasher(cell, cell, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

func save(img image.Image, scale int, path string) error {
	if scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return err
	}
	tracer().Infof("preview written to %s", path)
	return nil
}
