/*
Package atlas models the atlas descriptions this module reads and writes.

A font atlas is described by the JSON layout file msdf-atlas-gen emits
next to its binary pixel dump. The description carries the atlas geometry,
the font's vertical metrics and one record per glyph with plane bounds
(em-relative, baseline origin) and atlas bounds (pixels).

An icon atlas is written by this module itself after packing the per-icon
bitmaps produced by msdfgen into one grid.

Both atlases store one byte per pixel (single channel PSDF). Consumers expect
a top-left origin; atlases generated with yOrigin=bottom are normalized here.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package atlas

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.atlas'
func tracer() tracing.Trace {
	return tracing.Select("psdf.atlas")
}

// ErrNoAtlas is returned when a layout file does not contain an atlas section.
var ErrNoAtlas = errors.New("atlas: layout file has no atlas section")
