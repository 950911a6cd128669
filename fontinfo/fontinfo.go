/*
Package fontinfo answers questions about TrueType fonts before they are
turned into atlases: what the font is called, its design grid, and which
characters of a charset it is unable to render.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontinfo

import (
	"bytes"
	"fmt"
	"os"

	gotext "github.com/go-text/typesetting/font"
	"github.com/npillmayer/psdf/charset"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'psdf.fontinfo'
func tracer() tracing.Trace {
	return tracing.Select("psdf.fontinfo")
}

// Info holds selected information about a font.
type Info struct {
	FullName   string
	Family     string
	Subfamily  string
	UnitsPerEm int
	NumGlyphs  int
	Ascent     int // in font units
	Descent    int // in font units, positive below the baseline
	LineHeight int // in font units
}

// Font is a parsed font together with its binary data.
type Font struct {
	Path   string
	Binary []byte
	SFNT   *sfnt.Font
}

// Load reads and parses a TrueType or OpenType font file.
func Load(path string) (*Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse parses a font from memory.
func Parse(b []byte) (*Font, error) {
	otf, err := sfnt.Parse(b)
	if err != nil {
		return nil, err
	}
	return &Font{Binary: b, SFNT: otf}, nil
}

// Info collects names and vertical metrics of the font.
func (f *Font) Info() Info {
	var buf sfnt.Buffer
	name := func(id sfnt.NameID) string {
		s, err := f.SFNT.Name(&buf, id)
		if err != nil {
			return ""
		}
		return s
	}
	info := Info{
		FullName:   name(sfnt.NameIDFull),
		Family:     name(sfnt.NameIDFamily),
		Subfamily:  name(sfnt.NameIDSubfamily),
		UnitsPerEm: int(f.SFNT.UnitsPerEm()),
		NumGlyphs:  f.SFNT.NumGlyphs(),
	}
	// With ppem == upem, 26.6 metrics are font units
	m, err := f.SFNT.Metrics(&buf, fixed.I(info.UnitsPerEm), font.HintingNone)
	if err != nil {
		tracer().Debugf("font has no usable metrics: %v", err)
		return info
	}
	info.Ascent = m.Ascent.Round()
	info.Descent = m.Descent.Round()
	info.LineHeight = m.Height.Round()
	return info
}

// Coverage returns the code points of set which the font has no glyph for.
func (f *Font) Coverage(set charset.Set) ([]rune, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(f.Binary))
	if err != nil {
		return nil, err
	}
	var missing []rune
	for _, r := range set {
		if _, ok := face.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	tracer().Debugf("%d of %d code points missing", len(missing), len(set))
	return missing, nil
}

// Coverage parses a font and returns the code points of set which it has no
// glyph for.
func Coverage(ttf []byte, set charset.Set) ([]rune, error) {
	return (&Font{Binary: ttf}).Coverage(set)
}

// DescribeMissing formats a code point for diagnostics, e.g.
// "U+20BD RUBLE SIGN".
func DescribeMissing(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("U+%04X", r)
	}
	return fmt.Sprintf("U+%04X %s", r, name)
}
