package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, cmd Command) (error, bool) {
	help(cmd.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "glyph", "glyphs":
		pterm.Info.Println("glyph <char|U+hex>")
		pterm.Println(`
	Shows the metrics of a glyph of the font atlas: advance, plane bounds
	(in em units, relative to the baseline) and atlas bounds (in pixels,
	top-left origin). The glyph may be given as a character or as a code
	point, e.g. 'glyph Ж' or 'glyph U+0416'.
	`)
	case "icon", "icons":
		pterm.Info.Println("icon <name>")
		pterm.Println(`
	Shows the atlas box of an icon layer. Names are the C++ identifiers of
	the icons, e.g. 'BatteryLayer0'. Case is ignored if there is no exact
	match.
	`)
	case "list":
		pterm.Info.Println("list [glyphs|icons]")
		pterm.Println(`
	Lists all glyphs of the font atlas and/or all icons of the icon atlas.
	`)
	case "info":
		pterm.Info.Println("info")
		pterm.Println(`
	Prints the atlas parameters: size, distance range, nominal size and,
	for fonts, the vertical metrics.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	glyph <char|U+hex>    metrics of a glyph
	icon <name>           atlas box of an icon
	list [glyphs|icons]   list glyphs and/or icons
	info                  atlas parameters
	help [command]        this text
	quit                  leave (or <ctrl>D)
	`)
	}
}
