package main

import (
	"strconv"
	"strings"

	"github.com/npillmayer/psdf/charset"
	"github.com/npillmayer/psdf/fontinfo"
	"github.com/npillmayer/psdf/gridpack"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	traceOnly(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f, err := fontinfo.Load(fontPath)
	if err != nil {
		fatalf("%v", err)
	}
	set := mustLoadCharset(optionalFlag(flags, "charset"))
	info := f.Info()
	pterm.DefaultTable.WithData([][]string{
		{"Path", fontPath},
		{"Name", info.FullName},
		{"Family", info.Family},
		{"Subfamily", info.Subfamily},
		{"Units per em", strconv.Itoa(info.UnitsPerEm)},
		{"Glyphs", strconv.Itoa(info.NumGlyphs)},
		{"Ascent", strconv.Itoa(info.Ascent)},
		{"Descent", strconv.Itoa(info.Descent)},
		{"Line height", strconv.Itoa(info.LineHeight)},
	}).Render()

	missing, err := f.Coverage(set)
	if err != nil {
		fatalf("cannot check coverage: %v", err)
	}
	pterm.Info.Printf("charset: %d code points, %d missing\n", len(set), len(missing))
	if len(missing) == 0 || !mustFlagBool(flags["missing"], "missing") {
		return
	}
	data := [][]string{{"Code point", "Name"}}
	for _, r := range missing {
		desc := fontinfo.DescribeMissing(r)
		cp, name, _ := strings.Cut(desc, " ")
		data = append(data, []string{cp, name})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func mustLoadCharset(path string) charset.Set {
	var set charset.Set
	var err error
	if path == "" {
		set, err = charset.Parse(charset.Default())
	} else {
		set, err = charset.ReadFile(path)
	}
	if err != nil {
		fatalf("%v", err)
	}
	return set
}

func runGridCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	n, err := strconv.Atoi(strings.TrimSpace(args["n"].Value))
	if err != nil || n < 0 {
		fatalf("number of icons must be a non-negative integer: %q", args["n"].Value)
	}
	cell := mustFlagInt(flags["cell"], "cell")
	if cell <= 0 {
		fatalf("--cell must be > 0")
	}
	g := gridpack.Layout(n, cell)
	pterm.Info.Printf("%d icons: %d×%d grid, atlas %d×%d px\n", n, g.Cols, g.Rows, g.Width, g.Height)
	if n == 0 {
		return
	}
	data := [][]string{{"Icon", "X", "Y", "W", "H"}}
	for i, b := range g.Boxes {
		data = append(data, []string{
			strconv.Itoa(i), strconv.Itoa(b.X), strconv.Itoa(b.Y), strconv.Itoa(b.W), strconv.Itoa(b.H),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
