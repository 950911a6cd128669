package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/psdf/atlas"
	"github.com/npillmayer/psdf/codegen"
	"github.com/npillmayer/psdf/fontinfo"
	"github.com/pterm/pterm"
)

const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	GLYPH
	ICON
	LIST
	INFO
)

var opMap = map[string]int{
	"quit":  QUIT,
	"exit":  QUIT,
	"help":  HELP,
	"glyph": GLYPH,
	"icon":  ICON,
	"list":  LIST,
	"info":  INFO,
}

// Command is a parsed input line.
type Command struct {
	code int
	name string
	arg  string
}

// parseCommand splits an input line into an op-code and its argument.
// Unknown commands map to HELP.
func parseCommand(line string) Command {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	code, ok := opMap[name]
	if !ok {
		code = HELP
		arg = ""
	}
	cmd := Command{code: code, name: name, arg: strings.TrimSpace(arg)}
	tracer().Debugf("parsed command: %v", cmd)
	return cmd
}

var commandFn = map[int]func(*Intp, Command) (error, bool){
	QUIT:  quitOp,
	HELP:  helpOp,
	GLYPH: glyphOp,
	ICON:  iconOp,
	LIST:  listOp,
	INFO:  infoOp,
}

func (intp *Intp) execute(cmd Command) (err error, stop bool) {
	f, ok := commandFn[cmd.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", cmd.code), false
	}
	return f(intp, cmd)
}

var errNoFont = errors.New("no font atlas loaded")
var errNoIcons = errors.New("no icon atlas loaded")

func quitOp(intp *Intp, cmd Command) (error, bool) {
	return nil, true
}

func glyphOp(intp *Intp, cmd Command) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	r, err := parseRune(cmd.arg)
	if err != nil {
		return err, false
	}
	g, ok := intp.font.Lookup(r)
	if !ok {
		return fmt.Errorf("no glyph for %s", fontinfo.DescribeMissing(r)), false
	}
	pterm.DefaultTable.WithData(glyphRows(g)).Render()
	return nil, false
}

func iconOp(intp *Intp, cmd Command) (error, bool) {
	if intp.icons == nil {
		return errNoIcons, false
	}
	box, ok := findIcon(intp.icons, cmd.arg)
	if !ok {
		return fmt.Errorf("no icon named %q", cmd.arg), false
	}
	pterm.DefaultTable.WithHasHeader().WithData(iconRows([]atlas.IconBox{box})).Render()
	return nil, false
}

func listOp(intp *Intp, cmd Command) (error, bool) {
	what := strings.ToLower(cmd.arg)
	switch what {
	case "glyphs", "icons", "":
	default:
		return fmt.Errorf("cannot list %q (expected glyphs|icons)", cmd.arg), false
	}
	if what == "glyphs" && intp.font == nil {
		return errNoFont, false
	}
	if what == "icons" && intp.icons == nil {
		return errNoIcons, false
	}
	if intp.font != nil && what != "icons" {
		glyphs := intp.font.Glyphs(false)
		pterm.Info.Printf("%d glyphs\n", len(glyphs))
		pterm.DefaultTable.WithHasHeader().WithData(glyphListRows(glyphs)).Render()
	}
	if intp.icons != nil && what != "glyphs" {
		pterm.Info.Printf("%d icons\n", len(intp.icons.Icons))
		pterm.DefaultTable.WithHasHeader().WithData(iconRows(intp.icons.Icons)).Render()
	}
	return nil, false
}

func infoOp(intp *Intp, cmd Command) (error, bool) {
	if intp.font == nil && intp.icons == nil {
		return errors.New("no atlas loaded"), false
	}
	if intp.font != nil {
		pterm.Info.Println("Font atlas " + intp.fontPath)
		pterm.DefaultTable.WithData(fontInfoRows(intp.font)).Render()
	}
	if intp.icons != nil {
		pterm.Info.Println("Icon atlas " + intp.iconsPath)
		ia := intp.icons.Atlas
		pterm.DefaultTable.WithData([][]string{
			{"Size", fmt.Sprintf("%d×%d", ia.Width, ia.Height)},
			{"Icon size", strconv.Itoa(ia.Size)},
			{"Distance range", codegen.FormatFloat(ia.DistanceRange)},
			{"Icons", strconv.Itoa(len(intp.icons.Icons))},
		}).Render()
	}
	return nil, false
}

// --- Helpers ----------------------------------------------------------

// parseRune reads a code point given as a single character or in
// hexadecimal notation (U+0041, 0x41).
func parseRune(arg string) (rune, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, errors.New("missing character argument")
	}
	if utf8.RuneCountInString(arg) == 1 {
		r, _ := utf8.DecodeRuneInString(arg)
		return r, nil
	}
	hex := arg
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	default:
		return 0, fmt.Errorf("invalid character %q (use a single character or U+hex)", arg)
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || u > unicode.MaxRune {
		return 0, fmt.Errorf("invalid code point %q", arg)
	}
	return rune(u), nil
}

// findIcon looks up an icon by name. Names are matched case-insensitively
// if there is no exact match.
func findIcon(ia *atlas.IconAtlas, name string) (atlas.IconBox, bool) {
	if box, ok := ia.Lookup(name); ok {
		return box, true
	}
	for _, box := range ia.Icons {
		if strings.EqualFold(box.Name, name) {
			return box, true
		}
	}
	return atlas.IconBox{}, false
}

func glyphRows(g atlas.Glyph) [][]string {
	f := codegen.FormatFloat
	return [][]string{
		{"Code point", fmt.Sprintf("U+%04X %s", g.Codepoint, printable(rune(g.Codepoint)))},
		{"Advance", f(g.Advance)},
		{"Plane bounds", fmt.Sprintf("%s, %s, %s, %s", f(g.Plane.Left), f(g.Plane.Bottom),
			f(g.Plane.Right), f(g.Plane.Top))},
		{"Atlas bounds", fmt.Sprintf("%s, %s, %s, %s", f(g.Atlas.Left), f(g.Atlas.Bottom),
			f(g.Atlas.Right), f(g.Atlas.Top))},
	}
}

func glyphListRows(glyphs []atlas.Glyph) [][]string {
	data := [][]string{{"Code point", "Char", "Advance", "Atlas box"}}
	for _, g := range glyphs {
		data = append(data, []string{
			fmt.Sprintf("U+%04X", g.Codepoint),
			printable(rune(g.Codepoint)),
			codegen.FormatFloat(g.Advance),
			fmt.Sprintf("%s×%s", codegen.FormatFloat(math.Abs(g.Atlas.Right-g.Atlas.Left)),
				codegen.FormatFloat(math.Abs(g.Atlas.Top-g.Atlas.Bottom))),
		})
	}
	return data
}

func iconRows(boxes []atlas.IconBox) [][]string {
	data := [][]string{{"Name", "X", "Y", "W", "H"}}
	for _, b := range boxes {
		data = append(data, []string{
			b.Name, strconv.Itoa(b.X), strconv.Itoa(b.Y), strconv.Itoa(b.W), strconv.Itoa(b.H),
		})
	}
	return data
}

func fontInfoRows(fa *atlas.FontAtlas) [][]string {
	f := codegen.FormatFloat
	var data [][]string
	if info := fa.Atlas; info != nil {
		origin := "top"
		if info.BottomUp() {
			origin = "bottom"
		}
		data = append(data,
			[]string{"Type", info.Type},
			[]string{"Size", fmt.Sprintf("%d×%d", info.Width, info.Height)},
			[]string{"Nominal size", f(info.Size)},
			[]string{"Distance range", f(info.DistanceRange)},
			[]string{"Y origin", origin},
		)
	}
	m := fa.Metrics
	return append(data,
		[]string{"Line height", f(m.LineHeight)},
		[]string{"Ascender", f(m.Ascender)},
		[]string{"Descender", f(m.Descender)},
		[]string{"Glyphs", strconv.Itoa(len(fa.Glyphs(false)))},
	)
}

func printable(r rune) string {
	if unicode.IsPrint(r) && !unicode.IsSpace(r) {
		return string(r)
	}
	return ""
}
