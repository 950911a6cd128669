package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/psdf/atlas"
	"github.com/npillmayer/psdf/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'psdf'
func tracer() tracing.Trace {
	return tracing.Select("psdf")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontAtlas := flag.String("font", "", "Font atlas layout file (atlas.json)")
	iconAtlas := flag.String("icons", "", "Icon atlas layout file (atlas.json)")
	flag.Parse()

	// set up logging
	conf := config.Default()
	conf.Interactive = true
	conf.Trace["psdf"] = *tlevel
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the PSDF atlas inspector")

	intp := &Intp{}
	if err := intp.loadFontAtlas(*fontAtlas); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	if err := intp.loadIconAtlas(*iconAtlas); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	if intp.font == nil && intp.icons == nil {
		pterm.Error.Println("no atlas loaded, use -font and/or -icons")
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("psdf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                            // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl      *readline.Instance
	font      *atlas.FontAtlas
	fontPath  string
	icons     *atlas.IconAtlas
	iconsPath string
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	defer intp.repl.Close()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// --- Atlas Loading ----------------------------------------------------

func (intp *Intp) loadFontAtlas(path string) error {
	if path == "" {
		return nil
	}
	fa, err := atlas.ReadFontAtlas(path)
	if err != nil {
		return fmt.Errorf("cannot load font atlas: %w", err)
	}
	intp.font, intp.fontPath = fa, path
	tracer().Infof("loaded font atlas %s with %d glyphs", path, len(fa.Glyphs(false)))
	return nil
}

func (intp *Intp) loadIconAtlas(path string) error {
	if path == "" {
		return nil
	}
	ia, err := atlas.ReadIconAtlas(path)
	if err != nil {
		return fmt.Errorf("cannot load icon atlas: %w", err)
	}
	intp.icons, intp.iconsPath = ia, path
	tracer().Infof("loaded icon atlas %s with %d icons", path, len(ia.Icons))
	return nil
}
