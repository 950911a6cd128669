package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/psdf/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("psdf-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for building PSDF font and icon atlases and embedding them as C++ sources.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	projectCommand("build").
		SetDescription("Run the font stage and the icon stage.").
		SetShortDescription("build fonts and icons").
		SetAction(runBuildCommand)

	projectCommand("fonts").
		SetDescription("Build one PSDF atlas per TrueType font and generate its C++ sources.").
		SetShortDescription("build font atlases").
		SetAction(runFontsCommand)

	projectCommand("icons").
		SetDescription("Render every SVG icon layer and pack all layers into one icon atlas.").
		SetShortDescription("build icon atlas").
		SetAction(runIconsCommand)

	commando.
		Register("metrics").
		SetDescription("Regenerate a font metrics header from an existing atlas layout file.").
		SetShortDescription("regenerate metrics.hpp").
		AddArgument("atlas", "atlas layout file (atlas.json)", "").
		AddArgument("out", "output header", "metrics.hpp").
		AddFlag("namespace,n", "C++ namespace of the font", commando.String, "psdf").
		AddFlag("raw,r", "emit atlas bounds as found in the layout file", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "-").
		SetAction(runMetricsCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics for a TrueType font and check it against a charset.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "TrueType font file path", "").
		AddFlag("charset,s", "charset file (default charset if omitted)", commando.String, "-").
		AddFlag("missing,m", "list every missing code point", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "-").
		SetAction(runFontCommand)

	commando.
		Register("grid").
		SetDescription("Print the grid the icon atlas uses for a number of icons.").
		SetShortDescription("icon grid layout").
		AddArgument("n", "number of icons", "").
		AddFlag("cell,s", "cell size in pixels", commando.Int, 48).
		SetAction(runGridCommand)

	commando.
		Register("preview").
		SetDescription("Write a PNG of an atlas (atlas.json + atlas.bin) or a sheet of SVG icons.").
		SetShortDescription("atlas preview").
		AddArgument("input", "atlas layout file or SVG directory", "").
		AddFlag("output,o", "output PNG file", commando.String, "psdf-preview.png").
		AddFlag("scale,x", "upscaling factor", commando.Int, 1).
		AddFlag("cell,s", "cell size for icon sheets", commando.Int, 48).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "-").
		SetAction(runPreviewCommand)

	commando.Parse(nil)
}

// projectCommand registers a command operating on a project, with the
// common project flags.
func projectCommand(name string) *commando.Command {
	return commando.
		Register(name).
		AddFlag("config,c", "YAML configuration file", commando.String, "-").
		AddFlag("project,p", "project directory", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "-").
		AddFlag("force,f", "ignore stamps and rebuild everything", commando.Bool, nil)
}

// loadConfig reads the configuration named by the --config flag and applies
// the other project flags on top of it. Tracing is set up from the result.
func loadConfig(flags map[string]commando.FlagValue) *config.Config {
	path := optionalFlag(flags, "config")
	conf, err := config.Load(path)
	if err != nil {
		fatalf("%v", err)
	}
	if project := optionalFlag(flags, "project"); project != "" {
		conf.Project = project
	}
	if _, ok := flags["force"]; ok {
		conf.Force = mustFlagBool(flags["force"], "force")
	}
	if level := optionalFlag(flags, "trace"); level != "" {
		if err := setTraceLevel(conf, level); err != nil {
			fatalf("%v", err)
		}
	}
	setupTracing(conf)
	return conf
}

// setTraceLevel sets the level of every tracer of the pipeline.
func setTraceLevel(conf *config.Config, level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("invalid trace level %q (expected Debug|Info|Error)", level)
	}
	level = strings.ToUpper(level[:1]) + strings.ToLower(level[1:])
	for _, key := range config.TraceKeys {
		conf.Trace[key] = level
	}
	return nil
}

// setupTracing configures the tracers from the "trace.*" keys of a configuration.
func setupTracing(conf *config.Config) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// traceOnly sets up tracing for commands without a project.
func traceOnly(flags map[string]commando.FlagValue) {
	conf := config.Default()
	if level := optionalFlag(flags, "trace"); level != "" {
		if err := setTraceLevel(conf, level); err != nil {
			fatalf("%v", err)
		}
	}
	setupTracing(conf)
}

// optionalFlag returns the value of a string flag, with "-" meaning unset.
func optionalFlag(flags map[string]commando.FlagValue, name string) string {
	fv, ok := flags[name]
	if !ok {
		return ""
	}
	s, err := fv.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	pterm.Error.Printf("psdf-tools: "+format+"\n", args...)
	os.Exit(1)
}
