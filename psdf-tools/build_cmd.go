package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/npillmayer/psdf"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runBuildCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	p := psdf.NewProject(loadConfig(flags))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	report, err := p.Build(ctx)
	printStage(report.Fonts)
	printStage(report.Icons)
	if err != nil {
		fatalf("%v", err)
	}
	pterm.Success.Println("build finished")
}

func runFontsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	runStage(flags, (*psdf.Project).BuildFonts)
}

func runIconsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	runStage(flags, (*psdf.Project).BuildIcons)
}

type stageFunc func(*psdf.Project, context.Context) (*psdf.StageReport, error)

func runStage(flags map[string]commando.FlagValue, stage stageFunc) {
	p := psdf.NewProject(loadConfig(flags))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	report, err := stage(p, ctx)
	printStage(report)
	if err != nil {
		fatalf("%v", err)
	}
}

func runMetricsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	traceOnly(flags)
	atlasPath := strings.TrimSpace(args["atlas"].Value)
	if atlasPath == "" {
		fatalf("atlas layout file is required")
	}
	out := strings.TrimSpace(args["out"].Value)
	ns, err := flags["namespace"].GetString()
	if err != nil {
		fatalf("invalid --namespace flag: %v", err)
	}
	raw := mustFlagBool(flags["raw"], "raw")
	written, err := psdf.RegenerateMetrics(atlasPath, out, strings.TrimSpace(ns), raw)
	if err != nil {
		fatalf("%v", err)
	}
	if written {
		pterm.Success.Printf("wrote %s\n", out)
	} else {
		pterm.Info.Printf("%s is up to date\n", out)
	}
}

// printStage prints what a stage did.
func printStage(r *psdf.StageReport) {
	if r == nil {
		return
	}
	if r.Skipped != "" {
		pterm.Warning.Printf("%s: skipped: %s\n", r.Stage, r.Skipped)
		return
	}
	pterm.Info.Printf("%s: %d built, %d up to date (%s)\n", r.Stage, len(r.Built), len(r.Cached), r.Tool)
	for _, b := range r.Built {
		pterm.Printf("  built   %s\n", b)
	}
	for _, path := range r.Written {
		pterm.Printf("  wrote   %s\n", path)
	}
	for _, w := range r.Warnings {
		pterm.Warning.Println(w.String())
	}
}
