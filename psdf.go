/*
Package psdf builds perceptual signed distance field (PSDF) atlases of fonts
and icons and embeds them as C++ sources into a GUI library.

We will stick to the following definitions:

▪︎ An "atlas" is a single-channel bitmap holding the distance fields of many
glyphs or icons, together with a layout description telling where each of
them lives.

▪︎ A "stage" is one half of a build: the font stage turns TrueType files
into one atlas per font, the icon stage turns SVG files into one shared
icon atlas.

▪︎ A "stamp" is a small file recording the inputs an artifact has been
generated from. Artifacts with a matching stamp are not regenerated.

Distance fields are not computed by this package. It drives the external
tools msdf-atlas-gen (fonts), msdfgen (icons) and, if available, Inkscape
(stroke-to-path conversion of icon outlines).

# Status

Stages run sequentially. Icons are packed on a uniform grid; no attempt is
made to pack icons of different sizes.

# Links

msdf-atlas-gen:
https://github.com/Chlumsky/msdf-atlas-gen

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package psdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/npillmayer/psdf/config"
	"github.com/npillmayer/psdf/internal/toolexec"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psdf'
func tracer() tracing.Trace {
	return tracing.Select("psdf")
}

// Project is a PSDF build of a firmware project.
type Project struct {
	Config *config.Config
	Runner toolexec.Runner // runs external tools
	Finder toolexec.Finder // locates external tools
}

// NewProject creates a build for a configuration, running the tools as
// child processes.
func NewProject(conf *config.Config) *Project {
	f := toolexec.NewFinder(conf.ProjectDir())
	f.FontScriptDir = conf.Fonts.Tools
	f.IconScriptDir = conf.Icons.Tools
	return &Project{
		Config: conf,
		Runner: toolexec.ExecRunner{},
		Finder: f,
	}
}

// Build runs the font stage and then the icon stage. A failing font stage
// does not prevent the icon stage from running; errors of both stages are
// joined.
func (p *Project) Build(ctx context.Context) (*Report, error) {
	report := &Report{}
	var errs []error
	fonts, err := p.BuildFonts(ctx)
	report.Fonts = fonts
	if err != nil {
		errs = append(errs, err)
	}
	if ctx.Err() != nil {
		if !errors.Is(err, ctx.Err()) {
			errs = append(errs, ctx.Err())
		}
		return report, errors.Join(errs...)
	}
	icons, err := p.BuildIcons(ctx)
	report.Icons = icons
	if err != nil {
		errs = append(errs, err)
	}
	return report, errors.Join(errs...)
}

func (p *Project) force() bool {
	return p.Config.Force
}

// --- Helpers ---------------------------------------------------------------

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// listFiles returns the names of the regular files in dir with extension ext
// (case-insensitive), sorted.
func listFiles(dir string, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		if !isFile(filepath.Join(dir, e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func stem(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
