/*
Package toolexec locates and runs the external tools of the PSDF pipeline.

Three native tools take part in a build:

	msdf-atlas-gen   renders font atlases
	msdfgen          renders single icon bitmaps
	inkscape         converts SVG strokes to outlines (optional)

Tools are searched on the PATH and in a couple of project-relative
locations, mirroring where developers usually drop the Windows binaries.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.toolexec'
func tracer() tracing.Trace {
	return tracing.Select("psdf.toolexec")
}

// ErrToolNotFound is flagged if none of the candidate locations of a tool
// holds an executable.
var ErrToolNotFound = errors.New("tool not found")

// Cmd is a tool invocation.
type Cmd struct {
	Path string   // absolute path of the executable
	Args []string // arguments, without the executable
	Dir  string   // working directory; empty for the current one
}

// String returns the command line, space separated.
func (c Cmd) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Runner runs external tools. Tests substitute runners which produce the
// files a real tool would write.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) error
}

// ExecRunner runs tools as child processes.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run starts the tool and waits for it to finish. A failing tool is reported
// as a *ToolError holding the tool's console output.
func (ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	tracer().Debugf("exec %s", cmd)
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out
	if err := c.Run(); err != nil {
		terr := &ToolError{Cmd: cmd, Output: out.String(), Err: err}
		tracer().Errorf("%v", terr)
		return terr
	}
	if out.Len() > 0 {
		tracer().Debugf("%s", strings.TrimSpace(out.String()))
	}
	return nil
}

// ToolError is returned if an external tool exits with failure or cannot be
// started.
type ToolError struct {
	Cmd    Cmd    // the failed invocation
	Output string // combined stdout and stderr
	Err    error  // error from os/exec
}

// Tool is the base name of the executable.
func (e *ToolError) Tool() string {
	return filepath.Base(e.Cmd.Path)
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s failed: %v (cmd: %s)", e.Tool(), e.Err, e.Cmd)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// --- Tool discovery --------------------------------------------------------

// Finder locates tools for a project.
type Finder struct {
	Project       string // project root directory
	FontScriptDir string // font tooling directory, absolute or relative to Project
	IconScriptDir string // icon tooling directory, absolute or relative to Project
	// LookPath searches the PATH; nil means exec.LookPath.
	LookPath func(file string) (string, error)
}

// NewFinder creates a finder with the standard tool directories.
func NewFinder(project string) Finder {
	return Finder{
		Project:       project,
		FontScriptDir: filepath.Join("tools", "fonts", "script"),
		IconScriptDir: filepath.Join("tools", "icons", "script"),
	}
}

// AtlasGen locates msdf-atlas-gen.
func (f Finder) AtlasGen() (string, error) {
	return f.find("msdf-atlas-gen", false,
		filepath.Join(f.FontScriptDir, "msdf-atlas-gen.exe"),
		filepath.Join("tools", "msdf-atlas-gen", "msdf-atlas-gen.exe"),
		filepath.Join(f.FontScriptDir, "msdf-atlas-gen", "msdf-atlas-gen.exe"),
	)
}

// IconGen locates msdfgen. The project-local binary takes precedence over
// the PATH.
func (f Finder) IconGen() (string, error) {
	return f.find("msdfgen", true,
		filepath.Join(f.IconScriptDir, "msdfgen.exe"),
	)
}

// SVGEditor locates Inkscape.
func (f Finder) SVGEditor() (string, error) {
	return f.find("inkscape", false,
		filepath.Join(f.IconScriptDir, "inkscape", "bin", "inkscape.exe"),
		filepath.Join(f.IconScriptDir, "inkscape", "inkscape", "bin", "inkscape.exe"),
		filepath.Join(f.IconScriptDir, "inkscape", "inkscape.exe"),
	)
}

func (f Finder) find(name string, localFirst bool, local ...string) (string, error) {
	if localFirst {
		if p, ok := f.findLocal(local); ok {
			return p, nil
		}
	}
	lookPath := f.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, exe := range []string{name, name + ".exe"} {
		if p, err := lookPath(exe); err == nil {
			tracer().Infof("%s: %s", name, p)
			return p, nil
		}
	}
	if !localFirst {
		if p, ok := f.findLocal(local); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s (PATH, %s)", ErrToolNotFound, name, strings.Join(local, ", "))
}

func (f Finder) findLocal(candidates []string) (string, bool) {
	for _, c := range candidates {
		p := c
		if !filepath.IsAbs(c) {
			p = abs(filepath.Join(f.Project, c))
		}
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			tracer().Infof("found %s", p)
			return p, true
		}
	}
	return "", false
}

func abs(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return p
}
