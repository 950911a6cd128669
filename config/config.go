/*
Package config holds the configuration of a PSDF build.

Configuration is read from an optional YAML file. Every value missing from
the file keeps its default, which reproduces the directory layout of a
pipGUI firmware project:

	tools/fonts/TTF     font sources
	tools/fonts/PSDF    font work directory (charset, atlas, stamps)
	tools/icons/SVG     icon sources
	tools/icons/PSDF    icon work directory
	lib/pipSystem/pipGUI/{fonts,icons}   generated C++ sources

Relative directories are relative to the project directory. Besides the
typed fields, a Config offers a flattened key/value view ("fonts.size",
"trace.psdf.fonts", ...) through the schuko.Configuration interface.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'psdf.config'
func tracer() tracing.Trace {
	return tracing.Select("psdf.config")
}

// ErrInvalid is flagged for configuration values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Embed modes for font atlases.
const (
	EmbedSplit  = "split"  // <Font>.hpp declaration + <Font>.cpp definition
	EmbedHeader = "header" // single <Font>.h with a PROGMEM array
)

// AtlasTypes lists the atlas types msdf-atlas-gen understands.
var AtlasTypes = []string{"hardmask", "softmask", "sdf", "psdf", "msdf", "mtsdf"}

// TraceKeys are the tracer keys of the pipeline's packages.
var TraceKeys = []string{
	"psdf", "psdf.config", "psdf.codegen", "psdf.stamp", "psdf.charset",
	"psdf.atlas", "psdf.gridpack", "psdf.svgicon", "psdf.fontinfo",
	"psdf.preview", "psdf.toolexec",
}

// Fonts configures the font stage.
type Fonts struct {
	Dir       string            `yaml:"dir"`
	Work      string            `yaml:"work"`
	Out       string            `yaml:"out"`
	Tools     string            `yaml:"tools"`
	Size      int               `yaml:"size"`
	PxRange   int               `yaml:"pxrange"`
	Type      string            `yaml:"type"`
	Charset   string            `yaml:"charset"` // charset file; empty for the default charset
	Embed     string            `yaml:"embed"`
	Coverage  bool              `yaml:"coverage"`
	Overrides map[string]string `yaml:"overrides"` // lower-case file stem -> folder name
}

// Icons configures the icon stage.
type Icons struct {
	Dir     string `yaml:"dir"`
	Work    string `yaml:"work"`
	Out     string `yaml:"out"`
	Tools   string `yaml:"tools"`
	Size    int    `yaml:"size"`
	PxRange int    `yaml:"pxrange"`
	FlipY   bool   `yaml:"flipy"`
}

// Tracing selects the trace adapter.
type Tracing struct {
	Adapter string `yaml:"adapter"`
}

// Config is the configuration of a PSDF build.
type Config struct {
	Project     string            `yaml:"project"`
	Fonts       Fonts             `yaml:"fonts"`
	Icons       Icons             `yaml:"icons"`
	Tracing     Tracing           `yaml:"tracing"`
	Trace       map[string]string `yaml:"trace"` // tracer key -> level
	Force       bool              `yaml:"-"`     // ignore stamps
	Interactive bool              `yaml:"-"`
	file        string
}

// Default returns a configuration for a project in the current directory.
func Default() *Config {
	c := &Config{Icons: Icons{FlipY: true}}
	c.InitDefaults()
	return c
}

// InitDefaults sets every unset value to its default.
func (c *Config) InitDefaults() {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	defInt := func(n *int, v int) {
		if *n == 0 {
			*n = v
		}
	}
	def(&c.Project, ".")
	def(&c.Fonts.Dir, filepath.Join("tools", "fonts", "TTF"))
	def(&c.Fonts.Work, filepath.Join("tools", "fonts", "PSDF"))
	def(&c.Fonts.Out, filepath.Join("lib", "pipSystem", "pipGUI", "fonts"))
	def(&c.Fonts.Tools, filepath.Join("tools", "fonts", "script"))
	defInt(&c.Fonts.Size, 48)
	defInt(&c.Fonts.PxRange, 8)
	def(&c.Fonts.Type, "psdf")
	def(&c.Fonts.Embed, EmbedSplit)
	if c.Fonts.Overrides == nil {
		c.Fonts.Overrides = map[string]string{"wixmadefordisplay": "WixMadeForDisplay"}
	}
	def(&c.Icons.Dir, filepath.Join("tools", "icons", "SVG"))
	def(&c.Icons.Work, filepath.Join("tools", "icons", "PSDF"))
	def(&c.Icons.Out, filepath.Join("lib", "pipSystem", "pipGUI", "icons"))
	def(&c.Icons.Tools, filepath.Join("tools", "icons", "script"))
	defInt(&c.Icons.Size, 48)
	defInt(&c.Icons.PxRange, 8)
	def(&c.Tracing.Adapter, "go")
	if c.Trace == nil {
		c.Trace = make(map[string]string)
	}
	for _, key := range TraceKeys {
		if _, ok := c.Trace[key]; !ok {
			c.Trace[key] = "Error"
			if key == "psdf" {
				c.Trace[key] = "Info"
			}
		}
	}
}

// Load reads a YAML configuration file and fills in defaults. An empty path
// yields the default configuration. A relative project directory in a file
// is relative to the file's location.
func Load(path string) (*Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.file = path
	if !filepath.IsAbs(c.Project) {
		c.Project = filepath.Join(filepath.Dir(path), c.Project)
	}
	tracer().Infof("configuration loaded from %s", path)
	return c, nil
}

// Parse decodes YAML configuration text on top of the defaults.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	c.InitDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values for plausibility.
func (c *Config) Validate() error {
	if c.Fonts.Size <= 0 || c.Fonts.PxRange <= 0 {
		return fmt.Errorf("%w: font size and pxrange must be positive (%d, %d)",
			ErrInvalid, c.Fonts.Size, c.Fonts.PxRange)
	}
	if c.Icons.Size <= 0 || c.Icons.PxRange <= 0 {
		return fmt.Errorf("%w: icon size and pxrange must be positive (%d, %d)",
			ErrInvalid, c.Icons.Size, c.Icons.PxRange)
	}
	if !contains(AtlasTypes, c.Fonts.Type) {
		return fmt.Errorf("%w: unknown atlas type %q", ErrInvalid, c.Fonts.Type)
	}
	if c.Fonts.Embed != EmbedSplit && c.Fonts.Embed != EmbedHeader {
		return fmt.Errorf("%w: unknown embed mode %q", ErrInvalid, c.Fonts.Embed)
	}
	return nil
}

// File is the path the configuration has been loaded from, if any.
func (c *Config) File() string {
	return c.file
}

// ProjectDir returns the absolute project directory.
func (c *Config) ProjectDir() string {
	if p, err := filepath.Abs(c.Project); err == nil {
		return p
	}
	return c.Project
}

// Path resolves a configured directory against the project directory.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectDir(), p)
}

func contains(l []string, s string) bool {
	for _, x := range l {
		if x == s {
			return true
		}
	}
	return false
}
