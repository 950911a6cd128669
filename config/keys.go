package config

import (
	"sort"
	"strconv"

	"github.com/npillmayer/schuko"
)

var _ schuko.Configuration = (*Config)(nil)

// Values returns the flattened key/value view of the configuration.
func (c *Config) Values() map[string]string {
	m := map[string]string{
		"project":         c.Project,
		"fonts.dir":       c.Fonts.Dir,
		"fonts.work":      c.Fonts.Work,
		"fonts.out":       c.Fonts.Out,
		"fonts.tools":     c.Fonts.Tools,
		"fonts.size":      strconv.Itoa(c.Fonts.Size),
		"fonts.pxrange":   strconv.Itoa(c.Fonts.PxRange),
		"fonts.type":      c.Fonts.Type,
		"fonts.charset":   c.Fonts.Charset,
		"fonts.embed":     c.Fonts.Embed,
		"fonts.coverage":  strconv.FormatBool(c.Fonts.Coverage),
		"icons.dir":       c.Icons.Dir,
		"icons.work":      c.Icons.Work,
		"icons.out":       c.Icons.Out,
		"icons.tools":     c.Icons.Tools,
		"icons.size":      strconv.Itoa(c.Icons.Size),
		"icons.pxrange":   strconv.Itoa(c.Icons.PxRange),
		"icons.flipy":     strconv.FormatBool(c.Icons.FlipY),
		"tracing.adapter": c.Tracing.Adapter,
		"force":           strconv.FormatBool(c.Force),
	}
	for stem, folder := range c.Fonts.Overrides {
		m["fonts.overrides."+stem] = folder
	}
	for key, level := range c.Trace {
		m["trace."+key] = level
	}
	return m
}

// Keys returns the keys of the flattened view, sorted.
func (c *Config) Keys() []string {
	m := c.Values()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSet reports whether key has a non-empty value.
func (c *Config) IsSet(key string) bool {
	return c.Values()[key] != ""
}

// GetString returns the value of key, or "" for unknown keys.
func (c *Config) GetString(key string) string {
	return c.Values()[key]
}

// GetInt returns the value of key as an integer, or 0 if it is not a number.
func (c *Config) GetInt(key string) int {
	n, err := strconv.Atoi(c.GetString(key))
	if err != nil {
		return 0
	}
	return n
}

// GetBool returns the value of key as a boolean.
func (c *Config) GetBool(key string) bool {
	b, _ := strconv.ParseBool(c.GetString(key))
	return b
}

// IsInteractive is true for the REPL.
func (c *Config) IsInteractive() bool {
	return c.Interactive
}
