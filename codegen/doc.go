/*
Package codegen emits the C++ sources which embed PSDF atlases into the
GUI library: byte-array definitions of atlas pixel data and headers with
atlas metrics and glyph/icon lookup tables.

Generated text is deterministic. Files are only rewritten if their content
changes, so that incremental builds of the consuming firmware are not
triggered needlessly.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package codegen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.codegen'
func tracer() tracing.Trace {
	return tracing.Select("psdf.codegen")
}
