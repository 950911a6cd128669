package codegen

import (
	"fmt"
	"strings"

	"github.com/npillmayer/psdf/atlas"
)

const bytesPerLine = 16

// writeByteRows appends data as rows of 16 hex bytes, each row indented by
// two spaces and terminated by a comma.
func writeByteRows(sb *strings.Builder, data []byte) {
	for i := 0; i < len(data); i += bytesPerLine {
		end := min(i+bytesPerLine, len(data))
		sb.WriteString("  ")
		for j, b := range data[i:end] {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "0x%02x", b)
		}
		sb.WriteString(",\n")
	}
}

// AtlasDecl emits the header declaring an atlas byte array.
func AtlasDecl(varName string) string {
	var sb strings.Builder
	sb.WriteString("#pragma once\n\n")
	sb.WriteString("#include <stdint.h>\n\n")
	fmt.Fprintf(&sb, "extern const uint8_t %s[];\n", varName)
	return sb.String()
}

// AtlasDef emits the source file defining an atlas byte array declared in
// header hppName.
func AtlasDef(hppName string, varName string, data []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#include \"%s\"\n\n", hppName)
	fmt.Fprintf(&sb, "const uint8_t %s[] = {\n", varName)
	writeByteRows(&sb, data)
	sb.WriteString("};\n")
	return sb.String()
}

// AtlasProgmem emits a self-contained header with the atlas byte array
// placed in flash memory.
func AtlasProgmem(varName string, data []byte) string {
	var sb strings.Builder
	sb.WriteString("#pragma once\n\n")
	sb.WriteString("#include <stdint.h>\n\n")
	fmt.Fprintf(&sb, "inline static const uint8_t %s[] PROGMEM  = {\n", varName)
	writeByteRows(&sb, data)
	sb.WriteString("};\n")
	return sb.String()
}

// FontMetrics emits the metrics header of a font atlas. Glyphs are expected
// in code point order, as returned by atlas.FontAtlas.Glyphs.
func FontMetrics(ns string, fa *atlas.FontAtlas, glyphs []atlas.Glyph) string {
	info := atlas.Info{}
	if fa.Atlas != nil {
		info = *fa.Atlas
	}
	f := FormatFloat
	var sb strings.Builder
	sb.WriteString("#pragma once\n")
	sb.WriteString("#include <stdint.h>\n")
	sb.WriteString("\n")
	sb.WriteString("namespace pipgui\n{")
	fmt.Fprintf(&sb, "\nnamespace %s\n{", ns)
	fmt.Fprintf(&sb, "\nstatic constexpr uint16_t AtlasWidth = %d;", info.Width)
	fmt.Fprintf(&sb, "\nstatic constexpr uint16_t AtlasHeight = %d;", info.Height)
	fmt.Fprintf(&sb, "\nstatic constexpr float DistanceRange = %sf;", f(info.DistanceRange))
	fmt.Fprintf(&sb, "\nstatic constexpr float NominalSizePx = %sf;", f(info.Size))
	fmt.Fprintf(&sb, "\nstatic constexpr float Ascender = %sf;", f(fa.Metrics.Ascender))
	fmt.Fprintf(&sb, "\nstatic constexpr float Descender = %sf;", f(fa.Metrics.Descender))
	fmt.Fprintf(&sb, "\nstatic constexpr float LineHeight = %sf;\n", f(fa.Metrics.LineHeight))

	sb.WriteString("\nstruct Glyph\n{")
	sb.WriteString("\n    uint32_t codepoint;")
	sb.WriteString("\n    float advance;")
	sb.WriteString("\n    float pl, pb, pr, pt;")
	sb.WriteString("\n    float al, ab, ar, at;")
	sb.WriteString("\n};\n")

	fmt.Fprintf(&sb, "\nstatic constexpr uint16_t GlyphCount = %d;\n", len(glyphs))
	sb.WriteString("\nstatic const Glyph Glyphs[GlyphCount] =\n{")
	for _, g := range glyphs {
		fmt.Fprintf(&sb, "\n    {%du, %sf, %sf, %sf, %sf, %sf, %sf, %sf, %sf, %sf},",
			g.Codepoint, f(g.Advance),
			f(g.Plane.Left), f(g.Plane.Bottom), f(g.Plane.Right), f(g.Plane.Top),
			f(g.Atlas.Left), f(g.Atlas.Bottom), f(g.Atlas.Right), f(g.Atlas.Top))
	}
	sb.WriteString("\n};\n")
	sb.WriteString("\n}\n}")
	sb.WriteString("\n")
	return sb.String()
}
