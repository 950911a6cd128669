package codegen

import (
	"fmt"
	"strings"

	"github.com/npillmayer/psdf/atlas"
)

// IconSet is the input for the icon metrics header.
// Names, Aliases and Boxes run in parallel, in icon id order.
type IconSet struct {
	Names     []string
	Aliases   []string
	Boxes     []atlas.IconBox
	AtlasW    int
	AtlasH    int
	NominalPx int
	PxRange   float64
}

// IconsDecl emits the header declaring the icon atlas byte array.
func IconsDecl() string {
	return AtlasDecl("icons")
}

// IconsDef emits the source file defining the icon atlas byte array.
func IconsDef(data []byte) string {
	return AtlasDef("icons.hpp", "icons", data)
}

// IconMetrics emits the icon metrics header: atlas constants, the IconId
// enumeration, the table of icon boxes and IconId aliases in namespace
// pipgui.
func IconMetrics(set IconSet) string {
	var sb strings.Builder
	sb.WriteString("#pragma once\n")
	sb.WriteString("#include <stdint.h>\n")
	sb.WriteString("\n")
	sb.WriteString("namespace pipgui\n{")
	sb.WriteString("\nnamespace psdf_icons\n{")
	fmt.Fprintf(&sb, "\nstatic constexpr uint16_t AtlasWidth = %d;", set.AtlasW)
	fmt.Fprintf(&sb, "\nstatic constexpr uint16_t AtlasHeight = %d;", set.AtlasH)
	fmt.Fprintf(&sb, "\nstatic constexpr float DistanceRange = %sf;", FormatFloat(set.PxRange))
	fmt.Fprintf(&sb, "\nstatic constexpr float NominalSizePx = %sf;\n", FormatFloat(float64(set.NominalPx)))

	sb.WriteString("\nenum IconId : uint16_t\n{")
	for i, name := range set.Names {
		fmt.Fprintf(&sb, "\n    Icon%s = %d%s", name, i, listComma(i, len(set.Names)))
	}
	sb.WriteString("\n};\n")

	sb.WriteString("\nstruct Icon\n{")
	sb.WriteString("\n    uint16_t x;")
	sb.WriteString("\n    uint16_t y;")
	sb.WriteString("\n    uint16_t w;")
	sb.WriteString("\n    uint16_t h;")
	sb.WriteString("\n};\n")

	fmt.Fprintf(&sb, "\nstatic constexpr uint16_t IconCount = %d;\n", len(set.Names))
	sb.WriteString("\nstatic constexpr Icon Icons[IconCount] =\n{")
	for i, b := range set.Boxes {
		fmt.Fprintf(&sb, "\n    {%du, %du, %du, %du}%s", b.X, b.Y, b.W, b.H, listComma(i, len(set.Boxes)))
	}
	sb.WriteString("\n};\n")

	sb.WriteString("\n}\n}")
	sb.WriteString("\n\nnamespace pipgui\n{\n")
	sb.WriteString("using IconId = ::pipgui::psdf_icons::IconId;\n")
	for i, name := range set.Names {
		if i >= len(set.Aliases) {
			break
		}
		fmt.Fprintf(&sb, "static constexpr IconId Icon%s = ::pipgui::psdf_icons::Icon%s;\n", name, name)
		fmt.Fprintf(&sb, "static constexpr IconId %s = ::pipgui::psdf_icons::Icon%s;\n", name, name)
		fmt.Fprintf(&sb, "static constexpr IconId %s = ::pipgui::psdf_icons::Icon%s;\n", set.Aliases[i], name)
	}
	sb.WriteString("}\n")
	sb.WriteString("\n")
	return sb.String()
}

func listComma(i, n int) string {
	if i+1 < n {
		return ","
	}
	return ""
}
