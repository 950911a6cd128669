package psdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/psdf/atlas"
	"github.com/npillmayer/psdf/codegen"
	"github.com/npillmayer/psdf/gridpack"
	"github.com/npillmayer/psdf/internal/toolexec"
	"github.com/npillmayer/psdf/stamp"
	"github.com/npillmayer/psdf/svgicon"
)

// iconAtlasVersion tags the stamp of the icon atlas. Changing the way icons
// are packed requires a new tag.
const iconAtlasVersion = "icons_psdf_v2_layers"

// iconLayerVersion tags per-layer stamps.
const iconLayerVersion = "icon_layer_psdf_v2"

// Stroke states of a rendered layer, as recorded in its stamp.
const (
	strokeNone      = "none"
	strokeConverted = "converted"
	strokeNoEditor  = "no-editor"
	strokeFailed    = "failed"
)

// iconSet accumulates the rendered icon layers, in atlas order.
type iconSet struct {
	files   []string // SVG file names
	bins    [][]byte
	hashes  []string
	names   []string
	aliases []string
}

// iconTools are the tools of the icon stage. The SVG editor is optional.
type iconTools struct {
	gen    string
	editor string
}

// BuildIcons runs the icon stage: every layer of every SVG file in the icon
// directory is rendered by msdfgen, and all bitmaps are packed into a single
// icon atlas. The stage is skipped if there is no icon directory, no icon
// tool or no SVG file.
func (p *Project) BuildIcons(ctx context.Context) (*StageReport, error) {
	conf := p.Config
	report := newStageReport("icons")
	dir := conf.Path(conf.Icons.Dir)
	if !isDir(dir) {
		report.skip("SVG dir not found: %s", dir)
		return report, nil
	}
	var tools iconTools
	var err error
	if tools.gen, err = p.Finder.IconGen(); err != nil {
		report.skip("%v", err)
		return report, nil
	}
	report.Tool = tools.gen
	svgs, err := listFiles(dir, ".svg")
	if err != nil {
		return report, stageError("icons", dir, err)
	}
	if len(svgs) == 0 {
		report.skip("no SVG files in %s", dir)
		return report, nil
	}
	work := conf.Path(conf.Icons.Work)
	if err := os.MkdirAll(work, 0o755); err != nil {
		return report, stageError("icons", work, err)
	}
	if editor, err := p.Finder.SVGEditor(); err == nil {
		tools.editor = editor
	}
	set := &iconSet{files: svgs}
	for _, name := range svgs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		path := filepath.Join(dir, name)
		if err := p.buildIcon(ctx, tools, path, set, report); err != nil {
			return report, stageError("icons", path, err)
		}
	}
	if err := p.packIcons(set, report); err != nil {
		return report, stageError("icons", "", err)
	}
	if err := p.writeIconSources(set, report); err != nil {
		return report, stageError("icons", "", err)
	}
	return report, nil
}

// buildIcon renders all layers of an SVG icon.
func (p *Project) buildIcon(ctx context.Context, tools iconTools, path string, set *iconSet,
	report *StageReport) error {
	//
	conf := p.Config
	px := conf.Icons.Size
	work := conf.Path(conf.Icons.Work)
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	base := stem(path)
	var xform []string
	if box, ok := svgicon.ViewBox(src); ok {
		if x, ok := svgicon.Transform(box, px, conf.Icons.FlipY); ok {
			xform = x.Args()
		}
	} else {
		tracer().Debugf("%s: no viewBox, rendering untransformed", filepath.Base(path))
	}
	layers := svgicon.SplitLayers(src)
	split := layers != nil
	if !split {
		layers = []svgicon.Layer{{Name: "layer0"}}
	}
	for _, layer := range layers {
		if layer.StrokeOnly {
			report.warn(path, "stroke-only path in %s (layer %s) - stroke may be ignored; "+
				"consider expanding stroke to path", filepath.Base(path), layer.Name)
		}
		source := path
		needsStroke := split && layer.Stroke
		if split {
			source = filepath.Join(work, fmt.Sprintf("%s__%s.svg", base, layer.Name))
			if _, err := codegen.WriteIfChanged(source, layer.SVG); err != nil {
				return err
			}
		} else {
			needsStroke = tools.editor != "" && svgicon.HasStroke(src)
		}
		out := filepath.Join(work, fmt.Sprintf("%s__%s_%d.bin", base, layer.Name, px))
		layerStamp := strings.TrimSuffix(out, ".bin") + ".stamp"
		hash, err := stamp.HashFile(source)
		if err != nil {
			return err
		}
		stroke := strokeNone
		if needsStroke {
			stroke = strokeConverted
			if tools.editor == "" {
				stroke = strokeNoEditor
			}
		}
		stampFor := func(state string) string {
			return stamp.Lines(iconLayerVersion, hash,
				strconv.Itoa(px), strconv.Itoa(conf.Icons.PxRange),
				strings.Join(xform, " "),
				"stroke="+state)
		}
		label := fmt.Sprintf("%s %s", filepath.Base(path), layer.Name)
		if !p.force() && stamp.Fresh(layerStamp, stampFor(stroke), out) {
			if stroke == strokeNoEditor {
				report.warn(path, "inkscape not found, cannot stroke-to-path for %s", layerLabel(base, layer.Name, split))
			}
			report.Cached = append(report.Cached, label)
		} else {
			if needsStroke {
				var ok bool
				source, ok = p.strokeToPath(ctx, tools.editor, path, source, base, layer.Name, split, report)
				if !ok && stroke == strokeConverted {
					stroke = strokeFailed
				}
			}
			cmd := toolexec.Cmd{
				Path: tools.gen,
				Args: toolexec.IconGenArgs(toolexec.IconGenOptions{
					SVG:       source,
					Out:       out,
					Size:      px,
					PxRange:   conf.Icons.PxRange,
					Transform: xform,
				}),
				Dir: work,
			}
			if err := p.Runner.Run(ctx, cmd); err != nil {
				tracer().Errorf("cmd: %s", cmd)
				return err
			}
			// a failed conversion is stamped as such, the next build will retry it
			if err := stamp.Write(layerStamp, stampFor(stroke)); err != nil {
				return err
			}
			report.Built = append(report.Built, label)
		}
		b, err := os.ReadFile(out)
		if err != nil {
			return err
		}
		set.bins = append(set.bins, b)
		set.hashes = append(set.hashes, stamp.HashBytes(b))
		set.names = append(set.names, svgicon.IconName(base, layer.Name, split))
		set.aliases = append(set.aliases, svgicon.IconAlias(base, layer.Name, split))
	}
	return nil
}

// strokeToPath converts the strokes of an SVG source to outlines. It returns
// the SVG to render and whether the conversion succeeded. If it did not,
// the original source is returned. Warnings are filed for the icon file.
func (p *Project) strokeToPath(ctx context.Context, editor, icon, source, base, layer string, split bool,
	report *StageReport) (string, bool) {
	//
	what := layerLabel(base, layer, split)
	if editor == "" {
		report.warn(icon, "inkscape not found, cannot stroke-to-path for %s", what)
		return source, false
	}
	work := p.Config.Path(p.Config.Icons.Work)
	out := filepath.Join(work, fmt.Sprintf("%s__%s__stroked.svg", base, layer))
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		tracer().Debugf("cannot remove stale %s: %v", out, err)
	}
	cmd := toolexec.Cmd{Path: editor, Args: toolexec.StrokeToPathArgs(source, out)}
	if err := p.Runner.Run(ctx, cmd); err != nil || !isFile(out) {
		report.warn(icon, "stroke-to-path failed for %s", what)
		return source, false
	}
	return out, true
}

func layerLabel(base, layer string, split bool) string {
	if split {
		return base + " " + layer
	}
	return base
}

// packIcons composes the icon atlas, unless the atlas of a previous build
// holds exactly the same bitmaps.
func (p *Project) packIcons(set *iconSet, report *StageReport) error {
	conf := p.Config
	px, pxrange := conf.Icons.Size, conf.Icons.PxRange
	work := conf.Path(conf.Icons.Work)
	stampPath := filepath.Join(work, "stamp.txt")
	binPath := filepath.Join(work, "atlas.bin")
	jsonPath := filepath.Join(work, "atlas.json")
	want := stamp.Lines(iconAtlasVersion,
		strconv.Itoa(px), strconv.Itoa(pxrange),
		stamp.PyList(set.files), stamp.PyList(set.hashes))
	if !p.force() && stamp.Fresh(stampPath, want, binPath, jsonPath) {
		tracer().Infof("icon atlas up to date")
		return nil
	}
	grid, data, err := gridpack.Compose(set.bins, px)
	if err != nil {
		return err
	}
	ia := &atlas.IconAtlas{
		Atlas: atlas.IconInfo{
			Width:         grid.Width,
			Height:        grid.Height,
			DistanceRange: float64(pxrange),
			Size:          px,
		},
		Icons: make([]atlas.IconBox, len(grid.Boxes)),
	}
	for i, box := range grid.Boxes {
		ia.Icons[i] = atlas.IconBox{Name: set.names[i], X: box.X, Y: box.Y, W: box.W, H: box.H}
	}
	if err := os.WriteFile(binPath, data, 0o644); err != nil {
		return err
	}
	if err := atlas.WriteIconAtlas(jsonPath, ia); err != nil {
		return err
	}
	tracer().Infof("icon atlas %d×%d with %d icons", grid.Width, grid.Height, len(grid.Boxes))
	return stamp.Write(stampPath, want)
}

// writeIconSources generates the C++ sources of the icon atlas.
func (p *Project) writeIconSources(set *iconSet, report *StageReport) error {
	conf := p.Config
	px := conf.Icons.Size
	work := conf.Path(conf.Icons.Work)
	ia, err := atlas.ReadIconAtlas(filepath.Join(work, "atlas.json"))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(work, "atlas.bin"))
	if err != nil {
		return err
	}
	boxes := make([]gridpack.Box, len(ia.Icons))
	for i, ic := range ia.Icons {
		boxes[i] = gridpack.Box{X: ic.X, Y: ic.Y, W: ic.W, H: ic.H}
	}
	grid := gridpack.Boxes(boxes, ia.Atlas.Width, ia.Atlas.Height, len(set.names), px)
	iconSet := codegen.IconSet{
		Names:     set.names,
		Aliases:   set.aliases,
		Boxes:     make([]atlas.IconBox, len(grid.Boxes)),
		AtlasW:    grid.Width,
		AtlasH:    grid.Height,
		NominalPx: px,
		PxRange:   float64(conf.Icons.PxRange),
	}
	for i, box := range grid.Boxes {
		iconSet.Boxes[i] = atlas.IconBox{Name: set.names[i], X: box.X, Y: box.Y, W: box.W, H: box.H}
	}
	out := conf.Path(conf.Icons.Out)
	for _, f := range []struct{ name, content string }{
		{"icons.hpp", codegen.IconsDecl()},
		{"icons.cpp", codegen.IconsDef(data)},
		{"metrics.hpp", codegen.IconMetrics(iconSet)},
	} {
		path := filepath.Join(out, f.name)
		written, err := codegen.WriteIfChanged(path, f.content)
		if err != nil {
			return err
		}
		report.wrote(path, written)
	}
	return nil
}
