package psdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/psdf/atlas"
	"github.com/npillmayer/psdf/charset"
	"github.com/npillmayer/psdf/codegen"
	"github.com/npillmayer/psdf/config"
	"github.com/npillmayer/psdf/fontinfo"
	"github.com/npillmayer/psdf/internal/toolexec"
	"github.com/npillmayer/psdf/stamp"
)

// FontFolder derives the folder and symbol name of a font from its file
// stem: "wix_made_for_display" becomes "WixMadeForDisplay". Overrides map
// lower-case stems to folder names.
func FontFolder(stem string, overrides map[string]string) string {
	if folder, ok := overrides[strings.ToLower(stem)]; ok {
		return folder
	}
	return codegen.SnakeToCamel(stem)
}

// fontJob holds the paths involved in building one font.
type fontJob struct {
	ttf      string
	folder   string
	ident    string
	work     string // work directory of this font
	charset  string
	json     string
	bin      string
	stamp    string
	outDir   string
	ranTool  bool
	stampTxt string
}

func (p *Project) newFontJob(ttf string) *fontJob {
	conf := p.Config
	folder := FontFolder(stem(ttf), conf.Fonts.Overrides)
	work := filepath.Join(conf.Path(conf.Fonts.Work), folder)
	return &fontJob{
		ttf:     ttf,
		folder:  folder,
		ident:   codegen.SafeIdent(folder),
		work:    work,
		charset: filepath.Join(work, "charset.txt"),
		json:    filepath.Join(work, "atlas.json"),
		bin:     filepath.Join(work, "atlas.bin"),
		stamp:   filepath.Join(work, "stamp.txt"),
		outDir:  filepath.Join(conf.Path(conf.Fonts.Out), folder),
	}
}

// BuildFonts runs the font stage: one atlas per TrueType file in the fonts
// directory. The stage is skipped if there is no fonts directory or if
// msdf-atlas-gen cannot be found. The first font failing aborts the stage.
func (p *Project) BuildFonts(ctx context.Context) (*StageReport, error) {
	report := newStageReport("fonts")
	dir := p.Config.Path(p.Config.Fonts.Dir)
	if !isDir(dir) {
		report.skip("TTF dir not found: %s", dir)
		return report, nil
	}
	exe, err := p.Finder.AtlasGen()
	if err != nil {
		report.skip("%v", err)
		return report, nil
	}
	report.Tool = exe
	tracer().Infof("msdf-atlas-gen: %s", exe)
	ttfs, err := listFiles(dir, ".ttf")
	if err != nil {
		return report, stageError("fonts", dir, err)
	}
	charsetText, err := p.charsetText()
	if err != nil {
		return report, stageError("fonts", p.Config.Fonts.Charset, err)
	}
	for _, name := range ttfs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		job := p.newFontJob(filepath.Join(dir, name))
		if err := p.buildFont(ctx, exe, job, charsetText, report); err != nil {
			return report, stageError("fonts", job.ttf, err)
		}
	}
	return report, nil
}

// charsetText is the content of the configured charset file or the default
// charset.
func (p *Project) charsetText() (string, error) {
	if p.Config.Fonts.Charset == "" {
		return charset.Default(), nil
	}
	b, err := os.ReadFile(p.Config.Path(p.Config.Fonts.Charset))
	if err != nil {
		return "", err
	}
	if _, err := charset.Parse(string(b)); err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *Project) buildFont(ctx context.Context, exe string, job *fontJob, charsetText string,
	report *StageReport) error {
	//
	conf := p.Config
	if err := os.MkdirAll(job.work, 0o755); err != nil {
		return err
	}
	if _, err := codegen.WriteIfChanged(job.charset, charsetText); err != nil {
		return err
	}
	if conf.Fonts.Coverage {
		p.checkCoverage(job.ttf, charsetText, report)
	}
	hash, err := stamp.HashFile(job.ttf)
	if err != nil {
		return err
	}
	params := map[string]string{
		"font":    job.ttf,
		"type":    conf.Fonts.Type,
		"size":    strconv.Itoa(conf.Fonts.Size),
		"pxrange": strconv.Itoa(conf.Fonts.PxRange),
		"potr":    "1",
		"charset": job.charset,
	}
	job.stampTxt = stamp.Lines(hash, stamp.PyObject(params))
	if !p.force() && stamp.Fresh(job.stamp, job.stampTxt, job.json, job.bin) {
		tracer().Infof("%s: up to date", job.folder)
		report.Cached = append(report.Cached, filepath.Base(job.ttf))
	} else {
		cmd := toolexec.Cmd{
			Path: exe,
			Args: toolexec.AtlasGenArgs(toolexec.AtlasGenOptions{
				Font:     job.ttf,
				Charset:  job.charset,
				ImageOut: job.bin,
				JSON:     job.json,
				FontName: job.folder,
				Type:     conf.Fonts.Type,
				Size:     conf.Fonts.Size,
				PxRange:  conf.Fonts.PxRange,
			}),
			Dir: job.work,
		}
		tracer().Infof("%s: generating atlas", job.folder)
		if err := p.Runner.Run(ctx, cmd); err != nil {
			tracer().Errorf("cmd: %s", cmd)
			return err
		}
		job.ranTool = true
		report.Built = append(report.Built, filepath.Base(job.ttf))
	}
	if err := p.writeFontSources(job, report); err != nil {
		return err
	}
	if job.ranTool {
		return stamp.Write(job.stamp, job.stampTxt)
	}
	return nil
}

// writeFontSources generates the C++ sources of a font from the atlas files
// in its work directory.
func (p *Project) writeFontSources(job *fontJob, report *StageReport) error {
	fa, err := atlas.ReadFontAtlas(job.json)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(job.bin)
	if err != nil {
		return err
	}
	data = fa.NormalizePixels(data)
	ns := codegen.FontNamespace(job.ident)
	write := func(name, content string) error {
		path := filepath.Join(job.outDir, name)
		written, err := codegen.WriteIfChanged(path, content)
		report.wrote(path, written)
		return err
	}
	if err := write("metrics.hpp", codegen.FontMetrics(ns, fa, fa.Glyphs(false))); err != nil {
		return err
	}
	switch p.Config.Fonts.Embed {
	case config.EmbedHeader:
		return write(job.folder+".h", codegen.AtlasProgmem(job.folder, data))
	default:
		hpp := job.folder + ".hpp"
		if err := write(hpp, codegen.AtlasDecl(job.folder)); err != nil {
			return err
		}
		return write(job.folder+".cpp", codegen.AtlasDef(hpp, job.folder, data))
	}
}

// checkCoverage warns about code points of the charset which the font
// cannot render.
func (p *Project) checkCoverage(ttf string, charsetText string, report *StageReport) {
	set, err := charset.Parse(charsetText)
	if err != nil {
		report.warn(ttf, "cannot check coverage: %v", err)
		return
	}
	f, err := fontinfo.Load(ttf)
	if err != nil {
		report.warn(ttf, "cannot check coverage: %v", err)
		return
	}
	missing, err := f.Coverage(set)
	if err != nil {
		report.warn(ttf, "cannot check coverage: %v", err)
		return
	}
	for _, r := range missing {
		report.warn(ttf, "no glyph for %s", fontinfo.DescribeMissing(r))
	}
}

// RegenerateMetrics writes the metrics header of an existing font atlas
// without running msdf-atlas-gen. An empty namespace defaults to "psdf".
// With raw set, atlas bounds are emitted exactly as found in the layout file.
// It reports whether the header has been written.
func RegenerateMetrics(atlasJSON, out, ns string, raw bool) (bool, error) {
	fa, err := atlas.ReadFontAtlas(atlasJSON)
	if err != nil {
		return false, err
	}
	if ns == "" {
		ns = "psdf"
	}
	written, err := codegen.WriteIfChanged(out, codegen.FontMetrics(ns, fa, fa.Glyphs(raw)))
	if err != nil {
		return false, fmt.Errorf("cannot write metrics header: %w", err)
	}
	return written, nil
}
