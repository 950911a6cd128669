package fontinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/psdf/charset"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Test Suite Preparation ------------------------------------------------

type FontInfoTestEnviron struct {
	suite.Suite
	font *Font
}

func TestFontInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.fontinfo")
	defer teardown()
	suite.Run(t, new(FontInfoTestEnviron))
}

func (env *FontInfoTestEnviron) SetupSuite() {
	tracing.Select("psdf.fontinfo").SetTraceLevel(tracing.LevelError)
	path := filepath.Join(env.T().TempDir(), "Go-Regular.ttf")
	env.Require().NoError(os.WriteFile(path, goregular.TTF, 0o644))
	f, err := Load(path)
	env.Require().NoError(err)
	env.font = f
	tracing.Select("psdf.fontinfo").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *FontInfoTestEnviron) TestNames() {
	info := env.font.Info()
	env.Equal("Go", info.Family)
	env.Equal("Regular", info.Subfamily)
	env.Equal("Go Regular", info.FullName)
	env.Equal(2048, info.UnitsPerEm)
	env.Greater(info.NumGlyphs, 100)
}

func (env *FontInfoTestEnviron) TestVerticalMetrics() {
	info := env.font.Info()
	env.Greater(info.Ascent, 0)
	env.Greater(info.Descent, 0)
	env.GreaterOrEqual(info.LineHeight, info.Ascent)
}

func (env *FontInfoTestEnviron) TestCoverage() {
	set, err := charset.Parse(`"Az09" 0x1F600`)
	env.Require().NoError(err)
	missing, err := env.font.Coverage(set)
	env.Require().NoError(err)
	env.Equal([]rune{0x1F600}, missing)

	missing, err = Coverage(goregular.TTF, charset.Set{'x'})
	env.Require().NoError(err)
	env.Empty(missing)
}

func (env *FontInfoTestEnviron) TestBrokenFont() {
	_, err := Parse([]byte("not a font"))
	env.Error(err)
	_, err = Coverage([]byte("not a font"), charset.Set{'x'})
	env.Error(err)
	_, err = Load(filepath.Join(env.T().TempDir(), "missing.ttf"))
	env.Error(err)
}

func (env *FontInfoTestEnviron) TestDescribeMissing() {
	env.Equal("U+20BD RUBLE SIGN", DescribeMissing(0x20BD))
	env.Equal("U+0401 CYRILLIC CAPITAL LETTER IO", DescribeMissing('Ё'))
	env.Equal("U+0378", DescribeMissing(0x0378))
}
