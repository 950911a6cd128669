package charset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCharset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.charset")
	defer teardown()

	assert.Equal(t, "[0x20, 0x7e]\n[0x0410, 0x044f]\n\"Ёё№₽°\"\n", Default())
	set, err := Parse(Default())
	require.NoError(t, err)
	// 95 printable ASCII + 64 Cyrillic + 5 extra symbols
	assert.Len(t, set, 95+64+5)
	assert.Equal(t, rune(0x20), set[0])
	for _, r := range "AzЖяЁё№₽°~ " {
		assert.True(t, set.Contains(r), "expected %q in default charset", r)
	}
	assert.False(t, set.Contains('\n'))
	assert.False(t, set.Contains(0x7f))
}

func TestParseLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.charset")
	defer teardown()

	set, err := Parse(`65, 0x42 'C' "DD" '\'' "\"" [0x61,0x63]`)
	require.NoError(t, err)
	assert.Equal(t, Set{'"', '\'', 'A', 'B', 'C', 'D', 'a', 'b', 'c'}, set)

	set, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.charset")
	defer teardown()

	for _, bad := range []string{
		"[0x20, 0x7e",
		"[0x7e, 0x20]",
		`"open`,
		"'ab'",
		"xyz",
		"0x110000",
		"[0x20]",
	} {
		_, err := Parse(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestReadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.charset")
	defer teardown()

	path := filepath.Join(t.TempDir(), "charset.txt")
	require.NoError(t, os.WriteFile(path, []byte("[0x30, 0x39]\n"), 0o644))
	set, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, set, 10)
	_, err = ReadFile(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}
