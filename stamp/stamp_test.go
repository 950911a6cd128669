package stamp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashing(t *testing.T) {
	const emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	assert.Equal(t, emptySHA, HashBytes(nil))

	path := filepath.Join(t.TempDir(), "font.ttf")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))
	h, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h)
	assert.Equal(t, HashBytes([]byte("abc")), h)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestPythonNotation(t *testing.T) {
	params := map[string]string{
		"font": "/a/b.ttf", "type": "psdf", "size": "48",
		"pxrange": "8", "potr": "1", "charset": "/c/Ёё.txt",
	}
	assert.Equal(t,
		`{"charset": "/c/\u0401\u0451.txt", "font": "/a/b.ttf", "potr": "1", "pxrange": "8", "size": "48", "type": "psdf"}`,
		PyObject(params))
	assert.Equal(t, `["a.svg", "b.svg"]`, PyList([]string{"a.svg", "b.svg"}))
	assert.Equal(t, `[]`, PyList(nil))
	assert.Equal(t, `{}`, PyObject(nil))
	assert.Equal(t, `["q\"\\\n\t\u007f\ud83d\ude00"]`, PyList([]string{"q\"\\\n\t\x7f😀"}))
}

func TestFreshness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psdf.stamp")
	defer teardown()

	dir := t.TempDir()
	stampPath := filepath.Join(dir, "work", "stamp.txt")
	out := filepath.Join(dir, "atlas.bin")
	want := Lines("hash", `{"size": "48"}`)
	assert.Equal(t, "hash\n{\"size\": \"48\"}", want)

	assert.False(t, Fresh(stampPath, want), "no stamp yet")
	require.NoError(t, Write(stampPath, want))
	got, ok := Read(stampPath)
	require.True(t, ok)
	assert.Equal(t, want, got)

	assert.True(t, Fresh(stampPath, want))
	assert.False(t, Fresh(stampPath, want+"x"), "changed parameters")
	assert.False(t, Fresh(stampPath, want, out), "output missing")
	require.NoError(t, os.WriteFile(out, []byte{1}, 0o644))
	assert.True(t, Fresh(stampPath, want, out))
	assert.False(t, Fresh(stampPath, want, dir), "directories do not count as outputs")
}
