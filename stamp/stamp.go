/*
Package stamp decides whether generated artifacts are stale.

A stamp is a small text file written next to generated files. It holds
the content hashes and parameters the artifacts were derived from. When
a new build computes the same stamp text and all artifacts still exist,
the expensive external tool run is skipped.

Stamp texts use Python's json.dumps notation for parameter lists, so stamps
written by earlier versions of the build script stay valid.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.stamp'
func tracer() tracing.Trace {
	return tracing.Select("psdf.stamp")
}

// HashFile returns the hex encoded SHA-256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex encoded SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Lines joins stamp lines with newlines (no trailing newline).
func Lines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// Read returns the content of a stamp file. A missing or unreadable stamp
// yields ok=false.
func Read(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			tracer().Debugf("cannot read stamp %s: %v", path, err)
		}
		return "", false
	}
	return string(b), true
}

// Fresh reports whether the stamp at path holds exactly want and every
// output file exists.
func Fresh(path string, want string, outputs ...string) bool {
	prev, ok := Read(path)
	if !ok || prev != want {
		return false
	}
	for _, out := range outputs {
		if st, err := os.Stat(out); err != nil || !st.Mode().IsRegular() {
			tracer().Debugf("stamp %s matches, but output %s is missing", path, out)
			return false
		}
	}
	return true
}

// Write stores a stamp unconditionally.
func Write(path string, s string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0o644)
}
