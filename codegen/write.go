package codegen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteIfChanged writes content to path unless the file already holds exactly
// this content. Parent directories are created as needed. It reports whether
// the file has been written.
func WriteIfChanged(path string, content string) (bool, error) {
	prev, err := os.ReadFile(path)
	if err == nil && bytes.Equal(prev, []byte(content)) {
		tracer().Debugf("unchanged: %s", path)
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		tracer().Debugf("cannot read %s, will overwrite: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	tracer().Infof("wrote %s", path)
	return true, nil
}
