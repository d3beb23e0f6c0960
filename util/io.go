package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteOutput writes data to the named file, creating parent directories
// as needed. An empty name or "-" writes to fallback instead.
func WriteOutput(fn string, fallback io.Writer, data []byte) error {
	if fn == "" || fn == "-" {
		_, err := fallback.Write(data)
		return errors.Wrap(err, "writing output")
	}

	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for '%s'", fn)
	}

	return errors.Wrapf(os.WriteFile(fn, data, 0644), "writing file '%s'", fn)
}
