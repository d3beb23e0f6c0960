package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutput(t *testing.T) {
	for _, fn := range []string{"", "-"} {
		var buf bytes.Buffer
		require.NoError(t, WriteOutput(fn, &buf, []byte("data")))
		assert.Equal(t, "data", buf.String())
	}

	var buf bytes.Buffer
	fn := filepath.Join(t.TempDir(), "nested", "dir", "out.kts")
	require.NoError(t, WriteOutput(fn, &buf, []byte("data")))
	assert.Zero(t, buf.Len())

	contents, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "data", string(contents))
}
