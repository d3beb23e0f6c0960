package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type yamlTestStruct struct {
	Name  string   `yaml:"name"`
	Count int      `yaml:"count"`
	Tags  []string `yaml:"tags"`
}

func TestUnmarshalYAMLStrict(t *testing.T) {
	t.Run("KnownFields", func(t *testing.T) {
		out := yamlTestStruct{}
		require.NoError(t, UnmarshalYAMLStrict([]byte("name: foo\ncount: 2\ntags: [a, b]\n"), &out))
		assert.Equal(t, yamlTestStruct{Name: "foo", Count: 2, Tags: []string{"a", "b"}}, out)
	})
	t.Run("UnknownField", func(t *testing.T) {
		out := yamlTestStruct{}
		assert.Error(t, UnmarshalYAMLStrict([]byte("name: foo\ncolor: red\n"), &out))
	})
	t.Run("DuplicateKey", func(t *testing.T) {
		out := yamlTestStruct{}
		assert.Error(t, UnmarshalYAMLStrict([]byte("name: foo\nname: bar\n"), &out))
	})
	t.Run("EmptyDocument", func(t *testing.T) {
		out := yamlTestStruct{Name: "unchanged"}
		require.NoError(t, UnmarshalYAMLStrict(nil, &out))
		assert.Equal(t, "unchanged", out.Name)
	})
}

func TestReadYAMLFileStrict(t *testing.T) {
	dir := t.TempDir()

	fn := filepath.Join(dir, "test.yml")
	require.NoError(t, os.WriteFile(fn, []byte("name: foo\n"), 0644))
	out := yamlTestStruct{}
	require.NoError(t, ReadYAMLFileStrict(fn, &out))
	assert.Equal(t, "foo", out.Name)

	err := ReadYAMLFileStrict(filepath.Join(dir, "missing.yml"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
