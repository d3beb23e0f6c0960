package tcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValuePairs(t *testing.T) {
	pairs, err := ParseKeyValuePairs([]string{"a=1", "b.c=x=y", "d="})
	require.NoError(t, err)
	assert.Equal(t, KeyValuePairSlice{
		{Key: "a", Value: "1"},
		{Key: "b.c", Value: "x=y"},
		{Key: "d", Value: ""},
	}, pairs)

	for _, bad := range [][]string{{"novalue"}, {"=1"}, {" =1"}, {"a=1", "a=2"}} {
		_, err := ParseKeyValuePairs(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestKeyValuePairsNested(t *testing.T) {
	pairs := KeyValuePairSlice{
		{Key: "ga.project", Value: "p"},
		{Key: "ga.org_2", Value: "o"},
		{Key: "region", Value: "r"},
	}
	assert.Equal(t, map[string]interface{}{
		"ga": map[string]interface{}{
			"project": "p",
			"org_2":   "o",
		},
		"region": "r",
	}, pairs.Nested())
}
