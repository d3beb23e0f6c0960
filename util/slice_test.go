package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSliceContains(t *testing.T) {
	assert.True(t, StringSliceContains([]string{"a", "b"}, "b"))
	assert.False(t, StringSliceContains([]string{"a", "b"}, "c"))
	assert.False(t, StringSliceContains(nil, ""))
}

func TestSortedUniqueInts(t *testing.T) {
	in := []int{3, 1, 3, 2, 1}
	assert.Equal(t, []int{1, 2, 3}, SortedUniqueInts(in))
	assert.Equal(t, []int{3, 1, 3, 2, 1}, in)
	assert.Equal(t, []int{}, SortedUniqueInts(nil))
}

func TestIntRange(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, IntRange(1, 3))
	assert.Equal(t, []int{5}, IntRange(5, 5))
	assert.Equal(t, []int{}, IntRange(3, 1))
}
