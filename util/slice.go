package util

import "sort"

// StringSliceContains determines if a string is in a slice
func StringSliceContains(slice []string, item string) bool {
	for idx := range slice {
		if slice[idx] == item {
			return true
		}
	}

	return false
}

// SortedUniqueInts returns the distinct values of slice in ascending order.
// The input is not modified.
func SortedUniqueInts(slice []int) []int {
	seen := map[int]bool{}
	out := []int{}
	for _, i := range slice {
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// IntRange returns the integers from lo to hi, inclusive.
func IntRange(lo, hi int) []int {
	out := []int{}
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
