// Package strings provides string slice utilities for merging shared records.
package strings

import (
	"strings"
)

// Union merges the given slices, removing duplicates and empty strings and
// trimming whitespace from each element. First-seen order is preserved, which
// keeps merged summaries deterministic for a fixed contributor ordering.
func Union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	result := []string{}

	for _, list := range lists {
		for _, v := range list {
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				continue
			}
			if _, ok := seen[trimmed]; !ok {
				seen[trimmed] = struct{}{}
				result = append(result, trimmed)
			}
		}
	}

	return result
}

// DedupeAndTrim removes duplicates and empty strings from a single slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	return Union(values)
}
