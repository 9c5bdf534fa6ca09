// Package utils provides shared utilities for text and logging.
package utils

import "unicode/utf8"

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	head := Head(s, maxLen)
	if maxLen <= 0 || len(head) == len(s) {
		return s
	}
	return head + "..."
}

// Head returns the first n runes of s with no marker and no word-boundary
// adjustment. n <= 0 returns s unchanged.
func Head(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
