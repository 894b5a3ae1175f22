// Package timeline deals with the two textual date forms used across the
// system: DD-MM-YYYY on the wire and YYYY-MM-DD in storage. The stored form
// exists so that lexical comparison equals chronological comparison.
package timeline

import "strings"

// Reverse flips a date between DD-MM-YYYY and YYYY-MM-DD. It is its own
// inverse.
func Reverse(date string) string {
	parts := strings.Split(date, "-")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "-")
}

// Before reports whether wire-form date a is chronologically before b.
func Before(a, b string) bool {
	return Reverse(a) < Reverse(b)
}

// Compare orders two (wire-form date, transactionId) keys. It returns -1, 0,
// or 1; equal transaction ids compare equal regardless of date, and on equal
// dates the lower id sorts first.
func Compare(dateA string, idA int, dateB string, idB int) int {
	if idA == idB {
		return 0
	}
	if Before(dateA, dateB) || (dateA == dateB && idA < idB) {
		return -1
	}
	return 1
}
