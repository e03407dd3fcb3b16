// Package utils holds small generic helpers for writing newtype predicates.
// Generated code never imports it; predicates written by hand may.
package utils

import "strings"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](min T, value T, max T) bool {
	return min <= value && value <= max
}

// IsPositive reports whether value is greater than zero.
func IsPositive[T number](value T) bool {
	return value > 0
}

// IsOneOf reports whether value equals one of allowed.
func IsOneOf[T comparable](value T, allowed ...T) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}

	return false
}

// IsNotBlank reports whether s holds anything besides white space.
func IsNotBlank[S ~string](s S) bool {
	return strings.TrimSpace(string(s)) != ""
}

// HasLenInRange reports whether the rune count of s is within [min, max].
func HasLenInRange[S ~string](s S, min, max int) bool {
	n := len([]rune(string(s)))

	return min <= n && n <= max
}
