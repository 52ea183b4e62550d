package utils

import (
	"golang.org/x/exp/constraints"
)

// Returns the biggest item of a sequence. Panics if the sequence is empty
func Max[T constraints.Ordered](input []T) T {
	max := input[0]

	for _, item := range input {
		if item > max {
			max = item
		}
	}

	return max
}
