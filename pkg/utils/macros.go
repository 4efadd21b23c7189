package utils

import "golang.org/x/exp/constraints"

func BoolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func Clamp[T constraints.Integer | constraints.Float](min, value, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Min returns the smaller of a and b.
func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}
