package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint8) T {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}

// Field extracts width bits starting at index i.
func Field[T constraints.Unsigned](b T, i, width uint8) T {
	return (b >> i) & (1<<width - 1)
}

// From returns 1 shifted to index i when v is set, otherwise 0. It is
// the inverse of Test, used when packing register fields.
func From[T constraints.Unsigned](v bool, i uint8) T {
	if v {
		return 1 << i
	}
	return 0
}

// SignExtend interprets the low width bits of v as a two's complement
// number.
func SignExtend(v uint32, width uint8) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}
