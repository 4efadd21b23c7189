package utils

// Lo16 returns the low halfword of a word.
func Lo16(word uint32) uint16 {
	return uint16(word)
}

// Hi16 returns the high halfword of a word.
func Hi16(word uint32) uint16 {
	return uint16(word >> 16)
}

// MergeHalf replaces the halfword of word selected by high with value.
func MergeHalf(word uint32, value uint16, high bool) uint32 {
	if high {
		return word&0x0000FFFF | uint32(value)<<16
	}
	return word&0xFFFF0000 | uint32(value)
}
