package pvr

// Morton (Z-order) index mapping between (x, y) texture coordinates and the
// twiddled linear storage order. X occupies the even bit positions, y the
// odd ones, for up to 16 bits per coordinate.

func part1By1(v uint32) uint32 {
	v &= 0xFFFF
	v = (v | v<<8) & 0x00FF00FF
	v = (v | v<<4) & 0x0F0F0F0F
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

func compact1By1(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0F0F0F0F
	v = (v | v>>4) & 0x00FF00FF
	v = (v | v>>8) & 0x0000FFFF
	return v
}

// mortonIndex interleaves x and y into a twiddled storage index.
func mortonIndex(x, y uint32) uint32 {
	return part1By1(x) | part1By1(y)<<1
}

// mortonXY is the exact inverse of mortonIndex.
func mortonXY(index uint32) (x, y uint32) {
	return compact1By1(index), compact1By1(index >> 1)
}
