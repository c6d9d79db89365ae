package nj

import (
	"encoding/binary"
	"fmt"
	"math"
)

// cursor reads little-endian fields from a byte buffer with a sticky error.
// After the first out-of-bounds read every further read returns zero, so
// callers can run a fixed read sequence and check err once at the end.
type cursor struct {
	data []byte
	off  int
	err  error
}

func (c *cursor) fail(n int) {
	if c.err == nil {
		c.err = fmt.Errorf("nj: read %d bytes at offset %d of %d: %w", n, c.off, len(c.data), ErrTruncated)
	}
	c.off = len(c.data)
}

func (c *cursor) seek(off uint32) {
	if int64(off) > int64(len(c.data)) {
		if c.err == nil {
			c.err = fmt.Errorf("nj: seek to %d of %d: %w", off, len(c.data), ErrTruncated)
		}
		return
	}
	c.off = int(off)
}

func (c *cursor) u8() uint8 {
	if c.err != nil || c.off+1 > len(c.data) {
		c.fail(1)
		return 0
	}
	v := c.data[c.off]
	c.off++
	return v
}

func (c *cursor) u16() uint16 {
	if c.err != nil || c.off+2 > len(c.data) {
		c.fail(2)
		return 0
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v
}

func (c *cursor) i16() int16 {
	return int16(c.u16())
}

func (c *cursor) u32() uint32 {
	if c.err != nil || c.off+4 > len(c.data) {
		c.fail(4)
		return 0
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v
}

func (c *cursor) i32() int32 {
	return int32(c.u32())
}

func (c *cursor) f32() float32 {
	return math.Float32frombits(c.u32())
}

func (c *cursor) skip(n int) {
	if c.err != nil || c.off+n > len(c.data) {
		c.fail(n)
		return
	}
	c.off += n
}

// cstring reads a NUL-terminated string starting at off without moving the
// cursor position.
func (c *cursor) cstring(off uint32) string {
	if c.err != nil {
		return ""
	}
	if int64(off) >= int64(len(c.data)) {
		c.err = fmt.Errorf("nj: string at %d of %d: %w", off, len(c.data), ErrTruncated)
		return ""
	}
	s := c.data[off:]
	for i, b := range s {
		if b == 0 {
			return string(s[:i])
		}
	}
	return string(s)
}
