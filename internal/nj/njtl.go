package nj

import "fmt"

// readTextureTable parses an NJTL payload: a pointer to an array of
// (name-pointer, 8 attribute bytes) records plus a count, all pointers
// relative to the payload start. Name pointers are collected first and
// resolved second, since the string heap may be interleaved with the table
// in any order; the result keeps table order.
func readTextureTable(payload []byte) ([]string, error) {
	c := &cursor{data: payload}

	tablePtr := c.u32()
	count := c.u32()

	// The count is untrusted input. Each record is 12 bytes, so a count
	// the payload cannot hold is rejected before any allocation sized by it.
	if int64(count) > int64(len(payload)/12) {
		return nil, fmt.Errorf("nj: texture table of %d entries in %d bytes: %w", count, len(payload), ErrTruncated)
	}
	c.seek(tablePtr)

	ptrs := make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		ptrs = append(ptrs, c.u32())
		c.skip(8) // per-entry attributes, unused
	}
	if c.err != nil {
		return nil, c.err
	}

	names := make([]string, len(ptrs))
	for i, p := range ptrs {
		names[i] = c.cstring(p)
	}
	if c.err != nil {
		return nil, c.err
	}
	return names, nil
}
