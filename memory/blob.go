package memory

import "fmt"

// Blob serves a captured byte range through the Reader interface. It is
// the offline counterpart of a live process reader: scans and chain
// resolutions run against a dump exactly as they would against the
// process it was taken from.
type Blob struct {
	base Address
	data []byte
}

var _ Reader = (*Blob)(nil)

// NewBlob wraps data as the content of the target's memory starting at base.
// The slice is not copied; the caller must not mutate it while in use.
func NewBlob(base Address, data []byte) *Blob {
	return &Blob{
		base: base,
		data: data,
	}
}

// Base returns the address the blob's first byte maps to.
func (b *Blob) Base() Address {
	return b.base
}

// Data returns the raw backing bytes.
func (b *Blob) Data() []byte {
	return b.data
}

// Region returns the span the blob covers.
func (b *Blob) Region() Region {
	return Region{Base: b.base, Size: Size(len(b.data))}
}

// ReadMemory reads size bytes at addr, failing with ErrOutOfRange when the
// requested span is not fully inside the blob.
func (b *Blob) ReadMemory(addr Address, size Size) ([]byte, error) {
	if addr < b.base {
		return nil, fmt.Errorf("read at %s below blob base %s: %w", addr.ToString(), b.base.ToString(), ErrOutOfRange)
	}
	offset := uint64(addr - b.base)
	if offset+uint64(size) > uint64(len(b.data)) || offset+uint64(size) < offset {
		return nil, fmt.Errorf("read of %s at %s past blob end: %w", size.ToString(), addr.ToString(), ErrOutOfRange)
	}
	return b.data[offset : offset+uint64(size)], nil
}
