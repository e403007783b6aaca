package memory

import (
	"fmt"
	"math"
)

// Address represents a memory address within the target process
type Address uint64

func (a Address) ToString() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Offset adds a signed byte offset to the address. Address arithmetic
// must never wrap silently, so a result outside [0, MaxUint64] is an error.
func (a Address) Offset(off int64) (Address, error) {
	if off >= 0 {
		if uint64(a) > math.MaxUint64-uint64(off) {
			return 0, fmt.Errorf("address %s + offset 0x%X: %w", a.ToString(), off, ErrAddressOverflow)
		}
		return a + Address(off), nil
	}
	mag := uint64(-off)
	if mag > uint64(a) {
		return 0, fmt.Errorf("address %s - offset 0x%X: %w", a.ToString(), mag, ErrAddressOverflow)
	}
	return a - Address(mag), nil
}

// Size represents a size of a memory range in bytes
type Size uint64

func (s Size) ToString() string {
	return fmt.Sprintf("%d bytes", uint64(s))
}

// Region describes a span of the target process's address space
type Region struct {
	Base Address
	Size Size
}

// Validate checks that the region is non-empty and that its end does not
// wrap around the address space.
func (r Region) Validate() error {
	if r.Size == 0 {
		return ErrEmptyRegion
	}
	if uint64(r.Base) > math.MaxUint64-uint64(r.Size-1) {
		return fmt.Errorf("region %s + %s: %w", r.Base.ToString(), r.Size.ToString(), ErrAddressOverflow)
	}
	return nil
}

// End returns the first address past the region. Only meaningful for a
// region that passed Validate.
func (r Region) End() Address {
	return r.Base + Address(r.Size)
}

// Contains reports whether addr lies within the region.
func (r Region) Contains(addr Address) bool {
	return addr >= r.Base && uint64(addr)-uint64(r.Base) < uint64(r.Size)
}
