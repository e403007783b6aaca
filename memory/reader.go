// Package memory defines the value types and the read capability that the
// scanning and pointer-resolution packages operate over. The capability is
// injected by the surrounding process-access layer; nothing in this module
// opens process handles itself.
package memory

import "errors"

var (
	// ErrUnreadable is returned when the target memory cannot be read at
	// all, for example an unmapped page or a permission fault.
	ErrUnreadable = errors.New("memory not readable")

	// ErrPartialRead is returned when fewer bytes than requested could be
	// read. Implementations should return the valid prefix alongside it.
	ErrPartialRead = errors.New("partial memory read")

	// ErrOutOfRange is returned when the requested span falls outside the
	// range a reader serves.
	ErrOutOfRange = errors.New("address out of range")

	// ErrAddressOverflow is returned when address arithmetic would wrap
	// around the address space.
	ErrAddressOverflow = errors.New("address overflow")

	// ErrEmptyRegion is returned for a region with zero size.
	ErrEmptyRegion = errors.New("empty region")
)

// Reader is the boundary to the target process's memory. Implementations
// wrap their native failures in ErrUnreadable, ErrPartialRead or
// ErrOutOfRange so callers can classify them with errors.Is.
//
// A Reader must be safe for concurrent use if scans are issued from
// multiple goroutines; the packages in this module hold no shared state
// between calls.
type Reader interface {
	// ReadMemory reads size bytes from the target at the specified address
	ReadMemory(addr Address, size Size) ([]byte, error)
}
