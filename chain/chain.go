// Package chain resolves multi-level pointer chains: starting from a base
// address, read a pointer, add an offset, and repeat until the chain is
// exhausted. Scanning for the base and resolving from it are deliberately
// separate operations; a chain can just as well start from a hand-known
// address with no scan involved.
package chain

import (
	"fmt"
	"unsafe"

	"memsig/memory"
)

// StepError reports which dereference in a chain failed. Step is
// zero-based; Addr is the address whose read or offset failed.
type StepError struct {
	Step int
	Addr memory.Address
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pointer chain step %d at %s: %v", e.Step, e.Addr.ToString(), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Resolve walks the offset chain from base. For each offset, in order, it
// reads a pointer-sized value at the current address and advances to that
// value plus the offset. The return value is the final address; no read
// is issued against it. An empty chain returns base unchanged.
//
// A null pointer read mid-chain is not an error by itself; the next step's
// read against a low address fails through the reader's normal contract.
// Any failure aborts the whole resolution, carrying its step index.
func Resolve(r memory.Reader, base memory.Address, offsets ...int64) (memory.Address, error) {
	current := base
	for i, off := range offsets {
		ptr, err := memory.ReadPOINTER(r, current)
		if err != nil {
			return 0, &StepError{Step: i, Addr: current, Err: err}
		}
		next, err := ptr.Offset(off)
		if err != nil {
			return 0, &StepError{Step: i, Addr: ptr, Err: err}
		}
		current = next
	}
	return current, nil
}

// ResolveDebug does the same as Resolve but prints the hop trace.
func ResolveDebug(r memory.Reader, base memory.Address, offsets ...int64) (memory.Address, error) {
	current := base
	fmt.Printf("[chain] base=%s\n", current.ToString())

	for i, off := range offsets {
		ptr, err := memory.ReadPOINTER(r, current)
		if err != nil {
			return 0, &StepError{Step: i, Addr: current, Err: err}
		}
		next, err := ptr.Offset(off)
		if err != nil {
			return 0, &StepError{Step: i, Addr: ptr, Err: err}
		}
		fmt.Printf("[chain] step %d: *(%s) => %s + %#x => %s\n", i, current.ToString(), ptr.ToString(), off, next.ToString())
		current = next
	}

	fmt.Printf("[chain] final=%s\n", current.ToString())
	return current, nil
}

// ReadPath resolves the chain and then reads a value of type T at the
// final address. T must be a fixed-size plain-data type; its bytes are
// copied with the host's layout, which matches the little-endian decoding
// of the memory package only on little-endian hosts.
func ReadPath[T any](r memory.Reader, base memory.Address, offsets ...int64) (T, error) {
	var zero T

	addr, err := Resolve(r, base, offsets...)
	if err != nil {
		return zero, err
	}
	return readT[T](r, addr)
}

func readT[T any](r memory.Reader, addr memory.Address) (T, error) {
	var t T
	size := memory.Size(unsafe.Sizeof(t))
	if size == 0 {
		return t, nil
	}

	data, err := r.ReadMemory(addr, size)
	if err != nil {
		return t, fmt.Errorf("read value at %s: %w", addr.ToString(), err)
	}
	if memory.Size(len(data)) < size {
		return t, fmt.Errorf("read value at %s: %w", addr.ToString(), memory.ErrPartialRead)
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(&t)), int(size))
	copy(dst, data)
	return t, nil
}
