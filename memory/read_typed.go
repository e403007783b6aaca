package memory

import (
	"bytes"
	"encoding/binary"
	"unsafe"
)

// Typed decode helpers layered over any Reader. All multi-byte values are
// little-endian, matching the x86/x64 targets this module is aimed at.

// ReadUINT8 reads an unsigned 8-bit integer from the specified address
func ReadUINT8(r Reader, addr Address) (uint8, error) {
	data, err := r.ReadMemory(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUINT16 reads an unsigned 16-bit integer from the specified address
func ReadUINT16(r Reader, addr Address) (uint16, error) {
	data, err := r.ReadMemory(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUINT32 reads an unsigned 32-bit integer from the specified address
func ReadUINT32(r Reader, addr Address) (uint32, error) {
	data, err := r.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUINT64 reads an unsigned 64-bit integer from the specified address
func ReadUINT64(r Reader, addr Address) (uint64, error) {
	data, err := r.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadINT8 reads a signed 8-bit integer from the specified address
func ReadINT8(r Reader, addr Address) (int8, error) {
	v, err := ReadUINT8(r, addr)
	return int8(v), err
}

// ReadINT16 reads a signed 16-bit integer from the specified address
func ReadINT16(r Reader, addr Address) (int16, error) {
	v, err := ReadUINT16(r, addr)
	return int16(v), err
}

// ReadINT32 reads a signed 32-bit integer from the specified address
func ReadINT32(r Reader, addr Address) (int32, error) {
	v, err := ReadUINT32(r, addr)
	return int32(v), err
}

// ReadINT64 reads a signed 64-bit integer from the specified address
func ReadINT64(r Reader, addr Address) (int64, error) {
	v, err := ReadUINT64(r, addr)
	return int64(v), err
}

// ReadFLOAT32 reads a 32-bit floating point number from the specified address
func ReadFLOAT32(r Reader, addr Address) (float32, error) {
	bits, err := ReadUINT32(r, addr)
	if err != nil {
		return 0, err
	}
	return *(*float32)(unsafe.Pointer(&bits)), nil
}

// ReadFLOAT64 reads a 64-bit floating point number from the specified address
func ReadFLOAT64(r Reader, addr Address) (float64, error) {
	bits, err := ReadUINT64(r, addr)
	if err != nil {
		return 0, err
	}
	return *(*float64)(unsafe.Pointer(&bits)), nil
}

// ReadPOINTER reads a pointer-sized value from the specified address.
// Pointers in the target are assumed 64-bit.
func ReadPOINTER(r Reader, addr Address) (Address, error) {
	v, err := ReadUINT64(r, addr)
	return Address(v), err
}

// ReadNTS reads a null-terminated string from the specified address,
// consuming at most maxLength bytes. If no NUL appears within maxLength
// the whole buffer is returned as a string.
func ReadNTS(r Reader, addr Address, maxLength Size) (string, error) {
	data, err := r.ReadMemory(addr, maxLength)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data), nil
}
