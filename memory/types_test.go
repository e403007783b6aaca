package memory_test

import (
	"errors"
	"math"
	"testing"

	"memsig/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressOffset(t *testing.T) {
	addr := memory.Address(0x1000)

	got, err := addr.Offset(0x20)
	require.NoError(t, err)
	assert.Equal(t, memory.Address(0x1020), got)

	got, err = addr.Offset(-0x10)
	require.NoError(t, err)
	assert.Equal(t, memory.Address(0xFF0), got)
}

func TestAddressOffsetOverflow(t *testing.T) {
	_, err := memory.Address(math.MaxUint64 - 1).Offset(2)
	assert.True(t, errors.Is(err, memory.ErrAddressOverflow))

	_, err = memory.Address(4).Offset(-5)
	assert.True(t, errors.Is(err, memory.ErrAddressOverflow))

	got, err := memory.Address(math.MaxUint64 - 1).Offset(1)
	require.NoError(t, err)
	assert.Equal(t, memory.Address(math.MaxUint64), got)
}

func TestRegionValidate(t *testing.T) {
	assert.NoError(t, memory.Region{Base: 0x1000, Size: 0x100}.Validate())

	err := memory.Region{Base: 0x1000, Size: 0}.Validate()
	assert.True(t, errors.Is(err, memory.ErrEmptyRegion))

	err = memory.Region{Base: math.MaxUint64, Size: 2}.Validate()
	assert.True(t, errors.Is(err, memory.ErrAddressOverflow))

	// A region ending exactly at the top of the address space is fine.
	assert.NoError(t, memory.Region{Base: math.MaxUint64, Size: 1}.Validate())
}

func TestRegionContains(t *testing.T) {
	r := memory.Region{Base: 0x1000, Size: 0x10}

	assert.True(t, r.Contains(0x1000))
	assert.True(t, r.Contains(0x100F))
	assert.False(t, r.Contains(0x1010))
	assert.False(t, r.Contains(0xFFF))
	assert.Equal(t, memory.Address(0x1010), r.End())
}
