package memory_test

import (
	"errors"
	"testing"

	"memsig/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobReadMemory(t *testing.T) {
	b := memory.NewBlob(0x1000, []byte{0x01, 0x02, 0x03, 0x04})

	data, err := b.ReadMemory(0x1001, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, data)

	assert.Equal(t, memory.Address(0x1000), b.Base())
	assert.Equal(t, memory.Region{Base: 0x1000, Size: 4}, b.Region())
}

func TestBlobReadOutOfRange(t *testing.T) {
	b := memory.NewBlob(0x1000, make([]byte, 8))

	_, err := b.ReadMemory(0xFFF, 1)
	assert.True(t, errors.Is(err, memory.ErrOutOfRange), "below base")

	_, err = b.ReadMemory(0x1006, 4)
	assert.True(t, errors.Is(err, memory.ErrOutOfRange), "past end")

	_, err = b.ReadMemory(0x2000, 1)
	assert.True(t, errors.Is(err, memory.ErrOutOfRange))
}

func TestTypedReadsLittleEndian(t *testing.T) {
	b := memory.NewBlob(0x2000, []byte{
		0x78, 0x56, 0x34, 0x12, 0xEF, 0xBE, 0xAD, 0xDE,
	})

	u16, err := memory.ReadUINT16(b, 0x2000)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5678), u16)

	u32, err := memory.ReadUINT32(b, 0x2000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	u64, err := memory.ReadUINT64(b, 0x2000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF12345678), u64)

	i8, err := memory.ReadINT8(b, 0x2007)
	require.NoError(t, err)
	assert.Equal(t, int8(-34), i8) // 0xDE

	ptr, err := memory.ReadPOINTER(b, 0x2000)
	require.NoError(t, err)
	assert.Equal(t, memory.Address(0xDEADBEEF12345678), ptr)
}

func TestReadFloat(t *testing.T) {
	// 1.5 as float32 is 0x3FC00000, as float64 0x3FF8000000000000.
	b := memory.NewBlob(0x3000, []byte{0x00, 0x00, 0xC0, 0x3F})
	f32, err := memory.ReadFLOAT32(b, 0x3000)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)

	b = memory.NewBlob(0x3000, []byte{0, 0, 0, 0, 0, 0, 0xF8, 0x3F})
	f64, err := memory.ReadFLOAT64(b, 0x3000)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f64)
}

func TestReadNTS(t *testing.T) {
	b := memory.NewBlob(0x4000, []byte("player\x00junk"))

	s, err := memory.ReadNTS(b, 0x4000, 11)
	require.NoError(t, err)
	assert.Equal(t, "player", s)

	// No NUL within the cap: the whole buffer comes back.
	s, err = memory.ReadNTS(b, 0x4000, 4)
	require.NoError(t, err)
	assert.Equal(t, "play", s)
}
