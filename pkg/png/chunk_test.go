package png

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunk(t *testing.T, code, data string) *Chunk {
	t.Helper()
	c, err := NewChunk(MustParseChunkType(code), []byte(data))
	require.NoError(t, err)
	return c
}

func TestNewChunk(t *testing.T) {
	c := testChunk(t, "RuSt", "This is where your secret message will be!")
	assert.Equal(t, uint32(42), c.Length())
	assert.Equal(t, "RuSt", c.Type().String())
	assert.Equal(t, uint32(2882656334), c.CRC())

	msg, err := c.DataString()
	require.NoError(t, err)
	assert.Equal(t, "This is where your secret message will be!", msg)
}

func TestNewChunkRejectsZeroType(t *testing.T) {
	_, err := NewChunk(ChunkType{}, []byte("x"))
	var charErr *InvalidCharacterError
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, byte(0), charErr.Char)
}

func TestNewChunkCopiesData(t *testing.T) {
	data := []byte("hello")
	c, err := NewChunk(MustParseChunkType("ruSt"), data)
	require.NoError(t, err)
	data[0] = 'j'
	assert.Equal(t, []byte("hello"), c.Data())
}

func TestChunkEncodeLayout(t *testing.T) {
	c := testChunk(t, "RuSt", "abc")
	b := c.Encode()
	require.Len(t, b, 15)
	assert.Equal(t, c.EncodedLen(), len(b))
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(b[0:4]))
	assert.Equal(t, []byte("RuSt"), b[4:8])
	assert.Equal(t, []byte("abc"), b[8:11])
	assert.Equal(t, c.CRC(), binary.BigEndian.Uint32(b[11:15]))
}

func TestChunkRoundTrip(t *testing.T) {
	for _, data := range []string{"", "x", "hello", "This is where your secret message will be!"} {
		c := testChunk(t, "ruSt", data)
		decoded, err := DecodeChunk(c.Encode())
		require.NoError(t, err)
		assert.Equal(t, c.Type(), decoded.Type())
		assert.Equal(t, c.Data(), decoded.Data())
		assert.Equal(t, c.CRC(), decoded.CRC())
		assert.Equal(t, c.Length(), decoded.Length())
	}
}

func TestDecodeChunkIgnoresTrailingBytes(t *testing.T) {
	c := testChunk(t, "ruSt", "hello")
	b := append(c.Encode(), 0xde, 0xad)
	decoded, err := DecodeChunk(b)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded.Data())
}

func TestDecodeChunkTruncated(t *testing.T) {
	b := testChunk(t, "ruSt", "hello").Encode()
	for _, n := range []int{0, 4, 11, len(b) - 1} {
		_, err := DecodeChunk(b[:n])
		assert.ErrorIs(t, err, ErrTruncatedChunk, "length %d", n)
	}
}

func TestDecodeChunkChecksumSensitivity(t *testing.T) {
	b := testChunk(t, "ruSt", "hello").Encode()
	// Every bit of the type and data region.
	for i := 4; i < len(b)-4; i++ {
		for bit := 0; bit < 8; bit++ {
			corrupt := append([]byte(nil), b...)
			corrupt[i] ^= 1 << bit
			_, err := DecodeChunk(corrupt)
			require.ErrorIs(t, err, ErrChecksumMismatch, "byte %d bit %d", i, bit)
		}
	}
}

func TestDecodeChunkChecksumError(t *testing.T) {
	b := testChunk(t, "ruSt", "hello").Encode()
	b[len(b)-1] ^= 0xff
	_, err := DecodeChunk(b)
	var sumErr *ChecksumError
	require.ErrorAs(t, err, &sumErr)
	assert.Equal(t, [4]byte{'r', 'u', 'S', 't'}, sumErr.Type)
	assert.NotEqual(t, sumErr.Stored, sumErr.Computed)
}

func TestDecodeChunkInvalidTypeWithGoodChecksum(t *testing.T) {
	code := [4]byte{'r', 'u', '1', 't'}
	data := []byte("hello")
	b := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
	b = append(b, code[:]...)
	b = append(b, data...)
	b = binary.BigEndian.AppendUint32(b, checksum(code, data))

	_, err := DecodeChunk(b)
	var charErr *InvalidCharacterError
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, byte('1'), charErr.Char)
}

func TestChunkDataStringInvalidUTF8(t *testing.T) {
	c, err := NewChunk(MustParseChunkType("ruSt"), []byte{0xff, 0xfe, 0xfd})
	require.NoError(t, err)
	_, err = c.DataString()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestChunkString(t *testing.T) {
	c := testChunk(t, "ruSt", "hello")
	assert.Contains(t, c.String(), "ruSt length=5")
	assert.Contains(t, c.String(), "ancillary,private,safe-to-copy")
	assert.Equal(t, "critical,public,unsafe-to-copy", Flags(TypeIHDR))
	assert.Equal(t, "critical,private,reserved-invalid,safe-to-copy", Flags(MustParseChunkType("Rust")))
}
