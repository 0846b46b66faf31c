package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"strings"
	"unicode/utf8"
)

// ChunkOverhead is the number of bytes a chunk adds around its data:
// length, type and CRC, 4 bytes each.
const ChunkOverhead = 12

// Chunk is one length-prefixed, typed and checksummed segment of a PNG stream.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk from a type and payload and computes its CRC.
// The payload is copied. The zero ChunkType is rejected.
func NewChunk(t ChunkType, data []byte) (*Chunk, error) {
	if t == (ChunkType{}) {
		return nil, &InvalidCharacterError{Char: 0}
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrChunkTooLarge, len(data))
	}
	code := t.Bytes()
	d := append([]byte(nil), data...)
	return &Chunk{chunkType: t, data: d, crc: checksum(code, d)}, nil
}

// DecodeChunk reads a single chunk from the start of b. Bytes after the chunk
// are ignored; use EncodedLen to find where the next one begins.
func DecodeChunk(b []byte) (*Chunk, error) {
	if len(b) < ChunkOverhead {
		return nil, fmt.Errorf("%w: need at least %d bytes, have %d", ErrTruncatedChunk, ChunkOverhead, len(b))
	}
	length := binary.BigEndian.Uint32(b[0:4])
	if uint64(len(b)) < uint64(length)+ChunkOverhead {
		return nil, fmt.Errorf("%w: declared %d data bytes, have %d", ErrTruncatedChunk, length, len(b)-ChunkOverhead)
	}

	var code [4]byte
	copy(code[:], b[4:8])
	end := 8 + int(length)
	data := b[8:end]
	stored := binary.BigEndian.Uint32(b[end : end+4])

	// The checksum covers the raw type bytes, so it is checked before the
	// type code is validated.
	if computed := checksum(code, data); computed != stored {
		return nil, &ChecksumError{Type: code, Stored: stored, Computed: computed}
	}

	t, err := ChunkTypeFromBytes(code)
	if err != nil {
		return nil, err
	}
	return &Chunk{chunkType: t, data: append([]byte(nil), data...), crc: stored}, nil
}

// Encode returns the chunk in wire layout: length | type | data | crc.
func (c *Chunk) Encode() []byte {
	out := make([]byte, 0, c.EncodedLen())
	out = binary.BigEndian.AppendUint32(out, c.Length())
	code := c.chunkType.Bytes()
	out = append(out, code[:]...)
	out = append(out, c.data...)
	return binary.BigEndian.AppendUint32(out, c.crc)
}

// EncodedLen is the size of Encode's output.
func (c *Chunk) EncodedLen() int { return len(c.data) + ChunkOverhead }

// Length is the number of data bytes.
func (c *Chunk) Length() uint32 { return uint32(len(c.data)) }

// Type returns the chunk's type code.
func (c *Chunk) Type() ChunkType { return c.chunkType }

// Data returns the payload. It must not be modified.
func (c *Chunk) Data() []byte { return c.data }

// CRC returns the CRC-32 of the type and data bytes.
func (c *Chunk) CRC() uint32 { return c.crc }

// DataString returns the payload as text.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s chunk", ErrInvalidUTF8, c.chunkType)
	}
	return string(c.data), nil
}

// String summarizes the chunk for display.
func (c *Chunk) String() string {
	return fmt.Sprintf("%s length=%d crc=0x%08x flags=%s", c.chunkType, c.Length(), c.crc, Flags(c.chunkType))
}

// Flags renders the property bits of t as a compact string, e.g. "critical,public,unsafe".
func Flags(t ChunkType) string {
	parts := make([]string, 0, 4)
	if t.IsCritical() {
		parts = append(parts, "critical")
	} else {
		parts = append(parts, "ancillary")
	}
	if t.IsPublic() {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if !t.IsReservedBitValid() {
		parts = append(parts, "reserved-invalid")
	}
	if t.IsSafeToCopy() {
		parts = append(parts, "safe-to-copy")
	} else {
		parts = append(parts, "unsafe-to-copy")
	}
	return strings.Join(parts, ",")
}

func checksum(code [4]byte, data []byte) uint32 {
	crc := crc32.ChecksumIEEE(code[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}
