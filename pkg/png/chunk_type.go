package png

// ChunkType is a 4-byte chunk type code. The case of each letter carries one
// property bit: ancillary, private, reserved and safe-to-copy, in that order.
type ChunkType struct {
	code [4]byte
}

var (
	TypeIHDR = MustParseChunkType("IHDR")
	TypeIEND = MustParseChunkType("IEND")
)

// ChunkTypeFromBytes builds a ChunkType from raw bytes. Every byte must be an
// ASCII letter; the reserved bit is not checked here, see IsValid.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isLetter(c) {
			return ChunkType{}, &InvalidCharacterError{Char: c}
		}
	}
	return ChunkType{code: b}, nil
}

// ParseChunkType builds a ChunkType from its textual form, e.g. "tEXt".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &InvalidLengthError{Length: len(s)}
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

// MustParseChunkType is like ParseChunkType but panics on error.
func MustParseChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Bytes returns the raw type code.
func (t ChunkType) Bytes() [4]byte { return t.code }

// String returns the type code in its original case.
func (t ChunkType) String() string { return string(t.code[:]) }

// IsValid reports whether all bytes are letters and the reserved bit is valid.
func (t ChunkType) IsValid() bool {
	for _, c := range t.code {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

// IsCritical reports whether decoders must understand this chunk (byte 0 uppercase).
func (t ChunkType) IsCritical() bool { return isUpper(t.code[0]) }

// IsPublic reports whether the type is registered by the PNG standard (byte 1 uppercase).
func (t ChunkType) IsPublic() bool { return isUpper(t.code[1]) }

// IsReservedBitValid reports whether byte 2 is uppercase, as the format requires.
func (t ChunkType) IsReservedBitValid() bool { return isUpper(t.code[2]) }

// IsSafeToCopy reports whether editors may copy the chunk without understanding it (byte 3 lowercase).
func (t ChunkType) IsSafeToCopy() bool { return isLower(t.code[3]) }

func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isLetter(c byte) bool { return isUpper(c) || isLower(c) }
