package png

import (
	"errors"
	"fmt"
)

// Errors returned by the codec. Callers match them with errors.Is.
var (
	ErrInvalidSignature = errors.New("invalid PNG signature")
	ErrTruncatedChunk   = errors.New("truncated chunk")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrInvalidUTF8      = errors.New("chunk data is not valid UTF-8")
	ErrChunkTooLarge    = errors.New("chunk data exceeds 4 GiB")
)

// InvalidCharacterError reports a chunk type byte that is not an ASCII letter.
type InvalidCharacterError struct {
	Char byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid chunk type character 0x%02x", e.Char)
}

// InvalidLengthError reports a chunk type code that is not 4 bytes long.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("chunk type code must be 4 bytes, got %d", e.Length)
}

// ChecksumError carries both checksums of a chunk that failed verification.
type ChecksumError struct {
	Type     [4]byte
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s: type %q stored 0x%08x, computed 0x%08x", ErrChecksumMismatch, e.Type[:], e.Stored, e.Computed)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}
