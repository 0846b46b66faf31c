// Package png reads and writes PNG files at the chunk level. Pixel data is
// never interpreted; chunks are kept in stream order and re-serialized as is.
package png

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Signature is the 8-byte magic at the start of every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// File is a PNG signature followed by an ordered list of chunks.
type File struct {
	chunks []*Chunk
}

// Parse decodes a whole PNG byte stream. A corrupt chunk fails the parse.
func Parse(b []byte) (*File, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrInvalidSignature
	}

	f := &File{}
	offset := len(Signature)
	for offset < len(b) {
		c, err := DecodeChunk(b[offset:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(f.chunks), offset, err)
		}
		f.chunks = append(f.chunks, c)
		offset += c.EncodedLen()
	}
	return f, nil
}

// FromChunks builds a File holding chunks in the given order.
func FromChunks(chunks ...*Chunk) *File {
	return &File{chunks: append([]*Chunk(nil), chunks...)}
}

// Header returns the PNG signature written before the chunks.
func (f *File) Header() [8]byte { return Signature }

// Chunks returns the chunks in stream order. The returned slice is a copy.
func (f *File) Chunks() []*Chunk {
	return append([]*Chunk(nil), f.chunks...)
}

// AppendChunk adds c after the last chunk. Duplicate types are allowed.
func (f *File) AppendChunk(c *Chunk) {
	f.chunks = append(f.chunks, c)
}

// ChunkByType returns the first chunk whose type code equals code.
func (f *File) ChunkByType(code string) (*Chunk, bool) {
	i := f.index(code)
	if i < 0 {
		return nil, false
	}
	return f.chunks[i], true
}

// RemoveChunk removes and returns the first chunk whose type code equals code.
// The list is left untouched when nothing matches.
func (f *File) RemoveChunk(code string) (*Chunk, error) {
	i := f.index(code)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, code)
	}
	c := f.chunks[i]
	f.chunks = append(f.chunks[:i:i], f.chunks[i+1:]...)
	return c, nil
}

func (f *File) index(code string) int {
	for i, c := range f.chunks {
		if c.Type().String() == code {
			return i
		}
	}
	return -1
}

// EncodedLen is the size of Bytes' output.
func (f *File) EncodedLen() int {
	n := len(Signature)
	for _, c := range f.chunks {
		n += c.EncodedLen()
	}
	return n
}

// Bytes serializes the signature and every chunk in order.
func (f *File) Bytes() []byte {
	out := make([]byte, 0, f.EncodedLen())
	out = append(out, Signature[:]...)
	for _, c := range f.chunks {
		out = append(out, c.Encode()...)
	}
	return out
}

// WriteTo implements io.WriterTo.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Signature[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	for _, c := range f.chunks {
		n, err = w.Write(c.Encode())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String lists the chunks for display.
func (f *File) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PNG with %d chunks (%d bytes)\n", len(f.chunks), f.EncodedLen())
	for i, c := range f.chunks {
		fmt.Fprintf(&sb, "  [%d] %s\n", i, c)
	}
	return sb.String()
}
