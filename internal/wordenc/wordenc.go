// Package wordenc converts between byte buffers and 32-bit device words.
// Device memory images are little-endian, matching the on-wire layout of the
// memory services this library talks to.
package wordenc

import (
	"encoding/binary"
	"fmt"
)

// WordSize is the size in bytes of a device word.
const WordSize = 4

// U32 decodes the word at the start of b.
func U32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// PutU32 encodes v at the start of b.
func PutU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// Words decodes b into device words. len(b) must be a multiple of WordSize.
func Words(b []byte) ([]uint32, error) {
	if len(b)%WordSize != 0 {
		return nil, fmt.Errorf("wordenc: %d bytes is not a whole number of words", len(b))
	}
	out := make([]uint32, len(b)/WordSize)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*WordSize:])
	}
	return out, nil
}

// Bytes encodes words into a fresh byte buffer.
func Bytes(words []uint32) []byte {
	out := make([]byte, len(words)*WordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*WordSize:], w)
	}
	return out
}
