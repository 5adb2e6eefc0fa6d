package transport

import (
	"fmt"

	"github.com/lmoureaux/addresstable/internal/wordenc"
)

// MemOptions configures an in-memory transport.
type MemOptions struct {
	// FaultOnUnmapped makes reads of never-written words fail with
	// ErrUnmapped instead of returning zero. Useful in tests that must
	// prove an operation touched no device memory.
	FaultOnUnmapped bool
}

// Mem is an in-memory transport backed by a sparse word store. It stands in
// for real device memory in tests and simulations: unwritten words read as
// zero unless FaultOnUnmapped is set.
//
// Mem itself performs no locking; wrap it in a [Hub] when shared between
// goroutines.
type Mem struct {
	words  map[uint32]uint32
	opts   MemOptions
	closed bool
}

// NewMem returns an empty in-memory transport.
func NewMem(opts MemOptions) *Mem {
	return &Mem{words: make(map[uint32]uint32), opts: opts}
}

// Read implements [Transport].
func (m *Mem) Read(addr uint32, dst []uint32) error {
	if m.closed {
		return fmt.Errorf("mem: read 0x%08x: transport is closed", addr)
	}
	if err := checkAligned(addr); err != nil {
		return fmt.Errorf("mem: read %w", err)
	}
	for i := range dst {
		a := addr + uint32(i)*wordSize
		w, ok := m.words[a]
		if !ok && m.opts.FaultOnUnmapped {
			return fmt.Errorf("mem: read 0x%08x: %w", a, ErrUnmapped)
		}
		dst[i] = w
	}
	return nil
}

// Write implements [Transport].
func (m *Mem) Write(addr uint32, src []uint32) error {
	if m.closed {
		return fmt.Errorf("mem: write 0x%08x: transport is closed", addr)
	}
	if err := checkAligned(addr); err != nil {
		return fmt.Errorf("mem: write %w", err)
	}
	for i, w := range src {
		m.words[addr+uint32(i)*wordSize] = w
	}
	return nil
}

// Close implements [Transport].
func (m *Mem) Close() error {
	m.closed = true
	return nil
}

// LoadBytes stores a little-endian memory image at addr. The image length
// must be a whole number of words.
func (m *Mem) LoadBytes(addr uint32, data []byte) error {
	words, err := wordenc.Words(data)
	if err != nil {
		return fmt.Errorf("mem: load: %w", err)
	}
	return m.Write(addr, words)
}

// Bytes returns n bytes starting at addr as a little-endian memory image.
func (m *Mem) Bytes(addr uint32, n int) ([]byte, error) {
	if n%wordSize != 0 {
		return nil, fmt.Errorf("mem: image size %d is not a whole number of words", n)
	}
	words := make([]uint32, n/wordSize)
	if err := m.Read(addr, words); err != nil {
		return nil, err
	}
	return wordenc.Bytes(words), nil
}
