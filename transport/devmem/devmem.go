// Package devmem provides a transport for genuinely memory-mapped hardware.
//
// It maps a window of a device file (such as a soft-core register file
// exposed under /dev, or a plain image file in tests) into the process and
// serves word accesses straight from the mapping. Deployments that reach the
// device through a remote memory service should use a network-backed
// transport instead; this package is for the hosted-on-the-board case.
package devmem

import (
	"fmt"

	"github.com/lmoureaux/addresstable/internal/wordenc"
	"github.com/lmoureaux/addresstable/transport"
)

// Device is a transport backed by a memory-mapped window of a device file.
// The window covers device addresses [base, base+len(data)).
type Device struct {
	base     uint32
	data     []byte
	writable bool
	sync     func() error
	cleanup  func() error
}

var _ transport.Transport = (*Device)(nil)

// slice bounds-checks one access and returns the backing bytes for it.
func (d *Device) slice(addr uint32, words int) ([]byte, error) {
	if addr%wordenc.WordSize != 0 {
		return nil, fmt.Errorf("devmem: 0x%08x: %w", addr, transport.ErrUnaligned)
	}
	if addr < d.base {
		return nil, fmt.Errorf("devmem: 0x%08x below window base 0x%08x: %w",
			addr, d.base, transport.ErrUnmapped)
	}
	off := int(addr - d.base)
	end := off + words*wordenc.WordSize
	if end > len(d.data) {
		return nil, fmt.Errorf("devmem: 0x%08x+%d words beyond window end 0x%08x: %w",
			addr, words, d.base+uint32(len(d.data)), transport.ErrUnmapped)
	}
	return d.data[off:end], nil
}

// Read implements [transport.Transport].
func (d *Device) Read(addr uint32, dst []uint32) error {
	b, err := d.slice(addr, len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = wordenc.U32(b[i*wordenc.WordSize:])
	}
	return nil
}

// Write implements [transport.Transport]. Each write is flushed to the
// backing file before returning.
func (d *Device) Write(addr uint32, src []uint32) error {
	if !d.writable {
		return fmt.Errorf("devmem: write 0x%08x: mapping is read-only", addr)
	}
	b, err := d.slice(addr, len(src))
	if err != nil {
		return err
	}
	for i, w := range src {
		wordenc.PutU32(b[i*wordenc.WordSize:], w)
	}
	if d.sync != nil {
		return d.sync()
	}
	return nil
}

// Close implements [transport.Transport]. It unmaps the window.
func (d *Device) Close() error {
	d.data = nil
	if d.cleanup != nil {
		return d.cleanup()
	}
	return nil
}
