// Package transport moves 32-bit words between the process and a device's
// address space.
//
// Addresses are byte addresses of word-aligned device memory; the register
// model treats them as opaque values meaningful only to the transport that
// serves them. Implementations are expected to have at most one operation in
// flight per handle; wrap a transport in a [Hub] when several goroutines
// share one.
package transport

import (
	"errors"
	"fmt"
)

// Transport is the contract for device memory access. A transport performs
// blocking word-block reads and writes; it does not retry and does not
// interpret the data. Opening is the concern of each implementation's
// constructor; failures carry descriptive errors rather than a separate
// last-error call.
type Transport interface {
	// Read fills dst with the words at addr, addr+4, ...
	Read(addr uint32, dst []uint32) error
	// Write stores src at addr, addr+4, ...
	Write(addr uint32, src []uint32) error
	// Close releases the underlying handle. The transport must not be used
	// afterwards.
	Close() error
}

// ErrUnaligned indicates an access at an address that is not word aligned.
var ErrUnaligned = errors.New("transport: address is not word aligned")

// ErrUnmapped indicates an access to memory the transport does not serve.
var ErrUnmapped = errors.New("transport: address is not mapped")

func checkAligned(addr uint32) error {
	if addr%wordSize != 0 {
		return fmt.Errorf("0x%08x: %w", addr, ErrUnaligned)
	}
	return nil
}

const wordSize = 4
