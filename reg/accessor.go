package reg

import (
	"fmt"

	"github.com/lmoureaux/addresstable/transport"
)

// Device binds register descriptors to a memory-access transport. All
// register reads and writes go through the transport; the device itself
// never touches raw memory.
type Device struct {
	t transport.Transport
}

// NewDevice returns a device backed by t. The device does not take ownership
// of the transport; closing it remains the caller's job.
func NewDevice(t transport.Transport) *Device {
	return &Device{t: t}
}

// Accessor reads and writes one register through a device transport.
//
// There are exactly three concrete shapes behind this interface, one per
// capability combination; [Device.Accessor] selects among them. Operations
// outside the shape's capabilities fail with a permission error before any
// device access happens.
type Accessor interface {
	// Read returns the register's value, right-aligned: one device load,
	// masked and shifted.
	Read() (uint32, error)
	// Write stores a right-aligned value into the register. Full-mask
	// registers take a single store; partial masks take a read-modify-write
	// (one load, one store). Values wider than the mask are rejected before
	// any device access.
	Write(value uint32) error
	// Register returns the descriptor the accessor was built from.
	Register() Register
}

// Accessor returns the live accessor for r, selected by its capability
// shape. Registers that fail [Register.Validate] are rejected, which rules
// out the unreadable-and-unwritable combination at declaration time.
func (d *Device) Accessor(r Register) (Accessor, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	switch r.Access() {
	case RW:
		return rwAccessor{reg: r, t: d.t}, nil
	case WO:
		return woAccessor{reg: r, t: d.t}, nil
	default:
		return roAccessor{reg: r, t: d.t}, nil
	}
}

// Map builds the live accessor tree for an entire schema: the same shape as
// n, with every leaf replaced by its accessor.
func (d *Device) Map(n *Node) (*Tree[Accessor], error) {
	var firstErr error
	tree := Transform(n, func(r Register) Accessor {
		a, err := d.Accessor(r)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return a
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return tree, nil
}

type roAccessor struct {
	reg Register
	t   transport.Transport
}

func (a roAccessor) Read() (uint32, error) { return readField(a.t, a.reg) }

func (a roAccessor) Write(uint32) error {
	return fmt.Errorf("reg: write 0x%08x: %w", a.reg.Addr, ErrNotWritable)
}

func (a roAccessor) Register() Register { return a.reg }

type woAccessor struct {
	reg Register
	t   transport.Transport
}

func (a woAccessor) Read() (uint32, error) {
	return 0, fmt.Errorf("reg: read 0x%08x: %w", a.reg.Addr, ErrNotReadable)
}

func (a woAccessor) Write(value uint32) error { return writeField(a.t, a.reg, value) }

func (a woAccessor) Register() Register { return a.reg }

type rwAccessor struct {
	reg Register
	t   transport.Transport
}

func (a rwAccessor) Read() (uint32, error) { return readField(a.t, a.reg) }

func (a rwAccessor) Write(value uint32) error { return writeField(a.t, a.reg, value) }

func (a rwAccessor) Register() Register { return a.reg }

func readField(t transport.Transport, r Register) (uint32, error) {
	var word [1]uint32
	if err := t.Read(r.Addr, word[:]); err != nil {
		return 0, &Error{Kind: ErrKindTransport, Msg: fmt.Sprintf("reg: read 0x%08x", r.Addr), Err: err}
	}
	return (word[0] & r.Mask) >> r.Shift(), nil
}

func writeField(t transport.Transport, r Register, value uint32) error {
	if r.Mask == FullMask {
		if err := t.Write(r.Addr, []uint32{value}); err != nil {
			return &Error{Kind: ErrKindTransport, Msg: fmt.Sprintf("reg: write 0x%08x", r.Addr), Err: err}
		}
		return nil
	}
	shift := r.Shift()
	if value&^(r.Mask>>shift) != 0 {
		return fmt.Errorf("reg: write 0x%08x: value 0x%x exceeds mask 0x%08x: %w",
			r.Addr, value, r.Mask, ErrValueTooWide)
	}
	var word [1]uint32
	if err := t.Read(r.Addr, word[:]); err != nil {
		return &Error{Kind: ErrKindTransport, Msg: fmt.Sprintf("reg: write 0x%08x", r.Addr), Err: err}
	}
	word[0] &^= r.Mask
	word[0] |= value << shift
	if err := t.Write(r.Addr, word[:]); err != nil {
		return &Error{Kind: ErrKindTransport, Msg: fmt.Sprintf("reg: write 0x%08x", r.Addr), Err: err}
	}
	return nil
}
