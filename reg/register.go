package reg

import (
	"fmt"
	"math/bits"
)

// FullMask covers all 32 bits of a device word.
const FullMask uint32 = 0xffffffff

// WordSize is the size in bytes of a device word. Register addresses and
// array steps must be multiples of it.
const WordSize = 4

// Access is the closed set of capability shapes a register can have.
type Access int

const (
	RO Access = iota // readable only
	WO               // writable only, always covers the full word
	RW               // readable and writable
)

func (a Access) String() string {
	switch a {
	case RO:
		return "r"
	case WO:
		return "w"
	case RW:
		return "rw"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// Register describes a single bitfield inside a 32-bit device word.
//
// Addr is a byte address in the device address space, meaningful only to the
// transport that performs the access; it is never a process pointer. Mask
// selects which bits of the word belong to the register and must be a single
// contiguous run of set bits.
type Register struct {
	Addr     uint32
	Mask     uint32
	CanRead  bool
	CanWrite bool
}

// Access returns the capability shape of the register. It is only meaningful
// for registers that pass Validate.
func (r Register) Access() Access {
	switch {
	case r.CanRead && r.CanWrite:
		return RW
	case r.CanWrite:
		return WO
	default:
		return RO
	}
}

// Shift returns the bit position of the register's least significant bit.
func (r Register) Shift() int {
	return bits.TrailingZeros32(r.Mask)
}

// Width returns the register's width in bits.
func (r Register) Width() int {
	return bits.OnesCount32(r.Mask)
}

// MaxValue returns the largest value the register can hold.
func (r Register) MaxValue() uint32 {
	return r.Mask >> r.Shift()
}

// Validate checks the declaration invariants and returns a typed error when
// one is violated. Schema constructors call it, so registers reached through
// a schema are always valid.
//
// The invariants:
//   - Addr is word aligned;
//   - Mask is nonzero and its set bits form one contiguous run;
//   - at least one of CanRead, CanWrite is set;
//   - a writable register with a partial mask is also readable, because a
//     masked write needs the load half of the read-modify-write.
func (r Register) Validate() error {
	if r.Addr%WordSize != 0 {
		return schemaErr(fmt.Sprintf("register address 0x%08x is not word aligned", r.Addr))
	}
	if r.Mask == 0 {
		return schemaErr(fmt.Sprintf("register at 0x%08x has an empty mask", r.Addr))
	}
	if m := r.Mask >> r.Shift(); m&(m+1) != 0 {
		return schemaErr(fmt.Sprintf("register at 0x%08x has holes in mask 0x%08x", r.Addr, r.Mask))
	}
	if !r.CanRead && !r.CanWrite {
		return schemaErr(fmt.Sprintf("register at 0x%08x is neither readable nor writable", r.Addr))
	}
	if r.CanWrite && !r.CanRead && r.Mask != FullMask {
		return schemaErr(fmt.Sprintf(
			"write-only register at 0x%08x has partial mask 0x%08x (masked writes need read access)",
			r.Addr, r.Mask))
	}
	return nil
}

func (r Register) String() string {
	return fmt.Sprintf("0x%08x mask 0x%08x (%s)", r.Addr, r.Mask, r.Access())
}
