// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package catalogue parses a text map file describing the register layout
// of a numeric-addressed backend and produces an immutable Catalogue of
// RegisterInfo descriptors.
package catalogue

import "github.com/chimeratk-go/regaccess/codec"

// Access is the access mode of a register.
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
	WriteOnly
	Interrupt
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "RO"
	case ReadWrite:
		return "RW"
	case WriteOnly:
		return "WO"
	case Interrupt:
		return "INTERRUPT"
	default:
		return "unknown"
	}
}

// RegType is the on-device data interpretation of a register.
type RegType int

const (
	FixedPoint RegType = iota
	IEEE754
	Void
	ASCII
)

func (t RegType) String() string {
	switch t {
	case FixedPoint:
		return "FIXED_POINT"
	case IEEE754:
		return "IEEE754"
	case Void:
		return "VOID"
	case ASCII:
		return "ASCII"
	default:
		return "unknown"
	}
}

// ChannelInfo describes one channel of a 2-D multiplexed register.
type ChannelInfo struct {
	BitOffset      int
	Type           RegType
	Width          int
	FractionalBits int
	Signed         bool
}

// UserType returns the codec.UserType a channel's raw samples decode to by
// default (Int32 for FIXED_POINT/VOID, Float32 for IEEE754).
func (c ChannelInfo) UserType() codec.UserType {
	if c.Type == IEEE754 {
		return codec.Float32
	}
	return codec.Int32
}

// RegisterInfo is the immutable descriptor of a single register, produced
// by parsing a map file (or synthesized on demand for a BAR/offset address).
type RegisterInfo struct {
	Path           string
	NElements      int
	Address        uint64
	NBytes         uint32
	Bar            int
	Width          int
	FractionalBits int
	Signed         bool
	Access         Access
	Type           RegType

	// InterruptID is the ordered list of controller-line ids for a
	// registered interrupt source; empty for polled registers.
	InterruptID []int

	// 2-D multiplexed registers only.
	NBlocks      int
	BytesPerBlock int
	Channels     []ChannelInfo
}

// Is2D reports whether r describes a 2-D multiplexed register.
func (r RegisterInfo) Is2D() bool { return len(r.Channels) > 0 }

// IsAsync reports whether r carries an interrupt id and can therefore be
// subscribed to asynchronously.
func (r RegisterInfo) IsAsync() bool { return len(r.InterruptID) > 0 }

// Validate checks RegisterInfo against the invariants of §3 that do not
// require catalogue-wide context (2-D channel layout, VOID zeroing).
func (r RegisterInfo) Validate() error {
	if r.Type == Void {
		if r.Access == ReadOnly {
			return errVoidReadOnly
		}
		if r.Width != 0 || r.NElements != 0 || r.Address != 0 || r.NBytes != 0 ||
			r.Bar != 0 || r.FractionalBits != 0 || r.Signed {
			return errVoidNonZeroFields
		}
	}
	if r.Is2D() {
		prev := -1
		for i, c := range r.Channels {
			if c.BitOffset <= prev {
				return errChannelOffsetsNotIncreasing
			}
			prev = c.BitOffset
			if i+1 < len(r.Channels) {
				span := r.Channels[i+1].BitOffset - c.BitOffset
				if c.Width > span {
					return errChannelWidthExceedsSpan
				}
			}
		}
		last := r.Channels[len(r.Channels)-1]
		if last.Width > r.BytesPerBlock*8-last.BitOffset {
			return errChannelWidthExceedsSpan
		}
	}
	return nil
}
