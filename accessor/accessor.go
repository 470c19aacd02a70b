// SPDX-License-Identifier: Apache-2.0 OR MIT

package accessor

import (
	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/regerr"
)

// DataValidity tags a value read from a transfer element as trustworthy or
// as stale due to a fault episode (§7).
type DataValidity int

const (
	Ok DataValidity = iota
	Faulty
)

// Accessor is a typed synchronous transfer element built by New over a
// RegisterInfo and a RawWindow. It supports 0-D and 1-D registers of type
// FIXED_POINT, VOID, IEEE754 and ASCII. 2-D multiplexed registers are built
// by NewMuxed instead.
type Accessor struct {
	info     catalogue.RegisterInfo
	window   RawWindow
	target   codec.UserType
	raw      bool
	codec    wordCodec
	validity DataValidity
}

// New builds a synchronous accessor over info's address window, converting
// to/from the requested target user type. raw requests the untransformed
// int32 window; when raw is true target is ignored and Read/Write operate
// in terms of Int32 values.
func New(info catalogue.RegisterInfo, window RawWindow, target codec.UserType, raw bool) (*Accessor, error) {
	if info.Is2D() {
		return nil, regerr.Logic("register %q is 2-D multiplexed; use NewMuxed", info.Path)
	}
	if info.Type == catalogue.ASCII {
		if raw {
			return nil, regerr.Logic("ASCII register %q does not support raw mode", info.Path)
		}
		if target != codec.String {
			return nil, regerr.Logic("ASCII register %q may only be accessed as string", info.Path)
		}
		return &Accessor{info: info, window: window, target: target}, nil
	}

	a := &Accessor{info: info, window: window, target: target, raw: raw}
	if raw {
		a.target = codec.Int32
		return a, nil
	}

	switch info.Type {
	case catalogue.FixedPoint, catalogue.Void:
		fp, err := codec.NewFixedPoint(info.Width, info.FractionalBits, info.Signed)
		if err != nil {
			return nil, err
		}
		a.codec = fp
	case catalogue.IEEE754:
		a.codec = codec.NewIEEE754()
	default:
		return nil, regerr.Logic("register %q has unsupported type %s", info.Path, info.Type)
	}
	return a, nil
}

// Info returns the RegisterInfo this accessor was built from.
func (a *Accessor) Info() catalogue.RegisterInfo { return a.info }

// Validity returns Faulty if the last read failed at the transport, and Ok
// otherwise.
func (a *Accessor) Validity() DataValidity { return a.validity }

func (a *Accessor) numElements() int {
	if a.info.NElements == 0 {
		return 1
	}
	return a.info.NElements
}

// Read fetches the register's current value(s), converting each raw word
// to the accessor's target user type (or returning it untransformed in raw
// mode).
func (a *Accessor) Read() ([]codec.Value, error) {
	if a.info.Access == catalogue.WriteOnly {
		return nil, regerr.Logic("register %q is write-only", a.info.Path)
	}
	if a.info.Type == catalogue.ASCII {
		return a.readASCII()
	}

	raw := make([]int32, a.numElements())
	if err := a.window.ReadWords(a.info.Bar, a.info.Address, raw); err != nil {
		a.validity = Faulty
		return nil, regerr.WrapRuntime(err, "reading register %q", a.info.Path)
	}
	a.validity = Ok

	if a.raw {
		out := make([]codec.Value, len(raw))
		for i, w := range raw {
			out[i] = codec.Int(codec.Int32, int64(w))
		}
		return out, nil
	}

	out := make([]codec.Value, len(raw))
	for i, w := range raw {
		v, err := a.codec.ToCooked(w, a.target)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Write pushes cooked values (or raw Int32 values in raw mode) to the
// register. Write fails with a LogicError for RO registers; RW, WO and
// INTERRUPT registers accept it.
func (a *Accessor) Write(values []codec.Value) error {
	if a.info.Access == catalogue.ReadOnly {
		return regerr.Logic("register %q is read-only", a.info.Path)
	}
	if a.info.Type == catalogue.ASCII {
		return a.writeASCII(values)
	}
	if len(values) != a.numElements() {
		return regerr.Logic("register %q expects %d elements, got %d", a.info.Path, a.numElements(), len(values))
	}

	raw := make([]int32, len(values))
	for i, v := range values {
		if a.raw {
			if v.Type != codec.Int32 {
				return regerr.Logic("register %q is in raw mode; only Int32 values are accepted", a.info.Path)
			}
			raw[i] = int32(v.Int64())
			continue
		}
		w, err := a.codec.ToRaw(v)
		if err != nil {
			return err
		}
		raw[i] = w
	}
	if err := a.window.WriteWords(a.info.Bar, a.info.Address, raw); err != nil {
		return regerr.WrapRuntime(err, "writing register %q", a.info.Path)
	}
	return nil
}

// RawBuffer returns the untransformed int32 window, valid only when the
// accessor was built with raw=true.
func (a *Accessor) RawBuffer() ([]int32, error) {
	if !a.raw {
		return nil, regerr.Logic("register %q was not opened in raw mode", a.info.Path)
	}
	values, err := a.Read()
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v.Int64())
	}
	return out, nil
}
