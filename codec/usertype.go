// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package codec implements the two register data codecs used by regaccess:
// FixedPoint (arbitrary width, signed/unsigned, fractional bits) and IEEE754
// single precision. Both expose ToCooked/ToRaw conversions to and from the
// closed set of user types a register accessor may be requested with.
package codec

// UserType is the closed set of cooked types a register may be accessed as.
//
// The original C++ source dispatches conversions through compile-time
// virtual template tables keyed by the caller's chosen type; Go has no
// equivalent, so this tag plus the visitor-style Value below replaces it
// with an explicit sum type, as called for by the "dynamic dispatch via
// templates" redesign note.
type UserType int

const (
	Int8 UserType = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	String
	Bool
	Void
)

func (t UserType) String() string {
	switch t {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Value is a cooked value tagged with its UserType, used as the payload of
// ToCooked/ToRaw so callers do not need a generic type parameter per user
// type at the codec boundary.
type Value struct {
	Type UserType

	i   int64
	u   uint64
	f64 float64
	s   string
	b   bool
}

// Int constructs a signed-integer Value of the given width tag (Int8, Int16,
// Int32 or Int64).
func Int(t UserType, v int64) Value { return Value{Type: t, i: v} }

// Uint constructs an unsigned-integer Value of the given width tag (Uint8,
// Uint16, Uint32 or Uint64).
func Uint(t UserType, v uint64) Value { return Value{Type: t, u: v} }

// Float32Value constructs a Float32 Value.
func Float32Value(v float32) Value { return Value{Type: Float32, f64: float64(v)} }

// Float64Value constructs a Float64 Value.
func Float64Value(v float64) Value { return Value{Type: Float64, f64: v} }

// StringValue constructs a String Value.
func StringValue(v string) Value { return Value{Type: String, s: v} }

// BoolValue constructs a Bool Value.
func BoolValue(v bool) Value { return Value{Type: Bool, b: v} }

// VoidValue constructs the single Void value.
func VoidValue() Value { return Value{Type: Void} }

// Int64 returns v's payload as an int64, valid for any signed-integer Type.
func (v Value) Int64() int64 { return v.i }

// Uint64 returns v's payload as a uint64, valid for any unsigned-integer Type.
func (v Value) Uint64() uint64 { return v.u }

// Float64 returns v's payload as a float64, valid for Float32 or Float64.
func (v Value) Float64() float64 { return v.f64 }

// Str returns v's payload as a string, valid for Type == String.
func (v Value) Str() string { return v.s }

// Bool returns v's payload as a bool, valid for Type == Bool.
func (v Value) Bool() bool { return v.b }
