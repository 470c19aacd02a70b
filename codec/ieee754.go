// SPDX-License-Identifier: Apache-2.0 OR MIT

package codec

import (
	"math"
	"strconv"

	"github.com/chimeratk-go/regaccess/regerr"
)

// IEEE754 converts between the raw 32-bit register word, interpreted as the
// bit pattern of an IEEE-754 single-precision float, and a cooked user
// value. It has the same ToCooked/ToRaw interface as FixedPoint so the
// accessor factory can treat both codecs uniformly.
type IEEE754 struct{}

// NewIEEE754 constructs an IEEE754 codec. It carries no configuration.
func NewIEEE754() *IEEE754 { return &IEEE754{} }

// ToRaw converts a cooked value to the bit pattern of the nearest
// single-precision float, saturating to +-FLT_MAX on overflow. String
// inputs that fail to parse return regerr.InvalidArgument.
func (IEEE754) ToRaw(v Value) (int32, error) {
	var f float32
	switch v.Type {
	case Void:
		return 0, nil
	case Bool:
		if v.Bool() {
			f = 1
		}
	case String:
		parsed, err := strconv.ParseFloat(v.Str(), 64)
		if err != nil {
			return 0, regerr.InvalidArgument("cannot parse %q as a float", v.Str())
		}
		f = saturateFloat32(parsed)
	case Int8, Int16, Int32, Int64:
		f = saturateFloat32(float64(v.Int64()))
	case Uint8, Uint16, Uint32, Uint64:
		f = saturateFloat32(float64(v.Uint64()))
	case Float32, Float64:
		f = saturateFloat32(v.Float64())
	default:
		return 0, regerr.Logic("unsupported user type %s", v.Type)
	}
	return int32(math.Float32bits(f)), nil
}

// ToCooked reinterprets raw as a single-precision float and narrows it to
// the requested cooked target type, range-checking the result. On overflow
// it returns regerr.ConversionOverflow unless target is String.
func (IEEE754) ToCooked(raw int32, target UserType) (Value, error) {
	f := math.Float32frombits(uint32(raw))
	cooked := float64(f)
	if target == Void {
		return VoidValue(), nil
	}
	if target == Bool {
		return BoolValue(cooked != 0), nil
	}
	if target == String {
		return StringValue(strconv.FormatFloat(cooked, 'g', -1, 32)), nil
	}
	return narrowTo(cooked, target)
}

// saturateFloat32 converts v to float32, clamping to +-FLT_MAX rather than
// overflowing to +-Inf, matching the original converter's toRaw behavior.
func saturateFloat32(v float64) float32 {
	if v > math.MaxFloat32 {
		return math.MaxFloat32
	}
	if v < -math.MaxFloat32 {
		return -math.MaxFloat32
	}
	return float32(v)
}
