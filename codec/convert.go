// SPDX-License-Identifier: Apache-2.0 OR MIT

package codec

import (
	"math"

	"github.com/chimeratk-go/regaccess/regerr"
)

// intRange returns the representable [min,max] of an integer UserType.
func intRange(t UserType) (min, max float64, signed bool) {
	switch t {
	case Int8:
		return math.MinInt8, math.MaxInt8, true
	case Int16:
		return math.MinInt16, math.MaxInt16, true
	case Int32:
		return math.MinInt32, math.MaxInt32, true
	case Int64:
		return math.MinInt64, math.MaxInt64, true
	case Uint8:
		return 0, math.MaxUint8, false
	case Uint16:
		return 0, math.MaxUint16, false
	case Uint32:
		return 0, math.MaxUint32, false
	case Uint64:
		return 0, math.MaxUint64, false
	default:
		return 0, 0, false
	}
}

// narrowTo converts a rounded, already-scaled cooked float64 to the target
// integer or floating-point UserType, range-checking the result. Values are
// rounded to the nearest integer (ties away from zero) before the range
// check when target is an integer type.
func narrowTo(cooked float64, target UserType) (Value, error) {
	switch target {
	case Float32:
		if cooked > math.MaxFloat32 || cooked < -math.MaxFloat32 {
			return Value{}, regerr.ConversionOverflow("value %g does not fit in float32", cooked)
		}
		return Float32Value(float32(cooked)), nil
	case Float64:
		return Float64Value(cooked), nil
	case Int8, Int16, Int32, Int64:
		min, max, _ := intRange(target)
		rounded := roundHalfAwayFromZero(cooked)
		if rounded < min || rounded > max {
			return Value{}, regerr.ConversionOverflow("value %g does not fit in %s", cooked, target)
		}
		return Int(target, int64(rounded)), nil
	case Uint8, Uint16, Uint32, Uint64:
		min, max, _ := intRange(target)
		rounded := roundHalfAwayFromZero(cooked)
		if rounded < min || rounded > max {
			return Value{}, regerr.ConversionOverflow("value %g does not fit in %s", cooked, target)
		}
		return Uint(target, uint64(rounded)), nil
	default:
		return Value{}, regerr.Logic("unsupported cooked target type %s", target)
	}
}
