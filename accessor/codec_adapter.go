// SPDX-License-Identifier: Apache-2.0 OR MIT

package accessor

import "github.com/chimeratk-go/regaccess/codec"

// wordCodec is the common interface both codec.FixedPoint and codec.IEEE754
// satisfy, letting the factory treat FIXED_POINT/VOID and IEEE754 registers
// uniformly once the right codec has been selected.
type wordCodec interface {
	ToCooked(raw int32, target codec.UserType) (codec.Value, error)
	ToRaw(v codec.Value) (int32, error)
}
