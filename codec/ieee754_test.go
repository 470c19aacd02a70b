// SPDX-License-Identifier: Apache-2.0 OR MIT

package codec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/regerr"
)

func TestIEEE754RoundTrip(t *testing.T) {
	c := codec.NewIEEE754()
	raw, err := c.ToRaw(codec.Float64Value(3.5))
	require.NoError(t, err)

	v, err := c.ToCooked(raw, codec.Float64)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, v.Float64(), 1e-6)
}

func TestIEEE754OverflowSaturatesToRaw(t *testing.T) {
	c := codec.NewIEEE754()
	raw, err := c.ToRaw(codec.Float64Value(1e39))
	require.NoError(t, err)

	f := math.Float32frombits(uint32(raw))
	assert.Equal(t, float32(math.MaxFloat32), f)
}

func TestIEEE754ToCookedOverflow(t *testing.T) {
	c := codec.NewIEEE754()
	raw, err := c.ToRaw(codec.Float64Value(1e39))
	require.NoError(t, err)

	_, err = c.ToCooked(raw, codec.Int8)
	require.Error(t, err)
	assert.Equal(t, regerr.ConversionOverflowKind, regerr.Classify(err))
}
