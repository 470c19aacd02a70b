// SPDX-License-Identifier: Apache-2.0 OR MIT

package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/regerr"
)

func TestFixedPointRoundTrip(t *testing.T) {
	fp, err := codec.NewFixedPoint(16, 3, true)
	require.NoError(t, err)

	cases := []struct {
		cooked float64
		raw    int32
	}{
		{1.0, 8},
		{-1.0, -8},
		{0.5, 4},
		{2047.875, 16383},
	}
	for _, c := range cases {
		raw, err := fp.ToRaw(codec.Float64Value(c.cooked))
		require.NoError(t, err)
		assert.Equal(t, c.raw, raw, "cooked=%v", c.cooked)

		back, err := fp.ToCooked(raw, codec.Float64)
		require.NoError(t, err)
		assert.InDelta(t, c.cooked, back.Float64(), 1.0/8)
	}
}

func TestFixedPointSignExtension(t *testing.T) {
	fp, err := codec.NewFixedPoint(32, 0, true)
	require.NoError(t, err)

	v, err := fp.ToCooked(int32(-2147483648), codec.Int32)
	require.NoError(t, err)
	assert.Equal(t, int64(-2147483648), v.Int64())

	_, err = fp.ToCooked(int32(-2147483648), codec.Uint32)
	require.Error(t, err)
	assert.True(t, regerr.Classify(err) == regerr.ConversionOverflowKind)
}

func TestFixedPointVoidWidth(t *testing.T) {
	fp, err := codec.NewFixedPoint(0, 0, false)
	require.NoError(t, err)

	raw, err := fp.ToRaw(codec.Int(codec.Int32, 42))
	require.NoError(t, err)
	assert.Equal(t, int32(0), raw)

	v, err := fp.ToCooked(999, codec.String)
	require.NoError(t, err)
	assert.Equal(t, "0", v.Str())
}

func TestFixedPointSaturatesOnOverflow(t *testing.T) {
	fp, err := codec.NewFixedPoint(8, 0, false)
	require.NoError(t, err)

	raw, err := fp.ToRaw(codec.Float64Value(1000))
	require.NoError(t, err)
	assert.Equal(t, int32(255), raw)
}

func TestFixedPointStringParseError(t *testing.T) {
	fp, err := codec.NewFixedPoint(16, 0, true)
	require.NoError(t, err)

	_, err = fp.ToRaw(codec.StringValue("not-a-number"))
	require.Error(t, err)
	assert.Equal(t, regerr.InvalidArgumentKind, regerr.Classify(err))
}

func TestFixedPointRejectsOversizeWidth(t *testing.T) {
	_, err := codec.NewFixedPoint(33, 0, false)
	require.Error(t, err)
	assert.True(t, regerr.IsLogic(err))
}
