// SPDX-License-Identifier: Apache-2.0 OR MIT

package accessor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/accessor"
	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/codec"
)

// memWindow is a trivial in-memory RawWindow used to exercise the accessor
// factory without any transport.
type memWindow struct {
	words map[uint64]int32
}

func newMemWindow() *memWindow { return &memWindow{words: make(map[uint64]int32)} }

func (m *memWindow) ReadWords(bar int, address uint64, out []int32) error {
	for i := range out {
		out[i] = m.words[address+uint64(i*4)]
	}
	return nil
}

func (m *memWindow) WriteWords(bar int, address uint64, in []int32) error {
	for i, w := range in {
		m.words[address+uint64(i*4)] = w
	}
	return nil
}

func TestAccessorFixedPointRoundTrip(t *testing.T) {
	info := catalogue.RegisterInfo{
		Path: "REG", NElements: 2, Address: 0, NBytes: 8, Width: 16, FractionalBits: 3, Signed: true,
		Access: catalogue.ReadWrite, Type: catalogue.FixedPoint,
	}
	w := newMemWindow()
	a, err := accessor.New(info, w, codec.Float64, false)
	require.NoError(t, err)

	err = a.Write([]codec.Value{codec.Float64Value(1.0), codec.Float64Value(-1.0)})
	require.NoError(t, err)

	got, err := a.Read()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0].Float64(), 1.0/8)
	assert.InDelta(t, -1.0, got[1].Float64(), 1.0/8)
}

func TestAccessorRawMode(t *testing.T) {
	info := catalogue.RegisterInfo{
		Path: "REG", NElements: 1, NBytes: 4, Width: 32, Signed: true,
		Access: catalogue.ReadWrite, Type: catalogue.FixedPoint,
	}
	w := newMemWindow()
	a, err := accessor.New(info, w, codec.Int32, true)
	require.NoError(t, err)

	err = a.Write([]codec.Value{codec.Int(codec.Int32, 12345)})
	require.NoError(t, err)

	raw, err := a.RawBuffer()
	require.NoError(t, err)
	assert.Equal(t, []int32{12345}, raw)
}

func TestAccessorASCIIRoundTrip(t *testing.T) {
	info := catalogue.RegisterInfo{
		Path: "NAME", NElements: 1, NBytes: 8, Access: catalogue.ReadWrite, Type: catalogue.ASCII,
	}
	w := newMemWindow()
	a, err := accessor.New(info, w, codec.String, false)
	require.NoError(t, err)

	require.NoError(t, a.Write([]codec.Value{codec.StringValue("hi")}))
	got, err := a.Read()
	require.NoError(t, err)
	assert.Equal(t, "hi", got[0].Str())
}

func TestAccessorASCIIRejectsNonString(t *testing.T) {
	info := catalogue.RegisterInfo{Path: "NAME", NBytes: 8, Type: catalogue.ASCII, Access: catalogue.ReadWrite}
	w := newMemWindow()
	_, err := accessor.New(info, w, codec.Int32, false)
	require.Error(t, err)
}

func TestAccessorRejectsWriteOnReadOnly(t *testing.T) {
	info := catalogue.RegisterInfo{
		Path: "REG", NElements: 1, NBytes: 4, Width: 32, Access: catalogue.ReadOnly, Type: catalogue.FixedPoint,
	}
	w := newMemWindow()
	a, err := accessor.New(info, w, codec.Int32, false)
	require.NoError(t, err)
	err = a.Write([]codec.Value{codec.Int(codec.Int32, 1)})
	require.Error(t, err)
}

func TestMuxedAccessorDemux(t *testing.T) {
	src := `
AREA_MULTIPLEXED_SEQUENCE_X 0 0x0 32 0 0
SEQUENCE_X_0 0 0x0 2 0 16 0 0
SEQUENCE_X_1 0 0x2 2 0 16 0 1
`
	cat, err := catalogue.Parse(strings.NewReader(src))
	require.NoError(t, err)
	info, err := cat.Lookup("X")
	require.NoError(t, err)

	w := newMemWindow()
	m, err := accessor.NewMuxed(info, w, nil)
	require.NoError(t, err)

	values := make([][]codec.Value, 2)
	values[0] = make([]codec.Value, info.NBlocks)
	values[1] = make([]codec.Value, info.NBlocks)
	for i := 0; i < info.NBlocks; i++ {
		values[0][i] = codec.Int(codec.Int32, int64(i))
		values[1][i] = codec.Int(codec.Int32, int64(-i))
	}
	require.NoError(t, m.Write(values))

	got, err := m.Read()
	require.NoError(t, err)
	for i := 0; i < info.NBlocks; i++ {
		assert.Equal(t, int64(i), got[0][i].Int64())
		assert.Equal(t, int64(-i), got[1][i].Int64())
	}
}
