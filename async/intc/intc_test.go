// SPDX-License-Identifier: Apache-2.0 OR MIT

package intc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/async/intc"
	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/version"
)

type memWindow struct {
	words map[uint64]int32
}

func newMemWindow() *memWindow { return &memWindow{words: make(map[uint64]int32)} }

func (w *memWindow) ReadWords(bar int, address uint64, out []int32) error {
	for i := range out {
		out[i] = w.words[address+uint64(i*4)]
	}
	return nil
}

func (w *memWindow) WriteWords(bar int, address uint64, in []int32) error {
	for i, v := range in {
		w.words[address+uint64(i*4)] = v
	}
	return nil
}

func rootCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat := catalogue.NewCatalogue()
	require.NoError(t, cat.AddRegister(catalogue.RegisterInfo{
		Path: "APP0/active_ints", NElements: 1, Address: 0x100, NBytes: 4, Bar: 0,
		Width: 32, Signed: false, Access: catalogue.ReadOnly, Type: catalogue.FixedPoint,
	}))
	return cat
}

func TestAxi4HandlerFiresAllKnownChildren(t *testing.T) {
	factory := intc.NewFactory(rootCatalogue(t), newMemWindow())
	factory.Describe([]int{0}, "AXI4_INTC", "")

	root, err := factory.Create([]int{0})
	require.NoError(t, err)

	td0, err := root.GetTriggerDistributorRecursive([]int{0})
	require.NoError(t, err)
	td1, err := root.GetTriggerDistributorRecursive([]int{1})
	require.NoError(t, err)

	varA := td0.VariableDistributor()
	varB := td1.VariableDistributor()
	accA := varA.Subscribe(4)
	accB := varB.Subscribe(4)
	defer accA.Close()
	defer accB.Close()

	root.Activate(version.Next())
	_, _, _, _, ok := accA.Read()
	require.True(t, ok)
	_, _, _, _, ok = accB.Read()
	require.True(t, ok)

	require.NoError(t, root.Handle(version.Next()))

	_, _, _, _, ok = accA.Read()
	require.True(t, ok)
	_, _, _, _, ok = accB.Read()
	require.True(t, ok)
}

func TestDummyHandlerFiresOnlyAssertedLines(t *testing.T) {
	window := newMemWindow()
	cat := rootCatalogue(t)
	factory := intc.NewFactory(cat, window)
	factory.Describe([]int{0}, "dummy", `{"module":"APP0"}`)

	root, err := factory.Create([]int{0})
	require.NoError(t, err)

	td0, err := root.GetTriggerDistributorRecursive([]int{0})
	require.NoError(t, err)
	td2, err := root.GetTriggerDistributorRecursive([]int{2})
	require.NoError(t, err)

	acc0 := td0.VariableDistributor().Subscribe(4)
	acc2 := td2.VariableDistributor().Subscribe(4)
	defer acc0.Close()
	defer acc2.Close()

	root.Activate(version.Next())
	_, _, _, _, ok := acc0.Read()
	require.True(t, ok)
	_, _, _, _, ok = acc2.Read()
	require.True(t, ok)

	window.words[0x100] = 0x1 // only line 0 asserted

	require.NoError(t, root.Handle(version.Next()))

	_, _, _, _, ok = acc0.Read()
	require.True(t, ok)

	acc2.Interrupt()
	_, _, _, _, ok = acc2.Read()
	assert.False(t, ok, "line 2 was not asserted, must not have received a new value")
}

func TestDummyHandlerRejectsUnknownLine(t *testing.T) {
	window := newMemWindow()
	cat := rootCatalogue(t)
	factory := intc.NewFactory(cat, window)
	factory.Describe([]int{0}, "dummy", `{"module":"APP0"}`)

	root, err := factory.Create([]int{0})
	require.NoError(t, err)

	_, err = root.GetTriggerDistributorRecursive([]int{0})
	require.NoError(t, err)

	window.words[0x100] = 0x2 // line 1 was never subscribed
	root.Activate(version.Next())

	err = root.Handle(version.Next())
	require.Error(t, err)
}
