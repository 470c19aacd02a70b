// SPDX-License-Identifier: Apache-2.0 OR MIT

package catalogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/catalogue"
)

func TestAddRegisterRejectsDuplicatePath(t *testing.T) {
	cat := catalogue.NewCatalogue()
	r := catalogue.RegisterInfo{Path: "REG", NElements: 1, NBytes: 4, Width: 32, Access: catalogue.ReadWrite, Type: catalogue.FixedPoint}
	require.NoError(t, cat.AddRegister(r))
	assert.Error(t, cat.AddRegister(r))
}

func TestAddRegisterRejectsInvalidRegister(t *testing.T) {
	cat := catalogue.NewCatalogue()
	r := catalogue.RegisterInfo{Path: "REG", Type: catalogue.Void, Access: catalogue.ReadOnly}
	assert.Error(t, cat.AddRegister(r))
}

func TestPathsPreservesInsertionOrder(t *testing.T) {
	cat := catalogue.NewCatalogue()
	names := []string{"C", "A", "B"}
	for _, n := range names {
		require.NoError(t, cat.AddRegister(catalogue.RegisterInfo{
			Path: n, NElements: 1, NBytes: 4, Width: 32, Access: catalogue.ReadWrite, Type: catalogue.FixedPoint,
		}))
	}
	assert.Equal(t, names, cat.Paths())
	assert.Equal(t, 3, cat.Len())
}

func TestHasDoesNotCountSynthesizedBarAddresses(t *testing.T) {
	cat := catalogue.NewCatalogue()
	assert.False(t, cat.Has("BAR/0/16"))
	_, err := cat.Lookup("BAR/0/16")
	require.NoError(t, err)
	assert.False(t, cat.Has("BAR/0/16"), "Lookup must not persist a synthesized register")
}

func TestLookupRejectsBadBarNBytes(t *testing.T) {
	cat := catalogue.NewCatalogue()
	_, err := cat.Lookup("BAR/0/16*3")
	assert.Error(t, err)
}

func TestNormalizePathTreatsDotAsSlash(t *testing.T) {
	cat := catalogue.NewCatalogue()
	require.NoError(t, cat.AddRegister(catalogue.RegisterInfo{
		Path: "APP0/REG", NElements: 1, NBytes: 4, Width: 32, Access: catalogue.ReadWrite, Type: catalogue.FixedPoint,
	}))
	assert.True(t, cat.Has("APP0.REG"))
}

func TestInterruptIDsDeduplicatesAcrossRegisters(t *testing.T) {
	cat := catalogue.NewCatalogue()
	require.NoError(t, cat.AddRegister(catalogue.RegisterInfo{
		Path: "A", Access: catalogue.Interrupt, InterruptID: []int{0, 1},
	}))
	require.NoError(t, cat.AddRegister(catalogue.RegisterInfo{
		Path: "B", Access: catalogue.Interrupt, InterruptID: []int{0, 1},
	}))
	require.NoError(t, cat.AddRegister(catalogue.RegisterInfo{
		Path: "C", Access: catalogue.Interrupt, InterruptID: []int{0, 2},
	}))
	ids := cat.InterruptIDs()
	assert.ElementsMatch(t, []string{"0:1", "0:2"}, ids)
}

func TestMetadataRoundTrip(t *testing.T) {
	cat := catalogue.NewCatalogue()
	cat.SetMetadata("VERSION", "1.0")
	assert.Equal(t, "1.0", cat.Metadata()["VERSION"])
}
