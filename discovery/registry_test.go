// SPDX-License-Identifier: Apache-2.0 OR MIT

package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/discovery"
)

func TestRegisterIsIdempotentPerCatalogue(t *testing.T) {
	r := discovery.NewRegistry()
	cat := catalogue.NewCatalogue()

	a := r.Register("board0", cat)
	b := r.Register("board0", cat)

	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, r.Entries(), 1)
}

func TestRegisterAssignsDistinctIDsPerCatalogue(t *testing.T) {
	r := discovery.NewRegistry()

	a := r.Register("board0", catalogue.NewCatalogue())
	b := r.Register("board1", catalogue.NewCatalogue())

	assert.NotEqual(t, a.ID, b.ID)
}

func TestLookupReturnsRegisteredEntry(t *testing.T) {
	r := discovery.NewRegistry()
	cat := catalogue.NewCatalogue()
	entry := r.Register("board0", cat)

	got, ok := r.Lookup(entry.ID)
	require.True(t, ok)
	assert.Equal(t, "board0", got.Name)
	assert.Same(t, cat, got.Catalogue)
}

func TestLookupUnknownIDFails(t *testing.T) {
	r := discovery.NewRegistry()
	_, ok := r.Lookup("does-not-exist")
	assert.False(t, ok)
}
