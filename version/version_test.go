// SPDX-License-Identifier: Apache-2.0 OR MIT

package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chimeratk-go/regaccess/version"
)

func TestNextIsStrictlyIncreasing(t *testing.T) {
	a := version.Next()
	b := version.Next()
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, b.GreaterOrEqual(a))
}

func TestZeroValueIsZero(t *testing.T) {
	var z version.Number
	assert.True(t, z.IsZero())
	n := version.Next()
	assert.False(t, n.IsZero())
	assert.True(t, z.Less(n))
}
