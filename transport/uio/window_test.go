// SPDX-License-Identifier: Apache-2.0 OR MIT

package uio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindows() *windows {
	return &windows{bars: map[int][]byte{
		0: make([]byte, 16),
		1: make([]byte, 8),
	}}
}

func TestWindowsReadWriteRoundTrip(t *testing.T) {
	w := newTestWindows()

	require.NoError(t, w.writeWords(0, 4, []int32{7, -3}))
	out := make([]int32, 2)
	require.NoError(t, w.readWords(0, 4, out))
	assert.Equal(t, []int32{7, -3}, out)
}

func TestWindowsRejectsUnmappedBar(t *testing.T) {
	w := newTestWindows()

	assert.Error(t, w.readWords(2, 0, make([]int32, 1)))
	assert.Error(t, w.writeWords(2, 0, []int32{1}))
}

func TestWindowsRejectsOutOfRangeOffset(t *testing.T) {
	w := newTestWindows()

	assert.Error(t, w.readWords(1, 8, make([]int32, 1)))
	assert.Error(t, w.writeWords(1, 4, []int32{1, 2}))
}

func TestReadMapInfoFailsWithoutSysfs(t *testing.T) {
	_, err := readMapInfo("/nonexistent/uio/path", 0)
	assert.Error(t, err)
}
