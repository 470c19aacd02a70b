// SPDX-License-Identifier: Apache-2.0 OR MIT

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMapFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "device.map")
	require.NoError(t, os.WriteFile(p, []byte("REG 1 0x0 4 0 32 0 0 RW\n"), 0644))
	return p
}

func TestCatCommandPrintsTable(t *testing.T) {
	mapPath := writeMapFile(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"cat", "--map", mapPath})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "REG")
}

func TestCatCommandPrintsJSON(t *testing.T) {
	mapPath := writeMapFile(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"cat", "--map", mapPath, "--json"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"path": "REG"`)
}

func TestCatCommandFailsOnMissingMapFile(t *testing.T) {
	rootCmd.SetArgs([]string{"cat", "--map", "/nonexistent/device.map"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}

func TestReadCommandReadsThroughDummyTransport(t *testing.T) {
	mapPath := writeMapFile(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"read", "--map", mapPath, "REG"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "0")
}

func TestReadCommandFailsOnUnknownRegister(t *testing.T) {
	mapPath := writeMapFile(t)
	rootCmd.SetArgs([]string{"read", "--map", mapPath, "NOPE"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 3, exitCodeFor(err))
}

func TestReadCommandFailsOnUnknownTransport(t *testing.T) {
	mapPath := writeMapFile(t)
	rootCmd.SetArgs([]string{"read", "--map", mapPath, "--transport", "bogus", "REG"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}
