// SPDX-License-Identifier: Apache-2.0 OR MIT

package rebot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/transport/dummy"
	"github.com/chimeratk-go/regaccess/transport/rebot"
)

func TestClientReadWriteRoundTripThroughServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dev, err := dummy.New(dummy.WithBar(0, dummy.NewBar(64)))
	require.NoError(t, err)

	srv, err := rebot.Serve(ctx, "127.0.0.1:0", dev)
	require.NoError(t, err)
	defer srv.Close()

	c, err := rebot.Dial(ctx, srv.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.WriteWords(0, 0x10, []int32{1, 2, 3}))

	out := make([]int32, 3)
	require.NoError(t, c.ReadWords(0, 0x10, out))
	assert.Equal(t, []int32{1, 2, 3}, out)

	// visible directly on the underlying device, not just via the client
	v, err := dev.Peek(0, 0x10)
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)
}

func TestClientSurfacesServerSideErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dev, err := dummy.New(dummy.WithBar(0, dummy.NewBar(16)))
	require.NoError(t, err)

	srv, err := rebot.Serve(ctx, "127.0.0.1:0", dev)
	require.NoError(t, err)
	defer srv.Close()

	c, err := rebot.Dial(ctx, srv.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	err = c.ReadWords(1, 0, make([]int32, 1))
	assert.Error(t, err)
}
