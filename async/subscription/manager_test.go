// SPDX-License-Identifier: Apache-2.0 OR MIT

package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/async/subscription"
)

func TestSubscribeAndBroadcastOrdering(t *testing.T) {
	m := subscription.NewManager()
	a := m.Subscribe(4, nil)
	b := m.Subscribe(4, nil)
	defer a.Close()
	defer b.Close()

	for i := 0; i < 3; i++ {
		m.Broadcast(i, subscription.Ok)
	}

	for i := 0; i < 3; i++ {
		da, va, _, _, ok := a.Read()
		require.True(t, ok)
		db, vb, _, _, ok := b.Read()
		require.True(t, ok)
		assert.Equal(t, i, da)
		assert.Equal(t, i, db)
		assert.True(t, va.GreaterOrEqual(vb) && vb.GreaterOrEqual(va), "versions must match across subscribers")
	}
}

func TestUnsubscribeTriggersOnEmpty(t *testing.T) {
	m := subscription.NewManager()
	var emptied bool
	m.OnEmpty(func() { emptied = true })

	a := m.Subscribe(4, nil)
	assert.Equal(t, 1, m.Len())
	require.NoError(t, a.Close())
	assert.Equal(t, 0, m.Len())
	assert.True(t, emptied)
}

func TestSendExceptionReachesAllSubscribers(t *testing.T) {
	m := subscription.NewManager()
	a := m.Subscribe(4, nil)
	b := m.Subscribe(4, nil)
	defer a.Close()
	defer b.Close()

	m.SendException(assertErr("boom"))

	_, _, _, erra, ok := a.Read()
	require.True(t, ok)
	assert.EqualError(t, erra, "boom")

	_, _, _, errb, ok := b.Read()
	require.True(t, ok)
	assert.EqualError(t, errb, "boom")
}

func TestSubscribeWhileActiveSendsInitialValue(t *testing.T) {
	m := subscription.NewManager()
	m.SetActive(true)
	a := m.Subscribe(4, func() (any, subscription.DataValidity, bool) {
		return "initial", subscription.Ok, true
	})
	defer a.Close()

	data, _, _, _, ok := a.Read()
	require.True(t, ok)
	assert.Equal(t, "initial", data)
}

func TestQueueLatestWinsOnOverflow(t *testing.T) {
	q := subscription.NewQueue(2)
	q.Push(subscription.Item{Data: 1})
	q.Push(subscription.Item{Data: 2})
	q.Push(subscription.Item{Data: 3})

	item, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, item.Data)

	item, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 3, item.Data)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
