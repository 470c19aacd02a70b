// SPDX-License-Identifier: Apache-2.0 OR MIT

package subscription

import (
	"sync"

	"github.com/chimeratk-go/regaccess/version"
)

// DefaultQueueCapacity is the queue depth used when a subscriber does not
// request a specific capacity — "effectively unbounded" for typical
// interrupt rates while still being a discrete, bounded buffer per §4.6.
const DefaultQueueCapacity = 64

// Manager is the rendezvous point between a distributor and its
// subscribers (C7). PollDistributor and VariableDistributor in
// async/distributor each hold one; TriggerDistributor has none.
type Manager struct {
	mu     sync.Mutex
	subs   map[uint64]*AsyncVariable
	nextID uint64
	active bool

	// onEmpty is invoked (outside the lock) whenever Unsubscribe leaves the
	// subscription table empty, letting a TriggerDistributor check whether
	// its line has gone idle.
	onEmpty func()

	// postSendExceptionHook lets the owning distributor's controller
	// handler propagate the exception to nested children.
	postSendExceptionHook func(err error)

	// unsubscribeHook is invoked with the removed id on every Unsubscribe,
	// letting a PollDistributor drop its per-subscriber poll source.
	unsubscribeHook func(id uint64)
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{subs: make(map[uint64]*AsyncVariable)}
}

// OnEmpty registers the hook invoked when the last subscriber leaves.
func (m *Manager) OnEmpty(f func()) { m.onEmpty = f }

// SetPostSendExceptionHook registers the hook invoked after every
// subscriber has been sent an exception.
func (m *Manager) SetPostSendExceptionHook(f func(err error)) { m.postSendExceptionHook = f }

// SetUnsubscribeHook registers the hook invoked with the id of every
// subscriber removed by Unsubscribe.
func (m *Manager) SetUnsubscribeHook(f func(id uint64)) { m.unsubscribeHook = f }

// SetActive marks the domain this manager belongs to as active or not,
// controlling whether new subscriptions receive an immediate initial value.
func (m *Manager) SetActive(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = active
}

// Subscribe creates a new AsyncVariable/AsyncAccessor pair and inserts it
// into the subscription table. If the manager is active and initial is
// non-nil, initial() supplies the value enqueued immediately as the
// subscriber's first delivery (version = new), matching "if the owning
// domain is active, the variable's current value is immediately enqueued".
func (m *Manager) Subscribe(capacity int, initial func() (data any, validity DataValidity, ok bool)) *AsyncAccessor {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	queue := NewQueue(capacity)
	av := newAsyncVariable(id, queue)
	m.subs[id] = av
	active := m.active
	m.mu.Unlock()

	if active && initial != nil {
		if data, validity, ok := initial(); ok {
			av.Send(data, version.Next(), validity)
		}
	}

	return &AsyncAccessor{id: id, queue: queue, manager: m}
}

// Unsubscribe removes id from the subscription table. If the table becomes
// empty, onEmpty is invoked outside the lock.
func (m *Manager) Unsubscribe(id uint64) {
	m.mu.Lock()
	delete(m.subs, id)
	empty := len(m.subs) == 0
	m.mu.Unlock()

	if m.unsubscribeHook != nil {
		m.unsubscribeHook(id)
	}
	if empty && m.onEmpty != nil {
		m.onEmpty()
	}
}

// SendTo delivers data to a single subscriber by id, if it is still live.
// Used by PollDistributor, whose subscribers each read a different
// synchronous source and so cannot share one broadcast value.
func (m *Manager) SendTo(id uint64, data any, v version.Number, validity DataValidity) {
	m.mu.Lock()
	av, ok := m.subs[id]
	m.mu.Unlock()
	if ok {
		av.Send(data, v, validity)
	}
}

// SendErrorTo delivers a terminal error to a single subscriber by id.
func (m *Manager) SendErrorTo(id uint64, err error) {
	m.mu.Lock()
	av, ok := m.subs[id]
	m.mu.Unlock()
	if ok {
		av.SendException(err)
	}
}

// Broadcast stamps data with a fresh version number and enqueues it to
// every live subscriber, all observing the same version, in the same
// order, per §5's ordering guarantee.
func (m *Manager) Broadcast(data any, validity DataValidity) version.Number {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := version.Next()
	for _, av := range m.subs {
		av.Send(data, v, validity)
	}
	return v
}

// BroadcastVersioned is like Broadcast but uses a caller-supplied version
// number instead of minting a new one, for callers (TriggerDistributor)
// that already received a version from further up the tree.
func (m *Manager) BroadcastVersioned(data any, v version.Number, validity DataValidity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, av := range m.subs {
		av.Send(data, v, validity)
	}
}

// SendException forwards err to every live subscriber, then invokes the
// post-send-exception hook exactly once.
func (m *Manager) SendException(err error) {
	m.mu.Lock()
	for _, av := range m.subs {
		av.SendException(err)
	}
	m.mu.Unlock()

	if m.postSendExceptionHook != nil {
		m.postSendExceptionHook(err)
	}
}

// Len returns the number of live subscribers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}
