// SPDX-License-Identifier: Apache-2.0 OR MIT

package subscription

import "github.com/chimeratk-go/regaccess/version"

// AsyncAccessor is the consumer-facing handle returned by Manager.Subscribe.
// Read blocks on the underlying Queue; Close unsubscribes and releases the
// manager's reference, following the explicit-lifetime substitution for
// weak-pointer ownership described on AsyncVariable.
type AsyncAccessor struct {
	id      uint64
	queue   *Queue
	manager *Manager
	closed  bool
}

// ID returns the subscription id this accessor was registered under.
func (a *AsyncAccessor) ID() uint64 { return a.id }

// Read blocks until a new value, exception or interruption arrives.
// ok is false for an interruption, and once the accessor has been closed
// and drained.
func (a *AsyncAccessor) Read() (data any, v version.Number, validity DataValidity, err error, ok bool) {
	item, ok := a.queue.Pop()
	if !ok || item.Interrupted {
		return nil, version.Number{}, Ok, nil, false
	}
	return item.Data, item.Version, item.Validity, item.Err, true
}

// Interrupt unblocks a pending Read without closing the accessor.
func (a *AsyncAccessor) Interrupt() { a.queue.Interrupt() }

// Close unsubscribes this accessor from its manager. It is safe to call
// more than once.
func (a *AsyncAccessor) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.manager.Unsubscribe(a.id)
	a.queue.Close()
	return nil
}
