// SPDX-License-Identifier: Apache-2.0 OR MIT

package distributor

import (
	"sync"

	"github.com/chimeratk-go/regaccess/async/subscription"
	"github.com/chimeratk-go/regaccess/version"
)

// VariableDistributor carries an opaque payload — VOID for a plain trigger
// pulse, or a decoded register value for a push-type source register — and
// fans it out to every subscriber unchanged.
type VariableDistributor struct {
	mgr *subscription.Manager

	mu      sync.Mutex
	active  bool
	current any
}

// NewVariableDistributor constructs an empty, inactive VariableDistributor.
func NewVariableDistributor() *VariableDistributor {
	return &VariableDistributor{mgr: subscription.NewManager()}
}

// Subscribe registers a new subscriber. If the distributor is active, the
// last distributed value is sent immediately as the initial value.
func (d *VariableDistributor) Subscribe(capacity int) *subscription.AsyncAccessor {
	return d.mgr.Subscribe(capacity, func() (any, subscription.DataValidity, bool) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if !d.active {
			return nil, subscription.Ok, false
		}
		return d.current, subscription.Ok, true
	})
}

// Distribute stamps data with v and enqueues it to every subscriber, but
// only while the distributor is active — a distribute racing a concurrent
// deactivate is resolved by the manager lock held while filling the queue.
func (d *VariableDistributor) Distribute(data any, v version.Number) {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.current = data
	d.mu.Unlock()

	d.mgr.BroadcastVersioned(data, v, subscription.Ok)
}

// Activate marks the distributor active and distributes data as the first
// value under the activation version.
func (d *VariableDistributor) Activate(data any, v version.Number) {
	d.mu.Lock()
	d.active = true
	d.current = data
	d.mu.Unlock()
	d.mgr.SetActive(true)

	d.mgr.BroadcastVersioned(data, v, subscription.Ok)
}

// Deactivate marks the distributor inactive; further Distribute calls are
// no-ops until the next Activate.
func (d *VariableDistributor) Deactivate() {
	d.mu.Lock()
	d.active = false
	d.mu.Unlock()
	d.mgr.SetActive(false)
}

// SendException deactivates the distributor and forwards err to every
// subscriber.
func (d *VariableDistributor) SendException(err error) {
	d.Deactivate()
	d.mgr.SendException(err)
}

// Len returns the number of live subscribers.
func (d *VariableDistributor) Len() int { return d.mgr.Len() }
