// SPDX-License-Identifier: Apache-2.0 OR MIT

package distributor

import (
	"sync"

	"github.com/chimeratk-go/regaccess/async/subscription"
	"github.com/chimeratk-go/regaccess/version"
)

// PollDistributor owns a TransferGroup of synchronous accessors and, on
// Trigger, reads them coherently and pushes each result to the matching
// subscriber. It doubles as a subscription manager: the fluctuating set of
// subscribed variables is not safe for concurrent trigger dispatch on its
// own, so both concerns live in one type.
type PollDistributor struct {
	mgr   *subscription.Manager
	group *TransferGroup

	mu     sync.Mutex
	active bool
}

// NewPollDistributor constructs an empty, inactive PollDistributor.
func NewPollDistributor() *PollDistributor {
	p := &PollDistributor{mgr: subscription.NewManager(), group: NewTransferGroup()}
	p.mgr.SetUnsubscribeHook(func(id uint64) {
		p.group.Remove(id)
		if p.group.Empty() {
			// Drop and replace the group so it releases any accessor it
			// held onto, breaking a reference cycle back to the backend.
			p.mu.Lock()
			p.group = NewTransferGroup()
			p.mu.Unlock()
		}
	})
	return p
}

// Subscribe registers source in the transfer group and returns the
// subscriber-facing accessor. If the distributor is already active, source
// is read once immediately so the new subscriber gets an initial value.
func (p *PollDistributor) Subscribe(capacity int, source PollSource) *subscription.AsyncAccessor {
	acc := p.mgr.Subscribe(capacity, func() (any, subscription.DataValidity, bool) {
		values, err := source.Read()
		if err != nil {
			return nil, subscription.Faulty, false
		}
		return values, toSubscriptionValidity(source.Validity()), true
	})
	p.group.Add(acc.ID(), source)
	return acc
}

// Trigger reads every subscribed source under the group's lock and pushes
// each fresh value to its subscriber, all stamped with v.
func (p *PollDistributor) Trigger(v version.Number) {
	p.mu.Lock()
	active := p.active
	group := p.group
	p.mu.Unlock()
	if !active {
		return
	}

	for id, result := range group.ReadAll() {
		if result.Err != nil {
			p.mgr.SendErrorTo(id, result.Err)
			continue
		}
		p.mgr.SendTo(id, result.Values, v, toSubscriptionValidity(result.Validity))
	}
}

// Activate marks the distributor active and immediately triggers once so
// current subscribers get a fresh reading at the activation version.
func (p *PollDistributor) Activate(v version.Number) {
	p.mu.Lock()
	p.active = true
	p.mu.Unlock()
	p.mgr.SetActive(true)
	p.Trigger(v)
}

// Deactivate marks the distributor inactive; further Trigger calls are
// no-ops until the next Activate.
func (p *PollDistributor) Deactivate() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
	p.mgr.SetActive(false)
}

// SendException deactivates the distributor and forwards err to every
// subscriber.
func (p *PollDistributor) SendException(err error) {
	p.Deactivate()
	p.mgr.SendException(err)
}

// Len returns the number of live subscribers.
func (p *PollDistributor) Len() int { return p.mgr.Len() }
