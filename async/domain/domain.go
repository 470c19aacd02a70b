// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package domain implements the per-interrupt gating state machine (C4):
// inactive/active/failed, with a one-slot pending buffer that resolves the
// race between a hardware event racing ahead of activation.
package domain

import (
	"sync"

	"github.com/chimeratk-go/regaccess/version"
)

// State is the lifecycle state of a Domain.
type State int

const (
	Inactive State = iota
	Active
	Failed
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Target receives the data a Domain gates through to its downstream
// distributor. It is satisfied by the async/distributor package's
// TriggerDistributor and VariableDistributor.
type Target interface {
	Distribute(data any, v version.Number)
	Activate(data any, v version.Number)
	Deactivate()
	SendException(err error)
}

// Domain gates the flow of one primary interrupt into its downstream
// Target. State transitions are serialized by a plain mutex; per the
// deadlock discipline of §5, the target callback is always invoked after
// the mutex has been released, so a fault the target reports back via a
// fresh call to SendException never re-enters while the lock is held and
// no recursive lock is needed.
type Domain struct {
	mu sync.Mutex

	state  State
	target Target

	pendingData    any
	pendingVersion version.Number
	havePending    bool
}

// New constructs a Domain gating target.
func New(target Target) *Domain {
	return &Domain{target: target, state: Inactive}
}

// State returns the current lifecycle state.
func (d *Domain) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Distribute forwards (data, v) to the target if the domain is active;
// otherwise it is recorded as pending, to be resolved by a subsequent
// Activate racing against it.
func (d *Domain) Distribute(data any, v version.Number) {
	d.mu.Lock()
	if d.state != Active {
		d.pendingData = data
		d.pendingVersion = v
		d.havePending = true
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	d.target.Distribute(data, v)
}

// Activate transitions the domain to Active and forwards the newest of
// (data, v) and any pending data recorded while inactive, per the
// activate-after-early-event resolution of §4.4: if the pending version is
// newer than v, the pending pair wins.
func (d *Domain) Activate(data any, v version.Number) {
	d.mu.Lock()
	d.state = Active
	useData, useVersion := data, v
	if d.havePending && v.Less(d.pendingVersion) {
		useData, useVersion = d.pendingData, d.pendingVersion
	}
	d.havePending = false
	d.mu.Unlock()

	d.target.Activate(useData, useVersion)
}

// Deactivate transitions the domain back to Inactive.
func (d *Domain) Deactivate() {
	d.mu.Lock()
	d.state = Inactive
	d.mu.Unlock()

	d.target.Deactivate()
}

// SendException atomically transitions the domain to Failed, discards any
// pending data and forwards err to the target. A Domain in Failed state
// stays there until a subsequent successful Activate.
func (d *Domain) SendException(err error) {
	d.mu.Lock()
	d.state = Failed
	d.havePending = false
	d.mu.Unlock()

	d.target.SendException(err)
}
