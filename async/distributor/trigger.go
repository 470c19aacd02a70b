// SPDX-License-Identifier: Apache-2.0 OR MIT

package distributor

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chimeratk-go/regaccess/version"
)

// Handler is the nested-controller-handler surface a TriggerDistributor
// forwards to when its own line carries further interrupt levels
// underneath it. Implemented by async/intc.ControllerHandler; declared
// here rather than imported to keep intc the only side of the dependency
// (intc creates TriggerDistributors, so a TriggerDistributor cannot import
// intc without a cycle).
type Handler interface {
	Handle(v version.Number) error
	Activate(v version.Number)
	Deactivate()
	SendException(err error)
}

// TriggerDistributor is a pure fan-out node hanging off one interrupt line:
// it owns at most one each of a PollDistributor, a VariableDistributor and
// a nested Handler, created lazily on first subscription. It has no
// subscribers of its own.
type TriggerDistributor struct {
	id []int

	mu      sync.Mutex
	poll    *PollDistributor
	varDist *VariableDistributor
	nested  Handler
	active  bool
	onIdle  func()
}

// New constructs a TriggerDistributor for the given interrupt id path.
func New(id []int) *TriggerDistributor {
	return &TriggerDistributor{id: id}
}

// ID returns the interrupt id path this distributor was created for.
func (t *TriggerDistributor) ID() []int { return t.id }

// SetOnIdle registers f to be invoked (outside any lock) the moment this
// node has no poll or variable subscribers left and no nested handler.
// async/intc uses this to prune the line from its children map, the Go
// substitution for the original's weak_ptr expiring on its own.
func (t *TriggerDistributor) SetOnIdle(f func()) {
	t.mu.Lock()
	t.onIdle = f
	t.mu.Unlock()
}

// Idle reports whether this node currently has no live subscribers and no
// nested handler.
func (t *TriggerDistributor) Idle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idleLocked()
}

func (t *TriggerDistributor) idleLocked() bool {
	if t.nested != nil {
		return false
	}
	if t.poll != nil && t.poll.Len() > 0 {
		return false
	}
	if t.varDist != nil && t.varDist.Len() > 0 {
		return false
	}
	return true
}

func (t *TriggerDistributor) checkIdle() {
	t.mu.Lock()
	idle := t.idleLocked()
	onIdle := t.onIdle
	t.mu.Unlock()
	if idle && onIdle != nil {
		onIdle()
	}
}

// PollDistributor lazily creates and returns this node's PollDistributor,
// activating it immediately if the node is already active.
func (t *TriggerDistributor) PollDistributor() *PollDistributor {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.poll == nil {
		t.poll = NewPollDistributor()
		t.poll.mgr.OnEmpty(t.checkIdle)
		if t.active {
			t.poll.Activate(version.Next())
		}
	}
	return t.poll
}

// VariableDistributor lazily creates and returns this node's
// VariableDistributor, activating it immediately if the node is active.
func (t *TriggerDistributor) VariableDistributor() *VariableDistributor {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.varDist == nil {
		t.varDist = NewVariableDistributor()
		t.varDist.mgr.OnEmpty(t.checkIdle)
		if t.active {
			t.varDist.Activate(nil, version.Next())
		}
	}
	return t.varDist
}

// ClearNested drops the nested handler reference once it has reported
// itself idle, and re-checks whether this node is now idle too.
func (t *TriggerDistributor) ClearNested() {
	t.mu.Lock()
	t.nested = nil
	t.mu.Unlock()
	t.checkIdle()
}

// SetNested attaches the nested controller handler for interrupt ids that
// continue below this line. It is set at most once. If h also implements
// IdleNotifier, ClearNested is wired up to fire when h goes idle.
func (t *TriggerDistributor) SetNested(h Handler) {
	t.mu.Lock()
	t.nested = h
	active := t.active
	t.mu.Unlock()
	if active {
		h.Activate(version.Next())
	}
	if in, ok := h.(IdleNotifier); ok {
		in.OnIdle(t.ClearNested)
	}
}

// IdleNotifier is implemented by nested handlers (async/intc.ControllerHandler)
// that can report when they have no children left.
type IdleNotifier interface {
	OnIdle(f func())
}

// Distribute implements domain.Target: it fans (data, v) out, in order, to
// the poll distributor's Trigger, the nested handler's Handle, and the
// variable distributor's Distribute — matching the fan-out order of the
// original trigger() (data is only meaningful to the variable distributor;
// the other two only care about v).
func (t *TriggerDistributor) Distribute(data any, v version.Number) {
	t.mu.Lock()
	active, poll, nested, varDist := t.active, t.poll, t.nested, t.varDist
	t.mu.Unlock()
	if !active {
		return
	}

	if poll != nil {
		poll.Trigger(v)
	}
	if nested != nil {
		if err := nested.Handle(v); err != nil {
			logrus.WithError(err).WithField("interruptId", t.id).Warn("interrupt controller handler failed")
		}
	}
	if varDist != nil {
		varDist.Distribute(data, v)
	}
}

// Activate implements domain.Target: it marks the node active and
// activates whichever children have already been created.
func (t *TriggerDistributor) Activate(data any, v version.Number) {
	t.mu.Lock()
	t.active = true
	poll, nested, varDist := t.poll, t.nested, t.varDist
	t.mu.Unlock()

	if poll != nil {
		poll.Activate(v)
	}
	if nested != nil {
		nested.Activate(v)
	}
	if varDist != nil {
		varDist.Activate(data, v)
	}
}

// Deactivate implements domain.Target.
func (t *TriggerDistributor) Deactivate() {
	t.mu.Lock()
	t.active = false
	poll, nested, varDist := t.poll, t.nested, t.varDist
	t.mu.Unlock()

	if poll != nil {
		poll.Deactivate()
	}
	if nested != nil {
		nested.Deactivate()
	}
	if varDist != nil {
		varDist.Deactivate()
	}
}

// SendException implements domain.Target.
func (t *TriggerDistributor) SendException(err error) {
	t.mu.Lock()
	t.active = false
	poll, nested, varDist := t.poll, t.nested, t.varDist
	t.mu.Unlock()

	if poll != nil {
		poll.SendException(err)
	}
	if nested != nil {
		nested.SendException(err)
	}
	if varDist != nil {
		varDist.SendException(err)
	}
}
