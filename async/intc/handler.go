// SPDX-License-Identifier: Apache-2.0 OR MIT

package intc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chimeratk-go/regaccess/async/distributor"
	"github.com/chimeratk-go/regaccess/regerr"
	"github.com/chimeratk-go/regaccess/version"
)

// childState tracks the two things a ControllerHandler owns per line: the
// TriggerDistributor firing on that line, and — if the line itself carries
// further nested interrupt levels — the ControllerHandler underneath it.
type childState struct {
	td     *distributor.TriggerDistributor
	nested *ControllerHandler
}

// ControllerHandler is one node of the interrupt controller tree, keyed by
// its controllerId (the sequence of line numbers leading to it from the
// root). It owns a line-to-TriggerDistributor map; children are created
// lazily on first subscription and pruned once idle, substituting for the
// original's weak_ptr-based expiry (see distributor.TriggerDistributor.SetOnIdle).
type ControllerHandler struct {
	id      []int
	handler kindHandler
	factory *Factory

	mu       sync.Mutex
	active   bool
	children map[int]*childState
	onIdle   func()
}

func newControllerHandler(id []int, handler kindHandler, factory *Factory) *ControllerHandler {
	return &ControllerHandler{
		id:       append([]int{}, id...),
		handler:  handler,
		factory:  factory,
		children: make(map[int]*childState),
	}
}

// ID returns this node's controller id path.
func (h *ControllerHandler) ID() []int { return h.id }

// OnIdle registers f to be invoked once this node has pruned its last
// child. Satisfies distributor.IdleNotifier.
func (h *ControllerHandler) OnIdle(f func()) {
	h.mu.Lock()
	h.onIdle = f
	h.mu.Unlock()
}

// GetTriggerDistributorRecursive descends idPath (relative to this node),
// lazily creating any missing TriggerDistributor and, for multi-level
// paths, any missing nested ControllerHandler, then returns the terminal
// distributor. If this node is active, a freshly created distributor is
// activated immediately with a fresh version.
func (h *ControllerHandler) GetTriggerDistributorRecursive(idPath []int) (*distributor.TriggerDistributor, error) {
	if len(idPath) == 0 {
		return nil, regerr.Logic("interrupt id path must not be empty")
	}
	line := idPath[0]

	h.mu.Lock()
	st, existed := h.children[line]
	if !existed {
		st = &childState{td: distributor.New(append(append([]int{}, h.id...), line))}
		h.children[line] = st
	}
	active := h.active
	td := st.td
	h.mu.Unlock()

	if !existed {
		td.SetOnIdle(func() { h.pruneIfIdle(line) })
		if active {
			td.Activate(nil, version.Next())
		}
	}

	if len(idPath) == 1 {
		return td, nil
	}

	nested, err := h.nestedFor(st, line)
	if err != nil {
		return nil, err
	}
	return nested.GetTriggerDistributorRecursive(idPath[1:])
}

func (h *ControllerHandler) nestedFor(st *childState, line int) (*ControllerHandler, error) {
	h.mu.Lock()
	if st.nested != nil {
		n := st.nested
		h.mu.Unlock()
		return n, nil
	}
	h.mu.Unlock()

	childID := append(append([]int{}, h.id...), line)
	nested, err := h.factory.Create(childID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	st.nested = nested
	h.mu.Unlock()

	// SetNested activates nested immediately if st.td is already active,
	// which happens whenever this node itself is active (its Activate loop
	// activates every child td before a caller can reach this point).
	st.td.SetNested(nested)
	return nested, nil
}

func (h *ControllerHandler) pruneIfIdle(line int) {
	h.mu.Lock()
	st, ok := h.children[line]
	if ok && st.td.Idle() {
		delete(h.children, line)
	}
	empty := len(h.children) == 0
	onIdle := h.onIdle
	h.mu.Unlock()

	if empty && onIdle != nil {
		onIdle()
	}
}

// Handle runs this node's backend-specific handshake: it determines which
// lines fired and forwards v to each corresponding child's TriggerDistributor.
func (h *ControllerHandler) Handle(v version.Number) error {
	return h.handler.Handle(h, v)
}

// fire delivers v to the child TriggerDistributor registered for line, if
// any. A backend Handle implementation calls this once per asserted line.
func (h *ControllerHandler) fire(line int, v version.Number) error {
	h.mu.Lock()
	st, ok := h.children[line]
	h.mu.Unlock()
	if !ok {
		return regerr.Runtime("interrupt controller %s reports unknown active line %d", formatID(h.id), line)
	}
	st.td.Distribute(nil, v)
	return nil
}

// lines returns the currently known child line numbers, used by AXI4_INTC's
// "fire everything" handshake.
func (h *ControllerHandler) lines() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]int, 0, len(h.children))
	for line := range h.children {
		out = append(out, line)
	}
	return out
}

// Activate forwards to every live child. Implements distributor.Handler.
func (h *ControllerHandler) Activate(v version.Number) {
	h.mu.Lock()
	h.active = true
	children := h.snapshot()
	h.mu.Unlock()

	for _, st := range children {
		st.td.Activate(nil, v)
	}
}

func (h *ControllerHandler) activateInternal(v version.Number) {
	h.mu.Lock()
	h.active = true
	h.mu.Unlock()
}

// Deactivate forwards to every live child. Implements distributor.Handler.
func (h *ControllerHandler) Deactivate() {
	h.mu.Lock()
	h.active = false
	children := h.snapshot()
	h.mu.Unlock()

	for _, st := range children {
		st.td.Deactivate()
	}
}

// SendException forwards err to every live child. Implements distributor.Handler.
func (h *ControllerHandler) SendException(err error) {
	h.mu.Lock()
	h.active = false
	children := h.snapshot()
	h.mu.Unlock()

	for _, st := range children {
		st.td.SendException(err)
	}
}

func (h *ControllerHandler) snapshot() []*childState {
	out := make([]*childState, 0, len(h.children))
	for _, st := range h.children {
		out = append(out, st)
	}
	return out
}

func formatID(id []int) string {
	parts := make([]string, len(id))
	for i, v := range id {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ":")
}

func idKey(id []int) string { return formatID(id) }
