// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package intc implements the interrupt controller handler tree (C5): a
// factory-created chain of ControllerHandler nodes, each owning a
// line-to-TriggerDistributor map, that turns a raw controller-level
// handshake into per-line trigger fan-out.
package intc

import (
	"sync"

	"github.com/chimeratk-go/regaccess/accessor"
	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/regerr"
	"github.com/chimeratk-go/regaccess/version"
)

// kindHandler is the backend-specific handshake implementation for one
// controller type: AXI4_INTC or dummy, or any type registered via Factory.Register.
type kindHandler interface {
	Handle(h *ControllerHandler, v version.Number) error
}

// creatorFunc builds a kindHandler for a freshly discovered controller node.
// description is the opaque, controller-type-specific configuration string
// carried by the map file's INTERRUPT metadata (JSON for the built-ins).
type creatorFunc func(id []int, description string) (kindHandler, error)

// nodeDescription is the name/description pair the map file's metadata
// records for one controller id.
type nodeDescription struct {
	name        string
	description string
}

// Factory creates ControllerHandler nodes by controller-type name, and
// remembers which name/description was registered for each controller id
// discovered while parsing the map file's INTERRUPT metadata.
type Factory struct {
	mu           sync.Mutex
	creators     map[string]creatorFunc
	descriptions map[string]nodeDescription
}

// NewFactory constructs a Factory bound to a catalogue and raw address
// window (needed by the dummy kind to locate and read its handshake
// register), with the AXI4_INTC and dummy built-ins already registered.
func NewFactory(cat *catalogue.Catalogue, window accessor.RawWindow) *Factory {
	f := &Factory{
		creators:     make(map[string]creatorFunc),
		descriptions: make(map[string]nodeDescription),
	}
	f.Register("AXI4_INTC", newAxi4Handler)
	f.Register("dummy", func(id []int, description string) (kindHandler, error) {
		return newDummyHandler(cat, window, description)
	})
	return f
}

// Register adds or replaces the creator function for controller type name.
func (f *Factory) Register(name string, creator creatorFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
}

// Describe records that the controller node at id is of the given type,
// with description as its backend-specific configuration payload.
func (f *Factory) Describe(id []int, name, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.descriptions[idKey(id)] = nodeDescription{name: name, description: description}
}

func (f *Factory) lookupDescription(id []int) (nodeDescription, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.descriptions[idKey(id)]
	return d, ok
}

// Create builds the ControllerHandler for id, looking up its registered
// type via Describe. Used both for the tree root (by the device backend)
// and internally for nested handlers.
func (f *Factory) Create(id []int) (*ControllerHandler, error) {
	desc, ok := f.lookupDescription(id)
	if !ok {
		return nil, regerr.Logic("no interrupt controller registered for id %s", formatID(id))
	}

	f.mu.Lock()
	creator, ok := f.creators[desc.name]
	f.mu.Unlock()
	if !ok {
		return nil, regerr.Logic("interrupt controller kind %q is not registered", desc.name)
	}

	kh, err := creator(id, desc.description)
	if err != nil {
		return nil, err
	}
	return newControllerHandler(id, kh, f), nil
}
