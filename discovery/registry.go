// SPDX-License-Identifier: Apache-2.0 OR MIT

package discovery

import (
	"sync"

	"github.com/google/uuid"

	"github.com/chimeratk-go/regaccess/catalogue"
)

// Entry describes one registered device: its catalogue and a
// human-readable name, alongside the id the Registry assigned it.
type Entry struct {
	ID        string
	Name      string
	Catalogue *catalogue.Catalogue
}

// Registry hands out a stable uuid.New id to every catalogue registered
// with it, for the lifetime of the process, and can look either up again
// by the other.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Entry
	byCat map[*catalogue.Catalogue]string
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[string]Entry),
		byCat: make(map[*catalogue.Catalogue]string),
	}
}

// Register assigns a new id to cat, or returns the id already assigned to
// it if it has been registered before.
func (r *Registry) Register(name string, cat *catalogue.Catalogue) Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byCat[cat]; ok {
		return r.byID[id]
	}

	id := uuid.New().String()
	entry := Entry{ID: id, Name: name, Catalogue: cat}
	r.byID[id] = entry
	r.byCat[cat] = id
	return entry
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	return e, ok
}

// Entries returns every registered entry, in no particular order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out
}
