// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package distributor implements the three distributor kinds that sit
// between an interrupt's Domain and its subscribers (C6): PollDistributor,
// VariableDistributor and TriggerDistributor.
package distributor

import (
	"sync"

	"github.com/chimeratk-go/regaccess/accessor"
	"github.com/chimeratk-go/regaccess/codec"
)

// PollSource is the synchronous read surface a PollDistributor coordinates:
// satisfied by *accessor.Accessor.
type PollSource interface {
	Read() ([]codec.Value, error)
	Validity() accessor.DataValidity
}

// TransferGroup issues Read on a set of PollSources under a single lock, so
// a batch of registers triggered by the same interrupt is read coherently
// with respect to concurrent subscribe/unsubscribe.
type TransferGroup struct {
	mu      sync.Mutex
	sources map[uint64]PollSource
}

// NewTransferGroup constructs an empty TransferGroup.
func NewTransferGroup() *TransferGroup {
	return &TransferGroup{sources: make(map[uint64]PollSource)}
}

// Add registers source under id, replacing any previous source for that id.
func (g *TransferGroup) Add(id uint64, source PollSource) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sources[id] = source
}

// Remove drops the source registered under id.
func (g *TransferGroup) Remove(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sources, id)
}

// Empty reports whether the group currently holds no sources.
func (g *TransferGroup) Empty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sources) == 0
}

// ReadResult is one source's outcome from a coherent group Read.
type ReadResult struct {
	Values   []codec.Value
	Validity accessor.DataValidity
	Err      error
}

// ReadAll issues Read on every registered source while holding the group
// lock, so a source added or removed mid-read waits for the batch to
// finish. A RuntimeError from one source does not stop the others: the
// backend's own exception path has already been invoked for that source,
// this call only reports it back to the caller for bookkeeping.
func (g *TransferGroup) ReadAll() map[uint64]ReadResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[uint64]ReadResult, len(g.sources))
	for id, src := range g.sources {
		values, err := src.Read()
		out[id] = ReadResult{Values: values, Validity: src.Validity(), Err: err}
	}
	return out
}
