// SPDX-License-Identifier: Apache-2.0 OR MIT

package uio

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
)

// windows implements accessor.RawWindow over a set of already-mapped byte
// slices, one per BAR/map index. It is separated from Device so the word
// addressing logic can be exercised without a real mmap underneath it.
type windows struct {
	mu   sync.RWMutex
	bars map[int][]byte
}

func (w *windows) readWords(bar int, address uint64, words []int32) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	mem, ok := w.bars[bar]
	if !ok {
		return errors.Errorf("uio: map%d is not mapped", bar)
	}
	for i := range words {
		off := address + uint64(i)*4
		if off+4 > uint64(len(mem)) {
			return errors.Errorf("uio: offset %#x is out of range for map%d (%d bytes)", off, bar, len(mem))
		}
		words[i] = int32(binary.LittleEndian.Uint32(mem[off:]))
	}
	return nil
}

func (w *windows) writeWords(bar int, address uint64, words []int32) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	mem, ok := w.bars[bar]
	if !ok {
		return errors.Errorf("uio: map%d is not mapped", bar)
	}
	for i, v := range words {
		off := address + uint64(i)*4
		if off+4 > uint64(len(mem)) {
			return errors.Errorf("uio: offset %#x is out of range for map%d (%d bytes)", off, bar, len(mem))
		}
		binary.LittleEndian.PutUint32(mem[off:], uint32(v))
	}
	return nil
}
