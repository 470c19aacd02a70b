// SPDX-License-Identifier: Apache-2.0 OR MIT

package dummy

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
)

// Device is an in-process simulated register-addressed device: a set of
// byte-addressable bars kept as plain memory. It implements
// accessor.RawWindow so the rest of regaccess can exercise it exactly like
// a real transport.
type Device struct {
	mu   sync.Mutex
	bars map[int][]byte
}

type builder struct {
	bars map[int]Bar
}

// New constructs a Device from the bars provided.
//
// The available option is [WithBar]; at least one bar must be given.
func New(options ...NewDeviceOption) (*Device, error) {
	b := builder{bars: make(map[int]Bar)}
	for _, o := range options {
		o.applyDeviceOption(&b)
	}
	return b.build()
}

func (b *builder) build() (*Device, error) {
	if len(b.bars) == 0 {
		return nil, errors.New("dummy: device must have at least one bar")
	}

	d := &Device{bars: make(map[int][]byte, len(b.bars))}
	for id, cfg := range b.bars {
		if cfg.Size <= 0 || cfg.Size%4 != 0 {
			return nil, errors.Errorf("dummy: bar %d size must be a positive multiple of 4, got %d", id, cfg.Size)
		}
		mem := make([]byte, cfg.Size)
		for offset, word := range cfg.Initial {
			if err := putWord(mem, offset, word); err != nil {
				return nil, errors.Wrapf(err, "dummy: bar %d initial value", id)
			}
		}
		d.bars[id] = mem
	}
	return d, nil
}

// ReadWords implements accessor.RawWindow.
func (d *Device) ReadWords(bar int, address uint64, words []int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	mem, ok := d.bars[bar]
	if !ok {
		return errors.Errorf("dummy: bar %d is not simulated", bar)
	}
	for i := range words {
		w, err := getWord(mem, address+uint64(i)*4)
		if err != nil {
			return err
		}
		words[i] = w
	}
	return nil
}

// WriteWords implements accessor.RawWindow.
func (d *Device) WriteWords(bar int, address uint64, words []int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	mem, ok := d.bars[bar]
	if !ok {
		return errors.Errorf("dummy: bar %d is not simulated", bar)
	}
	for i, w := range words {
		if err := putWord(mem, address+uint64(i)*4, w); err != nil {
			return err
		}
	}
	return nil
}

// Poke overwrites one word directly, bypassing any access-mode checks the
// accessor layer would apply. Tests use this to simulate an external actor
// changing device state out from under the application — the interrupt
// controller's active_ints register, or a peer updating a status register —
// the direct analogue of gpiosim's Chip.SetPull.
func (d *Device) Poke(bar int, address uint64, value int32) error {
	return d.WriteWords(bar, address, []int32{value})
}

// Peek reads one word directly, bypassing any access-mode checks.
func (d *Device) Peek(bar int, address uint64) (int32, error) {
	words := make([]int32, 1)
	if err := d.ReadWords(bar, address, words); err != nil {
		return 0, err
	}
	return words[0], nil
}

func getWord(mem []byte, offset uint64) (int32, error) {
	if offset+4 > uint64(len(mem)) {
		return 0, errors.Errorf("dummy: offset %#x is out of range for a %d byte bar", offset, len(mem))
	}
	return int32(binary.LittleEndian.Uint32(mem[offset:])), nil
}

func putWord(mem []byte, offset uint64, value int32) error {
	if offset+4 > uint64(len(mem)) {
		return errors.Errorf("dummy: offset %#x is out of range for a %d byte bar", offset, len(mem))
	}
	binary.LittleEndian.PutUint32(mem[offset:], uint32(value))
	return nil
}
