// SPDX-License-Identifier: Apache-2.0 OR MIT

package dummy

// Single is a convenience wrapper around a Device with exactly one bar,
// numbered 0 — the common case for a small test fixture that only needs a
// single simulated register window.
type Single struct {
	*Device
}

// NewSingle constructs a Single with a bar of the given size, in bytes,
// with options applied.
//
// The available option is [WithInitialWord].
func NewSingle(size int, options ...NewBarOption) (*Single, error) {
	d, err := New(WithBar(0, NewBar(size, options...)))
	if d == nil {
		return nil, err
	}
	return &Single{d}, err
}

// Poke overwrites one word of the single bar directly.
func (s *Single) Poke(address uint64, value int32) error {
	return s.Device.Poke(0, address, value)
}

// Peek reads one word of the single bar directly.
func (s *Single) Peek(address uint64) (int32, error) {
	return s.Device.Peek(0, address)
}
