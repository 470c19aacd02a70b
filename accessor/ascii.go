// SPDX-License-Identifier: Apache-2.0 OR MIT

package accessor

import (
	"strings"

	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/regerr"
)

// readASCII reads the register's fixed-size, NUL-padded byte window and
// returns it as a single trimmed string value.
func (a *Accessor) readASCII() ([]codec.Value, error) {
	nWords := (int(a.info.NBytes) + 3) / 4
	raw := make([]int32, nWords)
	if err := a.window.ReadWords(a.info.Bar, a.info.Address, raw); err != nil {
		a.validity = Faulty
		return nil, regerr.WrapRuntime(err, "reading ASCII register %q", a.info.Path)
	}
	a.validity = Ok

	buf := make([]byte, 0, nWords*4)
	for _, w := range raw {
		buf = append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	if len(buf) > int(a.info.NBytes) {
		buf = buf[:a.info.NBytes]
	}
	s := strings.TrimRight(string(buf), "\x00")
	return []codec.Value{codec.StringValue(s)}, nil
}

// writeASCII packs a single string value into the register's fixed-size,
// NUL-padded byte window.
func (a *Accessor) writeASCII(values []codec.Value) error {
	if len(values) != 1 || values[0].Type != codec.String {
		return regerr.Logic("ASCII register %q expects exactly one string value", a.info.Path)
	}
	s := values[0].Str()
	buf := make([]byte, a.info.NBytes)
	copy(buf, s)

	nWords := (int(a.info.NBytes) + 3) / 4
	raw := make([]int32, nWords)
	for i := 0; i < nWords; i++ {
		var w int32
		for b := 0; b < 4; b++ {
			idx := i*4 + b
			if idx < len(buf) {
				w |= int32(buf[idx]) << uint(b*8)
			}
		}
		raw[i] = w
	}
	if err := a.window.WriteWords(a.info.Bar, a.info.Address, raw); err != nil {
		return regerr.WrapRuntime(err, "writing ASCII register %q", a.info.Path)
	}
	return nil
}
