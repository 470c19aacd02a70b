// SPDX-License-Identifier: Apache-2.0 OR MIT

package accessor

import (
	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/regerr"
)

// MuxedAccessor is the channel-major view over a 2-D multiplexed register,
// of shape [channels][nBlocks]. It demultiplexes on Read and multiplexes on
// Write, using each channel's own codec.
type MuxedAccessor struct {
	info    catalogue.RegisterInfo
	window  RawWindow
	targets []codec.UserType
	codecs  []wordCodec
	validity DataValidity
}

// NewMuxed builds a MuxedAccessor for a 2-D register. targets, one per
// channel, selects the cooked type each channel is read/written as; a nil
// targets slice defaults every channel to its natural type (Int32 for
// FIXED_POINT/VOID, Float32 for IEEE754).
func NewMuxed(info catalogue.RegisterInfo, window RawWindow, targets []codec.UserType) (*MuxedAccessor, error) {
	if !info.Is2D() {
		return nil, regerr.Logic("register %q is not 2-D multiplexed", info.Path)
	}
	if targets != nil && len(targets) != len(info.Channels) {
		return nil, regerr.Logic("register %q has %d channels, got %d targets", info.Path, len(info.Channels), len(targets))
	}
	m := &MuxedAccessor{info: info, window: window}
	m.targets = make([]codec.UserType, len(info.Channels))
	m.codecs = make([]wordCodec, len(info.Channels))
	for i, ch := range info.Channels {
		if targets != nil {
			m.targets[i] = targets[i]
		} else {
			m.targets[i] = ch.UserType()
		}
		switch ch.Type {
		case catalogue.IEEE754:
			m.codecs[i] = codec.NewIEEE754()
		default:
			fp, err := codec.NewFixedPoint(ch.Width, ch.FractionalBits, ch.Signed)
			if err != nil {
				return nil, err
			}
			m.codecs[i] = fp
		}
	}
	return m, nil
}

func (m *MuxedAccessor) blockBytes() int { return m.info.BytesPerBlock }

// Read demultiplexes the register's byte window into [channels][nBlocks].
func (m *MuxedAccessor) Read() ([][]codec.Value, error) {
	totalBytes := m.info.NBlocks * m.info.BytesPerBlock
	nWords := (totalBytes + 3) / 4
	raw := make([]int32, nWords)
	if err := m.window.ReadWords(m.info.Bar, m.info.Address, raw); err != nil {
		m.validity = Faulty
		return nil, regerr.WrapRuntime(err, "reading 2-D register %q", m.info.Path)
	}
	m.validity = Ok

	buf := make([]byte, nWords*4)
	for i, w := range raw {
		buf[i*4] = byte(w)
		buf[i*4+1] = byte(w >> 8)
		buf[i*4+2] = byte(w >> 16)
		buf[i*4+3] = byte(w >> 24)
	}

	out := make([][]codec.Value, len(m.info.Channels))
	for ci, ch := range m.info.Channels {
		out[ci] = make([]codec.Value, m.info.NBlocks)
		for block := 0; block < m.info.NBlocks; block++ {
			blockStart := block * m.blockBytes()
			rawWord := extractBits(buf[blockStart:blockStart+m.blockBytes()], ch.BitOffset, ch.Width)
			v, err := m.codecs[ci].ToCooked(rawWord, m.targets[ci])
			if err != nil {
				return nil, err
			}
			out[ci][block] = v
		}
	}
	return out, nil
}

// Write multiplexes [channels][nBlocks] cooked values into the register's
// byte window.
func (m *MuxedAccessor) Write(values [][]codec.Value) error {
	if len(values) != len(m.info.Channels) {
		return regerr.Logic("register %q has %d channels, got %d", m.info.Path, len(m.info.Channels), len(values))
	}
	totalBytes := m.info.NBlocks * m.info.BytesPerBlock
	nWords := (totalBytes + 3) / 4
	buf := make([]byte, nWords*4)

	for ci, ch := range m.info.Channels {
		if len(values[ci]) != m.info.NBlocks {
			return regerr.Logic("register %q channel %d expects %d blocks, got %d", m.info.Path, ci, m.info.NBlocks, len(values[ci]))
		}
		for block := 0; block < m.info.NBlocks; block++ {
			rawWord, err := m.codecs[ci].ToRaw(values[ci][block])
			if err != nil {
				return err
			}
			blockStart := block * m.blockBytes()
			insertBits(buf[blockStart:blockStart+m.blockBytes()], ch.BitOffset, ch.Width, rawWord)
		}
	}

	raw := make([]int32, nWords)
	for i := range raw {
		raw[i] = int32(buf[i*4]) | int32(buf[i*4+1])<<8 | int32(buf[i*4+2])<<16 | int32(buf[i*4+3])<<24
	}
	if err := m.window.WriteWords(m.info.Bar, m.info.Address, raw); err != nil {
		return regerr.WrapRuntime(err, "writing 2-D register %q", m.info.Path)
	}
	return nil
}

// extractBits reads a little-endian bit field [bitOffset, bitOffset+width)
// from block, sign-extension left to the caller's codec.
func extractBits(block []byte, bitOffset, width int) int32 {
	var acc uint64
	for i := len(block) - 1; i >= 0; i-- {
		acc = acc<<8 | uint64(block[i])
	}
	mask := uint64(1)<<uint(width) - 1
	return int32((acc >> uint(bitOffset)) & mask)
}

// insertBits writes width bits of raw at bitOffset into block, little-endian.
func insertBits(block []byte, bitOffset, width int, raw int32) {
	var acc uint64
	for i := len(block) - 1; i >= 0; i-- {
		acc = acc<<8 | uint64(block[i])
	}
	mask := uint64(1)<<uint(width) - 1
	acc &^= mask << uint(bitOffset)
	acc |= (uint64(uint32(raw)) & mask) << uint(bitOffset)
	for i := 0; i < len(block); i++ {
		block[i] = byte(acc)
		acc >>= 8
	}
}
