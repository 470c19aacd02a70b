// SPDX-License-Identifier: Apache-2.0 OR MIT

package rebot

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxFrameSize bounds a single frame's payload, generous for any register
// batch this protocol is meant to carry.
const maxFrameSize = 1 << 20

func writeFrame(w io.Writer, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxFrameSize {
		return nil, errors.Errorf("rebot: frame of %d bytes exceeds %d byte limit", n, maxFrameSize)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
