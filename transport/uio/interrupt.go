// SPDX-License-Identifier: Apache-2.0 OR MIT

package uio

import (
	"context"
	"encoding/binary"
)

// WaitForInterrupt blocks until the UIO device signals an interrupt, or ctx
// is done, returning the interrupt count reported by the kernel. Per the
// UIO ABI, a blocking read of a uint32 from the device file both waits for
// and reports receipt of the next interrupt notification.
//
// If ctx is cancelled before the kernel delivers an interrupt, the read
// goroutine is left blocked on the device file until one eventually
// arrives or Close unblocks it; this matches the read(2) semantics of the
// UIO device node, which offers no cancellable variant.
func (d *Device) WaitForInterrupt(ctx context.Context) (uint32, error) {
	type result struct {
		n   uint32
		err error
	}
	ch := make(chan result, 1)
	go func() {
		var buf [4]byte
		_, err := d.file.Read(buf[:])
		if err != nil {
			ch <- result{0, err}
			return
		}
		ch <- result{binary.LittleEndian.Uint32(buf[:]), nil}
	}()

	select {
	case r := <-ch:
		return r.n, r.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// AckInterrupt re-arms interrupt delivery by writing the 32-bit value 1 to
// the device file, per the UIO ABI.
func (d *Device) AckInterrupt() error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], 1)
	_, err := d.file.Write(buf[:])
	return err
}
