// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package dummy provides an in-process, backend-free implementation of
accessor.RawWindow for testing the rest of regaccess without any real
hardware or kernel uAPI underneath it.

A [Device] holds one or more [Bar]s, each a fixed-size block of plain
memory addressed in 32-bit words. Configuring a device involves adding
Bars, each representing one BAR of the simulated register map, to
[New], which assembles them into a live Device.

Once live, the Device can be read and written like any other RawWindow,
and its [Device.Poke]/[Device.Peek] methods let a test drive register
state directly, bypassing the accessor layer entirely — the same role
Chip.SetPull plays for a simulated GPIO line, here applied to a
simulated interrupt-status or data register.

For tests that only need a single BAR, [Single] provides a slightly
simpler interface.

# Example Usage

Create a single-BAR device with 256 bytes and preload one register:

	d, err := dummy.NewSingle(256, dummy.WithInitialWord(0x100, 0x1))
	d.Poke(0x100, 0x3)
	v, err := d.Peek(0x100)

Creating a device with two BARs:

	d, err := dummy.New(
		dummy.WithBar(0, dummy.NewBar(256, dummy.WithInitialWord(0x0, 0x2a))),
		dummy.WithBar(1, dummy.NewBar(64)),
	)
*/
package dummy
