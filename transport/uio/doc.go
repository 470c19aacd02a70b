// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package uio implements accessor.RawWindow over the Linux UIO (userspace
I/O) subsystem, the standard way an unprivileged process maps a memory
mapped device register bank into its own address space.

Each UIO device exposes one or more memory regions under
/sys/class/uio/uioN/maps/mapM/, each described by two sysfs attributes,
"addr" and "size", and made available for mmap through
/dev/uioN at an offset of M * pagesize. A [Device] maps every such
region a UIO device exposes, indexed the same way regaccess indexes a
BAR.

Blocking on an interrupt is done by reading a uint32 interrupt count
from the device file; re-arming after handling it is done by writing
the uint32 value 1 to it, per the UIO ABI documented in
Documentation/driver-api/uio-howto.rst.

# Example Usage

	d, err := uio.Open("/dev/uio0")
	defer d.Close()
	words := make([]int32, 4)
	err = d.ReadWords(0, 0x10, words)

	n, err := d.WaitForInterrupt(ctx)
	err = d.AckInterrupt()
*/
package uio
