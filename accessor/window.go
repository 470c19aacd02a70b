// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package accessor builds typed register accessors over a raw address
// window, composing catalogue.RegisterInfo descriptors with codec
// converters (the C3 sync accessor factory).
package accessor

// RawWindow is the narrow contract a transport must satisfy for the
// accessor factory to read and write a contiguous byte range of a BAR. The
// concrete transports (UIO, Rebot, dummy) are out of the core's scope and
// are referenced only through this interface.
type RawWindow interface {
	ReadWords(bar int, address uint64, words []int32) error
	WriteWords(bar int, address uint64, words []int32) error
}
