// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package version provides the monotonically increasing version number
// stamped on every value that travels through the async pipeline (§3, §5).
// A Number generated later always compares greater than one generated
// earlier, process-wide.
package version

import "sync/atomic"

// Number is an opaque, strictly ordered tag. The zero Number sorts before
// every Number produced by Next.
type Number struct {
	seq uint64
}

var counter uint64

// Next returns a Number that is strictly greater than every Number
// previously returned by Next in this process.
func Next() Number {
	return Number{seq: atomic.AddUint64(&counter, 1)}
}

// Less reports whether n sorts strictly before other.
func (n Number) Less(other Number) bool { return n.seq < other.seq }

// GreaterOrEqual reports whether n sorts at or after other.
func (n Number) GreaterOrEqual(other Number) bool { return n.seq >= other.seq }

// IsZero reports whether n is the zero Number (never produced by Next).
func (n Number) IsZero() bool { return n.seq == 0 }
