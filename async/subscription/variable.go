// SPDX-License-Identifier: Apache-2.0 OR MIT

package subscription

import "github.com/chimeratk-go/regaccess/version"

// SendBuffer is the single-slot buffer an AsyncVariable stamps with each
// value before handing it to the subscriber's Queue.
type SendBuffer struct {
	Value    any
	Version  version.Number
	Validity DataValidity
}

// AsyncVariable is the per-subscriber record a Manager creates on
// subscribe. It has no strong reference back to its AsyncAccessor: Go has
// no built-in weak-pointer equivalent to the original's boost::weak_ptr, so
// lifetime here is managed explicitly instead — AsyncAccessor.Close both
// removes this AsyncVariable from the Manager's subscription table and
// closes the subscriber's Queue, rather than GC noticing a dangling
// reference.
type AsyncVariable struct {
	ID     uint64
	queue  *Queue
	buffer SendBuffer
}

func newAsyncVariable(id uint64, queue *Queue) *AsyncVariable {
	return &AsyncVariable{ID: id, queue: queue}
}

// Send stamps value with v and validity and enqueues it to the subscriber.
func (av *AsyncVariable) Send(value any, v version.Number, validity DataValidity) {
	av.buffer = SendBuffer{Value: value, Version: v, Validity: validity}
	av.queue.Push(Item{Data: value, Version: v, Validity: validity})
}

// SendException enqueues a terminal error to the subscriber.
func (av *AsyncVariable) SendException(err error) {
	av.queue.Push(Item{Err: err, Validity: Faulty})
}

// Last returns the most recently sent SendBuffer.
func (av *AsyncVariable) Last() SendBuffer { return av.buffer }
