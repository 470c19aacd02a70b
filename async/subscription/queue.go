// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package subscription implements the async-accessor manager and
// AsyncVariable (C7): the rendezvous point between a distributor and its
// subscribers, and the bounded "latest wins" queue each subscriber reads
// from.
package subscription

import (
	"sync"

	"github.com/chimeratk-go/regaccess/version"
)

// DataValidity tags a queued item as trustworthy or stale.
type DataValidity int

const (
	Ok DataValidity = iota
	Faulty
)

// Item is one value delivered to a subscriber's queue: either a data
// payload or a terminal error (mutually exclusive).
type Item struct {
	Data     any
	Version  version.Number
	Validity DataValidity
	Err      error
	// Interrupted marks the sentinel value pushed by Queue.Interrupt to
	// unblock a pending Pop.
	Interrupted bool
}

// Queue is a bounded single-producer/single-consumer queue with "latest
// wins" overflow: when full, Push overwrites the oldest unread slot rather
// than blocking the producer, per §4.6.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []Item
	head   int
	count  int
	closed bool
}

// NewQueue constructs a Queue with the given capacity. A non-positive
// capacity is treated as 1 (the smallest useful "latest wins" buffer).
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	q := &Queue{buf: make([]Item, capacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues item, overwriting the oldest unread entry if the queue is
// full.
func (q *Queue) Push(item Item) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if q.count == len(q.buf) {
		// full: drop the oldest, "latest wins"
		q.head = (q.head + 1) % len(q.buf)
		q.count--
	}
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = item
	q.count++
	q.cond.Signal()
}

// Pop blocks until an item is available or the queue is closed/interrupted,
// then returns it. ok is false only once the queue is closed with no
// remaining items.
func (q *Queue) Pop() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.count == 0 {
		return Item{}, false
	}
	item := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return item, true
}

// Interrupt unblocks any pending Pop with a sentinel Item without corrupting
// the queue's remaining contents (§5 cancellation).
func (q *Queue) Interrupt() {
	q.mu.Lock()
	defer q.mu.Unlock()
	tail := (q.head + q.count) % len(q.buf)
	if q.count < len(q.buf) {
		q.buf[tail] = Item{Interrupted: true}
		q.count++
	} else {
		q.head = (q.head + 1) % len(q.buf)
		q.buf[(q.head+q.count-1)%len(q.buf)] = Item{Interrupted: true}
	}
	q.cond.Signal()
}

// Close marks the queue closed; any blocked Pop returns (Item{}, false)
// once drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
