// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package exception implements the exception distribution container (C8):
// it collects every AsyncDomain of a device and serializes fault
// announcements across them on a dedicated goroutine, guaranteeing at most
// one fan-out is ever in flight.
package exception

import (
	"context"
	"sync"

	"github.com/chimeratk-go/regaccess/regerr"
)

// Target receives a fanned-out exception. Implemented by async/domain.Domain.
type Target interface {
	SendException(err error)
}

type message struct {
	text string
	stop bool
}

// Container fans a RuntimeError out to every registered domain, one
// announcement at a time. The distribution goroutine is started by
// NewContainer and must be stopped with Close.
type Container struct {
	mu      sync.Mutex
	cond    *sync.Cond
	domains []Target
	sending bool

	// queue is the bounded single-producer hand-off to the distribution
	// goroutine: capacity 2 so a shutdown sentinel always has room even
	// with one exception message already pending, mirroring the original
	// cppext::future_queue<std::string>{2}.
	queue   chan message
	stopped chan struct{}
}

// NewContainer constructs a Container and starts its distribution goroutine.
func NewContainer() *Container {
	c := &Container{queue: make(chan message, 2), stopped: make(chan struct{})}
	c.cond = sync.NewCond(&c.mu)
	go c.distributeExceptions()
	return c
}

// Register adds domain to the set every future SendExceptions call fans
// out to. Not safe to call concurrently with Close.
func (c *Container) Register(domain Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.domains = append(c.domains, domain)
}

// IsSendingExceptions reports whether a fan-out is currently in flight.
func (c *Container) IsSendingExceptions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// SendExceptions starts a fan-out of msg (wrapped as a RuntimeError) to
// every registered domain. It fails with a LogicError if a previous
// fan-out is still running.
func (c *Container) SendExceptions(msg string) error {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return regerr.Logic("SendExceptions called before the previous distribution was ready")
	}
	c.sending = true
	c.mu.Unlock()

	c.queue <- message{text: msg}
	return nil
}

// WaitUntilIdle blocks until no fan-out is in flight, or ctx is done.
func (c *Container) WaitUntilIdle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.mu.Lock()
		for c.sending {
			c.cond.Wait()
		}
		c.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Container) distributeExceptions() {
	for m := range c.queue {
		if m.stop {
			close(c.stopped)
			return
		}

		err := regerr.Runtime("%s", m.text)
		c.mu.Lock()
		domains := append([]Target(nil), c.domains...)
		c.mu.Unlock()

		for _, d := range domains {
			d.SendException(err)
		}

		c.mu.Lock()
		c.sending = false
		c.cond.Broadcast()
		c.mu.Unlock()
	}
}

// Close stops the distribution goroutine and waits for it to exit. Callers
// must not invoke SendExceptions after calling Close.
func (c *Container) Close() {
	c.queue <- message{stop: true}
	<-c.stopped
}
