// SPDX-License-Identifier: Apache-2.0 OR MIT

package exception_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/async/exception"
)

type recordingDomain struct {
	mu   sync.Mutex
	errs []error
}

func (d *recordingDomain) SendException(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
}

func (d *recordingDomain) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.errs)
}

func TestContainerFansOutToAllDomains(t *testing.T) {
	c := exception.NewContainer()
	defer c.Close()

	a := &recordingDomain{}
	b := &recordingDomain{}
	c.Register(a)
	c.Register(b)

	require.NoError(t, c.SendExceptions("device fault"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.WaitUntilIdle(ctx))

	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
	assert.False(t, c.IsSendingExceptions())
}

func TestContainerRejectsOverlappingFanOut(t *testing.T) {
	c := exception.NewContainer()
	defer c.Close()

	slow := &blockingDomain{release: make(chan struct{})}
	c.Register(slow)

	require.NoError(t, c.SendExceptions("first"))
	// give the distribution goroutine a chance to pick it up and block
	time.Sleep(20 * time.Millisecond)

	err := c.SendExceptions("second")
	assert.Error(t, err)

	close(slow.release)
}

type blockingDomain struct {
	release chan struct{}
}

func (d *blockingDomain) SendException(error) { <-d.release }
