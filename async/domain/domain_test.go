// SPDX-License-Identifier: Apache-2.0 OR MIT

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimeratk-go/regaccess/async/domain"
	"github.com/chimeratk-go/regaccess/version"
)

type recordingTarget struct {
	distributed []any
	activated   []any
	deactivated int
	exceptions  []error
}

func (t *recordingTarget) Distribute(data any, v version.Number) { t.distributed = append(t.distributed, data) }
func (t *recordingTarget) Activate(data any, v version.Number)   { t.activated = append(t.activated, data) }
func (t *recordingTarget) Deactivate()                           { t.deactivated++ }
func (t *recordingTarget) SendException(err error)               { t.exceptions = append(t.exceptions, err) }

func TestDomainDistributeWhileInactiveIsBuffered(t *testing.T) {
	target := &recordingTarget{}
	d := domain.New(target)

	d.Distribute("early", version.Next())
	assert.Empty(t, target.distributed)
	assert.Equal(t, domain.Inactive, d.State())
}

func TestDomainActivateAfterEarlyEventNewerWins(t *testing.T) {
	target := &recordingTarget{}
	d := domain.New(target)

	v1 := version.Next()
	d.Distribute("d1", v1)
	v2 := version.Next()
	d.Activate("d2", v2)

	require.Len(t, target.activated, 1)
	assert.Equal(t, "d2", target.activated[0])
	assert.Equal(t, domain.Active, d.State())
}

func TestDomainActivateAfterEarlyEventPendingWins(t *testing.T) {
	target := &recordingTarget{}
	d := domain.New(target)

	// activateVersion is minted before pendingVersion, so it is the older
	// of the two: a hardware event (buffered as pending) has raced ahead of
	// the activate call carrying the stale version, and the pending pair
	// must win.
	activateVersion := version.Next()
	pendingVersion := version.Next()

	d.Distribute("pending-data", pendingVersion)
	d.Activate("activate-data", activateVersion)

	require.Len(t, target.activated, 1)
	assert.Equal(t, "pending-data", target.activated[0])
}

func TestDomainSendExceptionTransitionsToFailedAndDiscardsPending(t *testing.T) {
	target := &recordingTarget{}
	d := domain.New(target)

	d.Distribute("buffered", version.Next())
	err := assertError("boom")
	d.SendException(err)

	assert.Equal(t, domain.Failed, d.State())
	require.Len(t, target.exceptions, 1)

	// A subsequent activate resumes distribution.
	d.Activate("resumed", version.Next())
	assert.Equal(t, domain.Active, d.State())
	require.Len(t, target.activated, 1)
	assert.Equal(t, "resumed", target.activated[0])
}

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

func assertError(msg string) error { return simpleErr(msg) }
