package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mailmesh/core"
)

func TestAppendOut(t *testing.T) {
	owner := core.NewID()
	box := New(owner)

	m := core.NewMail(owner, core.NewID(), core.CategoryMessage, "hi")
	require.NoError(t, box.AppendOut(m))

	assert.Equal(t, 1, box.OutCount())
	snapshot := box.OutgoingSnapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, m, snapshot[0])
}

func TestAppendOut_SenderMismatch(t *testing.T) {
	box := New(core.NewID())

	m := core.NewMail(core.NewID(), core.NewID(), core.CategoryMessage, nil)
	err := box.AppendOut(m)

	var oe *OwnershipError
	assert.ErrorAs(t, err, &oe)
	assert.Equal(t, 0, box.OutCount())
}

func TestAppendIn_BucketsBySender(t *testing.T) {
	owner := core.NewID()
	s1, s2 := core.NewID(), core.NewID()
	box := New(owner)

	require.NoError(t, box.AppendIn(core.NewMail(s1, owner, core.CategoryMessage, "a")))
	require.NoError(t, box.AppendIn(core.NewMail(s2, owner, core.CategoryMessage, "b")))
	require.NoError(t, box.AppendIn(core.NewMail(s1, owner, core.CategoryMessage, "c")))

	assert.Equal(t, 3, box.InCount())
	assert.ElementsMatch(t, []string{s1, s2}, box.Senders())

	fromS1 := box.PendingIn(s1)
	require.Len(t, fromS1, 2)
	assert.Equal(t, "a", fromS1[0].Package.Payload)
	assert.Equal(t, "c", fromS1[1].Package.Payload)
}

func TestAppendIn_RecipientMismatch(t *testing.T) {
	box := New(core.NewID())

	m := core.NewMail(core.NewID(), core.NewID(), core.CategoryMessage, nil)
	err := box.AppendIn(m)

	var oe *OwnershipError
	assert.ErrorAs(t, err, &oe)
}

func TestPopOut_FIFO(t *testing.T) {
	owner := core.NewID()
	box := New(owner)
	recipient := core.NewID()

	first := core.NewMail(owner, recipient, core.CategoryMessage, 1)
	second := core.NewMail(owner, recipient, core.CategoryMessage, 2)
	require.NoError(t, box.AppendOut(first))
	require.NoError(t, box.AppendOut(second))

	got, ok := box.PopOut()
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok = box.PopOut()
	require.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = box.PopOut()
	assert.False(t, ok)
}

func TestPopIn_FIFOWithinBucket(t *testing.T) {
	owner := core.NewID()
	sender := core.NewID()
	box := New(owner)

	first := core.NewMail(sender, owner, core.CategoryMessage, 1)
	second := core.NewMail(sender, owner, core.CategoryMessage, 2)
	require.NoError(t, box.AppendIn(first))
	require.NoError(t, box.AppendIn(second))

	got, ok := box.PopIn(sender)
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok = box.PopIn(sender)
	require.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = box.PopIn(sender)
	assert.False(t, ok)
}

func TestExcludeIdempotent(t *testing.T) {
	owner := core.NewID()
	box := New(owner)

	m := core.NewMail(owner, core.NewID(), core.CategoryMessage, nil)
	require.NoError(t, box.AppendOut(m))

	box.Exclude(m)
	assert.Equal(t, 0, box.OutCount())

	box.Exclude(m) // no-op
	assert.Equal(t, 0, box.OutCount())
}

func TestExcludeRemovesFromInbox(t *testing.T) {
	owner := core.NewID()
	sender := core.NewID()
	box := New(owner)

	m := core.NewMail(sender, owner, core.CategoryMessage, nil)
	require.NoError(t, box.AppendIn(m))

	box.Exclude(m)

	assert.Equal(t, 0, box.InCount())
	_, ok := box.PopIn(sender)
	assert.False(t, ok)
}
