package exchange

import (
	"fmt"
	"sync"

	"github.com/hupe1980/mailmesh/core"
	"github.com/hupe1980/mailmesh/pile"
	"github.com/hupe1980/mailmesh/progression"
)

// OwnershipError reports a mail item that violates the mailbox's
// ownership invariants: outgoing mail must be sent by the owner,
// incoming mail must be addressed to the owner.
type OwnershipError struct {
	Owner  string
	MailID string
	Reason string
}

// Error implements the error interface.
func (e *OwnershipError) Error() string {
	return fmt.Sprintf("mail %s rejected by mailbox of %s: %s", e.MailID, e.Owner, e.Reason)
}

// Exchange is a source's private staging area. Mail items live in a
// pile keyed by identity while two progression-based partitions keep
// the queue orders: a single FIFO outbox and one FIFO inbox bucket per
// originating sender. FIFO holds within the outbox and within each
// bucket; no ordering is guaranteed across different senders' buckets.
//
// Exchange is safe for concurrent access.
type Exchange struct {
	mu          sync.RWMutex
	owner       string
	items       *pile.Pile[*core.Mail]
	pendingOuts *progression.Progression
	pendingIns  map[string]*progression.Progression
}

// New constructs an empty mailbox owned by the source with the given
// identity.
func New(owner string) *Exchange {
	return &Exchange{
		owner:       owner,
		items:       pile.New[*core.Mail](),
		pendingOuts: progression.New(),
		pendingIns:  make(map[string]*progression.Progression),
	}
}

// Owner returns the identity of the owning source.
func (e *Exchange) Owner() string { return e.owner }

// AppendOut stages a mail item in the outbox. The mail's sender must be
// the mailbox owner.
func (e *Exchange) AppendOut(m *core.Mail) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.Sender != e.owner {
		return &OwnershipError{Owner: e.owner, MailID: m.Identity(), Reason: "outgoing sender mismatch"}
	}

	if err := e.items.Add(m); err != nil {
		return err
	}
	e.pendingOuts.Append(m.Identity())

	return nil
}

// AppendIn delivers a mail item into the inbox bucket of its sender,
// creating the bucket on demand. The mail's recipient must be the
// mailbox owner.
func (e *Exchange) AppendIn(m *core.Mail) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.Recipient != e.owner {
		return &OwnershipError{Owner: e.owner, MailID: m.Identity(), Reason: "incoming recipient mismatch"}
	}

	if err := e.items.Add(m); err != nil {
		return err
	}

	bucket, ok := e.pendingIns[m.Sender]
	if !ok {
		bucket = progression.Named(m.Sender)
		e.pendingIns[m.Sender] = bucket
	}
	bucket.Append(m.Identity())

	return nil
}

// Exclude removes a specific mail item from whichever queue holds it.
// Excluding mail the mailbox does not hold is a no-op.
func (e *Exchange) Exclude(m *core.Mail) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := m.Identity()
	e.items.Exclude(id)
	e.pendingOuts.Exclude(id)
	for _, bucket := range e.pendingIns {
		bucket.Exclude(id)
	}
}

// OutgoingSnapshot returns the staged outgoing mail in FIFO order
// without draining the outbox. The routing layer pairs this with
// Exclude to move items out per-item.
func (e *Exchange) OutgoingSnapshot() []*core.Mail {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.resolve(e.pendingOuts.Order())
}

// PopOut removes and returns the oldest staged outgoing mail. The
// second return value is false when the outbox is empty.
func (e *Exchange) PopOut() (*core.Mail, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.pendingOuts.PopLeft()
	if err != nil {
		return nil, false
	}

	m, err := e.items.Pop(id)
	if err != nil {
		return nil, false
	}

	return m, true
}

// PopIn removes and returns the oldest delivered mail from the given
// sender's bucket. The second return value is false when the bucket is
// absent or empty.
func (e *Exchange) PopIn(sender string) (*core.Mail, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	bucket, ok := e.pendingIns[sender]
	if !ok {
		return nil, false
	}

	id, err := bucket.PopLeft()
	if err != nil {
		return nil, false
	}

	m, err := e.items.Pop(id)
	if err != nil {
		return nil, false
	}

	return m, true
}

// PendingIn returns the delivered-but-unprocessed mail from the given
// sender in FIFO order without draining the bucket.
func (e *Exchange) PendingIn(sender string) []*core.Mail {
	e.mu.RLock()
	defer e.mu.RUnlock()

	bucket, ok := e.pendingIns[sender]
	if !ok {
		return nil
	}

	return e.resolve(bucket.Order())
}

// Senders returns the identities of all senders with a non-empty inbox
// bucket.
func (e *Exchange) Senders() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, 0, len(e.pendingIns))
	for sender, bucket := range e.pendingIns {
		if !bucket.IsEmpty() {
			out = append(out, sender)
		}
	}

	return out
}

// OutCount returns the number of staged outgoing mail items.
func (e *Exchange) OutCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.pendingOuts.Len()
}

// InCount returns the total number of delivered-but-unprocessed mail
// items across all sender buckets.
func (e *Exchange) InCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, bucket := range e.pendingIns {
		n += bucket.Len()
	}

	return n
}

// resolve maps queue identities to mail items; caller must hold a lock.
func (e *Exchange) resolve(ids []string) []*core.Mail {
	out := make([]*core.Mail, 0, len(ids))
	for _, id := range ids {
		if m, err := e.items.Get(id); err == nil {
			out = append(out, m)
		}
	}

	return out
}
