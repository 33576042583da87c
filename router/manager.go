package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/mailmesh/core"
	"github.com/hupe1980/mailmesh/exchange"
	"github.com/hupe1980/mailmesh/logging"
	"github.com/hupe1980/mailmesh/pile"
)

// DefaultRefreshTime is the delivery loop interval used when Execute is
// called with a non-positive refresh duration.
const DefaultRefreshTime = time.Second

// Source is the contract a participant must satisfy to be registered
// with a MailManager: a unique identity plus a mailbox whose outgoing
// side the manager drains and whose incoming side the manager fills.
// The manager never touches a source's processing of already-delivered
// mail.
type Source interface {
	core.Identifiable

	// Mailbox returns the source's exchange. It must return the same
	// exchange for the lifetime of the registration.
	Mailbox() *exchange.Exchange
}

// Options configures a MailManager instance.
type Options struct {
	// Logger receives routing diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// MailManager is the central router for one orchestration session. It
// is scoped, not global: construct one per session and pass it to
// every branch that sends or receives, then tear it down with the
// session. There is no persistence.
type MailManager struct {
	sources *pile.Pile[Source]
	// mails buffers collected-but-unsent mail keyed by recipient, then
	// by sender. A mail item occupies exactly one slot, the one keyed
	// by its own (recipient, sender) pair, and only between collection
	// and sending. Buckets are emptied after a flush, not deleted.
	mails  map[string]map[string][]*core.Mail
	logger logging.Logger
}

// NewMailManager creates an empty router with optional overrides.
func NewMailManager(optFns ...func(o *Options)) *MailManager {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &MailManager{
		sources: pile.New[Source](),
		mails:   make(map[string]map[string][]*core.Mail),
		logger:  opts.Logger,
	}
}

// CreateMail builds an immutable mail envelope. It performs no routing
// and no payload validation.
func CreateMail(sender, recipient string, category core.Category, payload any) *core.Mail {
	return core.NewMail(sender, recipient, category, payload)
}

// AddSources registers the given sources. Each source gets an empty
// relay-buffer slot as a recipient. Registering an identity that is
// already present fails with a DuplicateSourceError; sources preceding
// the duplicate in the argument list stay registered.
func (m *MailManager) AddSources(sources ...Source) error {
	for _, src := range sources {
		id := src.Identity()
		if m.sources.Contains(id) {
			return &DuplicateSourceError{ID: id}
		}

		if err := m.sources.Add(src); err != nil {
			return fmt.Errorf("register source %s: %w", id, err)
		}
		m.mails[id] = make(map[string][]*core.Mail)

		m.logger.Debug("source registered source_id=%s", id)
	}

	return nil
}

// DeleteSource unregisters a source and discards its relay-buffer
// slot. Mail already buffered for the deleted recipient is dropped;
// the loss is logged but deliberate (deletion is not delivery-safe).
// Unknown identities fail with an UnknownSourceError.
func (m *MailManager) DeleteSource(sourceID string) error {
	if !m.sources.Contains(sourceID) {
		return &UnknownSourceError{ID: sourceID}
	}

	dropped := 0
	for _, queue := range m.mails[sourceID] {
		dropped += len(queue)
	}
	if dropped > 0 {
		m.logger.Warn("dropping buffered mail with deleted source recipient=%s dropped=%d", sourceID, dropped)
	}

	m.sources.Exclude(sourceID)
	delete(m.mails, sourceID)

	m.logger.Debug("source deleted source_id=%s", sourceID)

	return nil
}

// Contains reports whether a source identity is registered.
func (m *MailManager) Contains(sourceID string) bool {
	return m.sources.Contains(sourceID)
}

// SourceIDs returns the registered identities in insertion order.
func (m *MailManager) SourceIDs() []string {
	return m.sources.IDs()
}

// Source returns the registered source with the given identity.
func (m *MailManager) Source(sourceID string) (Source, error) {
	src, err := m.sources.Get(sourceID)
	if err != nil {
		return nil, &UnknownSourceError{ID: sourceID}
	}

	return src, nil
}

// Buffered returns the number of collected-but-unsent mail items
// currently staged for the given recipient.
func (m *MailManager) Buffered(recipientID string) int {
	n := 0
	for _, queue := range m.mails[recipientID] {
		n += len(queue)
	}

	return n
}

// Collect drains the sender's outbox into the relay buffer. Each
// staged mail item is routed independently: items addressed to a
// registered recipient move into the buffer preserving FIFO order,
// items addressed to an unregistered recipient stay in the outbox and
// contribute an UnroutableRecipientError to the aggregated return
// value. An unknown sender fails with an UnknownSourceError.
func (m *MailManager) Collect(senderID string) error {
	src, err := m.sources.Get(senderID)
	if err != nil {
		return &UnknownSourceError{ID: senderID}
	}

	start := time.Now()
	box := src.Mailbox()

	var errs []error
	moved := 0
	for _, mail := range box.OutgoingSnapshot() {
		if !m.sources.Contains(mail.Recipient) {
			errs = append(errs, &UnroutableRecipientError{
				MailID:    mail.Identity(),
				Sender:    mail.Sender,
				Recipient: mail.Recipient,
			})
			continue
		}

		box.Exclude(mail)

		bucket := m.mails[mail.Recipient]
		bucket[mail.Sender] = append(bucket[mail.Sender], mail)
		moved++
	}

	m.logger.Debug("outbox collected sender=%s moved=%d held=%d duration=%s",
		senderID, moved, len(errs), time.Since(start))

	return errors.Join(errs...)
}

// Send flushes every sender bucket buffered for the recipient into the
// recipient's inbox in per-sender FIFO order. Buckets are emptied, not
// deleted, so later collects refill them. An unknown recipient fails
// with an UnknownSourceError.
func (m *MailManager) Send(recipientID string) error {
	src, err := m.sources.Get(recipientID)
	if err != nil {
		return &UnknownSourceError{ID: recipientID}
	}

	start := time.Now()
	box := src.Mailbox()
	buckets := m.mails[recipientID]

	var errs []error
	delivered := 0
	for sender, queue := range buckets {
		for _, mail := range queue {
			if err := box.AppendIn(mail); err != nil {
				errs = append(errs, fmt.Errorf("deliver mail %s: %w", mail.Identity(), err))
				continue
			}
			delivered++
		}
		buckets[sender] = queue[:0]
	}

	m.logger.Debug("buffer flushed recipient=%s delivered=%d duration=%s",
		recipientID, delivered, time.Since(start))

	return errors.Join(errs...)
}

// CollectAll drains every registered source's outbox in registry
// insertion order, aggregating per-source errors.
func (m *MailManager) CollectAll() error {
	var errs []error
	for _, id := range m.sources.IDs() {
		if err := m.Collect(id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// SendAll flushes the relay buffer for every registered source in
// registry insertion order, aggregating per-recipient errors.
func (m *MailManager) SendAll() error {
	var errs []error
	for _, id := range m.sources.IDs() {
		if err := m.Send(id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Execute runs the continuous delivery loop: collect-all, send-all,
// suspend for refresh, repeat. Cancellation is observed at the top of
// each iteration and during the suspension, so worst-case stop latency
// is one refresh interval; a cancelled context terminates the loop
// cleanly with a nil error. Collect/send errors are not swallowed:
// the first aggregate error terminates the loop and propagates.
func (m *MailManager) Execute(ctx context.Context, refresh time.Duration) error {
	if refresh <= 0 {
		refresh = DefaultRefreshTime
	}

	m.logger.Info("delivery loop started refresh=%s", refresh)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("delivery loop stopped")
			return nil
		default:
		}

		if err := m.CollectAll(); err != nil {
			return fmt.Errorf("collect all: %w", err)
		}
		if err := m.SendAll(); err != nil {
			return fmt.Errorf("send all: %w", err)
		}

		select {
		case <-ctx.Done():
			m.logger.Info("delivery loop stopped")
			return nil
		case <-time.After(refresh):
		}
	}
}
