package branch

import (
	"github.com/hupe1980/mailmesh/core"
	"github.com/hupe1980/mailmesh/exchange"
	"github.com/hupe1980/mailmesh/flow"
	"github.com/hupe1980/mailmesh/logging"
	"github.com/hupe1980/mailmesh/pile"
)

// Options configures a Branch.
type Options struct {
	// Logger receives branch diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Branch is a participant in an orchestration session. It owns its
// mailbox exclusively: the router only drains the outgoing side and
// fills the incoming side, while the branch decides when to pull
// delivered mail into its log.
type Branch struct {
	core.Element

	name     string
	mailbox  *exchange.Exchange
	messages *pile.Pile[*core.Mail]
	threads  *flow.Flow
	logger   logging.Logger
}

// New creates a branch with a fresh identity and an empty mailbox.
func New(name string, optFns ...func(o *Options)) *Branch {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	el := core.NewElement()

	return &Branch{
		Element:  el,
		name:     name,
		mailbox:  exchange.New(el.Identity()),
		messages: pile.New[*core.Mail](),
		threads:  flow.New(),
		logger:   opts.Logger,
	}
}

// Name returns the branch's human-readable name.
func (b *Branch) Name() string { return b.name }

// Mailbox returns the branch's exchange, satisfying the router's
// source contract.
func (b *Branch) Mailbox() *exchange.Exchange { return b.mailbox }

// SendMail stages a mail envelope addressed to the given recipient in
// the branch's outbox. The mail is picked up by the router on its next
// collect.
func (b *Branch) SendMail(recipient string, category core.Category, payload any) (*core.Mail, error) {
	m := core.NewMail(b.Identity(), recipient, category, payload)

	if err := b.mailbox.AppendOut(m); err != nil {
		return nil, err
	}

	b.logger.Debug("mail staged mail_id=%s recipient=%s category=%s", m.Identity(), recipient, category)

	return m, nil
}

// ReceiveFrom drains the delivered-but-unprocessed mail from one
// sender into the branch's log, in delivery order, and returns the
// drained mail. Draining an empty or absent bucket returns nil.
func (b *Branch) ReceiveFrom(sender string) []*core.Mail {
	var received []*core.Mail
	for {
		m, ok := b.mailbox.PopIn(sender)
		if !ok {
			break
		}

		_ = b.messages.Add(m)
		b.threads.Append(m.Identity(), sender)
		received = append(received, m)
	}

	if len(received) > 0 {
		b.logger.Debug("mail received sender=%s count=%d", sender, len(received))
	}

	return received
}

// ReceiveAll drains every sender's bucket. Order across senders is
// unspecified; delivery order holds within each sender.
func (b *Branch) ReceiveAll() []*core.Mail {
	var received []*core.Mail
	for _, sender := range b.mailbox.Senders() {
		received = append(received, b.ReceiveFrom(sender)...)
	}

	return received
}

// Conversation returns the processed mail from one correspondent in
// the order it was received.
func (b *Branch) Conversation(sender string) []*core.Mail {
	thread, ok := b.threads.Get(sender)
	if !ok {
		return nil
	}

	out := make([]*core.Mail, 0, thread.Len())
	for _, id := range thread.Order() {
		if m, err := b.messages.Get(id); err == nil {
			out = append(out, m)
		}
	}

	return out
}

// Messages returns every processed mail item in receive order.
func (b *Branch) Messages() []*core.Mail {
	return b.messages.Values()
}

// Correspondents returns the identities of senders the branch has
// processed mail from.
func (b *Branch) Correspondents() []string {
	return b.threads.Names()
}
