// Package router implements the central mail switchboard. A
// MailManager owns a registry of sources, a per-recipient/per-sender
// relay buffer of undelivered mail and a cooperative delivery loop:
// Collect drains a source's outbox into the buffer, Send flushes the
// buffer into a recipient's inbox, and Execute repeats both for every
// registered source on a fixed interval until its context is
// cancelled.
//
// FIFO order is guaranteed strictly per (sender, recipient) pair.
// There is no global ordering across pairs and no fairness guarantee;
// mail staged faster than the loop drains it is deferred, never
// dropped, as long as its recipient stays registered.
//
// The manager provides no internal locking across its operations:
// all mutation is expected to happen from the single loop task or from
// synchronous calls made between iterations.
package router
