// Package exchange implements the per-source mailbox: a FIFO outbox of
// staged outgoing mail plus an inbox bucketed by originating sender.
// Each source owns exactly one Exchange; the routing layer only drains
// its outgoing side and only appends to its incoming side, while the
// owning source processes delivered mail at its own pace.
package exchange
