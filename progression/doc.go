// Package progression implements an ordered, mutable sequence of
// identities. Insertion order is significant and duplicate identities
// are allowed: a Progression is a sequence, not a set. It backs the
// ordering side of piles, the FIFO queues inside exchanges and the
// named threads inside flows.
package progression
