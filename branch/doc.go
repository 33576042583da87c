// Package branch provides a conversational branch: a concrete mail
// source with its own mailbox, a log of delivered mail and per-sender
// conversation threads. Branches stage outgoing mail into their own
// exchange and pull delivered mail from it at their own pace; the
// routing between branches is the router package's job.
package branch
