package router

import "fmt"

// UnknownSourceError reports an operation naming a source identity that
// is not registered.
type UnknownSourceError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("source %s does not exist", e.ID)
}

// DuplicateSourceError reports an attempt to register a source whose
// identity is already registered.
type DuplicateSourceError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("source %s already exists", e.ID)
}

// UnroutableRecipientError reports a staged outgoing mail item whose
// recipient is not a registered source. This is a data-integrity
// error, not a transient one: retrying helps only after the recipient
// is registered. The mail item stays in the sender's outbox.
type UnroutableRecipientError struct {
	MailID    string
	Sender    string
	Recipient string
}

// Error implements the error interface.
func (e *UnroutableRecipientError) Error() string {
	return fmt.Sprintf("mail %s from %s: recipient %s does not exist", e.MailID, e.Sender, e.Recipient)
}
