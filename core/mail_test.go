package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMail(t *testing.T) {
	sender, recipient := NewID(), NewID()

	mail := NewMail(sender, recipient, CategoryMessage, "hello")

	assert.NotEmpty(t, mail.Identity())
	assert.False(t, mail.Created().IsZero())
	assert.Equal(t, sender, mail.Sender)
	assert.Equal(t, recipient, mail.Recipient)
	assert.Equal(t, CategoryMessage, mail.Package.Category)
	assert.Equal(t, "hello", mail.Package.Payload)
}

func TestNewMail_UniqueIdentities(t *testing.T) {
	a := NewMail("s", "r", CategoryMessage, nil)
	b := NewMail("s", "r", CategoryMessage, nil)

	assert.NotEqual(t, a.Identity(), b.Identity())
}
