package core

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates a globally unique identifier. Identity is the only
// authoritative addressing mechanism in mailmesh; positional or
// name-based lookups are conveniences layered on top.
func NewID() string {
	return uuid.NewString()
}

// Identifiable is implemented by anything that can be addressed by the
// routing layer: mail items, sources and sequencing primitives.
type Identifiable interface {
	// Identity returns the unique, immutable identifier assigned at
	// creation time.
	Identity() string
}

// Element is the embeddable identity base for every domain entity. The
// ID and Timestamp are assigned once at construction and must not be
// mutated afterwards.
type Element struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewElement creates an Element with a fresh ID and a UTC creation
// timestamp.
func NewElement() Element {
	return Element{ID: NewID(), Timestamp: time.Now().UTC()}
}

// Identity returns the element's unique identifier.
func (e Element) Identity() string { return e.ID }

// Created returns the element's creation timestamp.
func (e Element) Created() time.Time { return e.Timestamp }
