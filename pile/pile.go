package pile

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hupe1980/mailmesh/core"
	"github.com/hupe1980/mailmesh/progression"
)

// NotFoundError reports a lookup for an identity the pile does not
// hold.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pile does not contain element %s", e.ID)
}

// TypeError reports an insert whose concrete type is not among the
// pile's accepted types.
type TypeError struct {
	Got reflect.Type
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("element type %s is not accepted by this pile", e.Got)
}

// Options configures a Pile.
type Options struct {
	// AllowedTypes restricts inserts to the concrete dynamic types of
	// the given samples. Empty means any type satisfying the pile's
	// static element type is accepted.
	AllowedTypes []any
}

// WithAllowedTypes restricts the pile to the concrete types of the
// given sample values. Useful when the static element type is an
// interface but the pile must stay homogeneous at runtime.
func WithAllowedTypes(samples ...any) func(o *Options) {
	return func(o *Options) {
		o.AllowedTypes = append(o.AllowedTypes, samples...)
	}
}

// Pile is an order-preserving, dual-addressed collection of elements
// keyed by identity. Insertion order is preserved through an internal
// progression; duplicate-identity inserts are idempotent. It is safe
// for concurrent access.
type Pile[T core.Identifiable] struct {
	mu      sync.RWMutex
	items   map[string]T
	order   *progression.Progression
	allowed []reflect.Type
}

// New constructs an empty pile.
func New[T core.Identifiable](optFns ...func(o *Options)) *Pile[T] {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	p := &Pile[T]{
		items: make(map[string]T),
		order: progression.New(),
	}
	for _, sample := range opts.AllowedTypes {
		p.allowed = append(p.allowed, reflect.TypeOf(sample))
	}

	return p
}

// From constructs a pile seeded with the given items in order.
func From[T core.Identifiable](items ...T) *Pile[T] {
	p := New[T]()
	for _, item := range items {
		_ = p.Add(item)
	}
	return p
}

// Add inserts the item, preserving insertion order. Inserting an
// identity the pile already holds is a no-op. A TypeError is returned
// when type restriction is enabled and the item's concrete type is not
// accepted.
func (p *Pile[T]) Add(item T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkType(item); err != nil {
		return err
	}

	id := item.Identity()
	if _, ok := p.items[id]; ok {
		return nil
	}

	p.items[id] = item
	p.order.Append(id)

	return nil
}

// Include is an alias for Add kept for symmetry with Exclude.
func (p *Pile[T]) Include(item T) error { return p.Add(item) }

// Get returns the element with the given identity, or a NotFoundError.
func (p *Pile[T]) Get(id string) (T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	item, ok := p.items[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{ID: id}
	}

	return item, nil
}

// At returns the element at the given insertion-order position.
func (p *Pile[T]) At(i int) (T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	id, err := p.order.At(i)
	if err != nil {
		var zero T
		return zero, err
	}

	return p.items[id], nil
}

// SliceRange returns the elements at insertion-order positions [i, j).
func (p *Pile[T]) SliceRange(i, j int) ([]T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids, err := p.order.Slice(i, j)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.items[id])
	}

	return out, nil
}

// Remove deletes the element with the given identity, returning a
// NotFoundError when absent.
func (p *Pile[T]) Remove(id string) error {
	_, err := p.Pop(id)
	return err
}

// Pop removes and returns the element with the given identity,
// returning a NotFoundError when absent.
func (p *Pile[T]) Pop(id string) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := p.items[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{ID: id}
	}

	delete(p.items, id)
	p.order.Exclude(id)

	return item, nil
}

// Exclude removes the element with the given identity if present.
// Excluding a non-member is a no-op.
func (p *Pile[T]) Exclude(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.items[id]; !ok {
		return
	}

	delete(p.items, id)
	p.order.Exclude(id)
}

// Contains reports whether the pile holds the given identity.
func (p *Pile[T]) Contains(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.items[id]
	return ok
}

// Len returns the number of stored elements.
func (p *Pile[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.items)
}

// Values returns the elements in insertion order.
func (p *Pile[T]) Values() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]T, 0, len(p.items))
	for _, id := range p.order.Order() {
		out = append(out, p.items[id])
	}

	return out
}

// IDs returns the identities in insertion order.
func (p *Pile[T]) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.order.Order()
}

// IsHomogeneous reports whether all contained elements share one
// concrete type. Empty and single-element piles are homogeneous.
// Callers use this before bulk export.
func (p *Pile[T]) IsHomogeneous() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var first reflect.Type
	for _, item := range p.items {
		t := reflect.TypeOf(item)
		if first == nil {
			first = t
			continue
		}
		if t != first {
			return false
		}
	}

	return true
}

// Clear removes all elements.
func (p *Pile[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = make(map[string]T)
	p.order.Clear()
}

func (p *Pile[T]) checkType(item T) error {
	if len(p.allowed) == 0 {
		return nil
	}

	t := reflect.TypeOf(item)
	for _, a := range p.allowed {
		if t == a {
			return nil
		}
	}

	return &TypeError{Got: t}
}
