package progression

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/mailmesh/core"
)

// ErrEmpty is returned when draining an empty progression.
var ErrEmpty = errors.New("progression is empty")

// OutOfRangeError reports a positional access outside the progression's
// bounds.
type OutOfRangeError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for progression of length %d", e.Index, e.Len)
}

// Progression is an ordered, duplicate-permitting sequence of
// identities. It embeds core.Element so that progressions can
// themselves be stored in identity-addressed collections.
//
// Progression is not safe for concurrent use; callers that share one
// across goroutines must synchronize externally.
type Progression struct {
	core.Element

	// Name is an optional human-readable label used by flow registries.
	Name string

	order []string
}

// New creates a progression seeded with the given identities in order.
func New(ids ...string) *Progression {
	p := &Progression{Element: core.NewElement()}
	p.order = append(p.order, ids...)
	return p
}

// Named creates a labeled progression seeded with the given identities.
func Named(name string, ids ...string) *Progression {
	p := New(ids...)
	p.Name = name
	return p
}

// Append adds the given identities to the end of the sequence.
// Duplicates are permitted.
func (p *Progression) Append(ids ...string) {
	p.order = append(p.order, ids...)
}

// Len returns the number of stored entries, counting duplicates.
func (p *Progression) Len() int { return len(p.order) }

// IsEmpty reports whether the progression holds no entries.
func (p *Progression) IsEmpty() bool { return len(p.order) == 0 }

// Order returns a defensive copy of the sequence.
func (p *Progression) Order() []string {
	return slices.Clone(p.order)
}

// At returns the identity at position i, or an OutOfRangeError when i
// is outside the bounds of the sequence.
func (p *Progression) At(i int) (string, error) {
	if i < 0 || i >= len(p.order) {
		return "", &OutOfRangeError{Index: i, Len: len(p.order)}
	}
	return p.order[i], nil
}

// Slice returns a copy of the sub-sequence [i, j). Both bounds must lie
// within the progression.
func (p *Progression) Slice(i, j int) ([]string, error) {
	if i < 0 || j > len(p.order) || i > j {
		return nil, &OutOfRangeError{Index: i, Len: len(p.order)}
	}
	return slices.Clone(p.order[i:j]), nil
}

// Contains reports whether all the given identities are present.
func (p *Progression) Contains(ids ...string) bool {
	for _, id := range ids {
		if !slices.Contains(p.order, id) {
			return false
		}
	}
	return len(ids) > 0
}

// Include appends the identity only if it is not already present.
// Including a member is a no-op.
func (p *Progression) Include(id string) {
	if !slices.Contains(p.order, id) {
		p.order = append(p.order, id)
	}
}

// Exclude removes every occurrence of the identity. Excluding a
// non-member is a no-op.
func (p *Progression) Exclude(id string) {
	p.order = slices.DeleteFunc(p.order, func(s string) bool { return s == id })
}

// PopLeft removes and returns the first identity, or ErrEmpty when the
// progression holds no entries. Together with Append this gives FIFO
// queue semantics.
func (p *Progression) PopLeft() (string, error) {
	if len(p.order) == 0 {
		return "", ErrEmpty
	}
	id := p.order[0]
	p.order = p.order[1:]
	return id, nil
}

// Concat returns a new progression holding p's entries followed by
// other's. Concatenation is not commutative: order is semantically
// meaningful, and p.Concat(p) duplicates every entry.
func (p *Progression) Concat(other *Progression) *Progression {
	out := New(p.order...)
	out.Name = p.Name
	if other != nil {
		out.Append(other.order...)
	}
	return out
}

// Without returns a new progression holding p's entries minus every
// occurrence of each identity present in other.
func (p *Progression) Without(other *Progression) *Progression {
	out := New(p.order...)
	out.Name = p.Name
	if other != nil {
		for _, id := range other.order {
			out.Exclude(id)
		}
	}
	return out
}

// Copy returns an independent progression with the same order and name
// but its own identity.
func (p *Progression) Copy() *Progression {
	out := New(p.order...)
	out.Name = p.Name
	return out
}

// Clear removes all entries.
func (p *Progression) Clear() {
	p.order = p.order[:0]
}
