package flow

import (
	"fmt"
	"sync"

	"github.com/hupe1980/mailmesh/pile"
	"github.com/hupe1980/mailmesh/progression"
)

// DefaultName is the name of the sequence used when callers do not
// specify one.
const DefaultName = "main"

// DuplicateNameError reports a registration under a name that is
// already taken.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("flow already contains a sequence named %s", e.Name)
}

// Flow is a set of named progressions stored in a pile. Sequences are
// created on demand by Append; Register adds a pre-built progression
// under a unique name. Safe for concurrent access.
type Flow struct {
	mu        sync.RWMutex
	sequences *pile.Pile[*progression.Progression]
	registry  map[string]string // name -> progression identity
}

// New constructs an empty flow.
func New() *Flow {
	return &Flow{
		sequences: pile.New[*progression.Progression](),
		registry:  make(map[string]string),
	}
}

// Register adds a progression under the given name (falling back to
// the progression's own name, then DefaultName). Registering a taken
// name fails with a DuplicateNameError.
func (f *Flow) Register(p *progression.Progression, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if name == "" {
		name = p.Name
	}
	if name == "" {
		name = DefaultName
	}

	if _, ok := f.registry[name]; ok {
		return &DuplicateNameError{Name: name}
	}

	if err := f.sequences.Add(p); err != nil {
		return err
	}
	f.registry[name] = p.Identity()

	return nil
}

// Append adds an identity to the end of the named sequence, creating
// the sequence on demand. An empty name targets DefaultName.
func (f *Flow) Append(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if name == "" {
		name = DefaultName
	}

	seq := f.lookupLocked(name)
	if seq == nil {
		seq = progression.Named(name)
		_ = f.sequences.Add(seq)
		f.registry[name] = seq.Identity()
	}

	seq.Append(id)
}

// Get returns the named sequence. The second return value is false
// when no sequence with that name exists.
func (f *Flow) Get(name string) (*progression.Progression, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if name == "" {
		name = DefaultName
	}

	seq := f.lookupLocked(name)
	return seq, seq != nil
}

// Names returns the registered sequence names.
func (f *Flow) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, 0, len(f.registry))
	for name := range f.registry {
		out = append(out, name)
	}

	return out
}

// Len returns the number of registered sequences.
func (f *Flow) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.sequences.Len()
}

func (f *Flow) lookupLocked(name string) *progression.Progression {
	id, ok := f.registry[name]
	if !ok {
		return nil
	}

	seq, err := f.sequences.Get(id)
	if err != nil {
		return nil
	}

	return seq
}
