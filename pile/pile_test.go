package pile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mailmesh/core"
)

type node struct {
	core.Element
	Label string
}

type other struct {
	core.Element
}

func newNode(label string) *node {
	return &node{Element: core.NewElement(), Label: label}
}

func TestAddAndGet(t *testing.T) {
	p := New[*node]()
	n := newNode("a")

	require.NoError(t, p.Add(n))

	got, err := p.Get(n.Identity())
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	p := New[*node]()
	n := newNode("a")

	require.NoError(t, p.Add(n))
	require.NoError(t, p.Add(n))

	assert.Equal(t, 1, p.Len())
}

func TestDualAddressing(t *testing.T) {
	a, b, c := newNode("a"), newNode("b"), newNode("c")
	p := From(a, b, c)

	// Associative access.
	got, err := p.Get(b.Identity())
	require.NoError(t, err)
	assert.Equal(t, "b", got.Label)

	// Positional access follows insertion order.
	got, err = p.At(2)
	require.NoError(t, err)
	assert.Equal(t, "c", got.Label)

	slice, err := p.SliceRange(0, 2)
	require.NoError(t, err)
	require.Len(t, slice, 2)
	assert.Equal(t, "a", slice[0].Label)
	assert.Equal(t, "b", slice[1].Label)

	_, err = p.At(3)
	assert.Error(t, err)
}

func TestPopMissing(t *testing.T) {
	p := New[*node]()

	_, err := p.Pop("unknown")

	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "unknown", nf.ID)
}

func TestPopRemoves(t *testing.T) {
	n := newNode("a")
	p := From(n)

	got, err := p.Pop(n.Identity())
	require.NoError(t, err)
	assert.Equal(t, n, got)
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Contains(n.Identity()))
}

func TestExcludeIdempotent(t *testing.T) {
	n := newNode("a")
	p := From(n)

	p.Exclude(n.Identity())
	p.Exclude(n.Identity()) // no-op

	assert.Equal(t, 0, p.Len())
}

func TestOrderPreservedAfterRemoval(t *testing.T) {
	a, b, c := newNode("a"), newNode("b"), newNode("c")
	p := From(a, b, c)

	require.NoError(t, p.Remove(b.Identity()))

	assert.Equal(t, []string{a.Identity(), c.Identity()}, p.IDs())

	values := p.Values()
	require.Len(t, values, 2)
	assert.Equal(t, "a", values[0].Label)
	assert.Equal(t, "c", values[1].Label)
}

func TestTypeRestriction(t *testing.T) {
	p := New[core.Identifiable](WithAllowedTypes(&node{}))

	require.NoError(t, p.Add(newNode("a")))

	err := p.Add(&other{Element: core.NewElement()})
	var te *TypeError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, 1, p.Len())
}

func TestIsHomogeneous(t *testing.T) {
	p := New[core.Identifiable]()
	assert.True(t, p.IsHomogeneous())

	require.NoError(t, p.Add(newNode("a")))
	assert.True(t, p.IsHomogeneous())

	require.NoError(t, p.Add(&other{Element: core.NewElement()}))
	assert.False(t, p.IsHomogeneous())
}

func TestClear(t *testing.T) {
	p := From(newNode("a"), newNode("b"))

	p.Clear()

	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.IDs())
}
