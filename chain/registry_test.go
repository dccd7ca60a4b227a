package chain_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/markov/chain"
)

func TestGetOrInsert_Dedup(t *testing.T) {
	c := newWordChain(t)
	es := insert(t, c, StateA, StateB, StateA, StateC, StateB, StateA)

	assert.Equal(t, 3, c.Len())
	assert.Same(t, es[0], es[2], "duplicate insert must return the existing entry")
	assert.Same(t, es[0], es[5])
	assert.Same(t, es[1], es[4])

	got := make([]string, 0, c.Len())
	for i, e := range c.Entries() {
		assert.Equal(t, i, e.Index())
		got = append(got, e.Value())
	}
	assert.Equal(t, []string{StateA, StateB, StateC}, got, "insertion order is preserved")
}

// TestGetOrInsert_DedupAnyOrder checks that the registry size equals the
// number of distinct states whatever the call order and duplication.
func TestGetOrInsert_DedupAnyOrder(t *testing.T) {
	base := []string{StateA, StateB, StateC, StateD, StateEndX}
	rng := rand.New(rand.NewSource(testSeed))

	for round := 0; round < 20; round++ {
		var values []string
		for _, v := range base {
			for n := rng.Intn(4) + 1; n > 0; n-- {
				values = append(values, v)
			}
		}
		rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

		c := newWordChain(t)
		insert(t, c, values...)
		assert.Equal(t, len(base), c.Len(), "round %d", round)
	}
}

func TestGetOrInsert_OwnsCopy(t *testing.T) {
	c := chain.New[[]byte](chain.Funcs[[]byte]{
		CompareFn: bytes.Compare,
		CloneFn:   func(b []byte) ([]byte, error) { return bytes.Clone(b), nil },
	})
	defer c.Close()

	payload := []byte("cat")
	e, err := c.GetOrInsert(payload)
	require.NoError(t, err)

	payload[0] = 'b'
	assert.Equal(t, []byte("cat"), e.Value(), "caller mutation must not reach the entry")

	_, found := c.Find([]byte("bat"))
	assert.False(t, found)
}

func TestGetOrInsert_CloneFailure(t *testing.T) {
	tr := &tracker{failClone: true}
	c := chain.New[string](tr.caps())
	defer c.Close()

	e, err := c.GetOrInsert(StateA)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, chain.ErrAllocation)
	assert.ErrorIs(t, err, errNoMemory, "the clone error is kept in the chain")
	assert.Equal(t, 0, c.Len(), "a failed insert leaves nothing behind")
}

func TestGetOrInsert_EntryBudget(t *testing.T) {
	tr := &tracker{}
	c := chain.New[string](tr.caps(), chain.WithMaxEntries(2))
	defer c.Close()

	insert(t, c, StateA, StateB)

	e, err := c.GetOrInsert(StateC)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, chain.ErrAllocation)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, tr.clones)
	assert.Equal(t, 1, tr.releases, "the orphaned copy is released on failure")

	// Existing states are still served from the registry.
	existing, err := c.GetOrInsert(StateA)
	require.NoError(t, err)
	assert.Equal(t, StateA, existing.Value())
}

func TestFind(t *testing.T) {
	c := newWordChain(t)
	es := insert(t, c, StateA, StateB)

	got, ok := c.Find(StateB)
	assert.True(t, ok)
	assert.Same(t, es[1], got)

	got, ok = c.Find(StateC)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestAtAndFirst(t *testing.T) {
	c := newWordChain(t)

	_, ok := c.First()
	assert.False(t, ok, "empty chain has no first entry")

	es := insert(t, c, StateB, StateA)
	first, ok := c.First()
	require.True(t, ok)
	assert.Same(t, es[0], first)

	second, ok := c.At(1)
	require.True(t, ok)
	assert.Same(t, es[1], second)

	_, ok = c.At(2)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
}

func TestDeadEnds(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateB, 1)
	link(t, c, StateC, StateEndX, 1)

	var got []string
	for _, e := range c.DeadEnds() {
		got = append(got, e.Value())
	}
	assert.Equal(t, []string{StateB}, got, "terminal states without successors are not dead ends")
}

func TestClose_Idempotent(t *testing.T) {
	tr := &tracker{}
	c := chain.New[string](tr.caps())
	es := insert(t, c, StateA, StateB, StateEndX)
	require.NoError(t, c.RecordTransition(es[0], es[1]))

	require.NoError(t, c.Close())
	assert.Equal(t, 3, tr.releases)

	require.NoError(t, c.Close(), "second Close is a no-op")
	assert.Equal(t, 3, tr.releases, "second Close must not release again")

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.EdgeCount())
	assert.Empty(t, es[0].Value(), "entries are invalid after Close")
	assert.Empty(t, es[0].Successors())

	_, err := c.GetOrInsert(StateC)
	assert.ErrorIs(t, err, chain.ErrClosed)
	_, ok := c.Find(StateA)
	assert.False(t, ok)
}

func TestNew_Panics(t *testing.T) {
	assert.Panics(t, func() { chain.New[string](nil) })
	assert.Panics(t, func() { chain.WithRand(nil) })
	assert.Panics(t, func() { chain.WithLogger(nil) })
	assert.Panics(t, func() { chain.WithMaxEntries(-1) })
	assert.Panics(t, func() { chain.WithMaxEdges(-1) })
}
