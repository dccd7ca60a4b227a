package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/markov/chain"
)

func TestGenerate_StopsOnTerminal(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateEndX, 1)
	a, _ := c.Find(StateA)

	walk, err := c.Generate(a, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{StateA, StateEndX}, chain.Values(walk))
}

// TestGenerate_Bounds walks a cyclic chain and checks length and stop rule.
func TestGenerate_Bounds(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateB, 3)
	link(t, c, StateB, StateA, 3)
	link(t, c, StateB, StateEndX, 1)
	link(t, c, StateA, StateC, 1)
	link(t, c, StateC, StateEndY, 1)

	for n := 1; n <= 12; n++ {
		for run := 0; run < 50; run++ {
			walk, err := c.Generate(nil, n)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(walk), 1)
			require.LessOrEqual(t, len(walk), n)

			assert.False(t, walk[0].Terminal(), "PickStart never starts on a terminal")
			for i := 1; i < len(walk)-1; i++ {
				assert.False(t, walk[i].Terminal(), "terminal %q in the middle of walk at %d", walk[i].Value(), i)
			}
			last := walk[len(walk)-1]
			if len(walk) < n {
				assert.True(t, last.Terminal(), "a short walk must end on a terminal")
			}
		}
	}
}

func TestGenerate_LengthOne(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateB, 1)
	a, _ := c.Find(StateA)

	walk, err := c.Generate(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{StateA}, chain.Values(walk))
}

func TestGenerate_TerminalStartStillSteps(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateEndX, StateA, 1)
	link(t, c, StateA, StateEndY, 1)
	x, _ := c.Find(StateEndX)

	walk, err := c.Generate(x, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{StateEndX, StateA, StateEndY}, chain.Values(walk))
}

func TestGenerate_DeadEnd(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateB, 1)
	a, _ := c.Find(StateA)

	walk, err := c.Generate(a, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{StateA, StateB}, chain.Values(walk))
}

func TestGenerate_FullLength(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateA, 1)
	a, _ := c.Find(StateA)

	walk, err := c.Generate(a, 7)
	require.NoError(t, err)
	assert.Len(t, walk, 7)
}

func TestWalk_Errors(t *testing.T) {
	c := newWordChain(t)
	other := newWordChain(t)
	foreign := insert(t, other, StateA)[0]

	_, err := c.Walk(nil, 0)
	assert.ErrorIs(t, err, chain.ErrBadLength)

	_, err = c.Walk(nil, 3)
	assert.ErrorIs(t, err, chain.ErrEmptyChain)

	_, err = c.Walk(foreign, 3)
	assert.ErrorIs(t, err, chain.ErrForeignEntry)

	insert(t, c, StateEndX)
	_, err = c.Generate(nil, 3)
	assert.ErrorIs(t, err, chain.ErrNoStartState)

	require.NoError(t, c.Close())
	_, err = c.Walk(nil, 3)
	assert.ErrorIs(t, err, chain.ErrClosed)
}

func TestWalk_Lazy(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateA, 1)
	a, _ := c.Find(StateA)

	seq, err := c.Walk(a, 1000)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestWalk_StopsAfterClose(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateA, 1)
	a, _ := c.Find(StateA)

	seq, err := c.Walk(a, 10)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		require.NoError(t, c.Close())
	}
	assert.Equal(t, 1, n, "no steps are drawn once the chain is closed")
}

func TestFormat(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateB, 1)
	link(t, c, StateB, StateEndX, 1)
	a, _ := c.Find(StateA)

	walk, err := c.Generate(a, 10)
	require.NoError(t, err)
	assert.Equal(t, "a b x.", c.Format(walk, " "))
	assert.Equal(t, "b", walk[1].String())
}
