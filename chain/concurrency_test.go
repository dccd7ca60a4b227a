// Package chain_test verifies that Chain is safe under concurrent use.
package chain_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentGetOrInsert ensures racing inserts of the same states dedup.
func TestConcurrentGetOrInsert(t *testing.T) {
	c := newWordChain(t)
	const (
		workers = 8
		states  = 50
	)

	var wg sync.WaitGroup
	errs := make(chan error, workers*states)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < states; i++ {
				_, err := c.GetOrInsert(fmt.Sprintf("s%d", i))
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, states, c.Len())
}

// TestConcurrentRecordAndGenerate mixes population and walks.
func TestConcurrentRecordAndGenerate(t *testing.T) {
	c := newWordChain(t)
	link(t, c, StateA, StateB, 1)
	link(t, c, StateB, StateEndX, 1)
	a, _ := c.Find(StateA)
	b, _ := c.Find(StateB)

	const rounds = 100
	var wg sync.WaitGroup
	errs := make(chan error, 2*rounds)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			errs <- c.RecordTransition(a, b)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := c.Generate(nil, 10)
			errs <- err
		}
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, rounds+1, a.Total())
}
