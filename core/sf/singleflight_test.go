package sf

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleflight_Do(t *testing.T) {
	s := New[int]()

	v, err := s.Do("k", func() (*int, error) {
		n := 42
		return &n, nil
	})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 42, *v)
}

func TestSingleflight_Error(t *testing.T) {
	s := New[int]()

	boom := errors.New("boom")
	v, err := s.Do("k", func() (*int, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, v)
}

func TestSingleflight_Dedup(t *testing.T) {
	s := New[int]()

	var calls atomic.Int32
	release := make(chan struct{})

	started := make(chan struct{})
	const workers = 8
	var wg sync.WaitGroup
	results := make([]*int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Do("same-key", func() (*int, error) {
				if calls.Add(1) == 1 {
					close(started)
				}
				<-release
				n := 7
				return &n, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let the goroutines pile onto the same key, then release the single
	// in-flight execution.
	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		require.NotNil(t, v)
		assert.Equal(t, 7, *v)
	}
}
