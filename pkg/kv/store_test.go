package kv

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetDelete(t *testing.T) {
	s := New[string, []string]()

	s.Set("v1", []string{"fr", "de"})
	val, ok := s.Get("v1")
	assert.True(t, ok)
	assert.Equal(t, []string{"fr", "de"}, val)

	_, ok = s.Get("v2")
	assert.False(t, ok)

	s.Delete("v1")
	_, ok = s.Get("v1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_GetOrLoad(t *testing.T) {
	s := New[string, int]()
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		val, err := s.GetOrLoad("answer", load)
		require.NoError(t, err)
		assert.Equal(t, 42, val)
	}
	assert.Equal(t, 1, calls)
}

func TestStore_GetOrLoadError(t *testing.T) {
	s := New[string, int]()
	boom := errors.New("boom")

	_, err := s.GetOrLoad("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len(), "failed loads are not stored")

	val, err := s.GetOrLoad("k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, val)
}

func TestStore_Clear(t *testing.T) {
	s := New[int, string]()
	s.Set(1, "a")
	s.Set(2, "b")
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = s.GetOrLoad(n%10, func() (int, error) { return n % 10, nil })
			s.Get(n % 10)
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 10, s.Len())
}
