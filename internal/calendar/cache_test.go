package calendar

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingLoader counts Load calls and can be slowed down to widen the
// window for concurrent callers.
type countingLoader struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (l *countingLoader) Load(name string) (*Calendar, error) {
	l.calls.Add(1)
	time.Sleep(l.delay)
	if l.err != nil {
		return nil, l.err
	}
	return New(Config{Name: name})
}

func TestCache_ReturnsSameInstance(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, zap.NewNop())

	first, err := cache.Get("bacs")
	require.NoError(t, err)
	second, err := cache.Get("bacs")
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, int32(1), loader.calls.Load())
	require.Equal(t, 1, cache.Len())

	other, err := cache.Get("target")
	require.NoError(t, err)
	require.NotSame(t, first, other)
	require.Equal(t, int32(2), loader.calls.Load())
}

func TestCache_ConcurrentLoadsOnce(t *testing.T) {
	loader := &countingLoader{delay: 20 * time.Millisecond}
	cache := NewCache(loader, nil)

	const callers = 32
	results := make([]*Calendar, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cal, err := cache.Get("weekdays")
			if err == nil {
				results[i] = cal
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), loader.calls.Load())
	for i := range results {
		require.NotNil(t, results[i])
		require.Same(t, results[0], results[i])
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	loader := &countingLoader{err: errors.New("boom")}
	cache := NewCache(loader, zap.NewNop())

	_, err := cache.Get("bacs")
	require.Error(t, err)
	require.Equal(t, 0, cache.Len())

	loader.err = nil
	cal, err := cache.Get("bacs")
	require.NoError(t, err)
	require.Equal(t, "bacs", cal.Name())
	require.Equal(t, int32(2), loader.calls.Load())
}

func TestCache_Purge(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, zap.NewNop())

	first, err := cache.Get("bacs")
	require.NoError(t, err)

	cache.Purge()
	require.Equal(t, 0, cache.Len())

	second, err := cache.Get("bacs")
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestCache_WithLoader(t *testing.T) {
	cache := NewCache(NewLoader(zap.NewNop(), NewBuiltinSource()), zap.NewNop())

	cal, err := cache.Get("weekdays")
	require.NoError(t, err)
	require.True(t, cal.IsBusinessDay(NewDate(2014, 6, 2)))

	_, err = cache.Get("missing")
	require.ErrorIs(t, err, ErrCalendarNotFound)
}
