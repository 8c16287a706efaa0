package pure_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/on-the-ground/purememo/pure"
)

type countingObserver struct {
	hits, misses, stores, evictions atomic.Int32
}

func (o *countingObserver) OnHit(string)   { o.hits.Add(1) }
func (o *countingObserver) OnMiss(string)  { o.misses.Add(1) }
func (o *countingObserver) OnStore(string) { o.stores.Add(1) }
func (o *countingObserver) OnEvict(string) { o.evictions.Add(1) }

type buffer struct {
	data []byte
}

func (b *buffer) Clone() *buffer {
	return &buffer{data: append([]byte(nil), b.data...)}
}

func TestNewBinding_Config(t *testing.T) {
	b, err := pure.NewBinding[int, int]("default")
	require.NoError(t, err)
	assert.Equal(t, pure.DefaultSize, b.Cap())
	assert.Equal(t, "default", b.Name())
	assert.NotEmpty(t, b.ID())

	_, err = pure.NewBinding[int, int]("zero", pure.WithSize(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pure.ErrConfig))
	var cfgErr *pure.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "zero", cfgErr.Name)
	assert.Contains(t, err.Error(), "zero")
}

func TestBinding_HitSkipsBody(t *testing.T) {
	b, err := pure.NewBinding[string, int]("len", pure.WithSize(4))
	require.NoError(t, err)

	calls := 0
	body := func(s string) func() int {
		return func() int {
			calls++
			return len(s)
		}
	}

	assert.Equal(t, 5, b.Call("hello", body("hello")))
	assert.Equal(t, 5, b.Call("hello", body("hello")))
	assert.Equal(t, 1, calls)
	assert.Equal(t, pure.Stats{Hits: 1, Misses: 1, Stores: 1}, b.Stats())
}

func TestBinding_RecursiveFibonacci(t *testing.T) {
	b, err := pure.NewBinding[int, int]("fib", pure.WithSize(16))
	require.NoError(t, err)

	computed := map[int]int{}
	var fib func(n int) int
	fib = func(n int) int {
		return b.Call(n, func() int {
			computed[n]++
			if n <= 1 {
				return n
			}
			return fib(n-1) + fib(n-2)
		})
	}

	assert.Equal(t, 0, fib(0))
	assert.Equal(t, 1, fib(1))
	assert.Equal(t, 55, fib(10))
	for n, count := range computed {
		assert.Equal(t, 1, count, "fib(%d) computed %d times", n, count)
	}
	assert.Len(t, computed, 11)
}

func TestBinding_LockNotHeldDuringBody(t *testing.T) {
	b, err := pure.NewBinding[int, int]("reentrant", pure.WithSize(4))
	require.NoError(t, err)

	done := make(chan int)
	go func() {
		done <- b.Call(1, func() int {
			// would deadlock if the lock were held around the body
			_, ok := b.Lookup(2)
			b.Store(2, 20)
			if ok {
				return -1
			}
			return 10
		})
	}()

	select {
	case v := <-done:
		assert.Equal(t, 10, v)
	case <-time.After(time.Second):
		t.Fatal("body ran while the binding lock was held")
	}
	assert.Equal(t, 2, b.Len())
}

func TestBinding_ConcurrentMissesConverge(t *testing.T) {
	b, err := pure.NewBinding[int, int]("square", pure.WithSize(8))
	require.NoError(t, err)

	var bodyRuns atomic.Int32
	release := make(chan struct{})
	const numGoroutines = 8

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	results := make([]int, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = b.Call(9, func() int {
				bodyRuns.Add(1)
				<-release
				return 81
			})
		}(i)
	}
	// every goroutine misses before any of them stores
	require.Eventually(t, func() bool {
		return bodyRuns.Load() == numGoroutines
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 81, r)
	}
	v, ok := b.Lookup(9)
	assert.True(t, ok)
	assert.Equal(t, 81, v)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, uint64(numGoroutines), b.Stats().Stores)
}

func TestBinding_DuplicatesClonableResults(t *testing.T) {
	b, err := pure.NewBinding[string, *buffer]("bytes", pure.WithSize(2))
	require.NoError(t, err)

	first := b.Call("k", func() *buffer { return &buffer{data: []byte("abc")} })
	first.data[0] = 'X'

	second := b.Call("k", func() *buffer { return nil })
	require.NotNil(t, second)
	assert.Equal(t, "abc", string(second.data))
	assert.NotSame(t, first, second)
}

func TestBinding_EvictionNotifiesObserverAndLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := &countingObserver{}
	b, err := pure.NewBinding[int, int]("tiny",
		pure.WithSize(1),
		pure.WithObserver(obs),
		pure.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)

	b.Call(1, func() int { return 1 })
	b.Call(1, func() int { return 1 })
	b.Call(2, func() int { return 2 })

	assert.Equal(t, int32(1), obs.hits.Load())
	assert.Equal(t, int32(2), obs.misses.Load())
	assert.Equal(t, int32(2), obs.stores.Load())
	assert.Equal(t, int32(1), obs.evictions.Load())

	assert.Equal(t, 1, logs.FilterMessage("created binding").Len())
	evicted := logs.FilterMessage("evicted least recently used entry").All()
	require.Len(t, evicted, 1)
	assert.Equal(t, "tiny", evicted[0].ContextMap()["binding"])
}

func TestBinding_PanicUnderLockPoisons(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b, err := pure.NewBinding[any, int]("untyped", pure.WithLogger(zap.New(core)))
	require.NoError(t, err)

	b.Store(1, 1)
	assert.False(t, b.Poisoned())

	// a slice as dynamic key panics while hashing inside the critical section
	assert.Panics(t, func() { b.Lookup([]int{1}) })
	assert.True(t, b.Poisoned())
	assert.Equal(t, 1, logs.FilterMessage("binding poisoned").Len())

	defer func() {
		r := recover()
		perr, ok := r.(*pure.PoisonError)
		require.True(t, ok, "expected *pure.PoisonError, got %T", r)
		assert.Equal(t, "untyped", perr.Binding)
		assert.ErrorIs(t, perr, pure.ErrPoisoned)
		assert.Contains(t, perr.Error(), "untyped")
	}()
	b.Lookup(1)
}

func BenchmarkBinding_Hit(b *testing.B) {
	binding, err := pure.NewBinding[int, int]("bench")
	require.NoError(b, err)
	binding.Store(1, 1)
	body := func() int { return 1 }

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			binding.Call(1, body)
		}
	})
}
