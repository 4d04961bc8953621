package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryBackend_ExpiraPorTTL(t *testing.T) {
	clk := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	b := NewMemoryBackendWithClock(clk.Now)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", []byte(`1`), 10*time.Second))

	clk.Advance(9 * time.Second)
	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`1`), v)

	clk.Advance(time.Second)
	_, ok, err = b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "en now == expiresAt la entrada ya no se sirve")
	assert.Equal(t, 0, b.Len(), "la entrada vencida se elimina al leerla")
}

func TestMemoryBackend_UltimaEscrituraGana(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, b.Set(ctx, "k", []byte(`"a"`), time.Minute))
	require.NoError(t, b.Set(ctx, "k", []byte(`"b"`), time.Minute))

	v, ok, _ := b.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, `"b"`, string(v))
}

func TestMemoryBackend_DeleteYClear(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	_ = b.Set(ctx, "a", []byte(`1`), time.Minute)
	_ = b.Set(ctx, "b", []byte(`2`), time.Minute)

	require.NoError(t, b.Delete(ctx, "a"))
	require.NoError(t, b.Delete(ctx, "no-existe"))
	_, ok, _ := b.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, b.Clear(ctx))
	assert.Equal(t, 0, b.Len())
}

func TestMemoryBackend_Concurrente(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = b.Set(ctx, Key("k", i%5), []byte(`1`), time.Minute)
			_, _, _ = b.Get(ctx, Key("k", i%5))
			if i%10 == 0 {
				_ = b.Delete(ctx, Key("k", i%5))
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, b.Len(), 5)
}
