package badge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	count int64
	err   error
	calls int
}

func (f *stubFetcher) UnreadCount(ctx context.Context) (int64, error) {
	f.calls++
	return f.count, f.err
}

func TestController_AlertsOnUnread(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{count: 5}
	c := NewController(fetcher, NewMemoryWatermarkStore(), time.Minute, nil)

	c.poll(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, StateAlerting, snap.State)
	assert.Equal(t, int64(5), snap.Count)
}

func TestController_IdleWhenNothingUnread(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{count: 0}
	c := NewController(fetcher, NewMemoryWatermarkStore(), time.Minute, nil)

	c.poll(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, int64(0), snap.Count)
}

func TestController_OpenClearsImmediately(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{count: 5}
	store := NewMemoryWatermarkStore()
	c := NewController(fetcher, store, time.Minute, nil)

	c.poll(context.Background())
	require.Equal(t, StateAlerting, c.Snapshot().State)

	c.Open()

	snap := c.Snapshot()
	assert.Equal(t, StateCleared, snap.State)
	assert.Equal(t, int64(0), snap.Count)

	viewed, err := store.LastViewed()
	require.NoError(t, err)
	assert.False(t, viewed.IsZero())

	// Once the server-side count drops after the viewed call, the next poll
	// settles on idle instead of re-alerting.
	fetcher.count = 0
	c.poll(context.Background())
	assert.Equal(t, StateIdle, c.Snapshot().State)
}

func TestController_FetchErrorDegradesToIdle(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{count: 5}
	c := NewController(fetcher, NewMemoryWatermarkStore(), time.Minute, nil)

	c.poll(context.Background())
	require.Equal(t, StateAlerting, c.Snapshot().State)

	fetcher.err = errors.New("service unavailable")
	c.poll(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, int64(0), snap.Count)
}

func TestController_WakeCoalesces(t *testing.T) {
	t.Parallel()

	c := NewController(&stubFetcher{}, NewMemoryWatermarkStore(), time.Minute, nil)

	// Filling the wake channel twice must not block.
	c.Wake()
	c.Wake()

	select {
	case <-c.wake:
	default:
		t.Fatal("expected a pending wake")
	}
	select {
	case <-c.wake:
		t.Fatal("wake requests were not coalesced")
	default:
	}
}

func TestController_RunPollsImmediately(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{count: 3}
	c := NewController(fetcher, NewMemoryWatermarkStore(), time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return c.Snapshot().State == StateAlerting
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, 1, fetcher.calls)
}

func TestFileWatermarkStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "viewed")
	store := NewFileWatermarkStore(path)

	viewed, err := store.LastViewed()
	require.NoError(t, err)
	assert.True(t, viewed.IsZero())

	now := time.Now()
	require.NoError(t, store.SetLastViewed(now))

	viewed, err = store.LastViewed()
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), viewed.UnixMilli())

	// An older write never rolls the watermark back.
	require.NoError(t, store.SetLastViewed(now.Add(-time.Hour)))
	viewed, err = store.LastViewed()
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), viewed.UnixMilli())

	// A reopened store picks the value up from disk.
	viewed, err = NewFileWatermarkStore(path).LastViewed()
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), viewed.UnixMilli())
}

func TestFileWatermarkStore_UnparseableFileReadsAsNever(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "viewed")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	viewed, err := NewFileWatermarkStore(path).LastViewed()
	require.NoError(t, err)
	assert.True(t, viewed.IsZero())
}
