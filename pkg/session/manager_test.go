package session_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/grunberg/pkg/adapters/memory"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/aretw0/grunberg/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(2 * time.Millisecond) // Simulate IO
	return s.Store.Get(ctx, key)
}

func (s SlowStore) Put(ctx context.Context, key string, data []byte) error {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Put(ctx, key, data)
}

func TestManager_Contract(t *testing.T) {
	ports.RunSaveStoreContract(t, session.NewManager(memory.NewStore()))
}

func TestManager_UpdateSerializesWrites(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	key := "race-test"

	var wg sync.WaitGroup
	const writers = 20
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Update(ctx, key, func(cur []byte) ([]byte, error) {
				n := 0
				if cur != nil {
					n, _ = strconv.Atoi(string(cur))
				}
				return []byte(strconv.Itoa(n + 1)), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	data, err := manager.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(writers), string(data), "no increment may be lost")
}

func TestManager_UpdateAbortsOnError(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, manager.Put(ctx, "k", []byte("keep")))

	boom := errors.New("boom")
	err := manager.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	data, err := manager.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), data)
}

type recordingLocker struct {
	mu       sync.Mutex
	locked   []string
	ttls     []time.Duration
	unlocked int
	fail     error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail != nil {
		return nil, l.fail
	}
	l.locked = append(l.locked, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked++
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(memory.NewStore(),
		session.WithLocker(locker),
		session.WithLockTTL(5*time.Second),
	)
	ctx := context.Background()

	require.NoError(t, manager.Put(ctx, "slot", []byte("x")))
	_, err := manager.Get(ctx, "slot")
	require.NoError(t, err)

	assert.Equal(t, []string{"slot", "slot"}, locker.locked)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, locker.ttls)
	assert.Equal(t, 2, locker.unlocked)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	locker := &recordingLocker{fail: errors.New("redis down")}
	store := memory.NewStore()
	manager := session.NewManager(store, session.WithLocker(locker))

	err := manager.Put(context.Background(), "slot", []byte("x"))
	assert.ErrorContains(t, err, "distributed lock")

	keys, _ := store.List(context.Background())
	assert.Empty(t, keys, "nothing is written without the lock")
}
