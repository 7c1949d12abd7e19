package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// ListTTL caps how long a cached list outlives an invalidation it missed,
// such as one issued by another API process sharing the same Redis.
const ListTTL = 5 * time.Minute

// ListCache is a per-user read-through cache of one JSON list. Every user has
// a generation that Invalidate bumps; a Fill computed under an older
// generation is dropped, so a slow reader cannot restore a list that a
// concurrent write already invalidated.
type ListCache[T any] struct {
	backend Backend
	key     string
	ttl     time.Duration

	mu   sync.Mutex
	gens map[string]uint64
}

func NewListCache[T any](backend Backend, key string, ttl time.Duration) *ListCache[T] {
	return &ListCache[T]{backend: backend, key: key, ttl: ttl, gens: make(map[string]uint64)}
}

// Get returns the cached list of userID and the generation a later Fill must
// present. ok is false on a miss or an unparsable value.
func (c *ListCache[T]) Get(ctx context.Context, userID string) (v T, gen uint64, ok bool, err error) {
	c.mu.Lock()
	gen = c.gens[userID]
	c.mu.Unlock()

	raw, err := ForUser(c.backend, userID).Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return v, gen, false, nil
	}
	if err != nil {
		return v, gen, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, gen, false, nil
	}
	return v, gen, true, nil
}

// Fill stores v unless userID was invalidated after gen was handed out. It
// reports whether the value was written.
func (c *ListCache[T]) Fill(ctx context.Context, userID string, gen uint64, v T) (bool, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] != gen {
		return false, nil
	}
	if err := c.backend.SetEx(ctx, ForUser(c.backend, userID).key(c.key), string(b), c.ttl); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate drops the cached list of userID and retires every generation
// handed out so far.
func (c *ListCache[T]) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
	return ForUser(c.backend, userID).Delete(ctx, c.key)
}
