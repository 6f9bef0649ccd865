package memory

import (
	"sync"
	"time"

	"ai-travelmate-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ContextRepository keeps live dialogue contexts in process memory so a
// turn never pays a database round trip mid-pipeline. Each session also
// gets its own lock: two concurrent messages on the same session are
// serialized, while different sessions proceed in parallel.
type ContextRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewContextRepository() *ContextRepository {
	// Default expiration of 1 hour, purging expired items every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ContextRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *ContextRepository) Save(sessionID string, ctx *store.Context) {
	r.cache.Set(sessionID, ctx, cache.DefaultExpiration)
}

func (r *ContextRepository) Get(sessionID string) (*store.Context, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Context), true
	}
	return nil, false
}

// Delete drops the session's context along with its lock entry, so a
// long-running process does not accumulate a mutex per finished session.
func (r *ContextRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
	r.mu.Lock()
	delete(r.locks, sessionID)
	r.mu.Unlock()
}

// Acquire blocks until the caller holds the session's lock.
func (r *ContextRepository) Acquire(sessionID string) {
	r.sessionLock(sessionID).Lock()
}

// Release gives the session's lock back. Must follow a matching Acquire.
func (r *ContextRepository) Release(sessionID string) {
	r.sessionLock(sessionID).Unlock()
}

func (r *ContextRepository) sessionLock(sessionID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[sessionID] = l
	}
	return l
}
