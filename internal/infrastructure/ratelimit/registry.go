// Package ratelimit keeps one token bucket per client key
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor is a single client's limiter with its last-seen time
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry is a thread-safe map of client keys to token buckets. Idle
// entries are evicted periodically.
type Registry struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewRegistry creates a registry allowing perMinute requests per key per
// minute, bursting up to perMinute. Entries idle for longer than idleTTL
// are dropped.
func NewRegistry(perMinute int, idleTTL time.Duration) *Registry {
	if perMinute <= 0 {
		perMinute = 60
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}

	r := &Registry{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		idleTTL:  idleTTL,
		done:     make(chan struct{}),
	}

	go r.cleanupIdle()

	return r
}

// Allow reports whether key may make a request now, consuming a token if so
func (r *Registry) Allow(key string) bool {
	r.mutex.Lock()
	v, exists := r.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = time.Now()
	r.mutex.Unlock()

	return v.limiter.Allow()
}

// Len returns the number of tracked keys
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.visitors)
}

// Close stops the cleanup goroutine
func (r *Registry) Close() {
	r.once.Do(func() { close(r.done) })
}

// cleanupIdle evicts idle visitors every idleTTL
func (r *Registry) cleanupIdle() {
	ticker := time.NewTicker(r.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.evictIdle(time.Now())
		}
	}
}

// evictIdle removes visitors not seen since now minus idleTTL
func (r *Registry) evictIdle(now time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.visitors, key)
		}
	}
}
