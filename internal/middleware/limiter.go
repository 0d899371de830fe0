package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultLimiterIdle is how long a key may go unused before its bucket is
// eligible for pruning.
const defaultLimiterIdle = 10 * time.Minute

type keyedEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// KeyedLimiter keeps one token bucket per key in process memory. It backs
// rate limiting when Redis is unavailable. Buckets idle for longer than
// idle and already refilled are dropped, since a fresh bucket is identical.
type KeyedLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyedEntry
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewKeyedLimiter allows rps requests per second per key with the given burst.
func NewKeyedLimiter(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters:  make(map[string]*keyedEntry),
		limit:     rate.Limit(rps),
		burst:     burst,
		idle:      defaultLimiterIdle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow takes a token for key if one is available.
func (k *KeyedLimiter) Allow(key string) bool {
	ok, _ := k.Reserve(key)
	return ok
}

// Reserve takes a token for key. When none is available it reports how long
// until the next one and consumes nothing.
func (k *KeyedLimiter) Reserve(key string) (bool, time.Duration) {
	now := k.now()
	r := k.get(key, now).ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Len reports how many keys currently hold a bucket.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

func (k *KeyedLimiter) get(key string, now time.Time) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()
	if now.Sub(k.lastSweep) >= k.idle {
		k.sweep(now)
	}
	e, ok := k.limiters[key]
	if !ok {
		e = &keyedEntry{lim: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = e
	}
	e.seen = now
	return e.lim
}

// sweep drops idle, full buckets. Caller holds k.mu.
func (k *KeyedLimiter) sweep(now time.Time) {
	for key, e := range k.limiters {
		if now.Sub(e.seen) >= k.idle && e.lim.TokensAt(now) >= float64(k.burst) {
			delete(k.limiters, key)
		}
	}
	k.lastSweep = now
}
