package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Actions with their own buckets.
const (
	ActionSendMessage = "send_message"
	ActionPlaceBid    = "place_bid"
	ActionTyping      = "typing"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Policy struct {
	PerMinute int
	Burst     int
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	mutex    sync.Mutex
	buckets  map[string]*bucket
	policies map[string]Policy
	fallback Policy
	idle     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter limits chat messages to messagesPerMinute with the given
// burst; other actions use built-in policies.
func NewRateLimiter(messagesPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		policies: map[string]Policy{
			ActionSendMessage: {PerMinute: messagesPerMinute, Burst: burst},
			ActionPlaceBid:    {PerMinute: 6, Burst: 3},
			ActionTyping:      {PerMinute: 30, Burst: 30},
		},
		fallback: Policy{PerMinute: 20, Burst: 20},
		idle:     time.Hour,
		stopCh:   make(chan struct{}),
	}
}

func limitFor(p Policy) rate.Limit {
	if p.PerMinute <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(p.PerMinute))
}

func (rl *RateLimiter) get(userID, action string) *rate.Limiter {
	key := userID + ":" + action

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = time.Now()
		return b.limiter
	}

	p, ok := rl.policies[action]
	if !ok {
		p = rl.fallback
	}
	burst := p.Burst
	if burst <= 0 {
		burst = 1
	}

	b := &bucket{limiter: rate.NewLimiter(limitFor(p), burst), lastSeen: time.Now()}
	rl.buckets[key] = b
	return b.limiter
}

// Allow consumes a token if one is available. Otherwise it reports how long
// until the next token without consuming anything.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	limiter := rl.get(userID, action)

	now := time.Now()
	r := limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// Cleanup drops buckets that have been idle for longer than the idle window.
func (rl *RateLimiter) Cleanup() {
	cutoff := time.Now().Add(-rl.idle)

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}
