package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter tracks per-client request rates and daily data quotas.
type RateLimiter struct {
	mu sync.Mutex

	requestsPerMinute int
	maxRequestsPerDay int
	maxDataPerDay     int64

	clients map[string]*clientUsage
}

type clientUsage struct {
	requestsLastMinute int
	requestsToday      int
	dataToday          int64
	lastRequestTime    time.Time
	dayStartTime       time.Time
}

// NewRateLimiter creates a rate limiter. A zero limit disables that check.
func NewRateLimiter(requestsPerMinute, maxRequestsPerDay int, maxDataPerDay int64) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		maxRequestsPerDay: maxRequestsPerDay,
		maxDataPerDay:     maxDataPerDay,
		clients:           make(map[string]*clientUsage),
	}
}

// Check admits or rejects a request from the given client, updating usage
// counters on admission.
func (rl *RateLimiter) Check(clientID string, dataSize int64) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	usage, ok := rl.clients[clientID]
	if !ok {
		usage = &clientUsage{lastRequestTime: now, dayStartTime: now}
		rl.clients[clientID] = usage
	}

	if now.Day() != usage.dayStartTime.Day() || now.Month() != usage.dayStartTime.Month() {
		usage.requestsToday = 0
		usage.dataToday = 0
		usage.dayStartTime = now
	}
	if now.Sub(usage.lastRequestTime) >= time.Minute {
		usage.requestsLastMinute = 0
	}

	if rl.requestsPerMinute > 0 && usage.requestsLastMinute >= rl.requestsPerMinute {
		return &RateLimitError{
			Type:       "minute",
			Limit:      rl.requestsPerMinute,
			RetryAfter: time.Minute - now.Sub(usage.lastRequestTime),
		}
	}
	if rl.maxRequestsPerDay > 0 && usage.requestsToday >= rl.maxRequestsPerDay {
		return &QuotaExceededError{
			Type:  "requests",
			Limit: int64(rl.maxRequestsPerDay),
			Used:  int64(usage.requestsToday),
		}
	}
	if rl.maxDataPerDay > 0 && usage.dataToday+dataSize > rl.maxDataPerDay {
		return &QuotaExceededError{
			Type:  "data",
			Limit: rl.maxDataPerDay,
			Used:  usage.dataToday,
		}
	}

	usage.requestsLastMinute++
	usage.requestsToday++
	usage.dataToday += dataSize
	usage.lastRequestTime = now
	return nil
}

// RateLimitError reports a rate limit violation.
type RateLimitError struct {
	Type       string
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s (limit: %d, retry after: %v)", e.Type, e.Limit, e.RetryAfter)
}

// QuotaExceededError reports a quota violation.
type QuotaExceededError struct {
	Type  string
	Limit int64
	Used  int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s (used: %d, limit: %d)", e.Type, e.Used, e.Limit)
}
