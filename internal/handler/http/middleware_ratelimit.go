// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the token bucket of a single client.
type RateLimiterConfig struct {
	// Rate is the sustained number of requests per second.
	Rate rate.Limit
	// Burst is the bucket size.
	Burst int
	// CleanupInterval is how often idle clients are forgotten. A client is
	// idle after two intervals without requests.
	CleanupInterval time.Duration
}

// PerMinute returns a config allowing perMinute requests per minute with the
// given burst.
func PerMinute(perMinute, burst int) RateLimiterConfig {
	if burst < 1 {
		burst = 1
	}
	return RateLimiterConfig{
		Rate:            rate.Limit(float64(perMinute) / 60.0),
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	config RateLimiterConfig

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts forgetting idle clients in
// the background until Stop is called.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		go rl.cleanupLoop()
	}

	return rl
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. onLimited, when not nil, receives the path of every rejected
// request.
func (rl *RateLimiter) Middleware(onLimited func(route string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddress(r)

			if !rl.limiter(client).Allow() {
				if onLimited != nil {
					onLimited(r.URL.Path)
				}
				logger.FromRequest(r).Warn().
					Str("func", "RateLimiter.Middleware").
					Str("client", client).
					Msg("rate limit exceeded")
				rl.writeLimited(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientCount returns the number of tracked clients.
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.config.Rate, rl.config.Burst)}
		rl.limiters[client] = cl
	}
	cl.lastAccess = time.Now()

	return cl.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.CleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for client, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, client)
		}
	}
}

func (rl *RateLimiter) writeLimited(w http.ResponseWriter) {
	retryAfter := 1
	if rl.config.Rate > 0 {
		retryAfter = max(int(math.Ceil(1.0/float64(rl.config.Rate))), 1)
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	utils.WriteJSON(w, models.FailResponse("too many requests from this IP, please try again later"), http.StatusTooManyRequests)
}

// clientAddress returns the host part of the remote address.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
