// Package ratelimit provides per-client request limiting. It guards the
// credential endpoints, so the window is short and the defaults are strict.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request counts per client IP over a fixed window.
type Limiter struct {
	mu           sync.Mutex
	clients      map[string]*clientWindow
	denied       int64
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	maxPerWindow    int
	window          time.Duration
	cleanupInterval time.Duration
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

// Config holds rate limiter configuration
type Config struct {
	MaxPerWindow    int
	Window          time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig allows enough headroom for a legitimate client retrying a
// login while keeping credential stuffing slow.
func DefaultConfig() Config {
	return Config{
		MaxPerWindow:    30,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewLimiter creates a new rate limiter and starts its cleanup goroutine.
func NewLimiter(config Config) *Limiter {
	if config.MaxPerWindow <= 0 {
		config = DefaultConfig()
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &Limiter{
		clients:         make(map[string]*clientWindow),
		stopCleanup:     make(chan struct{}),
		maxPerWindow:    config.MaxPerWindow,
		window:          config.Window,
		cleanupInterval: config.CleanupInterval,
	}
	go rl.startCleanup()
	return rl
}

// Allow reports whether a request from the given IP is within the limit.
func (rl *Limiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists || now.Sub(client.windowStart) > rl.window {
		rl.clients[clientIP] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	client.requests++
	if client.requests > rl.maxPerWindow {
		rl.denied++
		return false
	}
	return true
}

func (rl *Limiter) startCleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries drops clients whose window expired a while ago.
func (rl *Limiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.cleanupInterval)
	for ip, client := range rl.clients {
		if client.windowStart.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// ActiveClients returns the number of currently tracked clients
func (rl *Limiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Metrics reports limiter state for monitoring.
type Metrics struct {
	Denied      int64
	ClientCount int64
}

// GetMetrics returns current rate limiting metrics
func (rl *Limiter) GetMetrics() Metrics {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return Metrics{
		Denied:      rl.denied,
		ClientCount: int64(len(rl.clients)),
	}
}

// Stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *Limiter) Stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
