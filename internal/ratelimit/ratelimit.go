// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
    "net"
    "net/http"
    "strings"
    "sync"
    "time"
)

// Config holds rate limiting configuration
type Config struct {
    WindowSize    time.Duration // Time window for rate limiting
    MaxAttempts   int           // Maximum attempts per window
    CleanupPeriod time.Duration // How often to clean up old entries
}

// DefaultChatConfig bounds how often one client can submit turns. Each turn
// costs a model call, so the window is short and the ceiling generous.
func DefaultChatConfig() *Config {
    return &Config{
        WindowSize:    time.Minute,
        MaxAttempts:   20,
        CleanupPeriod: 10 * time.Minute,
    }
}

// attemptRecord tracks attempts for an identifier
type attemptRecord struct {
    Count     int
    FirstSeen time.Time
}

// RateLimitInfo contains information about rate limit status
type RateLimitInfo struct {
    Allowed    bool
    Remaining  int
    ResetTime  time.Time
    RetryAfter time.Duration
}

// MemoryRateLimiter implements in-memory fixed-window rate limiting.
type MemoryRateLimiter struct {
    config   *Config
    attempts map[string]*attemptRecord
    mu       sync.Mutex
    stopCh   chan struct{}
}

// NewMemoryRateLimiter creates a new in-memory rate limiter
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
    limiter := &MemoryRateLimiter{
        config:   config,
        attempts: make(map[string]*attemptRecord),
        stopCh:   make(chan struct{}),
    }
    go limiter.cleanupLoop()
    return limiter
}

// Allow records one attempt for identifier and reports whether it fits in the
// current window.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *RateLimitInfo) {
    rl.mu.Lock()
    defer rl.mu.Unlock()

    now := time.Now()
    record, exists := rl.attempts[identifier]

    if !exists || now.Sub(record.FirstSeen) > rl.config.WindowSize {
        rl.attempts[identifier] = &attemptRecord{Count: 1, FirstSeen: now}
        return true, &RateLimitInfo{
            Allowed:   true,
            Remaining: rl.config.MaxAttempts - 1,
            ResetTime: now.Add(rl.config.WindowSize),
        }
    }

    record.Count++
    resetTime := record.FirstSeen.Add(rl.config.WindowSize)

    if record.Count > rl.config.MaxAttempts {
        return false, &RateLimitInfo{
            Allowed:    false,
            Remaining:  0,
            ResetTime:  resetTime,
            RetryAfter: time.Until(resetTime),
        }
    }

    return true, &RateLimitInfo{
        Allowed:   true,
        Remaining: rl.config.MaxAttempts - record.Count,
        ResetTime: resetTime,
    }
}

// cleanupLoop periodically removes expired records
func (rl *MemoryRateLimiter) cleanupLoop() {
    ticker := time.NewTicker(rl.config.CleanupPeriod)
    defer ticker.Stop()

    for {
        select {
        case <-ticker.C:
            rl.cleanup()
        case <-rl.stopCh:
            return
        }
    }
}

func (rl *MemoryRateLimiter) cleanup() {
    rl.mu.Lock()
    defer rl.mu.Unlock()

    now := time.Now()
    for identifier, record := range rl.attempts {
        if now.Sub(record.FirstSeen) > rl.config.WindowSize {
            delete(rl.attempts, identifier)
        }
    }
}

// Close stops the cleanup goroutine
func (rl *MemoryRateLimiter) Close() {
    close(rl.stopCh)
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
    forwarded := r.Header.Get("X-Forwarded-For")
    if forwarded != "" {
        ips := strings.Split(forwarded, ",")
        if ip := strings.TrimSpace(ips[0]); ip != "" {
            return ip
        }
    }

    realIP := r.Header.Get("X-Real-IP")
    if realIP != "" {
        return realIP
    }

    ip, _, err := net.SplitHostPort(r.RemoteAddr)
    if err != nil {
        return r.RemoteAddr
    }
    return ip
}
