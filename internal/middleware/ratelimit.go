// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"sync"
	"time"
)

// limitEntry tracks request counts for one identifier within its window.
type limitEntry struct {
	count     int
	resetTime time.Time
}

// Result reports the outcome of a rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter is a fixed-window rate limiter keyed by arbitrary string
// identifiers (e.g. "send-code:user@example.com"). It is process-local
// and in-memory; a background sweep evicts expired windows.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*limitEntry
	now     func() time.Time
	stopCh  chan struct{}
}

// sweepInterval is how often expired windows are evicted.
const sweepInterval = 5 * time.Minute

// NewLimiter creates a limiter and starts its cleanup goroutine.
func NewLimiter() *Limiter {
	l := &Limiter{
		entries: make(map[string]*limitEntry),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stopCh:
				return
			}
		}
	}()

	return l
}

// Stop terminates the background cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stopCh)
}

// Check records an attempt for the identifier and reports whether it is
// within maxAttempts per window.
func (l *Limiter) Check(identifier string, maxAttempts int, window time.Duration) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok || now.After(entry.resetTime) {
		entry = &limitEntry{count: 1, resetTime: now.Add(window)}
		l.entries[identifier] = entry
		return Result{Allowed: true, Remaining: maxAttempts - 1, ResetTime: entry.resetTime}
	}

	if entry.count >= maxAttempts {
		return Result{Allowed: false, Remaining: 0, ResetTime: entry.resetTime}
	}

	entry.count++
	return Result{Allowed: true, Remaining: maxAttempts - entry.count, ResetTime: entry.resetTime}
}

// Reset clears the identifier's window, e.g. after a successful login.
func (l *Limiter) Reset(identifier string) {
	l.mu.Lock()
	delete(l.entries, identifier)
	l.mu.Unlock()
}

// sweep evicts entries whose window has passed.
func (l *Limiter) sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, entry := range l.entries {
		if now.After(entry.resetTime) {
			delete(l.entries, key)
		}
	}
}
