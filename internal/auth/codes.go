// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	// CodeTTL is how long a verification code stays valid.
	CodeTTL = 10 * time.Minute

	// sweepInterval is how often expired codes are evicted.
	sweepInterval = 60 * time.Second
)

// VerifyResult is the outcome of a code check.
type VerifyResult int

const (
	CodeOK VerifyResult = iota
	CodeNotFound
	CodeExpired
	CodeMismatch
)

type codeEntry struct {
	code      string
	expiresAt time.Time
}

// CodeStore holds single-use verification codes keyed by normalized
// email. It is process-local and in-memory; a background sweep evicts
// expired entries.
type CodeStore struct {
	mu     sync.Mutex
	codes  map[string]codeEntry
	now    func() time.Time
	stopCh chan struct{}
}

// NewCodeStore creates a code store and starts its cleanup goroutine.
func NewCodeStore() *CodeStore {
	s := &CodeStore{
		codes:  make(map[string]codeEntry),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()

	return s
}

// Stop terminates the background cleanup goroutine.
func (s *CodeStore) Stop() {
	close(s.stopCh)
}

// Issue generates a 6-digit code for the email, replacing any previous
// one, and returns it for delivery.
func (s *CodeStore) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	s.mu.Lock()
	s.codes[NormalizeEmail(email)] = codeEntry{
		code:      code,
		expiresAt: s.now().Add(CodeTTL),
	}
	s.mu.Unlock()

	return code, nil
}

// Verify checks a submitted code. A matching code is consumed; codes are
// single-use. An expired code is deleted on sight.
func (s *CodeStore) Verify(email, code string) VerifyResult {
	key := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[key]
	if !ok {
		return CodeNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.codes, key)
		return CodeExpired
	}
	if entry.code != code {
		return CodeMismatch
	}

	delete(s.codes, key)
	return CodeOK
}

// sweep evicts expired codes.
func (s *CodeStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, key)
		}
	}
}
