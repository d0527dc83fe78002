// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceUnavailable means every source in the fallback chain failed.
// It is always surfaced to the caller; stale or partial data is never
// returned in its place.
var ErrSourceUnavailable = errors.New("content: data unavailable from all sources")

// Attempt records one failed load attempt for diagnostics.
type Attempt struct {
	Source string // "api", "raw", "local"
	Err    error
}

// SourceError aggregates the per-source failures of one exhausted fallback
// chain. The per-attempt detail is for logs, not end users.
type SourceError struct {
	Attempts []Attempt
}

func (e *SourceError) Error() string {
	var b strings.Builder
	b.WriteString(ErrSourceUnavailable.Error())
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Source, a.Err)
	}
	return b.String()
}

// Unwrap lets errors.Is(err, ErrSourceUnavailable) match.
func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}
