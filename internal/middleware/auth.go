// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"stagecraft/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// adminEmailKey is the context key for the authenticated admin's email.
const adminEmailKey contextKey = "admin_email"

// RequireAdmin rejects requests that do not carry a valid admin session
// token with 401. The admin's email is stored in the request context for
// downstream handlers.
func RequireAdmin(m *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := m.EmailFromRequest(r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":"Unauthorized"}`))
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmailFromCtx returns the authenticated admin's email, or "" when
// the request did not pass RequireAdmin.
func AdminEmailFromCtx(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}
