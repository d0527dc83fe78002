// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the admin authentication gate: an allow-list of
// admin emails, single-use emailed verification codes, and a signed
// session token carried in an httpOnly cookie.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie sent to the browser.
	CookieName = "admin_token"

	// SessionTTL is the lifetime of an admin session.
	SessionTTL = 7 * 24 * time.Hour
)

// Manager issues and verifies admin session tokens.
type Manager struct {
	secret  []byte
	allowed map[string]bool
	secure  bool
}

// NewManager creates a token manager. adminEmails is the allow-list;
// entries are normalized to lowercase. secureCookies marks the cookie
// Secure (HTTPS-only), off only in development.
func NewManager(secret string, adminEmails []string, secureCookies bool) *Manager {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		allowed[NormalizeEmail(e)] = true
	}
	return &Manager{
		secret:  []byte(secret),
		allowed: allowed,
		secure:  secureCookies,
	}
}

// NormalizeEmail lowercases and trims an email address. All code keyed by
// email uses the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAllowed reports whether the email is on the admin allow-list.
func (m *Manager) IsAllowed(email string) bool {
	return m.allowed[NormalizeEmail(email)]
}

// CreateToken signs a session token for the given admin email.
func (m *Manager) CreateToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": NormalizeEmail(email),
		"iat":   now.Unix(),
		"exp":   now.Add(SessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// VerifyToken validates a session token and returns the embedded email.
func (m *Manager) VerifyToken(token string) (string, bool) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", false
	}
	return email, true
}

// EmailFromRequest extracts and verifies the session cookie, returning
// the caller's email. The caller must additionally be on the allow-list.
func (m *Manager) EmailFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	email, ok := m.VerifyToken(cookie.Value)
	if !ok || !m.allowed[email] {
		return "", false
	}
	return email, true
}

// SetCookie attaches the session token to the response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL.Seconds()),
	})
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
