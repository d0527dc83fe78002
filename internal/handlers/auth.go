// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"stagecraft/internal/auth"
	"stagecraft/internal/mailer"
	"stagecraft/internal/middleware"
)

// Rate limits for the login flow. Windows are fixed, keyed by normalized
// email.
const (
	sendCodeLimit   = 5
	verifyCodeLimit = 10
	authWindow      = 15 * time.Minute
)

// AuthHandler implements the passwordless admin login flow: request an
// emailed code, exchange the code for a session cookie.
type AuthHandler struct {
	manager *auth.Manager
	codes   *auth.CodeStore
	limiter *middleware.Limiter
	mail    *mailer.Mailer // nil when SMTP is unconfigured
}

// NewAuthHandler creates the auth flow handler. mail may be nil; codes are
// then logged instead of sent, which is only useful in development.
func NewAuthHandler(manager *auth.Manager, codes *auth.CodeStore, limiter *middleware.Limiter, mail *mailer.Mailer) *AuthHandler {
	return &AuthHandler{manager: manager, codes: codes, limiter: limiter, mail: mail}
}

// SendCode handles POST /api/admin/auth/send-code. The response is
// identical whether or not the email is on the allow-list, so the
// endpoint cannot be used to probe which addresses are admins.
func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}
	email := auth.NormalizeEmail(req.Email)

	res := h.limiter.Check("send-code:"+email, sendCodeLimit, authWindow)
	if !res.Allowed {
		respondError(w, http.StatusTooManyRequests, "Too many code requests. Try again later.")
		return
	}

	accepted := map[string]any{
		"success": true,
		"message": "If this email is registered, a verification code has been sent.",
	}

	if !h.manager.IsAllowed(email) {
		slog.Info("code requested for non-admin email", "email", email)
		respondJSON(w, http.StatusOK, accepted)
		return
	}

	code, err := h.codes.Issue(email)
	if err != nil {
		slog.Error("issue verification code", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	if h.mail == nil {
		slog.Warn("SMTP not configured, verification code not sent", "email", email, "code", code)
		respondJSON(w, http.StatusOK, accepted)
		return
	}

	if err := h.mail.SendVerificationCode(r.Context(), email, code); err != nil {
		slog.Error("send verification code", "email", email, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	respondJSON(w, http.StatusOK, accepted)
}

// VerifyCode handles POST /api/admin/auth/verify-code. A correct code
// yields a session cookie and clears the caller's rate-limit windows.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Email and code are required")
		return
	}
	email := auth.NormalizeEmail(req.Email)

	res := h.limiter.Check("verify-code:"+email, verifyCodeLimit, authWindow)
	if !res.Allowed {
		respondError(w, http.StatusTooManyRequests, "Too many attempts. Try again later.")
		return
	}

	switch result := h.codes.Verify(email, req.Code); result {
	case auth.CodeOK:
	case auth.CodeExpired:
		respondError(w, http.StatusUnauthorized, "Verification code has expired")
		return
	default:
		respondError(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	if !h.manager.IsAllowed(email) {
		respondError(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	token, err := h.manager.CreateToken(email)
	if err != nil {
		slog.Error("create session token", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.limiter.Reset("send-code:" + email)
	h.limiter.Reset("verify-code:" + email)
	h.manager.SetCookie(w, token)
	slog.Info("admin logged in", "email", email)

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"email":   email,
	})
}

// Check handles GET /api/admin/auth/check. It reports whether the request
// carries a valid admin session.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	email, ok := h.manager.EmailFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"authenticated": false,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"authenticated": true,
		"email":         email,
	})
}

// Logout handles POST /api/admin/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.manager.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
