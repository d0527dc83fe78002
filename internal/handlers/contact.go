// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"stagecraft/internal/auth"
	"stagecraft/internal/mailer"
	"stagecraft/internal/middleware"
)

// Contact form rate limit, keyed by sender email.
const (
	contactLimit  = 10
	contactWindow = 15 * time.Minute
)

// ContactHandler accepts public contact form submissions and forwards
// them by mail.
type ContactHandler struct {
	limiter *middleware.Limiter
	mail    *mailer.Mailer // nil when SMTP is unconfigured
}

// NewContactHandler creates the contact form handler.
func NewContactHandler(limiter *middleware.Limiter, mail *mailer.Mailer) *ContactHandler {
	return &ContactHandler{limiter: limiter, mail: mail}
}

// Submit handles POST /api/contact. Validation reports every problem at
// once, like the admin validators do.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
		Source  string `json:"source"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "Email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, "Email address is invalid")
	}
	if strings.TrimSpace(req.Subject) == "" {
		errs = append(errs, "Subject is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		errs = append(errs, "Message is required")
	}
	if len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}

	email := auth.NormalizeEmail(req.Email)
	res := h.limiter.Check("contact:"+email, contactLimit, contactWindow)
	if !res.Allowed {
		respondError(w, http.StatusTooManyRequests, "Too many messages. Try again later.")
		return
	}

	if h.mail == nil {
		slog.Warn("contact message dropped, SMTP not configured", "from", email)
		respondError(w, http.StatusServiceUnavailable, "Message delivery is currently unavailable")
		return
	}

	err := h.mail.SendContactMessage(r.Context(), mailer.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   email,
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Source:  strings.TrimSpace(req.Source),
	})
	if err != nil {
		slog.Error("send contact message", "from", email, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	slog.Info("contact message sent", "from", email)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent successfully",
	})
}
