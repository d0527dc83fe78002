// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer delivers outgoing mail over SMTP: verification codes for
// the admin login flow and messages submitted through the contact form.
// Like the remote content store, it is feature-detected: New returns nil
// when the SMTP credential set is incomplete, and callers degrade
// gracefully.
package mailer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wneessen/go-mail"

	"stagecraft/internal/config"
)

// Mailer sends application mail through one SMTP account.
type Mailer struct {
	client *mail.Client
	from   string
	to     string // contact-form recipient
}

// ContactMessage is one submission of the public contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	Source  string
}

// New creates a mailer from configuration. Returns (nil, nil) when SMTP
// is not fully configured so the app can start without mail delivery.
func New(cfg *config.Config) (*Mailer, error) {
	if !cfg.SMTPEnabled() {
		return nil, nil
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", cfg.SMTPPort, err)
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPass),
	}
	if port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Mailer{
		client: client,
		from:   cfg.ContactFrom,
		to:     cfg.ContactTo,
	}, nil
}

// SendVerificationCode mails a login code to an admin.
func (m *Mailer) SendVerificationCode(ctx context.Context, email, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject("Your admin verification code")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Your verification code is: %s\n\nIt expires in 10 minutes. If you did not request it, ignore this message.\n",
		code,
	))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// SendContactMessage forwards a contact-form submission to the site's
// contact address, with reply-to set to the sender.
func (m *Mailer) SendContactMessage(ctx context.Context, cm ContactMessage) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if err := msg.ReplyTo(cm.Email); err != nil {
		return fmt.Errorf("set reply-to: %w", err)
	}
	msg.Subject("[Contact] " + cm.Subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nSource: %s\n\n%s\n",
		cm.Name, cm.Email, cm.Phone, cm.Source, cm.Message,
	))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
