// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires HTTP routes to handlers and applies middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stagecraft/internal/auth"
	"stagecraft/internal/handlers"
	"stagecraft/internal/middleware"
)

// Deps carries everything the route table needs.
type Deps struct {
	Public  *handlers.PublicHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Upload  *handlers.UploadHandler
	Contact *handlers.ContactHandler
	Manager *auth.Manager
}

// New builds the application router.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public content, consumed by the website frontend.
		r.Get("/projects", d.Public.Projects)
		r.Get("/projects/{id}", d.Public.ProjectByID)
		r.Get("/categories", d.Public.Categories)
		r.Get("/site-config", d.Public.SiteConfig)
		r.Post("/contact", d.Contact.Submit)

		r.Route("/admin", func(r chi.Router) {
			// Login flow, reachable without a session.
			r.Route("/auth", func(r chi.Router) {
				r.Post("/send-code", d.Auth.SendCode)
				r.Post("/verify-code", d.Auth.VerifyCode)
				r.Get("/check", d.Auth.Check)
				r.Post("/logout", d.Auth.Logout)
			})

			// Everything else requires a valid admin session.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(d.Manager))

				r.Post("/projects", d.Admin.CreateProject)
				r.Put("/projects/{id}", d.Admin.UpdateProject)
				r.Delete("/projects/{id}", d.Admin.DeleteProject)

				r.Put("/categories", d.Admin.UpdateCategories)

				r.Get("/site-config", d.Admin.GetSiteConfig)
				r.Put("/site-config", d.Admin.UpdateSiteConfig)

				r.Post("/upload", d.Upload.Upload)
				r.Get("/upload", d.Upload.List)
				r.Delete("/upload", d.Upload.Delete)
			})
		})
	})

	return r
}
