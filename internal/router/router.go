// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// QuillPress API. Reads are public; writes require a bearer token and
// category management additionally requires the admin role.
package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/apperr"
	"quillpress/internal/handlers"
	"quillpress/internal/middleware"
	"quillpress/internal/respond"
)

// Deps are the handler groups and settings the router wires together.
type Deps struct {
	Authenticator middleware.Authenticator
	Auth          *handlers.Auth
	Posts         *handlers.Posts
	Categories    *handlers.Categories
	Uploads       *handlers.Uploads

	// ClientURL is the browser origin allowed by CORS.
	ClientURL string
	// UploadDir, when set, is served under /uploads/.
	UploadDir string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(d.ClientURL))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	requireAuth := middleware.RequireAuth(d.Authenticator)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.With(requireAuth).Get("/me", d.Auth.Me)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", d.Posts.List)
			r.Get("/{id}", d.Posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", d.Posts.Create)
				r.Put("/{id}", d.Posts.Update)
				r.Delete("/{id}", d.Posts.Delete)
				r.Post("/{id}/comments", d.Posts.AddComment)
				r.Delete("/{id}/comments/{commentId}", d.Posts.DeleteComment)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Categories.List)
			r.Get("/{id}", d.Categories.Get)

			// Category management, admin only.
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Use(middleware.RequireAdmin)
				r.Post("/", d.Categories.Create)
				r.Put("/{id}", d.Categories.Update)
				r.Delete("/{id}", d.Categories.Delete)
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", d.Uploads.Create)
			r.Get("/", d.Uploads.List)
		})
	})

	if d.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(noListing{http.Dir(d.UploadDir)}))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, apperr.NotFound("Route not found"))
}

// noListing hides directory indexes from the upload file server.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
