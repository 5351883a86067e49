// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"quillpress/internal/apperr"
	"quillpress/internal/models"
	"quillpress/internal/policy"
	"quillpress/internal/respond"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// UserKey is the context key for the authenticated user.
const UserKey contextKey = "user"

const msgNotAuthorized = "Not authorized to access this route"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth rejects requests without a valid bearer token with 401 and
// stores the authenticated user in the request context. Downstream
// handlers read it via UserFromCtx or ActorFromCtx.
func RequireAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond.Error(w, r, apperr.Unauthorized(msgNotAuthorized))
				return
			}

			user, err := a.Authenticate(r.Context(), token)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns 403 for non-admin users.
// Must be applied after RequireAuth in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromCtx(r.Context())
		if user == nil {
			respond.Error(w, r, apperr.Unauthorized(msgNotAuthorized))
			return
		}
		if !user.IsAdmin() {
			respond.Error(w, r, apperr.Forbidden(
				fmt.Sprintf("User role %s is not authorized to access this route", user.Role)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromCtx extracts the authenticated user from the request context.
// Returns nil if the request is unauthenticated.
func UserFromCtx(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

// ActorFromCtx returns the policy identity of the authenticated user, or
// the zero Actor, which no policy check accepts.
func ActorFromCtx(ctx context.Context) policy.Actor {
	user := UserFromCtx(ctx)
	if user == nil {
		return policy.Actor{}
	}
	return policy.ActorFor(user)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
