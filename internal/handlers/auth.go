package handlers

import (
	"net/http"

	"quillpress/internal/auth"
	"quillpress/internal/middleware"
	"quillpress/internal/respond"
)

// Auth handles registration, login and the current-user endpoint.
type Auth struct {
	svc *auth.Service
}

// NewAuth creates an Auth handler.
func NewAuth(svc *auth.Service) *Auth {
	return &Auth{svc: svc}
}

// Register creates an account and returns the user with a token.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	sess, err := a.svc.Register(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusCreated, sess)
}

// Login exchanges credentials for a token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in auth.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	sess, err := a.svc.Login(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, sess)
}

// Me returns the authenticated user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	u, err := a.svc.Me(r.Context(), actor.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, u)
}
