package handlers

import (
	"net/http"

	"quillpress/internal/blog"
	"quillpress/internal/middleware"
	"quillpress/internal/respond"
)

const msgCategoryNotFound = "Category not found"

// Categories handles the category endpoints.
type Categories struct {
	svc *blog.CategoryService
}

// NewCategories creates a Categories handler.
func NewCategories(svc *blog.CategoryService) *Categories {
	return &Categories{svc: svc}
}

// List returns all categories alphabetically.
func (c *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := c.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	n := len(cats)
	respond.JSON(w, http.StatusOK, respond.Envelope{Success: true, Count: &n, Data: cats})
}

// Get returns a single category.
func (c *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgCategoryNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	cat, err := c.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, cat)
}

// Create adds a category.
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in blog.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	cat, err := c.svc.Create(r.Context(), middleware.ActorFromCtx(r.Context()), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusCreated, cat)
}

// Update edits a category.
func (c *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgCategoryNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var in blog.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	cat, err := c.svc.Update(r.Context(), middleware.ActorFromCtx(r.Context()), id, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, cat)
}

// Delete removes a category.
func (c *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgCategoryNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := c.svc.Delete(r.Context(), middleware.ActorFromCtx(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, emptyData)
}
