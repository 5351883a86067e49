package handlers

import (
	"net/http"

	"quillpress/internal/blog"
	"quillpress/internal/middleware"
	"quillpress/internal/respond"
)

const msgPostNotFound = "Post not found"

// Posts handles the post and comment endpoints.
type Posts struct {
	svc *blog.PostService
}

// NewPosts creates a Posts handler.
func NewPosts(svc *blog.PostService) *Posts {
	return &Posts{svc: svc}
}

// List returns a filtered page of posts.
func (p *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := p.svc.List(r.Context(), blog.ListQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Author:   q.Get("author"),
		Status:   q.Get("status"),
		Tag:      q.Get("tag"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, respond.ListMeta{
		Count: page.Count,
		Total: page.Total,
		Page:  page.Page,
		Pages: page.Pages,
	}, page.Posts)
}

// Get returns one post and counts the view.
func (p *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgPostNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	post, err := p.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, post)
}

// Create publishes a post authored by the caller.
func (p *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	post, err := p.svc.Create(r.Context(), middleware.ActorFromCtx(r.Context()), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusCreated, post)
}

// Update edits a post owned by the caller (or any post, for admins).
func (p *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgPostNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	post, err := p.svc.Update(r.Context(), middleware.ActorFromCtx(r.Context()), id, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, post)
}

// Delete removes a post.
func (p *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgPostNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := p.svc.Delete(r.Context(), middleware.ActorFromCtx(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, emptyData)
}

// AddComment appends a comment and returns the post's comments.
func (p *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgPostNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var in blog.CommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	comments, err := p.svc.AddComment(r.Context(), middleware.ActorFromCtx(r.Context()), id, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusCreated, comments)
}

// DeleteComment removes one comment.
func (p *Posts) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id", msgPostNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId", "Comment not found")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := p.svc.DeleteComment(r.Context(), middleware.ActorFromCtx(r.Context()), postID, commentID); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, http.StatusOK, emptyData)
}
