// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog holds the post aggregate and the category registry. Services
// validate input, enforce the access policy and translate store results
// into apperr errors; persistence sits behind small repository interfaces.
package blog

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/apperr"
	"quillpress/internal/models"
	"quillpress/internal/policy"
	"quillpress/internal/slug"
	"quillpress/internal/store"
	"quillpress/internal/validate"
)

// Paging defaults for post listings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const msgPostNotFound = "Post not found"

// PostRepository is the persistence the post aggregate needs. Boolean
// results report whether the target row existed.
type PostRepository interface {
	List(f store.PostFilter, limit, offset int) ([]models.Post, int, error)
	FindByID(id uuid.UUID) (*models.Post, error)
	IncrementViews(id uuid.UUID) (bool, error)
	Create(p *models.Post) (*models.Post, error)
	Update(p *models.Post) (bool, error)
	Delete(id uuid.UUID) (bool, error)
	AppendComment(postID uuid.UUID, c models.Comment) (bool, error)
	RemoveComment(postID, commentID uuid.UUID) (bool, error)
}

// CategoryLookup resolves category references on post writes.
type CategoryLookup interface {
	FindByID(id uuid.UUID) (*models.Category, error)
}

// PostService implements the post aggregate. The ctx parameters are kept
// for request scoping only: PostRepository calls are synchronous and do
// not observe cancellation.
type PostService struct {
	posts      PostRepository
	categories CategoryLookup
	now        func() time.Time
}

// NewPostService creates a post service.
func NewPostService(posts PostRepository, categories CategoryLookup) *PostService {
	return &PostService{posts: posts, categories: categories, now: time.Now}
}

// ListQuery selects a page of posts. Category and Author are raw IDs from
// the query string; an ID that does not parse matches nothing.
type ListQuery struct {
	Search   string
	Category string
	Author   string
	Status   string
	Tag      string
	Page     int
	Limit    int
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []models.Post
	Count int
	Total int
	Page  int
	Pages int
}

// PostInput is the payload of post create and update requests. Title,
// content and category are always required; nil optional fields keep
// their current value on update.
type PostInput struct {
	Title         string   `json:"title" validate:"required,max=200" label:"Title"`
	Content       string   `json:"content" validate:"required" label:"Content"`
	Excerpt       *string  `json:"excerpt" validate:"omitnil,max=300" label:"Excerpt"`
	Category      string   `json:"category" validate:"required,uuid" label:"Category"`
	Tags          []string `json:"tags" label:"Tags"`
	Status        *string  `json:"status" validate:"omitnil,oneof=draft published" label:"Status"`
	FeaturedImage *string  `json:"featured_image" validate:"omitnil,max=500" label:"Featured image"`
}

// CommentInput is the payload of an add-comment request.
type CommentInput struct {
	Content string `json:"content" validate:"required,max=500" label:"Comment"`
}

// List returns one page of posts, newest first.
func (s *PostService) List(ctx context.Context, q ListQuery) (*PostPage, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	f := store.PostFilter{
		Search: strings.TrimSpace(q.Search),
		Status: q.Status,
		Tag:    q.Tag,
	}
	empty := &PostPage{Posts: []models.Post{}, Page: page}
	if q.Category != "" {
		id, err := uuid.Parse(q.Category)
		if err != nil {
			return empty, nil
		}
		f.CategoryID = &id
	}
	if q.Author != "" {
		id, err := uuid.Parse(q.Author)
		if err != nil {
			return empty, nil
		}
		f.AuthorID = &id
	}

	posts, total, err := s.posts.List(f, limit, pageOffset(page, limit))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &PostPage{
		Posts: posts,
		Count: len(posts),
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// pageOffset returns the row offset of page. A page too far out to
// address saturates at math.MaxInt, which selects no rows.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Get returns a post and counts the read.
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	ok, err := s.posts.IncrementViews(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.NotFound(msgPostNotFound)
	}
	return s.find(id)
}

// Create stores a new post owned by author.
func (s *PostService) Create(ctx context.Context, author policy.Actor, in PostInput) (*models.Post, error) {
	in = in.normalized()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	categoryID, err := s.checkCategory(in.Category)
	if err != nil {
		return nil, err
	}

	p := &models.Post{
		AuthorID:   author.ID,
		CategoryID: &categoryID,
		Status:     models.PostStatusPublished,
		Tags:       []string{},
	}
	in.apply(p)
	if p.Excerpt == "" {
		p.Excerpt = models.DeriveExcerpt(p.Content)
	}

	created, err := s.posts.Create(p)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return created, nil
}

// Update rewrites the editable fields of a post. Only the owner or an
// admin may update. Author, view count and comments never change here.
func (s *PostService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in PostInput) (*models.Post, error) {
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(actor, p.AuthorID) {
		return nil, apperr.Forbidden("Not authorized to update this post")
	}

	in = in.normalized()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	categoryID, err := s.checkCategory(in.Category)
	if err != nil {
		return nil, err
	}

	contentChanged := in.Content != p.Content
	p.CategoryID = &categoryID
	in.apply(p)
	if contentChanged && p.Excerpt == "" {
		p.Excerpt = models.DeriveExcerpt(p.Content)
	}

	ok, err := s.posts.Update(p)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.NotFound(msgPostNotFound)
	}
	return s.find(id)
}

// Delete removes a post with its comments. Only the owner or an admin may
// delete.
func (s *PostService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	p, err := s.find(id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(actor, p.AuthorID) {
		return apperr.Forbidden("Not authorized to delete this post")
	}
	ok, err := s.posts.Delete(id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound(msgPostNotFound)
	}
	return nil
}

// AddComment appends a comment by actor and returns the post's full
// comment list.
func (s *PostService) AddComment(ctx context.Context, actor policy.Actor, postID uuid.UUID, in CommentInput) ([]models.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:        uuid.New(),
		Content:   in.Content,
		AuthorID:  actor.ID,
		CreatedAt: s.now().UTC(),
	}
	ok, err := s.posts.AppendComment(postID, c)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.NotFound(msgPostNotFound)
	}

	p, err := s.find(postID)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// DeleteComment removes one comment. Only the comment's author or an
// admin may delete it.
func (s *PostService) DeleteComment(ctx context.Context, actor policy.Actor, postID, commentID uuid.UUID) error {
	p, err := s.find(postID)
	if err != nil {
		return err
	}
	c := p.FindComment(commentID)
	if c == nil {
		return apperr.NotFound("Comment not found")
	}
	if !policy.CanMutate(actor, c.AuthorID) {
		return apperr.Forbidden("Not authorized to delete this comment")
	}

	ok, err := s.posts.RemoveComment(postID, commentID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("Comment not found")
	}
	return nil
}

func (s *PostService) find(id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.FindByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound(msgPostNotFound)
	}
	return p, nil
}

// checkCategory resolves a validated category ID to an existing category.
func (s *PostService) checkCategory(raw string) (uuid.UUID, error) {
	id := uuid.MustParse(raw)
	c, err := s.categories.FindByID(id)
	if err != nil {
		return uuid.Nil, apperr.Internal(err)
	}
	if c == nil {
		return uuid.Nil, apperr.Validation("Category does not exist")
	}
	return id, nil
}

// normalized trims text fields and cleans the tag list.
func (in PostInput) normalized() PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = strings.TrimSpace(in.Category)
	if in.Excerpt != nil {
		e := strings.TrimSpace(*in.Excerpt)
		in.Excerpt = &e
	}
	if in.Tags != nil {
		in.Tags = cleanTags(in.Tags)
	}
	return in
}

// apply copies the input onto p. Optional fields are only copied when set.
func (in PostInput) apply(p *models.Post) {
	p.Title = in.Title
	p.Slug = slug.FromTitle(in.Title)
	p.Content = in.Content
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Status != nil {
		p.Status = models.PostStatus(*in.Status)
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = strings.TrimSpace(*in.FeaturedImage)
	}
}

// cleanTags trims tags and drops empties and duplicates, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
