// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// ExcerptLength is the number of characters of content copied into a
// derived excerpt.
const ExcerptLength = 150

// Post is the aggregate root for a blog entry. Comments live inside the
// post and share its lifecycle.
type Post struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt"`
	AuthorID      uuid.UUID    `json:"-"`
	Author        *Author      `json:"author"`
	CategoryID    *uuid.UUID   `json:"-"`
	Category      *CategoryRef `json:"category"`
	Tags          []string     `json:"tags"`
	Status        PostStatus   `json:"status"`
	FeaturedImage string       `json:"featured_image"`
	Comments      []Comment    `json:"comments"`
	ViewCount     int64        `json:"view_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// FindComment returns the comment with the given ID, or nil.
func (p *Post) FindComment(id uuid.UUID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// Comment is a reader response embedded in a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"-"`
	Author    *Author   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// DeriveExcerpt builds the default excerpt for content: its first
// ExcerptLength characters followed by an ellipsis.
func DeriveExcerpt(content string) string {
	if utf8.RuneCountInString(content) <= ExcerptLength {
		return content + "..."
	}
	runes := []rune(content)
	return string(runes[:ExcerptLength]) + "..."
}
