// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	"quillpress/internal/apperr"
	"quillpress/internal/models"
)

func (f *fixture) input(title string) PostInput {
	return PostInput{Title: title, Content: "Body of " + title, Category: f.category.ID.String()}
}

func (f *fixture) mustCreate(t *testing.T, in PostInput) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), f.owner, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return p
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Hello, World! 2025"))

	if p.Slug != "hello-world-2025" {
		t.Errorf("slug = %q, want hello-world-2025", p.Slug)
	}
	if p.Excerpt != "Body of Hello, World! 2025..." {
		t.Errorf("excerpt = %q", p.Excerpt)
	}
	if p.Status != models.PostStatusPublished {
		t.Errorf("status = %q, want published", p.Status)
	}
	if p.Author == nil || p.Author.ID != f.owner.ID || p.Author.Name != "Owner" {
		t.Errorf("author = %+v", p.Author)
	}
	if p.Category == nil || p.Category.Slug != "technology" {
		t.Errorf("category = %+v", p.Category)
	}
	if p.ViewCount != 0 || len(p.Comments) != 0 {
		t.Errorf("new post has views %d and %d comments", p.ViewCount, len(p.Comments))
	}
}

func TestCreatePostKeepsExplicitFields(t *testing.T) {
	f := newFixture(t)
	in := f.input("Draft")
	in.Excerpt = ptr("  Short  ")
	in.Status = ptr("draft")
	in.Tags = []string{" go ", "", "go", "sql"}
	in.FeaturedImage = ptr("/uploads/image-1-2.png")

	p := f.mustCreate(t, in)
	if p.Excerpt != "Short" {
		t.Errorf("excerpt = %q, want Short", p.Excerpt)
	}
	if p.Status != models.PostStatusDraft {
		t.Errorf("status = %q, want draft", p.Status)
	}
	if strings.Join(p.Tags, ",") != "go,sql" {
		t.Errorf("tags = %v, want [go sql]", p.Tags)
	}
	if p.FeaturedImage != "/uploads/image-1-2.png" {
		t.Errorf("featured image = %q", p.FeaturedImage)
	}
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	valid := f.input("Valid")

	tests := []struct {
		name   string
		mutate func(*PostInput)
		detail string
	}{
		{"missing title", func(in *PostInput) { in.Title = "   " }, "Title is required"},
		{"long title", func(in *PostInput) { in.Title = strings.Repeat("t", 201) }, "Title cannot exceed 200 characters"},
		{"missing content", func(in *PostInput) { in.Content = "" }, "Content is required"},
		{"missing category", func(in *PostInput) { in.Category = "" }, "Category is required"},
		{"malformed category", func(in *PostInput) { in.Category = "not-an-id" }, "Invalid category ID"},
		{"unknown category", func(in *PostInput) { in.Category = uuid.NewString() }, "Category does not exist"},
		{"long excerpt", func(in *PostInput) { in.Excerpt = ptr(strings.Repeat("e", 301)) }, "Excerpt cannot exceed 300 characters"},
		{"bad status", func(in *PostInput) { in.Status = ptr("archived") }, "Status must be one of: draft, published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := f.posts.Create(context.Background(), f.owner, in)
			wantDetail(t, err, tt.detail)
		})
	}
}

func TestGetPostCountsViews(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Counted"))
	ctx := context.Background()

	got, err := f.posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("after first get: view count = %d, want 1", got.ViewCount)
	}

	for i := 0; i < 4; i++ {
		got, err = f.posts.Get(ctx, p.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
	if got.ViewCount != 5 {
		t.Errorf("after five gets: view count = %d, want 5", got.ViewCount)
	}

	_, err = f.posts.Get(ctx, uuid.New())
	wantKind(t, err, apperr.KindNotFound)
}

func TestListPostsPaging(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 20; i++ {
		f.mustCreate(t, f.input(fmt.Sprintf("Post %02d", i)))
	}
	ctx := context.Background()

	page, err := f.posts.List(ctx, ListQuery{Page: 3, Limit: 9})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pages != 3 || page.Total != 20 || page.Count != 2 || len(page.Posts) != 2 {
		t.Errorf("page 3 = {pages %d, total %d, count %d}, want {3, 20, 2}", page.Pages, page.Total, page.Count)
	}

	first, err := f.posts.List(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if first.Page != DefaultPage || first.Count != DefaultLimit || first.Pages != 2 {
		t.Errorf("defaults = {page %d, count %d, pages %d}", first.Page, first.Count, first.Pages)
	}
	if first.Posts[0].Title != "Post 19" {
		t.Errorf("newest first: got %q", first.Posts[0].Title)
	}

	far, err := f.posts.List(ctx, ListQuery{Page: math.MaxInt / 2, Limit: 10})
	if err != nil {
		t.Fatalf("List far page: %v", err)
	}
	if len(far.Posts) != 0 || far.Count != 0 || far.Total != 20 || far.Pages != 2 {
		t.Errorf("far page = {count %d, total %d, pages %d}, want {0, 20, 2}", far.Count, far.Total, far.Pages)
	}

	capped, err := f.posts.List(ctx, ListQuery{Limit: 1000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if capped.Count != 20 || capped.Pages != 1 {
		t.Errorf("capped limit = {count %d, pages %d}", capped.Count, capped.Pages)
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{3, 9, 18},
		{math.MaxInt, 10, math.MaxInt},
		{math.MaxInt/10 + 1, 10, (math.MaxInt / 10) * 10},
		{math.MaxInt/10 + 2, 10, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d limit %d", tt.page, tt.limit), func(t *testing.T) {
			got := pageOffset(tt.page, tt.limit)
			if got != tt.want {
				t.Errorf("pageOffset = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Error("offset must never be negative")
			}
		})
	}
}

func TestListPostsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("Go Generics")
	in.Tags = []string{"go"}
	f.mustCreate(t, in)
	draft := f.input("Secret Draft")
	draft.Status = ptr("draft")
	f.mustCreate(t, draft)
	if _, err := f.posts.Create(ctx, f.other, f.input("Someone Else")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name  string
		query ListQuery
		want  int
	}{
		{"all", ListQuery{}, 3},
		{"search title", ListQuery{Search: "generics"}, 1},
		{"search content", ListQuery{Search: "BODY OF"}, 3},
		{"status", ListQuery{Status: "draft"}, 1},
		{"tag", ListQuery{Tag: "go"}, 1},
		{"author", ListQuery{Author: f.other.ID.String()}, 1},
		{"category", ListQuery{Category: f.category.ID.String()}, 3},
		{"malformed author", ListQuery{Author: "nope"}, 0},
		{"malformed category", ListQuery{Category: "nope"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.posts.List(ctx, tt.query)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if page.Total != tt.want || len(page.Posts) != tt.want {
				t.Errorf("got total %d (%d posts), want %d", page.Total, len(page.Posts), tt.want)
			}
		})
	}
}

func TestUpdatePostPolicy(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Original"))
	ctx := context.Background()

	_, err := f.posts.Update(ctx, f.other, p.ID, f.input("Hijacked"))
	wantKind(t, err, apperr.KindForbidden)

	got, err := f.posts.Update(ctx, f.admin, p.ID, f.input("By Admin"))
	if err != nil {
		t.Fatalf("admin Update: %v", err)
	}
	if got.Title != "By Admin" {
		t.Errorf("title = %q", got.Title)
	}

	_, err = f.posts.Update(ctx, f.owner, uuid.New(), f.input("Missing"))
	wantKind(t, err, apperr.KindNotFound)
}

func TestUpdatePostKeepsAuthorAndViews(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Before Edit"))
	ctx := context.Background()
	f.posts.Get(ctx, p.ID)
	f.posts.Get(ctx, p.ID)
	if _, err := f.posts.AddComment(ctx, f.other, p.ID, CommentInput{Content: "first"}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	in := f.input("After Edit!")
	in.Content = "New body"
	got, err := f.posts.Update(ctx, f.admin, p.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Author.ID != f.owner.ID {
		t.Errorf("author changed to %v", got.Author.ID)
	}
	if got.ViewCount != 2 {
		t.Errorf("view count = %d, want 2", got.ViewCount)
	}
	if len(got.Comments) != 1 {
		t.Errorf("comments = %d, want 1", len(got.Comments))
	}
	if got.Slug != "after-edit" {
		t.Errorf("slug = %q, want after-edit", got.Slug)
	}
	if got.Excerpt != p.Excerpt {
		t.Errorf("excerpt rewritten to %q although it was set", got.Excerpt)
	}
}

func TestUpdatePostRederivesEmptyExcerpt(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Excerpted"))
	ctx := context.Background()

	in := f.input("Excerpted")
	in.Content = "Fresh content"
	in.Excerpt = ptr("")
	got, err := f.posts.Update(ctx, f.owner, p.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Excerpt != "Fresh content..." {
		t.Errorf("excerpt = %q, want derived from new content", got.Excerpt)
	}
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Short Lived"))
	ctx := context.Background()

	wantKind(t, f.posts.Delete(ctx, f.other, p.ID), apperr.KindForbidden)

	if err := f.posts.Delete(ctx, f.owner, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := f.posts.Get(ctx, p.ID)
	wantKind(t, err, apperr.KindNotFound)
	wantKind(t, f.posts.Delete(ctx, f.owner, p.ID), apperr.KindNotFound)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, f.input("Discussed"))
	ctx := context.Background()

	first, err := f.posts.AddComment(ctx, f.other, p.ID, CommentInput{Content: "  first  "})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	comments, err := f.posts.AddComment(ctx, f.owner, p.ID, CommentInput{Content: "second"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "first" || comments[1].Content != "second" {
		t.Fatalf("comments = %+v", comments)
	}
	if comments[0].ID != first[0].ID || comments[0].ID == comments[1].ID {
		t.Error("comment ids must be stable and distinct")
	}
	if comments[0].Author == nil || comments[0].Author.Name != "Other" {
		t.Errorf("comment author = %+v", comments[0].Author)
	}

	t.Run("validation", func(t *testing.T) {
		_, err := f.posts.AddComment(ctx, f.owner, p.ID, CommentInput{Content: " "})
		wantDetail(t, err, "Comment is required")
		_, err = f.posts.AddComment(ctx, f.owner, p.ID, CommentInput{Content: strings.Repeat("c", 501)})
		wantDetail(t, err, "Comment cannot exceed 500 characters")
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.posts.AddComment(ctx, f.owner, uuid.New(), CommentInput{Content: "hi"})
		wantKind(t, err, apperr.KindNotFound)
	})

	t.Run("post owner cannot delete another's comment", func(t *testing.T) {
		wantKind(t, f.posts.DeleteComment(ctx, f.owner, p.ID, comments[0].ID), apperr.KindForbidden)
	})

	t.Run("comment author deletes own", func(t *testing.T) {
		if err := f.posts.DeleteComment(ctx, f.other, p.ID, comments[0].ID); err != nil {
			t.Fatalf("DeleteComment: %v", err)
		}
		got, _ := f.db.Posts().FindByID(p.ID)
		if len(got.Comments) != 1 || got.Comments[0].ID != comments[1].ID {
			t.Errorf("remaining comments = %+v", got.Comments)
		}
	})

	t.Run("admin deletes any", func(t *testing.T) {
		if err := f.posts.DeleteComment(ctx, f.admin, p.ID, comments[1].ID); err != nil {
			t.Fatalf("DeleteComment: %v", err)
		}
	})

	t.Run("missing comment", func(t *testing.T) {
		wantKind(t, f.posts.DeleteComment(ctx, f.admin, p.ID, comments[1].ID), apperr.KindNotFound)
	})
}

func TestCleanTags(t *testing.T) {
	got := cleanTags([]string{"a", " b", "a", "", "  ", "c"})
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("cleanTags = %v", got)
	}
}
