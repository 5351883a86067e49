// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
)

func TestPostStatusValid(t *testing.T) {
	for _, s := range []PostStatus{PostStatusDraft, PostStatusPublished} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []PostStatus{"", "archived", "Published"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestDeriveExcerpt(t *testing.T) {
	t.Run("short content keeps everything", func(t *testing.T) {
		if got := DeriveExcerpt("Hello"); got != "Hello..." {
			t.Errorf("got %q, want %q", got, "Hello...")
		}
	})

	t.Run("long content is cut at 150 characters", func(t *testing.T) {
		content := strings.Repeat("a", 400)
		got := DeriveExcerpt(content)
		if got != strings.Repeat("a", 150)+"..." {
			t.Errorf("unexpected excerpt of length %d", len(got))
		}
	})

	t.Run("multibyte content is cut on rune boundaries", func(t *testing.T) {
		content := strings.Repeat("é", 200)
		got := DeriveExcerpt(content)
		if !utf8.ValidString(got) {
			t.Fatal("excerpt is not valid UTF-8")
		}
		if n := utf8.RuneCountInString(got); n != 153 {
			t.Errorf("rune count: got %d, want 153", n)
		}
	})
}

func TestPostFindComment(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	p := &Post{Comments: []Comment{{ID: a, Content: "first"}, {ID: b, Content: "second"}}}

	if c := p.FindComment(b); c == nil || c.Content != "second" {
		t.Errorf("FindComment(b) = %+v, want second comment", c)
	}
	if c := p.FindComment(uuid.New()); c != nil {
		t.Errorf("FindComment(unknown) = %+v, want nil", c)
	}
}
