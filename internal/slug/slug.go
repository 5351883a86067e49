// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for post titles and
// category names. Both functions are pure: the same input always yields
// the same slug.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that isn't a word character, whitespace, or hyphen.
	nonWord = regexp.MustCompile(`[^\w\s-]`)
	// whitespace matches runs of whitespace, collapsed into a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
)

// FromTitle creates the slug for a post title.
// Example: "Hello, World! 2025" → "hello-world-2025"
func FromTitle(title string) string {
	result := strings.ToLower(strings.TrimSpace(title))
	result = nonWord.ReplaceAllString(result, "")
	return whitespace.ReplaceAllString(result, "-")
}

// FromName creates the slug for a category name. Punctuation is kept;
// only case and whitespace change.
// Example: "Web Development" → "web-development"
func FromName(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	return whitespace.ReplaceAllString(result, "-")
}
