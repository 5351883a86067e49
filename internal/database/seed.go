package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quillpress/internal/slug"
)

// Default development admin credentials created by Seed.
const (
	SeedAdminEmail    = "admin@quillpress.local"
	SeedAdminPassword = "admin123"
)

// seedCategories are the starter categories of a fresh install. Slugs
// are derived with slug.FromName at insert time.
var seedCategories = []struct{ name, description string }{
	{"Technology", "All about tech and innovation"},
	{"Lifestyle", "Life, wellness, and personal growth"},
	{"Travel", "Travel guides and experiences"},
	{"Food", "Recipes and food reviews"},
	{"Business", "Business and entrepreneurship"},
}

// SeedAuthorPassword is the password of every sample author.
const SeedAuthorPassword = "password123"

// seedAuthors write the sample posts.
var seedAuthors = []struct{ name, email string }{
	{"Mike Kamau", "mike.kamau@example.com"},
	{"Paul Munyaka", "paul.munyaka@example.com"},
	{"Grace Wanjiku", "grace.wanjiku@example.com"},
}

// seedPosts are published under Technology, each by seedAuthors[author].
var seedPosts = []struct {
	title, content, excerpt string
	author                  int
	tags                    []string
}{
	{
		title:   "Getting Started with Full-Stack Development",
		content: "<h2>Introduction</h2><p>A full-stack application pairs a database, an HTTP API and a browser client. Learning how the three fit together is the fastest way to ship real features.</p>",
		excerpt: "Learn how the database, the API and the browser client fit together in a full-stack application.",
		author:  0,
		tags:    []string{"fullstack", "api", "database"},
	},
	{
		title:   "Building RESTful APIs the Simple Way",
		content: "<h2>REST Principles</h2><p>Use the right HTTP methods, return meaningful status codes and keep endpoints predictable. Middleware handles authentication, validation and logging.</p>",
		excerpt: "Design predictable REST endpoints with proper methods, status codes and middleware.",
		author:  1,
		tags:    []string{"api", "rest", "backend"},
	},
	{
		title:   "Database Indexing for Busy Applications",
		content: "<h2>Why Indexes Matter</h2><p>Index the columns you filter and sort on, check query plans with EXPLAIN and remove indexes nothing uses.</p>",
		excerpt: "Speed up the queries your application runs most with a sensible indexing strategy.",
		author:  2,
		tags:    []string{"database", "performance", "backend"},
	},
	{
		title:   "Git Version Control: Best Practices for Teams",
		content: "<h2>Branching Strategy</h2><p>Keep the main branch releasable, work in short-lived feature branches and review every change through a pull request.</p>",
		excerpt: "Learn Git workflows that make you a more effective team developer.",
		author:  0,
		tags:    []string{"git", "collaboration"},
	},
	{
		title:   "Containerize Your Applications with Docker",
		content: "<h2>Core Concepts</h2><p>Images are read-only templates, containers are running instances and Compose wires several containers together for local development.</p>",
		excerpt: "Learn how containers simplify your development workflow and deployments.",
		author:  1,
		tags:    []string{"docker", "devops", "deployment"},
	},
}

// Seed populates the database with initial development data. Each step
// only runs against an empty table: the admin and sample authors when no
// users exist, the starter categories when none exist, and the sample
// posts when there are no posts and the sample authors are present.
func Seed(db *sql.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedCategoryList(db); err != nil {
		return err
	}
	return seedPostList(db)
}

func seedUsers(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	authorHash, err := bcrypt.GenerateFromPassword([]byte(SeedAuthorPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO NOTHING
	`, "Admin", SeedAdminEmail, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}
	for _, a := range seedAuthors {
		_, err := tx.Exec(`
			INSERT INTO users (name, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO NOTHING
		`, a.name, a.email, string(authorHash))
		if err != nil {
			return fmt.Errorf("seed insert author %s: %w", a.email, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", SeedAdminEmail,
		"password", SeedAdminPassword,
		"sample_authors", len(seedAuthors),
	)
	return nil
}

func seedCategoryList(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCategories {
		_, err := tx.Exec(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, c.name, slug.FromName(c.name), c.description)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	slog.Info("database seeded with categories", "count", len(seedCategories))
	return nil
}

func seedPostList(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}
	if count > 0 {
		return nil
	}

	var categoryID uuid.UUID
	err := db.QueryRow("SELECT id FROM categories WHERE slug = $1", slug.FromName(seedCategories[0].name)).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed find category: %w", err)
	}

	authorIDs := make([]uuid.UUID, len(seedAuthors))
	for i, a := range seedAuthors {
		err := db.QueryRow("SELECT id FROM users WHERE email = $1", a.email).Scan(&authorIDs[i])
		if errors.Is(err, sql.ErrNoRows) {
			slog.Info("sample authors missing, skipping sample posts")
			return nil
		}
		if err != nil {
			return fmt.Errorf("seed find author %s: %w", a.email, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	defer tx.Rollback()

	for _, p := range seedPosts {
		tags, err := json.Marshal(p.tags)
		if err != nil {
			return fmt.Errorf("seed post tags: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO posts (title, slug, content, excerpt, author_id, category_id, tags, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, 'published')
		`, p.title, slug.FromTitle(p.title), p.content, p.excerpt,
			authorIDs[p.author], categoryID, string(tags))
		if err != nil {
			return fmt.Errorf("seed post %q: %w", p.title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	slog.Info("database seeded with sample posts", "count", len(seedPosts))
	return nil
}
