// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// PostStore handles post and embedded comment persistence. Comments are
// stored as an ordered JSONB array on the post row, so every comment
// change is a single-row atomic update.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostFilter narrows a post listing. Zero fields select everything.
type PostFilter struct {
	Search     string // case-insensitive substring of title or content
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Status     string
	Tag        string
}

// commentDoc is the JSONB shape of one embedded comment. author_name is
// only present on reads, joined in from users.
type commentDoc struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// postSelect resolves author, category and comment authors in one query.
const postSelect = `
	SELECT p.id, p.title, p.slug, p.content, p.excerpt,
	       p.author_id, a.name, a.email,
	       p.category_id, cat.name, cat.slug,
	       p.tags, p.status, p.featured_image,
	       COALESCE((
	           SELECT jsonb_agg(e.elem || jsonb_build_object('author_name', u.name) ORDER BY e.ord)
	           FROM jsonb_array_elements(p.comments) WITH ORDINALITY AS e(elem, ord)
	           LEFT JOIN users u ON u.id = (e.elem->>'author_id')::uuid
	       ), '[]'::jsonb),
	       p.view_count, p.created_at, p.updated_at
	FROM posts p
	JOIN users a ON a.id = p.author_id
	LEFT JOIN categories cat ON cat.id = p.category_id`

// scanPost scans a postSelect row and decodes the JSONB columns.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		p                 models.Post
		author            models.Author
		catName, catSlug  sql.NullString
		tagsRaw, comments []byte
	)
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt,
		&p.AuthorID, &author.Name, &author.Email,
		&p.CategoryID, &catName, &catSlug,
		&tagsRaw, &p.Status, &p.FeaturedImage,
		&comments,
		&p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	author.ID = p.AuthorID
	p.Author = &author
	if p.CategoryID != nil && catName.Valid {
		p.Category = &models.CategoryRef{ID: *p.CategoryID, Name: catName.String, Slug: catSlug.String}
	}

	p.Tags = []string{}
	if err := json.Unmarshal(tagsRaw, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	var docs []commentDoc
	if err := json.Unmarshal(comments, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	p.Comments = make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		p.Comments = append(p.Comments, models.Comment{
			ID:        d.ID,
			Content:   d.Content,
			AuthorID:  d.AuthorID,
			Author:    &models.Author{ID: d.AuthorID, Name: d.AuthorName},
			CreatedAt: d.CreatedAt,
		})
	}
	return &p, nil
}

// where builds the WHERE clause and positional arguments for f.
func (f PostFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(arg any) string {
		args = append(args, arg)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		ph := next("%" + escapeLike(f.Search) + "%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE %s OR p.content ILIKE %s)", ph, ph))
	}
	if f.CategoryID != nil {
		conds = append(conds, "p.category_id = "+next(*f.CategoryID))
	}
	if f.AuthorID != nil {
		conds = append(conds, "p.author_id = "+next(*f.AuthorID))
	}
	if f.Status != "" {
		conds = append(conds, "p.status = "+next(f.Status))
	}
	if f.Tag != "" {
		conds = append(conds, "p.tags @> jsonb_build_array("+next(f.Tag)+"::text)")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns one page of posts matching f, newest first, together with
// the total number of matches.
func (s *PostStore) List(f PostFilter, limit, offset int) ([]models.Post, int, error) {
	where, args := f.where()

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, limit, offset)
	query := postSelect + where + fmt.Sprintf(
		" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args),
	)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a post with its comments. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(postSelect+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// IncrementViews atomically adds one to a post's view count. Reports
// whether the post exists.
func (s *PostStore) IncrementViews(id uuid.UUID) (bool, error) {
	return s.execOne("increment post views",
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
}

// Create inserts a new post and returns it with author and category resolved.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, author_id, category_id,
		                   tags, status, featured_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9)
		RETURNING id
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.AuthorID, p.CategoryID,
		tags, p.Status, p.FeaturedImage,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update writes the client-editable fields of p. Author, view count and
// comments are never touched. Reports whether the post exists.
func (s *PostStore) Update(p *models.Post) (bool, error) {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return false, fmt.Errorf("update post: %w", err)
	}
	return s.execOne("update post", `
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, category_id = $5,
			tags = $6::jsonb, status = $7, featured_image = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.CategoryID,
		tags, p.Status, p.FeaturedImage, p.ID,
	)
}

// Delete removes a post and, with it, all of its comments.
func (s *PostStore) Delete(id uuid.UUID) (bool, error) {
	return s.execOne("delete post", `DELETE FROM posts WHERE id = $1`, id)
}

// AppendComment adds c to the end of the post's comment list in a single
// statement, so concurrent appends never lose each other.
func (s *PostStore) AppendComment(postID uuid.UUID, c models.Comment) (bool, error) {
	doc, err := json.Marshal(commentDoc{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
	})
	if err != nil {
		return false, fmt.Errorf("append comment: %w", err)
	}
	return s.execOne("append comment", `
		UPDATE posts SET comments = comments || jsonb_build_array($1::jsonb), updated_at = NOW()
		WHERE id = $2
	`, string(doc), postID)
}

// RemoveComment drops one comment from the post, keeping the order of the
// rest. Reports whether both the post and the comment existed.
func (s *PostStore) RemoveComment(postID, commentID uuid.UUID) (bool, error) {
	return s.execOne("remove comment", `
		UPDATE posts SET comments = COALESCE((
			SELECT jsonb_agg(e.elem ORDER BY e.ord)
			FROM jsonb_array_elements(comments) WITH ORDINALITY AS e(elem, ord)
			WHERE e.elem->>'id' <> $1
		), '[]'::jsonb), updated_at = NOW()
		WHERE id = $2 AND comments @> jsonb_build_array(jsonb_build_object('id', $1::text))
	`, commentID.String(), postID)
}

// execOne runs a single-row statement and reports whether a row matched.
func (s *PostStore) execOne(op, query string, args ...any) (bool, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// encodeTags renders tags as a JSON array, never null.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
