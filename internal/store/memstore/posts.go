package memstore

import (
	"slices"
	"sort"

	"github.com/google/uuid"

	"quillpress/internal/models"
	"quillpress/internal/store"
)

// Posts is the in-memory counterpart of store.PostStore.
type Posts struct{ db *DB }

// resolve returns a deep copy of p with author, category and comment
// authors filled in. Callers hold mu.
func (r *Posts) resolve(p models.Post) models.Post {
	p.Tags = append([]string{}, p.Tags...)
	p.Comments = append([]models.Comment{}, p.Comments...)

	if u, ok := r.db.users[p.AuthorID]; ok {
		p.Author = &models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	p.Category = nil
	if p.CategoryID != nil {
		if c, ok := r.db.categories[*p.CategoryID]; ok {
			p.Category = &models.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
		}
	}
	for i, c := range p.Comments {
		author := &models.Author{ID: c.AuthorID}
		if u, ok := r.db.users[c.AuthorID]; ok {
			author.Name = u.Name
		}
		p.Comments[i].Author = author
	}
	return p
}

func (r *Posts) matches(p models.Post, f store.PostFilter) bool {
	if f.Search != "" && !containsFold(p.Title, f.Search) && !containsFold(p.Content, f.Search) {
		return false
	}
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
		return false
	}
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}
	if f.Tag != "" && !slices.Contains(p.Tags, f.Tag) {
		return false
	}
	return true
}

func (r *Posts) List(f store.PostFilter, limit, offset int) ([]models.Post, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var matched []models.Post
	for _, p := range r.db.posts {
		if r.matches(p, f) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	items := []models.Post{}
	for i := offset; i < len(matched) && len(items) < limit; i++ {
		items = append(items, r.resolve(matched[i]))
	}
	return items, len(matched), nil
}

func (r *Posts) FindByID(id uuid.UUID) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil, nil
	}
	resolved := r.resolve(p)
	return &resolved, nil
}

func (r *Posts) IncrementViews(id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return false, nil
	}
	p.ViewCount++
	r.db.posts[id] = p
	return true, nil
}

func (r *Posts) Create(p *models.Post) (*models.Post, error) {
	r.db.mu.Lock()
	created := *p
	created.ID = uuid.New()
	created.Tags = append([]string{}, p.Tags...)
	created.Comments = []models.Comment{}
	created.ViewCount = 0
	created.CreatedAt = r.db.tick()
	created.UpdatedAt = created.CreatedAt
	r.db.posts[created.ID] = created
	r.db.mu.Unlock()
	return r.FindByID(created.ID)
}

func (r *Posts) Update(p *models.Post) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.posts[p.ID]
	if !ok {
		return false, nil
	}
	existing.Title = p.Title
	existing.Slug = p.Slug
	existing.Content = p.Content
	existing.Excerpt = p.Excerpt
	existing.CategoryID = p.CategoryID
	existing.Tags = append([]string{}, p.Tags...)
	existing.Status = p.Status
	existing.FeaturedImage = p.FeaturedImage
	existing.UpdatedAt = r.db.tick()
	r.db.posts[p.ID] = existing
	return true, nil
}

func (r *Posts) Delete(id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[id]; !ok {
		return false, nil
	}
	delete(r.db.posts, id)
	return true, nil
}

func (r *Posts) AppendComment(postID uuid.UUID, c models.Comment) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[postID]
	if !ok {
		return false, nil
	}
	c.Author = nil
	p.Comments = append(append([]models.Comment{}, p.Comments...), c)
	r.db.posts[postID] = p
	return true, nil
}

func (r *Posts) RemoveComment(postID, commentID uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[postID]
	if !ok {
		return false, nil
	}
	i := slices.IndexFunc(p.Comments, func(c models.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return false, nil
	}
	p.Comments = slices.Delete(append([]models.Comment{}, p.Comments...), i, i+1)
	r.db.posts[postID] = p
	return true, nil
}
