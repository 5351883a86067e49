// Package memstore is an in-memory implementation of the store
// repositories, used by service and handler tests. It mirrors the
// PostgreSQL stores' contracts: lookups return (nil, nil) on a miss and
// unique violations surface as store.ErrDuplicate.
package memstore

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/models"
	"quillpress/internal/store"
)

// DB holds every table. Use the accessor methods to get a repository.
type DB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]models.User
	categories map[uuid.UUID]models.Category
	posts      map[uuid.UUID]models.Post
	uploads    []models.Upload
	clock      time.Time
}

// New returns an empty database.
func New() *DB {
	return &DB{
		users:      map[uuid.UUID]models.User{},
		categories: map[uuid.UUID]models.Category{},
		posts:      map[uuid.UUID]models.Post{},
		clock:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so insertion order is
// always recoverable from created_at. Callers hold mu.
func (db *DB) tick() time.Time {
	db.clock = db.clock.Add(time.Millisecond)
	return db.clock
}

// Users returns the user repository.
func (db *DB) Users() *Users { return &Users{db} }

// Categories returns the category repository.
func (db *DB) Categories() *Categories { return &Categories{db} }

// Posts returns the post repository.
func (db *DB) Posts() *Posts { return &Posts{db} }

// Uploads returns the upload repository.
func (db *DB) Uploads() *Uploads { return &Uploads{db} }

// Users is the in-memory counterpart of store.UserStore.
type Users struct{ db *DB }

func (r *Users) FindByEmail(email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) FindByID(id uuid.UUID) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) Create(u *models.User) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("create user: %w", store.ErrDuplicate)
		}
	}
	created := *u
	created.ID = uuid.New()
	if created.Role == "" {
		created.Role = models.RoleUser
	}
	created.CreatedAt = r.db.tick()
	created.UpdatedAt = created.CreatedAt
	r.db.users[created.ID] = created
	return &created, nil
}

// Categories is the in-memory counterpart of store.CategoryStore.
type Categories struct{ db *DB }

func (r *Categories) List() ([]models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	items := make([]models.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *Categories) FindByID(id uuid.UUID) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Categories) Create(c *models.Category) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.taken(uuid.Nil, c) {
		return nil, fmt.Errorf("create category: %w", store.ErrDuplicate)
	}
	created := *c
	created.ID = uuid.New()
	created.CreatedAt = r.db.tick()
	created.UpdatedAt = created.CreatedAt
	r.db.categories[created.ID] = created
	return &created, nil
}

func (r *Categories) Update(c *models.Category) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.categories[c.ID]
	if !ok {
		return nil, nil
	}
	if r.taken(c.ID, c) {
		return nil, fmt.Errorf("update category: %w", store.ErrDuplicate)
	}
	existing.Name, existing.Slug, existing.Description = c.Name, c.Slug, c.Description
	existing.UpdatedAt = r.db.tick()
	r.db.categories[c.ID] = existing
	return &existing, nil
}

// Delete removes the category and detaches it from posts, like the
// ON DELETE SET NULL foreign key.
func (r *Categories) Delete(id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[id]; !ok {
		return false, nil
	}
	delete(r.db.categories, id)
	for pid, p := range r.db.posts {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.db.posts[pid] = p
		}
	}
	return true, nil
}

// taken reports whether another category already uses c's name or slug.
func (r *Categories) taken(self uuid.UUID, c *models.Category) bool {
	for id, existing := range r.db.categories {
		if id != self && (existing.Name == c.Name || existing.Slug == c.Slug) {
			return true
		}
	}
	return false
}

// Uploads is the in-memory counterpart of store.UploadStore.
type Uploads struct{ db *DB }

func (r *Uploads) Create(u *models.Upload) (*models.Upload, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	created := *u
	created.ID = uuid.New()
	created.CreatedAt = r.db.tick()
	r.db.uploads = append(r.db.uploads, created)
	return &created, nil
}

func (r *Uploads) ListByUploader(uploaderID uuid.UUID, limit int) ([]models.Upload, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	items := []models.Upload{}
	for _, u := range slices.Backward(r.db.uploads) {
		if len(items) == limit {
			break
		}
		if u.UploaderID == uploaderID {
			items = append(items, u)
		}
	}
	return items, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
