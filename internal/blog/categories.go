package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"quillpress/internal/apperr"
	"quillpress/internal/models"
	"quillpress/internal/policy"
	"quillpress/internal/slug"
	"quillpress/internal/store"
	"quillpress/internal/validate"
)

const (
	msgCategoryNotFound = "Category not found"
	msgCategoryExists   = "Category already exists"
	msgAdminOnly        = "Only admins can manage categories"
)

// CategoryRepository is the persistence the category registry needs.
type CategoryRepository interface {
	List() ([]models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) (*models.Category, error)
	Delete(id uuid.UUID) (bool, error)
}

// CategoryCache holds the full category list between mutations.
type CategoryCache interface {
	Get(ctx context.Context) ([]models.Category, bool)
	Set(ctx context.Context, cats []models.Category)
	Invalidate(ctx context.Context)
}

// CategoryService implements the category registry. Only the cache uses
// ctx; CategoryRepository calls do not observe cancellation.
type CategoryService struct {
	categories CategoryRepository
	cache      CategoryCache
}

// NewCategoryService creates a category service without caching.
func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// WithCache enables read-through caching of List.
func (s *CategoryService) WithCache(c CategoryCache) *CategoryService {
	s.cache = c
	return s
}

// CategoryInput is the payload of category create and update requests.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=50" label:"Category name"`
	Description string `json:"description" validate:"max=200" label:"Description"`
}

// List returns every category ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if cats, ok := s.cache.Get(ctx); ok {
			return cats, nil
		}
	}
	cats, err := s.categories.List()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, cats)
	}
	return cats, nil
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.categories.FindByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if c == nil {
		return nil, apperr.NotFound(msgCategoryNotFound)
	}
	return c, nil
}

// Create adds a category. Admin only.
func (s *CategoryService) Create(ctx context.Context, actor policy.Actor, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden(msgAdminOnly)
	}
	in = in.normalized()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.categories.Create(&models.Category{
		Name:        in.Name,
		Slug:        slug.FromName(in.Name),
		Description: in.Description,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperr.Conflict(msgCategoryExists)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.invalidate(ctx)
	return c, nil
}

// Update renames or re-describes a category. Admin only.
func (s *CategoryService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden(msgAdminOnly)
	}
	in = in.normalized()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.categories.Update(&models.Category{
		ID:          id,
		Name:        in.Name,
		Slug:        slug.FromName(in.Name),
		Description: in.Description,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperr.Conflict(msgCategoryExists)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if c == nil {
		return nil, apperr.NotFound(msgCategoryNotFound)
	}
	s.invalidate(ctx)
	return c, nil
}

// Delete removes a category. Posts filed under it lose their category.
// Admin only.
func (s *CategoryService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden(msgAdminOnly)
	}
	ok, err := s.categories.Delete(id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound(msgCategoryNotFound)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (in CategoryInput) normalized() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
