package blog

import (
	"slices"
	"testing"

	"quillpress/internal/apperr"
	"quillpress/internal/models"
	"quillpress/internal/policy"
	"quillpress/internal/store/memstore"
)

// fixture wires services over an in-memory database with three users
// and one category.
type fixture struct {
	db         *memstore.DB
	posts      *PostService
	categories *CategoryService
	owner      policy.Actor
	other      policy.Actor
	admin      policy.Actor
	category   *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memstore.New()
	f := &fixture{
		db:         db,
		posts:      NewPostService(db.Posts(), db.Categories()),
		categories: NewCategoryService(db.Categories()),
		owner:      newActor(t, db, "Owner", models.RoleUser),
		other:      newActor(t, db, "Other", models.RoleUser),
		admin:      newActor(t, db, "Admin", models.RoleAdmin),
	}
	c, err := db.Categories().Create(&models.Category{Name: "Technology", Slug: "technology"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	f.category = c
	return f
}

func newActor(t *testing.T, db *memstore.DB, name string, role models.Role) policy.Actor {
	t.Helper()
	u, err := db.Users().Create(&models.User{Name: name, Email: name + "@example.com", Role: role})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return policy.ActorFor(u)
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if !apperr.IsKind(err, kind) {
		t.Fatalf("error = %v, want kind %s", err, kind)
	}
}

func wantDetail(t *testing.T, err error, detail string) {
	t.Helper()
	wantKind(t, err, apperr.KindValidation)
	if details := apperr.From(err).Details; !slices.Contains(details, detail) {
		t.Errorf("details = %q, want to contain %q", details, detail)
	}
}

func ptr[T any](v T) *T { return &v }
