package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

func TestCategoriesList(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.DB.Categories().Create(&models.Category{Name: "Food", Slug: "food"}); err != nil {
		t.Fatal(err)
	}

	got := serve(t, env.Categories.List, newRequest(http.MethodGet, "/api/categories", nil), http.StatusOK)
	cats := dataAs[[]models.Category](t, got)
	if *got.Count != 2 || len(cats) != 2 {
		t.Fatalf("count = %d, len = %d", *got.Count, len(cats))
	}
	if cats[0].Name != "Food" || cats[1].Name != "Technology" {
		t.Errorf("order = %q, %q", cats[0].Name, cats[1].Name)
	}
}

func TestCategoriesGet(t *testing.T) {
	env := newTestEnv(t)
	id := env.Category.ID.String()

	got := serve(t, env.Categories.Get, withChiURLParams(newRequest(http.MethodGet, "/api/categories/"+id, nil), "id", id), http.StatusOK)
	if c := dataAs[models.Category](t, got); c.Slug != "technology" {
		t.Errorf("slug = %q", c.Slug)
	}

	for _, id := range []string{"bogus", uuid.NewString()} {
		got := serve(t, env.Categories.Get, withChiURLParams(newRequest(http.MethodGet, "/api/categories/"+id, nil), "id", id), http.StatusNotFound)
		if got.Error != "Category not found" {
			t.Errorf("get %s: error %q", id, got.Error)
		}
	}
}

func TestCategoriesCreate(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{"name": "Travel Notes", "description": "Trips"}

	got := serve(t, env.Categories.Create, asUser(newRequest(http.MethodPost, "/api/categories", body), env.Owner), http.StatusForbidden)
	if got.Error != "Only admins can manage categories" {
		t.Errorf("error = %q", got.Error)
	}

	got = serve(t, env.Categories.Create, asUser(newRequest(http.MethodPost, "/api/categories", body), env.Admin), http.StatusCreated)
	if c := dataAs[models.Category](t, got); c.Slug != "travel-notes" {
		t.Errorf("slug = %q", c.Slug)
	}

	got = serve(t, env.Categories.Create, asUser(newRequest(http.MethodPost, "/api/categories", body), env.Admin), http.StatusConflict)
	if got.Error != "Category already exists" {
		t.Errorf("error = %q", got.Error)
	}

	serve(t, env.Categories.Create, asUser(newRequest(http.MethodPost, "/api/categories", map[string]string{}), env.Admin), http.StatusBadRequest)
}

func TestCategoriesUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	id := env.Category.ID.String()

	req := asUser(withChiURLParams(newRequest(http.MethodPut, "/api/categories/"+id, map[string]string{"name": "Tech"}), "id", id), env.Admin)
	if c := dataAs[models.Category](t, serve(t, env.Categories.Update, req, http.StatusOK)); c.Slug != "tech" {
		t.Errorf("slug = %q", c.Slug)
	}

	req = asUser(withChiURLParams(newRequest(http.MethodDelete, "/api/categories/"+id, nil), "id", id), env.Other)
	serve(t, env.Categories.Delete, req, http.StatusForbidden)

	req = asUser(withChiURLParams(newRequest(http.MethodDelete, "/api/categories/"+id, nil), "id", id), env.Admin)
	serve(t, env.Categories.Delete, req, http.StatusOK)

	req = asUser(withChiURLParams(newRequest(http.MethodDelete, "/api/categories/"+id, nil), "id", id), env.Admin)
	serve(t, env.Categories.Delete, req, http.StatusNotFound)
}
