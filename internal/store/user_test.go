// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "")

	if u.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if u.Name != "Store Tester" {
		t.Errorf("name: got %q", u.Name)
	}
	if u.Role != models.RoleUser {
		t.Errorf("role: got %q, want default %q", u.Role, models.RoleUser)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Error("password hash must be set and must not be plaintext")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db, models.RoleUser)

	_, err := s.Create(&models.User{Name: "Dup", Email: u.Email, PasswordHash: "x"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserStoreFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db, models.RoleAdmin)

	byEmail, err := s.FindByEmail(u.Email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Fatalf("FindByEmail returned %+v", byEmail)
	}

	byID, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || !byID.IsAdmin() {
		t.Fatalf("FindByID returned %+v", byID)
	}

	missing, err := s.FindByEmail("nobody@store-test.local")
	if err != nil {
		t.Fatalf("FindByEmail missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}
