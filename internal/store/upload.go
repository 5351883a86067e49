// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// UploadStore records images accepted by the upload endpoint.
type UploadStore struct {
	db *sql.DB
}

// NewUploadStore creates a new UploadStore with the given database connection.
func NewUploadStore(db *sql.DB) *UploadStore {
	return &UploadStore{db: db}
}

// uploadColumns lists the columns selected in upload queries.
const uploadColumns = `id, filename, original_name, content_type, size_bytes,
	backend, path, uploader_id, created_at`

func scanUpload(scanner interface{ Scan(...any) error }) (*models.Upload, error) {
	var u models.Upload
	err := scanner.Scan(
		&u.ID, &u.Filename, &u.OriginalName, &u.ContentType, &u.SizeBytes,
		&u.Backend, &u.Path, &u.UploaderID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new upload record and returns it with the generated ID.
func (s *UploadStore) Create(u *models.Upload) (*models.Upload, error) {
	created, err := scanUpload(s.db.QueryRow(`
		INSERT INTO uploads (filename, original_name, content_type, size_bytes,
			backend, path, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+uploadColumns,
		u.Filename, u.OriginalName, u.ContentType, u.SizeBytes,
		u.Backend, u.Path, u.UploaderID,
	))
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	return created, nil
}

// ListByUploader returns a user's uploads, newest first.
func (s *UploadStore) ListByUploader(uploaderID uuid.UUID, limit int) ([]models.Upload, error) {
	rows, err := s.db.Query(`
		SELECT `+uploadColumns+`
		FROM uploads
		WHERE uploader_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, uploaderID, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	items := []models.Upload{}
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}
