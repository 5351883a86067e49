// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Upload records an image accepted by the upload endpoint. The bytes live
// in the configured storage backend; this row only tracks where.
type Upload struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Backend      string    `json:"backend"`
	Path         string    `json:"path"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// HumanSize returns a human-readable file size string.
func (u *Upload) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case u.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(u.SizeBytes)/float64(mb))
	case u.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(u.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", u.SizeBytes)
	}
}
