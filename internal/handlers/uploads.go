// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/apperr"
	"quillpress/internal/imaging"
	"quillpress/internal/middleware"
	"quillpress/internal/models"
	"quillpress/internal/respond"
	"quillpress/internal/storage"
)

const (
	msgNoFile      = "Please upload a file"
	msgNotAnImage  = "Only image files are allowed!"
	uploadField    = "image"
	uploadListSize = 50
)

// allowedImageExt lists the accepted file extensions.
var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadRecorder persists upload records.
type UploadRecorder interface {
	Create(u *models.Upload) (*models.Upload, error)
	ListByUploader(uploaderID uuid.UUID, limit int) ([]models.Upload, error)
}

// Uploads accepts image uploads and lists the caller's previous ones.
type Uploads struct {
	backend storage.Backend
	records UploadRecorder
	maxSize int64
}

// NewUploads creates an Uploads handler. maxSize is the largest accepted
// file in bytes.
func NewUploads(backend storage.Backend, records UploadRecorder, maxSize int64) *Uploads {
	return &Uploads{backend: backend, records: records, maxSize: maxSize}
}

// uploadResult is the response body of a successful upload.
type uploadResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Create stores a single image sent in the "image" multipart field.
func (u *Uploads) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())

	// Allow some overhead for the multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, u.maxSize+1024*1024)
	if err := r.ParseMultipartForm(u.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, r, u.tooLarge())
			return
		}
		respond.Error(w, r, apperr.BadRequest(msgNoFile))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		respond.Error(w, r, apperr.BadRequest(msgNoFile))
		return
	}
	defer file.Close()

	if header.Size > u.maxSize {
		respond.Error(w, r, u.tooLarge())
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		respond.Error(w, r, apperr.BadRequest(msgNotAnImage))
		return
	}

	// The extension alone is not trusted; the bytes must decode as an image.
	info, err := imaging.Probe(file)
	if errors.Is(err, imaging.ErrNotImage) {
		respond.Error(w, r, apperr.BadRequest(msgNotAnImage))
		return
	}
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	name := storage.NewFilename(ext, time.Now())
	path, err := u.backend.Save(r.Context(), name, info.ContentType(), file, header.Size)
	if err != nil {
		respond.Error(w, r, apperr.Internal(fmt.Errorf("store upload: %w", err)))
		return
	}

	rec, err := u.records.Create(&models.Upload{
		Filename:     name,
		OriginalName: header.Filename,
		ContentType:  info.ContentType(),
		SizeBytes:    header.Size,
		Backend:      u.backend.Name(),
		Path:         path,
		UploaderID:   actor.ID,
	})
	if err != nil {
		// Don't leave an orphaned object behind.
		if derr := u.backend.Delete(context.WithoutCancel(r.Context()), name); derr != nil {
			slog.Warn("orphaned upload", "key", name, "error", derr)
		}
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	slog.Info("image uploaded",
		"filename", rec.Filename,
		"size", rec.HumanSize(),
		"dimensions", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"backend", rec.Backend,
		"uploader", actor.ID,
	)
	respond.Data(w, http.StatusOK, uploadResult{Filename: rec.Filename, Path: rec.Path})
}

func (u *Uploads) tooLarge() error {
	return apperr.BadRequest(fmt.Sprintf("File too large. Maximum size is %d MB", u.maxSize>>20))
}

// List returns the caller's most recent uploads.
func (u *Uploads) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	items, err := u.records.ListByUploader(actor.ID, uploadListSize)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}
	n := len(items)
	respond.JSON(w, http.StatusOK, respond.Envelope{Success: true, Count: &n, Data: items})
}
