// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded images without fully decoding them.
// Only the formats accepted by the upload endpoint are registered:
// GIF, JPEG, PNG and WebP.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxDimension is the largest accepted width or height in pixels.
const MaxDimension = 16384

// ErrNotImage is returned when the data is not a supported image.
var ErrNotImage = errors.New("imaging: not a supported image")

// Info describes a probed image.
type Info struct {
	Format string // "gif", "jpeg", "png" or "webp"
	Width  int
	Height int
}

// ContentType returns the MIME type for the image format.
func (i Info) ContentType() string {
	return "image/" + i.Format
}

// Probe reads the image header from r and rewinds it so the caller can
// store the full file afterwards.
func Probe(r io.ReadSeeker) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return Info{}, fmt.Errorf("%w: dimensions %dx%d out of range", ErrNotImage, cfg.Width, cfg.Height)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("imaging: rewind: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
