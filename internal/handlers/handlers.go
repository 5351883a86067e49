// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers maps the blog API onto HTTP. Handlers decode requests,
// call the services and write the JSON envelope; all business rules live
// in the service packages.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quillpress/internal/apperr"
	"quillpress/internal/respond"
)

// maxJSONBody caps JSON request bodies. Post content may embed images.
const maxJSONBody = 10 << 20

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperr.BadRequest("Request body is too large")
		case errors.Is(err, io.EOF):
			return apperr.BadRequest("Request body is required")
		default:
			return apperr.BadRequest("Request body must be valid JSON")
		}
	}
	return nil
}

// pathID parses the named URL parameter. A malformed ID can never match a
// row, so it is reported as notFound.
func pathID(r *http.Request, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.NotFound(notFound)
	}
	return id, nil
}

// queryInt parses a positive integer query parameter, returning 0 when it
// is absent or invalid so the service applies its default.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// emptyData is the payload of successful deletes.
var emptyData = struct{}{}
