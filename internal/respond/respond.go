// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package respond writes the JSON envelope shared by every API response:
// {"success": bool, "data"?: ..., "error"?: string, "details"?: [...]}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"quillpress/internal/apperr"
)

// Envelope is the top-level body of every API response. The list fields
// are only set for paginated listings.
type Envelope struct {
	Success bool     `json:"success"`
	Count   *int     `json:"count,omitempty"`
	Total   *int     `json:"total,omitempty"`
	Page    *int     `json:"page,omitempty"`
	Pages   *int     `json:"pages,omitempty"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

// ListMeta carries pagination numbers for List.
type ListMeta struct {
	Count int
	Total int
	Page  int
	Pages int
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

// Data writes a successful envelope around data.
func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// List writes a successful envelope with pagination metadata.
func List(w http.ResponseWriter, meta ListMeta, data any) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Count:   &meta.Count,
		Total:   &meta.Total,
		Page:    &meta.Page,
		Pages:   &meta.Pages,
		Data:    data,
	})
}

// Error writes err as a failure envelope. Internal errors are logged with
// their cause and reported to the client with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	JSON(w, e.Status(), Envelope{Success: false, Error: e.Message, Details: e.Details})
}
