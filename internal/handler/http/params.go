// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// pathID returns the {id} URL parameter.
func pathID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", ErrInvalidID
	}
	return id, nil
}

// listParams reads ?page= and ?limit=. Missing values default to the first
// page of 100; limit is capped at 1000.
func listParams(r *http.Request) (models.ListParams, error) {
	params := models.ListParams{Page: 1, Limit: defaultPageLimit}
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || page == 0 {
			return models.ListParams{}, ErrInvalidPagination
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			return models.ListParams{}, ErrInvalidPagination
		}
		params.Limit = min(limit, maxPageLimit)
	}

	return params, nil
}
