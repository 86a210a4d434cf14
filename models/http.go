// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response statuses of the JSON envelope.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// AuthResponse is returned by signup, login and password change.
type AuthResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	User   User   `json:"user"`
}

// DataResponse wraps a single resource or a list of resources.
type DataResponse struct {
	Status  string         `json:"status"`
	Results *int           `json:"results,omitempty"`
	Data    map[string]any `json:"data"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListParams holds pagination parameters of list endpoints.
type ListParams struct {
	Page  uint64
	Limit uint64
}

// Offset returns the number of rows to skip.
func (p ListParams) Offset() uint64 {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
