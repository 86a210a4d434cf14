// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SuccessResponse builds a success envelope holding a single entity under key.
func SuccessResponse(key string, value any) DataResponse {
	return DataResponse{Status: StatusSuccess, Data: map[string]any{key: value}}
}

// ListResponse builds a success envelope holding a list under key together
// with the number of results.
func ListResponse[T any](key string, items []T) DataResponse {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	return DataResponse{Status: StatusSuccess, Results: &n, Data: map[string]any{key: items}}
}

// FailResponse builds the envelope for client errors.
func FailResponse(message string) ErrorResponse {
	return ErrorResponse{Status: StatusFail, Message: message}
}

// ErrorResponseOf builds the envelope for server errors.
func ErrorResponseOf(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
