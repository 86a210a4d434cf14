// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidID is returned for an empty {id} path parameter.
	ErrInvalidID = errors.New("invalid id in path")

	// ErrInvalidPagination is returned when page or limit are not positive
	// integers.
	ErrInvalidPagination = errors.New("page and limit must be positive integers")
)

// messageSomethingWentWrong is the only message a 5xx response carries.
const messageSomethingWentWrong = "something went wrong"
