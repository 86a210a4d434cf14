// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of admin API input before it reaches
// the services: user and password payloads, role and permission definitions.
//
// Failures are plain sentinel errors. The service layer wraps them into
// validation errors, which the HTTP layer answers with 400. Checks that need
// the database, such as username uniqueness or permission existence, belong
// to the services, not here.
package validators

import "context"

// Validator checks a request value. When fields are given only those checks
// run, which lets signup skip the role and partial updates skip absent
// fields. An unknown field name yields ErrUnknownField.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
