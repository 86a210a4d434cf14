// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"slices"

	"github.com/Aruba-Creative/nokan-api/models"
)

type authorizer struct{}

func NewAuthorizer() Authorizer {
	return authorizer{}
}

// RequirePermission denies on the first name the principal does not hold.
// No names means nothing is required.
func (authorizer) RequirePermission(principal models.Principal, names ...string) error {
	for _, name := range names {
		if !principal.HasPermission(name) {
			return ErrPermissionDenied
		}
	}
	return nil
}

// RequireRole allows only principals whose role name is in roles. An empty
// allow-list denies everyone.
func (authorizer) RequireRole(principal models.Principal, roles ...string) error {
	if principal.RoleName == "" || !slices.Contains(roles, principal.RoleName) {
		return ErrPermissionDenied
	}
	return nil
}
