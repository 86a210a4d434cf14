// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/Aruba-Creative/nokan-api/internal/store"
)

// storeErrors maps repository sentinels onto classified service errors.
var storeErrors = []struct {
	storeErr   error
	serviceErr *Error
}{
	{store.ErrUsernameAlreadyExists, ErrUsernameTaken},
	{store.ErrNoUserWasFound, ErrUserNotFound},
	{store.ErrUsersAlreadyExist, ErrSignupClosed},
	{store.ErrRoleNameAlreadyExists, ErrRoleNameTaken},
	{store.ErrRoleNotFound, ErrRoleNotFound},
	{store.ErrPermissionNameAlreadyExists, ErrPermissionNameTaken},
	{store.ErrPermissionNotFound, ErrPermissionNotFound},
	{store.ErrUnknownPermission, ErrUnknownPermission},
}

// mapStoreError classifies err when it is a known repository sentinel and
// wraps it with op otherwise.
func mapStoreError(op string, err error) error {
	for _, m := range storeErrors {
		if errors.Is(err, m.storeErr) {
			return m.serviceErr
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
