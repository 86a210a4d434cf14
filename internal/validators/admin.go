// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldName targets the display name of a user.
	FieldName = "name"

	// FieldUsername targets the login identifier of a user.
	FieldUsername = "username"

	// FieldPassword targets the new raw password together with its length bounds.
	FieldPassword = "password"

	// FieldPasswordConfirm checks that the confirmation equals the password.
	FieldPasswordConfirm = "password_confirm"

	// FieldPasswordCurrent targets the current password of a password change.
	FieldPasswordCurrent = "password_current"

	// FieldRole targets the role reference of a user.
	FieldRole = "role"

	// FieldNoPassword rejects password fields in partial user updates.
	FieldNoPassword = "no_password"

	// FieldNotEmpty requires at least one field of a partial update.
	FieldNotEmpty = "not_empty"

	// FieldRoleName targets the name of a role.
	FieldRoleName = "role_name"

	// FieldPermissionName targets the resource:action name of a permission.
	FieldPermissionName = "permission_name"

	// FieldPermissionIDs targets the permission references of a role.
	FieldPermissionIDs = "permission_ids"
)

// PasswordMaxBytes is the longest password bcrypt accepts.
const PasswordMaxBytes = 72

var permissionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*:[a-z*][a-z0-9_*-]*$`)

// NormalizeUsername trims and lower-cases a username so that uniqueness is
// case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return ErrInvalidName
		}
	}
	return nil
}

func validateUsername(username string) error {
	username = NormalizeUsername(username)
	if username == "" {
		return ErrEmptyUsername
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string, minLength int) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len([]rune(password)) < minLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, minLength)
	}
	if len(password) > PasswordMaxBytes {
		return fmt.Errorf("%w: at most %d bytes allowed", ErrPasswordTooLong, PasswordMaxBytes)
	}
	return nil
}

func validatePermissionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyPermissionName
	}
	if !permissionNamePattern.MatchString(name) {
		return ErrInvalidPermissionName
	}
	return nil
}

func validatePermissionIDs(ids []string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ErrEmptyPermissionID
		}
	}
	return nil
}
