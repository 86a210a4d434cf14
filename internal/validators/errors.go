// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName                = errors.New("please tell us your name")
	ErrInvalidName              = errors.New("name should contain only alphabet characters")
	ErrEmptyUsername            = errors.New("please provide your username")
	ErrInvalidUsername          = errors.New("username must not contain whitespace")
	ErrEmptyPassword            = errors.New("please provide a password")
	ErrPasswordTooShort         = errors.New("password is too short")
	ErrPasswordTooLong          = errors.New("password is too long")
	ErrPasswordMismatch         = errors.New("password confirmation does not match the password")
	ErrEmptyCurrentPassword     = errors.New("please provide your current password")
	ErrEmptyRole                = errors.New("please choose the role")
	ErrMissingCredentials       = errors.New("please provide username and password")
	ErrPasswordUpdateNotAllowed = errors.New("this route is not for password updates, please use /updatePassword")
	ErrNoFieldsToUpdate         = errors.New("at least one field must be provided for update")
	ErrEmptyRoleName            = errors.New("role name is required")
	ErrEmptyPermissionName      = errors.New("permission name is required")
	ErrInvalidPermissionName    = errors.New("permission name must look like resource:action")
	ErrEmptyPermissionID        = errors.New("permission id must not be empty")
)
