// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an administrator account of the back office.
// It contains identity attributes, credential data and the reference to the
// single Role the account is granted.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the opaque unique identifier of the user (UUID v7).
	UserID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Username is the unique login identifier. It is always stored
	// lower-cased so that uniqueness is case-insensitive.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialized outward.
	PasswordHash string `json:"-"`

	// RoleID references the Role granted to the user.
	RoleID string `json:"role_id"`

	// Role is the populated Role referenced by RoleID. It is nil until the
	// read-side join has been performed, and stays nil when RoleID points at
	// a Role that no longer exists.
	Role *Role `json:"role,omitempty"`

	// Blocked users are rejected at login and on every authenticated request.
	Blocked bool `json:"blocked"`

	// Active is the soft-delete flag. Inactive users are invisible to lookups.
	Active bool `json:"-"`

	// PasswordChangedAt is set every time the password is changed (never on
	// creation). Tokens issued before this moment are stale.
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`

	// CreatedBy is the id of the authenticated actor that created the user,
	// empty for bootstrap accounts.
	CreatedBy string `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issuance time. Both values are compared as epoch seconds; a
// change in the same second as issuance does not invalidate the token.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}

	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// CreateUserRequest carries the input of a user creation (signup or
// administrative creation).
type CreateUserRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	RoleID          string `json:"role"`

	// CreatedBy is filled by the server from the authenticated principal.
	CreatedBy string `json:"-"`
}

// UpdateUserRequest is a partial update of user data. Only non-nil fields are
// applied. Password fields are present only so that they can be rejected.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	RoleID   *string `json:"role,omitempty"`
	Blocked  *bool   `json:"blocked,omitempty"`

	Password        string `json:"password,omitempty"`
	PasswordConfirm string `json:"passwordConfirm,omitempty"`
}

// ChangePasswordRequest is the input of the password change endpoint.
type ChangePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginRequest is the input of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
