// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Error kinds. Every [Error] unwraps to exactly one of them, so callers
// classify failures with errors.Is without looking at messages.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuth          = errors.New("authentication error")
	ErrBlocked       = errors.New("blocked error")
	ErrForbidden     = errors.New("forbidden error")
	ErrAuthorization = errors.New("authorization error")
	ErrNotFound      = errors.New("not found error")
	ErrToken         = errors.New("token error")
)

// Infrastructure errors. They are not classified and surface as 500.
var (
	ErrVersionIsNotSpecified  = errors.New("app version is not specified")
	ErrTokenCreationFailed    = errors.New("token creation failed")
	ErrSuperAdminRoleNotFound = errors.New("superAdmin role not found, run the seed first")
)

// Error is a classified service failure carrying a client-safe message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// validationError turns a validator failure into an ErrValidation.
func validationError(err error) *Error {
	return &Error{Kind: ErrValidation, Message: err.Error()}
}

// Session and credential errors with fixed messages.
var (
	ErrNotLoggedIn         = &Error{Kind: ErrAuth, Message: "you are not logged in, please log in to get access"}
	ErrInvalidSession      = &Error{Kind: ErrAuth, Message: "invalid or expired session, please log in again"}
	ErrUserNoLongerExists  = &Error{Kind: ErrAuth, Message: "the user belonging to this token does no longer exist"}
	ErrUserBlocked         = &Error{Kind: ErrBlocked, Message: "this user is blocked and cannot access this route"}
	ErrPasswordChanged     = &Error{Kind: ErrAuth, Message: "user recently changed password, please log in again"}
	ErrIncorrectLogin      = &Error{Kind: ErrAuth, Message: "incorrect username or password"}
	ErrAccountBlocked      = &Error{Kind: ErrBlocked, Message: "your account has been blocked"}
	ErrWrongPassword       = &Error{Kind: ErrAuth, Message: "your current password is wrong"}
	ErrSignupClosed        = &Error{Kind: ErrForbidden, Message: "registration is no longer available"}
	ErrPermissionDenied    = &Error{Kind: ErrAuthorization, Message: "you do not have permission to perform this action"}
	ErrTokenInvalid        = &Error{Kind: ErrToken, Message: "invalid or expired token"}
	ErrUsernameTaken       = &Error{Kind: ErrValidation, Message: "username is already taken"}
	ErrRoleDoesNotExist    = &Error{Kind: ErrValidation, Message: "role does not exist"}
	ErrRoleNameTaken       = &Error{Kind: ErrValidation, Message: "role name is already taken"}
	ErrUnknownPermission   = &Error{Kind: ErrValidation, Message: "one or more permission ids do not exist"}
	ErrPermissionNameTaken = &Error{Kind: ErrValidation, Message: "permission name is already taken"}
	ErrUserNotFound        = &Error{Kind: ErrNotFound, Message: "no user found with that id"}
	ErrRoleNotFound        = &Error{Kind: ErrNotFound, Message: "no role found with that id"}
	ErrPermissionNotFound  = &Error{Kind: ErrNotFound, Message: "no permission found with that id"}
)
