// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an active user with the same
	// username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when no active user matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUsersAlreadyExist is returned by CreateFirstUser when the users
	// table is not empty.
	ErrUsersAlreadyExist = errors.New("users already exist")

	// ErrRoleNameAlreadyExists is returned when a role with the same name exists.
	ErrRoleNameAlreadyExists = errors.New("role name already exists")

	// ErrRoleNotFound is returned when no role matches the lookup.
	ErrRoleNotFound = errors.New("role was not found")

	// ErrPermissionNameAlreadyExists is returned when a permission with the
	// same name exists.
	ErrPermissionNameAlreadyExists = errors.New("permission name already exists")

	// ErrPermissionNotFound is returned when no permission matches the lookup.
	ErrPermissionNotFound = errors.New("permission was not found")

	// ErrUnknownPermission is returned when a role references a permission id
	// that does not exist at write time.
	ErrUnknownPermission = errors.New("unknown permission id")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
