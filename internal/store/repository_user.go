// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles administrator account persistence against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	ids    IDGenerator
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, ids IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the canonical database
// representation of the account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, r.ids.Generate(), user.Name, user.Username, user.PasswordHash, user.RoleID, nullString(user.CreatedBy))

	created, err := r.scanUserRow(row)
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Str("username", user.Username).Msg("error creating user")
		return models.User{}, err
	}

	return created, nil
}

// CreateFirstUser inserts user only if no user exists yet. Concurrent calls
// are serialised with a transaction-scoped advisory lock, so exactly one of
// them succeeds.
func (r *userRepository) CreateFirstUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateFirstUser").Msg("failed to begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer rollback(tx)

	if _, err = tx.ExecContext(ctx, firstUserLock); err != nil {
		log.Err(err).Str("func", "userRepository.CreateFirstUser").Msg("failed to acquire first user lock")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	row := tx.QueryRowContext(ctx, createFirstUser, r.ids.Generate(), user.Name, user.Username, user.PasswordHash, user.RoleID, nullString(user.CreatedBy))

	created, err := r.scanUserRow(row)
	if errors.Is(err, ErrNoUserWasFound) {
		log.Warn().Str("func", "userRepository.CreateFirstUser").Msg("users already exist")
		return models.User{}, ErrUsersAlreadyExist
	}
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateFirstUser").Msg("error creating first user")
		return models.User{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "userRepository.CreateFirstUser").Msg("failed to commit transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// CountUsers returns the number of stored users, soft-deleted ones included.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.CountUsers").Msg("error counting users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// FindUserByID retrieves an active user by id.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	user, err := r.scanUserRow(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil && !errors.Is(err, ErrNoUserWasFound) {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.FindUserByID").Str("user_id", userID).Msg("error finding user")
	}
	return user, err
}

// FindUserByUsername retrieves an active user, including the password hash,
// by its normalized username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := r.scanUserRow(r.db.QueryRowContext(ctx, findUserByUsername, username))
	if err != nil && !errors.Is(err, ErrNoUserWasFound) {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.FindUserByUsername").Msg("error finding user")
	}
	return user, err
}

// FindPrincipal retrieves an active user joined with its Role and the Role's
// permissions. The Role stays nil when the referenced role does not exist,
// and permission references pointing at deleted permissions are dropped.
func (r *userRepository) FindPrincipal(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findPrincipal, userID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.FindPrincipal").Str("user_id", userID).Msg("failed to execute query")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var (
		user  models.User
		found bool
	)
	for rows.Next() {
		var (
			u                 models.User
			createdBy         sql.NullString
			roleID, roleName  sql.NullString
			roleDesc          sql.NullString
			roleCreated       sql.NullTime
			roleUpdated       sql.NullTime
			permID, permName  sql.NullString
			permDesc          sql.NullString
			permCreated       sql.NullTime
			permUpdated       sql.NullTime
			passwordChangedAt sql.NullTime
		)

		scanErr := rows.Scan(
			&u.UserID, &u.Name, &u.Username, &u.PasswordHash, &u.RoleID, &u.Blocked, &u.Active,
			&passwordChangedAt, &createdBy, &u.CreatedAt, &u.UpdatedAt,
			&roleID, &roleName, &roleDesc, &roleCreated, &roleUpdated,
			&permID, &permName, &permDesc, &permCreated, &permUpdated,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.FindPrincipal").Str("user_id", userID).Msg("failed to scan principal row")
			return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if !found {
			u.PasswordChangedAt = timePtr(passwordChangedAt)
			u.CreatedBy = createdBy.String
			if roleID.Valid {
				u.Role = &models.Role{
					RoleID:      roleID.String,
					Name:        roleName.String,
					Description: roleDesc.String,
					Permissions: []models.PermissionRef{},
					CreatedAt:   roleCreated.Time,
					UpdatedAt:   roleUpdated.Time,
				}
			}
			user = u
			found = true
		}

		if user.Role != nil && permID.Valid {
			user.Role.Permissions = append(user.Role.Permissions, models.ResolvedPermission(models.Permission{
				PermissionID: permID.String,
				Name:         permName.String,
				Description:  permDesc.String,
				CreatedAt:    permCreated.Time,
				UpdatedAt:    permUpdated.Time,
			}))
		}
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "userRepository.FindPrincipal").Str("user_id", userID).Msg("error occurred during rows iteration")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if !found {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}

// ListUsers returns a page of active users ordered by creation time.
func (r *userRepository) ListUsers(ctx context.Context, params models.ListParams) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(params)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, max(params.Limit, 16))
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser applies a partial update to an active user.
//
// Error handling:
//   - no matching active user → [ErrNoUserWasFound].
//   - unique_violation on username → [ErrUsernameAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(userID, req)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdateUser").Msg("failed to create query")
		return models.User{}, err
	}

	user, err := r.scanUserRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrNoUserWasFound) {
		log.Err(err).Str("func", "userRepository.UpdateUser").Str("user_id", userID).Msg("error updating user")
	}
	return user, err
}

// UpdatePassword replaces the password hash and sets password_changed_at in
// the same statement.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) (models.User, error) {
	user, err := r.scanUserRow(r.db.QueryRowContext(ctx, updatePassword, userID, passwordHash, changedAt))
	if err != nil && !errors.Is(err, ErrNoUserWasFound) {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.UpdatePassword").Str("user_id", userID).Msg("error updating password")
	}
	return user, err
}

// DeactivateUser soft-deletes an active user.
func (r *userRepository) DeactivateUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deactivateUser, userID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeactivateUser").Str("user_id", userID).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// scanUserRow scans a single-row user result, mapping driver errors onto the
// repository sentinels.
func (r *userRepository) scanUserRow(row *sql.Row) (models.User, error) {
	if err := row.Err(); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	user, err := scanUser(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return models.User{}, ErrUsernameAlreadyExists
	case postgresError(err) != "":
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case err != nil:
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user              models.User
		passwordChangedAt sql.NullTime
		createdBy         sql.NullString
	)

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.RoleID,
		&user.Blocked,
		&user.Active,
		&passwordChangedAt,
		&createdBy,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordChangedAt = timePtr(passwordChangedAt)
	user.CreatedBy = createdBy.String

	return user, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
