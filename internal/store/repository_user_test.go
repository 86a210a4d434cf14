// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
)

var userRowColumns = []string{
	"id", "name", "username", "password_hash", "role_id", "blocked", "active",
	"password_changed_at", "created_by", "created_at", "updated_at",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, ids: fixedIDs("u-1"), logger: logger.Nop()}, mock
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{Name: "Alice", Username: "alice", PasswordHash: "$2a$hash", RoleID: "r-1", CreatedBy: "admin-1"}
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u-1", "Alice", "alice", "$2a$hash", "r-1", "admin-1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Alice", "alice", "$2a$hash", "r-1", false, true, nil, "admin-1", now, now))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != "u-1" {
		t.Errorf("expected UserID=u-1, got %s", created.UserID)
	}
	if !created.Active || created.Blocked {
		t.Errorf("expected active unblocked user, got %+v", created)
	}
	if created.PasswordChangedAt != nil {
		t.Errorf("expected nil PasswordChangedAt, got %v", created.PasswordChangedAt)
	}
	if created.CreatedBy != "admin-1" {
		t.Errorf("expected CreatedBy=admin-1, got %s", created.CreatedBy)
	}
	expectationsMet(t, mock)
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestCreateFirstUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u-1", "Root", "root", "hash", "r-admin", nil).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Root", "root", "hash", "r-admin", false, true, nil, nil, now, now))
	mock.ExpectCommit()

	created, err := repo.CreateFirstUser(context.Background(), models.User{Name: "Root", Username: "root", PasswordHash: "hash", RoleID: "r-admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != "u-1" || created.CreatedBy != "" {
		t.Errorf("unexpected user: %+v", created)
	}
	expectationsMet(t, mock)
}

func TestCreateFirstUser_UsersAlreadyExist(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(sqlmock.NewRows(userRowColumns))
	mock.ExpectRollback()

	_, err := repo.CreateFirstUser(context.Background(), models.User{Username: "root"})
	if !errors.Is(err, ErrUsersAlreadyExist) {
		t.Fatalf("expected ErrUsersAlreadyExist, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestCreateFirstUser_BeginError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.CreateFirstUser(context.Background(), models.User{Username: "root"})
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestCreateFirstUser_CommitError(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Root", "root", "hash", "r-admin", false, true, nil, nil, now, now))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateFirstUser(context.Background(), models.User{Username: "root"})
	if !errors.Is(err, ErrCommitingTransaction) {
		t.Fatalf("expected ErrCommitingTransaction, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()
	changed := now.Add(-time.Hour)

	mock.ExpectQuery("FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Alice", "alice", "hash", "r-1", true, true, changed, nil, now, now))

	user, err := repo.FindUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash != "hash" {
		t.Errorf("expected hash to be loaded, got %q", user.PasswordHash)
	}
	if !user.Blocked {
		t.Error("expected blocked user")
	}
	if user.PasswordChangedAt == nil || !user.PasswordChangedAt.Equal(changed) {
		t.Errorf("expected PasswordChangedAt=%v, got %v", changed, user.PasswordChangedAt)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").WillReturnError(errors.New("boom"))

	_, err := repo.FindUserByID(context.Background(), "u-1")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

var principalColumns = append(append([]string{}, userRowColumns...),
	"r_id", "r_name", "r_description", "r_created_at", "r_updated_at",
	"p_id", "p_name", "p_description", "p_created_at", "p_updated_at",
)

func TestFindPrincipal_ResolvesRoleAndPermissions(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery("LEFT JOIN roles").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(principalColumns).
			AddRow("u-1", "Alice", "alice", "hash", "r-1", false, true, nil, nil, now, now,
				"r-1", "editor", "", now, now, "p-1", "user:read", "", now, now).
			AddRow("u-1", "Alice", "alice", "hash", "r-1", false, true, nil, nil, now, now,
				"r-1", "editor", "", now, now, "p-2", "user:update", "", now, now))

	user, err := repo.FindPrincipal(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role == nil {
		t.Fatal("expected role to be populated")
	}
	if user.Role.Name != "editor" {
		t.Errorf("expected role editor, got %s", user.Role.Name)
	}
	if len(user.Role.Permissions) != 2 || !user.Role.FullyResolved() {
		t.Fatalf("expected two resolved permissions, got %+v", user.Role.Permissions)
	}
	names := user.Role.PermissionNames()
	if _, ok := names["user:update"]; !ok {
		t.Errorf("expected user:update in %v", names)
	}
}

func TestFindPrincipal_DanglingRole(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery("LEFT JOIN roles").
		WillReturnRows(sqlmock.NewRows(principalColumns).
			AddRow("u-1", "Alice", "alice", "hash", "r-gone", false, true, nil, nil, now, now,
				nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	user, err := repo.FindPrincipal(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != nil {
		t.Errorf("expected nil role, got %+v", user.Role)
	}
	if user.RoleID != "r-gone" {
		t.Errorf("expected dangling RoleID to be kept, got %s", user.RoleID)
	}
}

func TestFindPrincipal_RoleWithoutPermissions(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery("LEFT JOIN roles").
		WillReturnRows(sqlmock.NewRows(principalColumns).
			AddRow("u-1", "Alice", "alice", "hash", "r-1", false, true, nil, nil, now, now,
				"r-1", "empty", "", now, now, nil, nil, nil, nil, nil))

	user, err := repo.FindPrincipal(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role == nil || len(user.Role.Permissions) != 0 {
		t.Fatalf("expected role without permissions, got %+v", user.Role)
	}
}

func TestFindPrincipal_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("LEFT JOIN roles").WillReturnRows(sqlmock.NewRows(principalColumns))

	_, err := repo.FindPrincipal(context.Background(), "u-1")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM users WHERE active = \\$1 ORDER BY created_at, id LIMIT 2 OFFSET 2").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-3", "C", "c", "h", "r-1", false, true, nil, nil, now, now).
			AddRow("u-4", "D", "d", "h", "r-1", false, true, nil, nil, now, now))

	users, err := repo.ListUsers(context.Background(), models.ListParams{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].UserID != "u-3" {
		t.Fatalf("unexpected users: %+v", users)
	}
	expectationsMet(t, mock)
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	name := "Bob"

	mock.ExpectQuery("UPDATE users").WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.UpdateUser(context.Background(), "u-1", models.UpdateUserRequest{Name: &name})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateUser_UsernameTaken(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	username := "bob"

	mock.ExpectQuery("UPDATE users").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateUser(context.Background(), "u-1", models.UpdateUserRequest{Username: &username})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()
	changedAt := now.Truncate(time.Second)

	mock.ExpectQuery("UPDATE users").
		WithArgs("u-1", "new-hash", changedAt).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Alice", "alice", "new-hash", "r-1", false, true, changedAt, nil, now, now))

	user, err := repo.UpdatePassword(context.Background(), "u-1", "new-hash", changedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordChangedAt == nil || !user.PasswordChangedAt.Equal(changedAt) {
		t.Errorf("expected PasswordChangedAt=%v, got %v", changedAt, user.PasswordChangedAt)
	}
	expectationsMet(t, mock)
}

func TestDeactivateUser(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		execErr error
		wantErr error
	}{
		{name: "deactivated", result: sqlmock.NewResult(0, 1)},
		{name: "not found", result: sqlmock.NewResult(0, 0), wantErr: ErrNoUserWasFound},
		{name: "db error", execErr: errors.New("boom"), wantErr: ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			exp := mock.ExpectExec("UPDATE users").WithArgs("u-1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.DeactivateUser(context.Background(), "u-1")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
