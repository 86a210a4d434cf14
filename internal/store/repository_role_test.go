// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roleRowColumns = []string{"id", "name", "description", "created_at", "updated_at"}

func newTestRoleRepo(t *testing.T) (*roleRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &roleRepository{db: db, ids: fixedIDs("r-1"), logger: logger.Nop()}, mock
}

func TestRoleRepository_CreateRole(t *testing.T) {
	repo, mock := newTestRoleRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM permissions WHERE id IN \\(\\$1,\\$2\\) FOR SHARE").
		WithArgs("p-1", "p-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1").AddRow("p-2"))
	mock.ExpectQuery("INSERT INTO roles").
		WithArgs("r-1", "editor", "edits users").
		WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("r-1", "editor", "edits users", now, now))
	mock.ExpectExec("INSERT INTO role_permissions").
		WithArgs("r-1", "p-1", "r-1", "p-2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	role, err := repo.CreateRole(context.Background(), models.Role{
		Name:        "editor",
		Description: "edits users",
		Permissions: []models.PermissionRef{
			models.UnresolvedPermission("p-1"),
			models.UnresolvedPermission("p-2"),
			models.UnresolvedPermission("p-1"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", role.RoleID)
	assert.Equal(t, []string{"p-1", "p-2"}, role.PermissionIDs())
	assert.False(t, role.FullyResolved())
	expectationsMet(t, mock)
}

func TestRoleRepository_CreateRole_UnknownPermission(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR SHARE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1"))
	mock.ExpectRollback()

	_, err := repo.CreateRole(context.Background(), models.Role{
		Name:        "editor",
		Permissions: []models.PermissionRef{models.UnresolvedPermission("p-1"), models.UnresolvedPermission("p-missing")},
	})
	assert.ErrorIs(t, err, ErrUnknownPermission)
	expectationsMet(t, mock)
}

func TestRoleRepository_CreateRole_NameTaken(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO roles").WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.CreateRole(context.Background(), models.Role{Name: "editor"})
	assert.ErrorIs(t, err, ErrRoleNameAlreadyExists)
	expectationsMet(t, mock)
}

func TestRoleRepository_FindRoleByID(t *testing.T) {
	repo, mock := newTestRoleRepo(t)
	now := time.Now()

	mock.ExpectQuery("FROM roles WHERE id = \\$1").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("r-1", "editor", "", now, now))
	mock.ExpectQuery("SELECT role_id, permission_id FROM role_permissions").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "permission_id"}).
			AddRow("r-1", "p-1").
			AddRow("r-1", "p-deleted"))

	role, err := repo.FindRoleByID(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-deleted"}, role.PermissionIDs())
	assert.Empty(t, role.PermissionNames())
	expectationsMet(t, mock)
}

func TestRoleRepository_FindRoleByName_NotFound(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectQuery("FROM roles WHERE name = \\$1").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(roleRowColumns))

	_, err := repo.FindRoleByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRoleRepository_ListRoles(t *testing.T) {
	repo, mock := newTestRoleRepo(t)
	now := time.Now()

	mock.ExpectQuery("FROM roles ORDER BY name").
		WillReturnRows(sqlmock.NewRows(roleRowColumns).
			AddRow("r-1", "admin", "", now, now).
			AddRow("r-2", "viewer", "", now, now))
	mock.ExpectQuery("FROM role_permissions").
		WithArgs("r-1", "r-2").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "permission_id"}).AddRow("r-1", "p-1"))

	roles, err := repo.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, []string{"p-1"}, roles[0].PermissionIDs())
	assert.NotNil(t, roles[1].Permissions)
	assert.Empty(t, roles[1].Permissions)
	expectationsMet(t, mock)
}

func TestRoleRepository_ListRoles_Empty(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectQuery("FROM roles").WillReturnRows(sqlmock.NewRows(roleRowColumns))

	roles, err := repo.ListRoles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roles)
	expectationsMet(t, mock)
}

func TestRoleRepository_UpdateRole(t *testing.T) {
	repo, mock := newTestRoleRepo(t)
	now := time.Now()
	name := "writer"

	mock.ExpectQuery("UPDATE roles SET updated_at = NOW\\(\\), name = \\$1 WHERE id = \\$2").
		WithArgs("writer", "r-1").
		WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("r-1", "writer", "", now, now))
	mock.ExpectQuery("FROM role_permissions").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "permission_id"}))

	role, err := repo.UpdateRole(context.Background(), "r-1", models.UpdateRoleRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "writer", role.Name)
	expectationsMet(t, mock)
}

func TestRoleRepository_ReplaceRolePermissions(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectQuery("FOR SHARE").WithArgs("p-3").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-3"))
	mock.ExpectExec("DELETE FROM role_permissions").WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO role_permissions").WithArgs("r-1", "p-3").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE roles SET updated_at").WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceRolePermissions(context.Background(), "r-1", []string{"p-3"})
	require.NoError(t, err)
	expectationsMet(t, mock)
}

func TestRoleRepository_ReplaceRolePermissions_Empty(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectExec("DELETE FROM role_permissions").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE roles SET updated_at").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceRolePermissions(context.Background(), "r-1", nil))
	expectationsMet(t, mock)
}

func TestRoleRepository_ReplaceRolePermissions_RoleNotFound(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.ReplaceRolePermissions(context.Background(), "r-x", []string{"p-1"})
	assert.ErrorIs(t, err, ErrRoleNotFound)
	expectationsMet(t, mock)
}

func TestRoleRepository_DeleteRole(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectExec("DELETE FROM roles").WithArgs("r-1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteRole(context.Background(), "r-1"), ErrRoleNotFound)
}

func TestRoleRepository_FindRolePermissions(t *testing.T) {
	repo, mock := newTestRoleRepo(t)
	now := time.Now()

	mock.ExpectQuery("JOIN permissions p").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("p-1", "user:read", "", now, now))

	permissions, err := repo.FindRolePermissions(context.Background(), "r-1")
	require.NoError(t, err)
	require.Len(t, permissions, 1)
	assert.Equal(t, "user:read", permissions[0].Name)
}

func TestRoleRepository_QueryError(t *testing.T) {
	repo, mock := newTestRoleRepo(t)

	mock.ExpectQuery("FROM roles").WillReturnError(errors.New("boom"))

	_, err := repo.ListRoles(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
