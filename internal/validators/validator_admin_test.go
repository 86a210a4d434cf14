// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validCreateUser() models.CreateUserRequest {
	return models.CreateUserRequest{
		Name:            "Alice Smith",
		Username:        "Alice",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
		RoleID:          "r-1",
	}
}

func TestNewAdminValidator(t *testing.T) {
	require.NotNil(t, NewAdminValidator(8))
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewAdminValidator(8)
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestValidate_CreateUser(t *testing.T) {
	v := NewAdminValidator(8)

	tests := []struct {
		name    string
		mutate  func(r *models.CreateUserRequest)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.CreateUserRequest) {}},
		{name: "empty name", mutate: func(r *models.CreateUserRequest) { r.Name = "  " }, wantErr: ErrEmptyName},
		{name: "digits in name", mutate: func(r *models.CreateUserRequest) { r.Name = "R2D2" }, wantErr: ErrInvalidName},
		{name: "empty username", mutate: func(r *models.CreateUserRequest) { r.Username = "" }, wantErr: ErrEmptyUsername},
		{name: "username with space", mutate: func(r *models.CreateUserRequest) { r.Username = "al ice" }, wantErr: ErrInvalidUsername},
		{name: "empty password", mutate: func(r *models.CreateUserRequest) { r.Password = ""; r.PasswordConfirm = "" }, wantErr: ErrEmptyPassword},
		{name: "short password", mutate: func(r *models.CreateUserRequest) { r.Password = "short"; r.PasswordConfirm = "short" }, wantErr: ErrPasswordTooShort},
		{name: "mismatch", mutate: func(r *models.CreateUserRequest) { r.PasswordConfirm = "other-password" }, wantErr: ErrPasswordMismatch},
		{
			name: "password over bcrypt limit",
			mutate: func(r *models.CreateUserRequest) {
				r.Password = strings.Repeat("a", 73)
				r.PasswordConfirm = r.Password
			},
			wantErr: ErrPasswordTooLong,
		},
		{
			name: "multibyte password over bcrypt limit",
			mutate: func(r *models.CreateUserRequest) {
				r.Password = strings.Repeat("é", 37)
				r.PasswordConfirm = r.Password
			},
			wantErr: ErrPasswordTooLong,
		},
		{
			name: "password at bcrypt limit",
			mutate: func(r *models.CreateUserRequest) {
				r.Password = strings.Repeat("a", 72)
				r.PasswordConfirm = r.Password
			},
		},
		{name: "missing role", mutate: func(r *models.CreateUserRequest) { r.RoleID = "" }, wantErr: ErrEmptyRole},
		{
			name:   "signup skips role",
			mutate: func(r *models.CreateUserRequest) { r.RoleID = "" },
			fields: []string{FieldName, FieldUsername, FieldPassword, FieldPasswordConfirm},
		},
		{name: "unknown field", mutate: func(r *models.CreateUserRequest) {}, fields: []string{"bogus"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateUser()
			tt.mutate(&req)

			err := v.Validate(context.Background(), &req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_UpdateUser(t *testing.T) {
	v := NewAdminValidator(8)

	tests := []struct {
		name    string
		req     models.UpdateUserRequest
		wantErr error
	}{
		{name: "block only", req: models.UpdateUserRequest{Blocked: boolPtr(true)}},
		{name: "rename", req: models.UpdateUserRequest{Name: strPtr("Bob")}},
		{name: "empty", req: models.UpdateUserRequest{}, wantErr: ErrNoFieldsToUpdate},
		{name: "password smuggled", req: models.UpdateUserRequest{Name: strPtr("Bob"), Password: "x"}, wantErr: ErrPasswordUpdateNotAllowed},
		{name: "bad username", req: models.UpdateUserRequest{Username: strPtr(" ")}, wantErr: ErrEmptyUsername},
		{name: "empty role", req: models.UpdateUserRequest{RoleID: strPtr("")}, wantErr: ErrEmptyRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ChangePassword(t *testing.T) {
	v := NewAdminValidator(8)

	assert.NoError(t, v.Validate(context.Background(), models.ChangePasswordRequest{
		PasswordCurrent: "old", Password: "new-password", PasswordConfirm: "new-password",
	}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePasswordRequest{
		Password: "new-password", PasswordConfirm: "new-password",
	}), ErrEmptyCurrentPassword)
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePasswordRequest{
		PasswordCurrent: "old", Password: "new-password", PasswordConfirm: "new-passw0rd",
	}), ErrPasswordMismatch)

	long := strings.Repeat("x", PasswordMaxBytes+1)
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePasswordRequest{
		PasswordCurrent: "old", Password: long, PasswordConfirm: long,
	}), ErrPasswordTooLong)
}

func TestValidate_Login(t *testing.T) {
	v := NewAdminValidator(8)

	assert.NoError(t, v.Validate(context.Background(), models.LoginRequest{Username: "alice", Password: "x"}))
	assert.ErrorIs(t, v.Validate(context.Background(), &models.LoginRequest{Username: " ", Password: "x"}), ErrMissingCredentials)
	assert.ErrorIs(t, v.Validate(context.Background(), models.LoginRequest{Username: "alice"}), ErrMissingCredentials)
}

func TestValidate_Roles(t *testing.T) {
	v := NewAdminValidator(8)
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CreateRoleRequest{Name: "editor", PermissionIDs: []string{"p-1"}}))
	assert.ErrorIs(t, v.Validate(ctx, models.CreateRoleRequest{Name: ""}), ErrEmptyRoleName)
	assert.ErrorIs(t, v.Validate(ctx, models.CreateRoleRequest{Name: "editor", PermissionIDs: []string{""}}), ErrEmptyPermissionID)

	assert.ErrorIs(t, v.Validate(ctx, models.UpdateRoleRequest{}), ErrNoFieldsToUpdate)
	assert.ErrorIs(t, v.Validate(ctx, models.UpdateRoleRequest{Name: strPtr("")}), ErrEmptyRoleName)
	assert.NoError(t, v.Validate(ctx, models.UpdateRoleRequest{Description: strPtr("")}))

	assert.NoError(t, v.Validate(ctx, models.UpdateRolePermissionsRequest{}))
}

func TestValidate_Permissions(t *testing.T) {
	v := NewAdminValidator(8)
	ctx := context.Background()

	tests := []struct {
		name    string
		wantErr error
	}{
		{name: "user:read"},
		{name: "project:delete"},
		{name: "link:*"},
		{name: "", wantErr: ErrEmptyPermissionName},
		{name: "userread", wantErr: ErrInvalidPermissionName},
		{name: "User:Read", wantErr: ErrInvalidPermissionName},
		{name: "user:", wantErr: ErrInvalidPermissionName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, models.CreatePermissionRequest{Name: tt.name})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, v.Validate(ctx, models.UpdatePermissionRequest{}), ErrNoFieldsToUpdate)
	assert.ErrorIs(t, v.Validate(ctx, models.UpdatePermissionRequest{Name: strPtr("bad")}), ErrInvalidPermissionName)
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  ALice "))
}
