// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeAppInfo struct{ version string }

func (f fakeAppInfo) GetAppVersion(context.Context) string { return f.version }

// fakeSessions maps raw tokens to principals.
type fakeSessions map[string]models.Principal

func (f fakeSessions) Validate(_ context.Context, rawToken string) (models.Principal, error) {
	if rawToken == "" {
		return models.Principal{}, service.ErrNotLoggedIn
	}
	if rawToken == "blocked-token" {
		return models.Principal{}, service.ErrUserBlocked
	}
	p, ok := f[rawToken]
	if !ok {
		return models.Principal{}, service.ErrInvalidSession
	}
	return p, nil
}

type fakeAuth struct {
	signup         func(models.CreateUserRequest) (models.User, models.Token, error)
	login          func(models.LoginRequest) (models.User, models.Token, error)
	updatePassword func(string, models.ChangePasswordRequest) (models.User, models.Token, error)
}

func (f *fakeAuth) Signup(_ context.Context, req models.CreateUserRequest) (models.User, models.Token, error) {
	return f.signup(req)
}

func (f *fakeAuth) Login(_ context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	return f.login(req)
}

func (f *fakeAuth) UpdatePassword(_ context.Context, userID string, req models.ChangePasswordRequest) (models.User, models.Token, error) {
	return f.updatePassword(userID, req)
}

// fakeCredentials stores users in memory.
type fakeCredentials struct {
	users   map[string]models.User
	created []models.CreateUserRequest
	err     error
}

func (f *fakeCredentials) CreateUser(_ context.Context, req models.CreateUserRequest) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	f.created = append(f.created, req)
	return models.User{UserID: "u-new", Username: req.Username, CreatedBy: req.CreatedBy}, nil
}

func (f *fakeCredentials) ChangePassword(context.Context, string, models.ChangePasswordRequest) (models.User, error) {
	return models.User{}, f.err
}

func (f *fakeCredentials) VerifyPassword(string, string) bool { return false }

func (f *fakeCredentials) GetUser(_ context.Context, userID string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return models.User{}, service.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeCredentials) ListUsers(_ context.Context, params models.ListParams) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeCredentials) UpdateUser(_ context.Context, userID string, req models.UpdateUserRequest) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return models.User{}, service.ErrUserNotFound
	}
	if req.Blocked != nil {
		u.Blocked = *req.Blocked
	}
	return u, nil
}

func (f *fakeCredentials) DeleteUser(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[userID]; !ok {
		return service.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakeRoles struct {
	roles map[string]models.Role
	err   error
}

func (f *fakeRoles) CreateRole(_ context.Context, req models.CreateRoleRequest) (models.Role, error) {
	if f.err != nil {
		return models.Role{}, f.err
	}
	return models.Role{RoleID: "r-new", Name: req.Name}, nil
}

func (f *fakeRoles) GetRole(_ context.Context, id string) (models.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return models.Role{}, service.ErrRoleNotFound
	}
	return r, nil
}

func (f *fakeRoles) ListRoles(context.Context) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(f.roles))
	for _, r := range f.roles {
		roles = append(roles, r)
	}
	return roles, f.err
}

func (f *fakeRoles) UpdateRole(ctx context.Context, id string, _ models.UpdateRoleRequest) (models.Role, error) {
	return f.GetRole(ctx, id)
}

func (f *fakeRoles) UpdateRolePermissions(_ context.Context, id string, req models.UpdateRolePermissionsRequest) (models.Role, error) {
	if f.err != nil {
		return models.Role{}, f.err
	}
	r, ok := f.roles[id]
	if !ok {
		return models.Role{}, service.ErrRoleNotFound
	}
	r.Permissions = nil
	for _, pid := range req.PermissionIDs {
		r.Permissions = append(r.Permissions, models.ResolvedPermission(models.Permission{PermissionID: pid, Name: "resolved:" + pid}))
	}
	return r, nil
}

func (f *fakeRoles) ResolvePermissions(_ context.Context, role models.Role) (map[string]struct{}, error) {
	return role.PermissionNames(), nil
}

func (f *fakeRoles) DeleteRole(_ context.Context, id string) error {
	if _, ok := f.roles[id]; !ok {
		return service.ErrRoleNotFound
	}
	return nil
}

type fakePermissions struct {
	permissions []models.Permission
	lastParams  models.ListParams
	err         error
}

func (f *fakePermissions) CreatePermission(_ context.Context, req models.CreatePermissionRequest) (models.Permission, error) {
	if f.err != nil {
		return models.Permission{}, f.err
	}
	return models.Permission{PermissionID: "p-new", Name: req.Name}, nil
}

func (f *fakePermissions) GetPermission(_ context.Context, id string) (models.Permission, error) {
	for _, p := range f.permissions {
		if p.PermissionID == id {
			return p, nil
		}
	}
	return models.Permission{}, service.ErrPermissionNotFound
}

func (f *fakePermissions) ListPermissions(_ context.Context, params models.ListParams) ([]models.Permission, error) {
	f.lastParams = params
	return f.permissions, f.err
}

func (f *fakePermissions) UpdatePermission(ctx context.Context, id string, _ models.UpdatePermissionRequest) (models.Permission, error) {
	if f.err != nil {
		return models.Permission{}, f.err
	}
	return f.GetPermission(ctx, id)
}

func (f *fakePermissions) DeletePermission(ctx context.Context, id string) error {
	_, err := f.GetPermission(ctx, id)
	return err
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

func principalWith(userID, roleName string, permissions ...string) models.Principal {
	role := &models.Role{RoleID: "r-" + roleName, Name: roleName}
	for i, name := range permissions {
		role.Permissions = append(role.Permissions, models.ResolvedPermission(models.Permission{
			PermissionID: roleName + "-p" + strconv.Itoa(i),
			Name:         name,
		}))
	}
	return models.NewPrincipal(models.User{UserID: userID, Username: userID, RoleID: role.RoleID, Role: role, Active: true})
}

var allPermissions = []string{
	"user:create", "user:read", "user:update", "user:delete",
	"role:create", "role:read", "role:update", "role:delete",
	"permission:create", "permission:read", "permission:update", "permission:delete",
}

type testAPI struct {
	handler     *Handler
	router      http.Handler
	auth        *fakeAuth
	credentials *fakeCredentials
	roles       *fakeRoles
	permissions *fakePermissions
}

func newTestAPI(t *testing.T, opts ...Option) *testAPI {
	t.Helper()

	api := &testAPI{
		auth: &fakeAuth{},
		credentials: &fakeCredentials{users: map[string]models.User{
			"u-admin":  {UserID: "u-admin", Username: "root"},
			"u-editor": {UserID: "u-editor", Username: "alice"},
			"u-viewer": {UserID: "u-viewer", Username: "bob"},
		}},
		roles: &fakeRoles{roles: map[string]models.Role{
			"r-editor": {RoleID: "r-editor", Name: "editor"},
		}},
		permissions: &fakePermissions{permissions: []models.Permission{
			{PermissionID: "p-1", Name: "user:read"},
		}},
	}

	services := &service.Services{
		AuthService:       api.auth,
		CredentialService: api.credentials,
		RoleService:       api.roles,
		PermissionService: api.permissions,
		SessionValidator: fakeSessions{
			"admin-token":  principalWith("u-admin", service.SuperAdminRole, allPermissions...),
			"editor-token": principalWith("u-editor", "editor", "user:read", "user:update"),
			"viewer-token": principalWith("u-viewer", "viewer"),
		},
		Authorizer:     service.NewAuthorizer(),
		AppInfoService: fakeAppInfo{version: "1.2.3"},
	}

	api.handler = NewHandler(services, config.Server{}, logger.Nop(), opts...)
	api.router = api.handler.Init()
	return api
}

// do sends a JSON request through the router with an optional bearer token.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func issuedToken(raw string) models.Token {
	return models.Token{SignedString: raw}
}
