// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authFixture struct {
	auth        AuthService
	credentials CredentialService
	sessions    SessionValidator
	tokens      TokenService
	m           mockStorages
	clock       *testClock
}

func newAuthFixture(t *testing.T) authFixture {
	clock := newTestClock()
	m := newMockStorages(t)
	cfg := testAppConfig()

	tokens := NewTokenService(cfg, clock.Now, logger.Nop())
	credentials := NewCredentialService(m.storages, testValidator(), cfg, clock.Now, logger.Nop())

	return authFixture{
		auth:        NewAuthService(m.storages, credentials, tokens, testValidator(), cfg, logger.Nop()),
		credentials: credentials,
		sessions:    NewSessionValidator(tokens, m.storages, logger.Nop()),
		tokens:      tokens,
		m:           m,
		clock:       clock,
	}
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.m.users.EXPECT().CountUsers(gomock.Any()).Return(int64(0), nil)
	f.m.roles.EXPECT().FindRoleByName(gomock.Any(), SuperAdminRole).Return(models.Role{RoleID: "r-super", Name: SuperAdminRole}, nil)
	f.m.users.EXPECT().CreateFirstUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "r-super", u.RoleID)
			assert.Equal(t, "root", u.Username)
			u.UserID = "u-root"
			return u, nil
		})

	user, token, err := f.auth.Signup(ctx, models.CreateUserRequest{
		Name:            "Root",
		Username:        "Root",
		Password:        "rootpassword",
		PasswordConfirm: "rootpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-root", user.UserID)

	verified, err := f.tokens.Verify(ctx, token.String())
	require.NoError(t, err)
	sub, _ := verified.UserID()
	assert.Equal(t, "u-root", sub)
}

func TestAuthService_Signup_Closed(t *testing.T) {
	f := newAuthFixture(t)

	f.m.users.EXPECT().CountUsers(gomock.Any()).Return(int64(1), nil)

	_, _, err := f.auth.Signup(context.Background(), models.CreateUserRequest{
		Name: "Late", Username: "late", Password: "latepassword", PasswordConfirm: "latepassword",
	})
	assert.ErrorIs(t, err, ErrSignupClosed)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthService_Signup_LostRace(t *testing.T) {
	f := newAuthFixture(t)

	f.m.users.EXPECT().CountUsers(gomock.Any()).Return(int64(0), nil)
	f.m.roles.EXPECT().FindRoleByName(gomock.Any(), SuperAdminRole).Return(models.Role{RoleID: "r-super"}, nil)
	f.m.users.EXPECT().CreateFirstUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsersAlreadyExist)

	_, _, err := f.auth.Signup(context.Background(), models.CreateUserRequest{
		Name: "Root", Username: "root", Password: "rootpassword", PasswordConfirm: "rootpassword",
	})
	assert.ErrorIs(t, err, ErrSignupClosed)
}

func TestAuthService_Signup_MissingSuperAdminRole(t *testing.T) {
	f := newAuthFixture(t)

	f.m.users.EXPECT().CountUsers(gomock.Any()).Return(int64(0), nil)
	f.m.roles.EXPECT().FindRoleByName(gomock.Any(), SuperAdminRole).Return(models.Role{}, store.ErrRoleNotFound)

	_, _, err := f.auth.Signup(context.Background(), models.CreateUserRequest{
		Name: "Root", Username: "root", Password: "rootpassword", PasswordConfirm: "rootpassword",
	})
	assert.ErrorIs(t, err, ErrSuperAdminRoleNotFound)
}

func TestAuthService_Signup_PasswordTooLong(t *testing.T) {
	f := newAuthFixture(t)

	f.m.users.EXPECT().CountUsers(gomock.Any()).Return(int64(0), nil)

	long := strings.Repeat("p", 80)
	_, token, err := f.auth.Signup(context.Background(), models.CreateUserRequest{
		Name: "Root", Username: "root", Password: long, PasswordConfirm: long,
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, token.String())
}

func TestAuthService_UpdatePassword_TooLong(t *testing.T) {
	f := newAuthFixture(t)

	long := strings.Repeat("p", 80)
	_, token, err := f.auth.UpdatePassword(context.Background(), "u-alice", models.ChangePasswordRequest{
		PasswordCurrent: "wonderland", Password: long, PasswordConfirm: long,
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, token.String())
}

func TestAuthService_Login(t *testing.T) {
	hash := mustHash(t, "wonderland")

	tests := []struct {
		name    string
		req     models.LoginRequest
		user    models.User
		findErr error
		wantErr error
	}{
		{
			name: "success with different case",
			req:  models.LoginRequest{Username: "ALICE", Password: "wonderland"},
			user: models.User{UserID: "u-alice", Username: "alice", PasswordHash: hash},
		},
		{
			name:    "unknown username",
			req:     models.LoginRequest{Username: "alice", Password: "wonderland"},
			findErr: store.ErrNoUserWasFound,
			wantErr: ErrIncorrectLogin,
		},
		{
			name:    "wrong password",
			req:     models.LoginRequest{Username: "alice", Password: "wonderlanD"},
			user:    models.User{UserID: "u-alice", Username: "alice", PasswordHash: hash},
			wantErr: ErrIncorrectLogin,
		},
		{
			name:    "blocked",
			req:     models.LoginRequest{Username: "alice", Password: "wonderland"},
			user:    models.User{UserID: "u-alice", Username: "alice", PasswordHash: hash, Blocked: true},
			wantErr: ErrAccountBlocked,
		},
		{
			name:    "blocked with wrong password",
			req:     models.LoginRequest{Username: "alice", Password: "nope-nope"},
			user:    models.User{UserID: "u-alice", Username: "alice", PasswordHash: hash, Blocked: true},
			wantErr: ErrIncorrectLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.m.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(tt.user, tt.findErr)

			user, token, err := f.auth.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token.String())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u-alice", user.UserID)
			assert.NotEmpty(t, token.String())
		})
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.auth.Login(context.Background(), models.LoginRequest{Username: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_UpdatePassword_FailureIssuesNothing(t *testing.T) {
	f := newAuthFixture(t)

	f.m.users.EXPECT().FindUserByID(gomock.Any(), "u-alice").
		Return(models.User{UserID: "u-alice", PasswordHash: mustHash(t, "wonderland")}, nil)
	f.m.users.EXPECT().UpdatePassword(gomock.Any(), "u-alice", gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrExecutingQuery)

	_, token, err := f.auth.UpdatePassword(context.Background(), "u-alice", models.ChangePasswordRequest{
		PasswordCurrent: "wonderland", Password: "looking-glass", PasswordConfirm: "looking-glass",
	})
	require.Error(t, err)
	assert.Empty(t, token.String())
}

// TestAuthService_PasswordChangeInvalidatesOlderSessions walks one account
// through login, authorization, a password change and re-authorization.
func TestAuthService_PasswordChangeInvalidatesOlderSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	authorizer := NewAuthorizer()

	alice := models.User{
		UserID:       "u-alice",
		Name:         "Alice",
		Username:     "alice",
		PasswordHash: mustHash(t, "wonderland"),
		RoleID:       "r-editor",
		Role:         editorRole(),
		Active:       true,
	}

	f.m.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(alice, nil)
	f.m.users.EXPECT().FindUserByID(gomock.Any(), "u-alice").
		DoAndReturn(func(context.Context, string) (models.User, error) { return alice, nil })
	f.m.users.EXPECT().FindPrincipal(gomock.Any(), "u-alice").
		DoAndReturn(func(context.Context, string) (models.User, error) { return alice, nil }).AnyTimes()
	f.m.users.EXPECT().UpdatePassword(gomock.Any(), "u-alice", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hash string, changedAt time.Time) (models.User, error) {
			alice.PasswordHash = hash
			alice.PasswordChangedAt = &changedAt
			return alice, nil
		})

	_, oldToken, err := f.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)

	principal, err := f.sessions.Validate(ctx, oldToken.String())
	require.NoError(t, err)
	assert.NoError(t, authorizer.RequirePermission(principal, "user:read"))
	assert.ErrorIs(t, authorizer.RequirePermission(principal, "user:delete"), ErrPermissionDenied)

	f.clock.Advance(time.Minute)

	_, newToken, err := f.auth.UpdatePassword(ctx, "u-alice", models.ChangePasswordRequest{
		PasswordCurrent: "wonderland", Password: "looking-glass", PasswordConfirm: "looking-glass",
	})
	require.NoError(t, err)

	_, err = f.sessions.Validate(ctx, oldToken.String())
	assert.ErrorIs(t, err, ErrPasswordChanged)

	principal, err = f.sessions.Validate(ctx, newToken.String())
	require.NoError(t, err)
	assert.Equal(t, "u-alice", principal.ID())
}

// TestAuthService_BlockingRevokesLiveSession blocks an account while its
// token is still unexpired and checks that the same token is then refused.
func TestAuthService_BlockingRevokesLiveSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	authorizer := NewAuthorizer()

	alice := models.User{
		UserID:       "u-alice",
		Name:         "Alice",
		Username:     "alice",
		PasswordHash: mustHash(t, "wonderland"),
		RoleID:       "r-editor",
		Role:         editorRole(),
		Active:       true,
	}

	f.m.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(alice, nil)
	f.m.users.EXPECT().FindPrincipal(gomock.Any(), "u-alice").
		DoAndReturn(func(context.Context, string) (models.User, error) { return alice, nil }).AnyTimes()
	f.m.users.EXPECT().UpdateUser(gomock.Any(), "u-alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req models.UpdateUserRequest) (models.User, error) {
			alice.Blocked = *req.Blocked
			return alice, nil
		})

	_, token, err := f.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)

	principal, err := f.sessions.Validate(ctx, token.String())
	require.NoError(t, err)
	assert.NoError(t, authorizer.RequirePermission(principal, "user:read"))

	f.clock.Advance(time.Minute)

	_, err = f.credentials.UpdateUser(ctx, "u-alice", models.UpdateUserRequest{Blocked: boolPtr(true)})
	require.NoError(t, err)

	_, err = f.sessions.Validate(ctx, token.String())
	assert.ErrorIs(t, err, ErrUserBlocked)
	assert.ErrorIs(t, err, ErrBlocked)
}
