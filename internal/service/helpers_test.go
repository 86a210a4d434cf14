// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/mock"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/internal/validators"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type mockStorages struct {
	users       *mock.MockUserRepository
	roles       *mock.MockRoleRepository
	permissions *mock.MockPermissionRepository
	storages    *store.Storages
}

func newMockStorages(t *testing.T) mockStorages {
	ctrl := gomock.NewController(t)

	m := mockStorages{
		users:       mock.NewMockUserRepository(ctrl),
		roles:       mock.NewMockRoleRepository(ctrl),
		permissions: mock.NewMockPermissionRepository(ctrl),
	}
	m.storages = &store.Storages{
		UserRepository:       m.users,
		RoleRepository:       m.roles,
		PermissionRepository: m.permissions,
	}
	return m
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:      "test-sign-key",
		TokenIssuer:       "nokan-api-test",
		TokenDuration:     24 * time.Hour,
		PasswordHashCost:  bcrypt.MinCost,
		PasswordMinLength: 8,
		Version:           "1.0.0",
	}
}

func testValidator() validators.Validator {
	return validators.NewAdminValidator(8)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
