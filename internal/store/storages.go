// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
)

// Storages groups the repositories handed to the service layer.
type Storages struct {
	UserRepository       UserRepository
	RoleRepository       RoleRepository
	PermissionRepository PermissionRepository
}

// NewStorages builds PostgreSQL-backed repositories sharing db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	ids := utils.NewRecordIDGenerator()

	return &Storages{
		UserRepository:       NewUserRepository(db, ids, logger),
		RoleRepository:       NewRoleRepository(db, ids, logger),
		PermissionRepository: NewPermissionRepository(db, ids, logger),
	}
}
