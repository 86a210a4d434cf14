// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// RecordIDGenerator issues primary keys for users, roles and permissions.
// Keys are UUID v7 strings, so they sort by creation time and keep the
// btree indexes append-mostly.
type RecordIDGenerator struct{}

func NewRecordIDGenerator() RecordIDGenerator {
	return RecordIDGenerator{}
}

// Generate returns a fresh key. v7 only fails when the random source does,
// in which case a v4 key is still unique.
func (RecordIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
