// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Permission is an atomic named capability, conventionally `resource:action`
// (e.g. `user:read`), checked by exact-name membership.
type Permission struct {
	PermissionID string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Permission model.
func (p Permission) TableName() string {
	return "permissions"
}

// PermissionRef is a reference from a Role to a Permission. It is either
// unresolved (only ID is known) or resolved (Permission is populated).
// Permission names may only be compared after the reference is resolved.
type PermissionRef struct {
	ID         string
	Permission *Permission
}

// UnresolvedPermission returns a reference carrying only the permission id.
func UnresolvedPermission(id string) PermissionRef {
	return PermissionRef{ID: id}
}

// ResolvedPermission returns a reference populated with p.
func ResolvedPermission(p Permission) PermissionRef {
	return PermissionRef{ID: p.PermissionID, Permission: &p}
}

// Resolved reports whether the referenced Permission is populated.
func (r PermissionRef) Resolved() bool {
	return r.Permission != nil
}

// MarshalJSON renders resolved references as the full permission object and
// unresolved ones as the bare id.
func (r PermissionRef) MarshalJSON() ([]byte, error) {
	if r.Resolved() {
		return json.Marshal(r.Permission)
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts both forms produced by MarshalJSON.
func (r *PermissionRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = UnresolvedPermission(id)
		return nil
	}

	var p Permission
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = ResolvedPermission(p)
	return nil
}

// Role is a named bundle of permissions.
type Role struct {
	RoleID      string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions []PermissionRef `json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Role model.
func (r Role) TableName() string {
	return "roles"
}

// PermissionIDs returns the ids of all referenced permissions regardless of
// their resolution state.
func (r Role) PermissionIDs() []string {
	ids := make([]string, 0, len(r.Permissions))
	for _, ref := range r.Permissions {
		ids = append(ids, ref.ID)
	}
	return ids
}

// FullyResolved reports whether every permission reference is populated.
func (r Role) FullyResolved() bool {
	for _, ref := range r.Permissions {
		if !ref.Resolved() {
			return false
		}
	}
	return true
}

// PermissionNames returns the set of names of the resolved permissions.
// Unresolved references contribute nothing.
func (r Role) PermissionNames() map[string]struct{} {
	names := make(map[string]struct{}, len(r.Permissions))
	for _, ref := range r.Permissions {
		if ref.Resolved() {
			names[ref.Permission.Name] = struct{}{}
		}
	}
	return names
}

// CreateRoleRequest is the input of role creation.
type CreateRoleRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permissions"`
}

// UpdateRoleRequest is a partial update of a role's name and description.
type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateRolePermissionsRequest replaces a role's permission set wholesale.
type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permissions"`
}

// CreatePermissionRequest is the input of permission creation.
type CreatePermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePermissionRequest is a partial update of a permission.
type UpdatePermissionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
