// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "sort"

// Principal is the authenticated actor of a request: the user, its role and
// the resolved permission names, all loaded in the same lookup.
type Principal struct {
	User        User
	RoleName    string
	Permissions map[string]struct{}
}

// NewPrincipal builds a Principal from a user whose Role (if any) has been
// joined. A missing role yields an empty permission set.
func NewPrincipal(user User) Principal {
	p := Principal{User: user, Permissions: map[string]struct{}{}}
	if user.Role != nil {
		p.RoleName = user.Role.Name
		p.Permissions = user.Role.PermissionNames()
	}
	return p
}

// ID returns the principal's user id.
func (p Principal) ID() string {
	return p.User.UserID
}

// HasPermission reports whether name is in the principal's permission set.
func (p Principal) HasPermission(name string) bool {
	_, ok := p.Permissions[name]
	return ok
}

// PermissionList returns the permission names in sorted order.
func (p Principal) PermissionList() []string {
	names := make([]string, 0, len(p.Permissions))
	for name := range p.Permissions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// View returns the outward representation of the principal.
func (p Principal) View() PrincipalView {
	return PrincipalView{
		ID:       p.User.UserID,
		Name:     p.User.Name,
		Username: p.User.Username,
		Blocked:  p.User.Blocked,
		Role: PrincipalRole{
			Name:        p.RoleName,
			Permissions: p.PermissionList(),
		},
	}
}

// PrincipalView is the JSON shape of the principal exposed to clients.
type PrincipalView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Blocked  bool          `json:"blocked"`
	Role     PrincipalRole `json:"role"`
}

// PrincipalRole is the role part of [PrincipalView].
type PrincipalRole struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
