// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/Aruba-Creative/nokan-api/models"
)

// AdminValidator implements the Validator interface for the request models of
// the back office: users, credentials, roles and permissions.
//
// It supports both value and pointer forms of every model type and allows
// optional field-level scoping via variadic field name arguments.
type AdminValidator struct {
	passwordMinLength int
}

// NewAdminValidator constructs an AdminValidator enforcing the given minimum
// password length.
func NewAdminValidator(passwordMinLength int) Validator {
	return &AdminValidator{passwordMinLength: passwordMinLength}
}

// Validate dispatches validation to the type-specific method based on the
// dynamic type of obj. Returns ErrUnsupportedType for unknown models.
func (v *AdminValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateUserRequest:
		return v.validateCreateUser(value, fields...)
	case *models.CreateUserRequest:
		return v.validateCreateUser(*value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdateUser(value, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdateUser(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value)
	case *models.LoginRequest:
		return v.validateLogin(*value)

	case models.CreateRoleRequest:
		return v.validateCreateRole(value, fields...)
	case *models.CreateRoleRequest:
		return v.validateCreateRole(*value, fields...)

	case models.UpdateRoleRequest:
		return v.validateUpdateRole(value)
	case *models.UpdateRoleRequest:
		return v.validateUpdateRole(*value)

	case models.UpdateRolePermissionsRequest:
		return validatePermissionIDs(value.PermissionIDs)
	case *models.UpdateRolePermissionsRequest:
		return validatePermissionIDs(value.PermissionIDs)

	case models.CreatePermissionRequest:
		return validatePermissionName(value.Name)
	case *models.CreatePermissionRequest:
		return validatePermissionName(value.Name)

	case models.UpdatePermissionRequest:
		return v.validateUpdatePermission(value)
	case *models.UpdatePermissionRequest:
		return v.validateUpdatePermission(*value)

	default:
		return ErrUnsupportedType
	}
}

// validateCreateUser validates signup and administrative user creation.
//
// Default validated fields: Name, Username, Password, PasswordConfirm, Role.
// Signup omits FieldRole since the role is assigned by the server.
func (v *AdminValidator) validateCreateUser(req models.CreateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldUsername, FieldPassword, FieldPasswordConfirm, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(req.Name); err != nil {
				return err
			}
		case FieldUsername:
			if err := validateUsername(req.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(req.Password, v.passwordMinLength); err != nil {
				return err
			}
		case FieldPasswordConfirm:
			if req.Password != req.PasswordConfirm {
				return ErrPasswordMismatch
			}
		case FieldRole:
			if strings.TrimSpace(req.RoleID) == "" {
				return ErrEmptyRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUpdateUser validates a partial user update. Only provided fields
// are checked; password fields are always rejected.
func (v *AdminValidator) validateUpdateUser(req models.UpdateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNoPassword, FieldNotEmpty, FieldName, FieldUsername, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldNoPassword:
			if req.Password != "" || req.PasswordConfirm != "" {
				return ErrPasswordUpdateNotAllowed
			}
		case FieldNotEmpty:
			if req.Name == nil && req.Username == nil && req.RoleID == nil && req.Blocked == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if req.Name != nil {
				if err := validateName(*req.Name); err != nil {
					return err
				}
			}
		case FieldUsername:
			if req.Username != nil {
				if err := validateUsername(*req.Username); err != nil {
					return err
				}
			}
		case FieldRole:
			if req.RoleID != nil && strings.TrimSpace(*req.RoleID) == "" {
				return ErrEmptyRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AdminValidator) validateChangePassword(req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPasswordCurrent, FieldPassword, FieldPasswordConfirm}
	}

	for _, f := range fields {
		switch f {
		case FieldPasswordCurrent:
			if req.PasswordCurrent == "" {
				return ErrEmptyCurrentPassword
			}
		case FieldPassword:
			if err := validatePassword(req.Password, v.passwordMinLength); err != nil {
				return err
			}
		case FieldPasswordConfirm:
			if req.Password != req.PasswordConfirm {
				return ErrPasswordMismatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AdminValidator) validateLogin(req models.LoginRequest) error {
	if NormalizeUsername(req.Username) == "" || req.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (v *AdminValidator) validateCreateRole(req models.CreateRoleRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRoleName, FieldPermissionIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldRoleName:
			if strings.TrimSpace(req.Name) == "" {
				return ErrEmptyRoleName
			}
		case FieldPermissionIDs:
			if err := validatePermissionIDs(req.PermissionIDs); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AdminValidator) validateUpdateRole(req models.UpdateRoleRequest) error {
	if req.Name == nil && req.Description == nil {
		return ErrNoFieldsToUpdate
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return ErrEmptyRoleName
	}
	return nil
}

func (v *AdminValidator) validateUpdatePermission(req models.UpdatePermissionRequest) error {
	if req.Name == nil && req.Description == nil {
		return ErrNoFieldsToUpdate
	}
	if req.Name != nil {
		return validatePermissionName(*req.Name)
	}
	return nil
}
