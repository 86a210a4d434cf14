// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/internal/validators"
	"github.com/Aruba-Creative/nokan-api/models"
)

// credentialService is the concrete implementation of CredentialService.
// Passwords are hashed with bcrypt before they reach the repository; the
// work factor is encoded in each hash, so hashes created with an older cost
// keep verifying after PasswordHashCost changes.
type credentialService struct {
	userRepository store.UserRepository
	roleRepository store.RoleRepository
	validator      validators.Validator

	// hashCost is the bcrypt cost used for new hashes.
	hashCost int

	// now is the clock used for the password change watermark.
	now func() time.Time

	logger *logger.Logger
}

// NewCredentialService constructs a CredentialService. now is the clock used
// for PasswordChangedAt and must be the same clock the TokenService issues
// tokens with.
func NewCredentialService(storages *store.Storages, validator validators.Validator, cfg config.App, now func() time.Time, logger *logger.Logger) CredentialService {
	return &credentialService{
		userRepository: storages.UserRepository,
		roleRepository: storages.RoleRepository,
		validator:      validator,
		hashCost:       cfg.PasswordHashCost,
		now:            now,
		logger:         logger,
	}
}

// CreateUser creates a user on behalf of an authenticated actor.
//
// Returns ErrUsernameTaken when the normalized username is in use and
// ErrRoleDoesNotExist when req.RoleID points nowhere. The username pre-check
// is advisory; the partial unique index decides races.
func (c *credentialService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}
	req.Username = validators.NormalizeUsername(req.Username)

	if _, err := c.userRepository.FindUserByUsername(ctx, req.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, mapStoreError("error checking username", err)
	}

	if _, err := c.roleRepository.FindRoleByID(ctx, req.RoleID); err != nil {
		if errors.Is(err, store.ErrRoleNotFound) {
			return models.User{}, ErrRoleDoesNotExist
		}
		return models.User{}, mapStoreError("error checking role", err)
	}

	user, err := c.newUser(req)
	if err != nil {
		log.Err(err).Str("func", "credentialService.CreateUser").Msg("error hashing password")
		return models.User{}, err
	}

	created, err := c.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "credentialService.CreateUser").Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, mapStoreError("user creation ended with error", err)
	}

	return created, nil
}

// newUser builds the persisted form of req. The raw password does not leave
// this function.
func (c *credentialService) newUser(req models.CreateUserRequest) (models.User, error) {
	hash, err := utils.HashPassword(req.Password, c.hashCost)
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		Name:         req.Name,
		Username:     validators.NormalizeUsername(req.Username),
		PasswordHash: hash,
		RoleID:       req.RoleID,
		CreatedBy:    req.CreatedBy,
	}, nil
}

// ChangePassword replaces the password of userID.
//
// The new hash is computed before anything is written, and the hash and
// PasswordChangedAt are stored by a single UPDATE. Returns ErrWrongPassword
// when req.PasswordCurrent does not match.
func (c *credentialService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	user, err := c.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapStoreError("error finding user", err)
	}

	if !c.VerifyPassword(req.PasswordCurrent, user.PasswordHash) {
		log.Warn().Str("func", "credentialService.ChangePassword").Str("user_id", userID).Msg("wrong current password")
		return models.User{}, ErrWrongPassword
	}

	hash, err := utils.HashPassword(req.Password, c.hashCost)
	if err != nil {
		log.Err(err).Str("func", "credentialService.ChangePassword").Msg("error hashing password")
		return models.User{}, err
	}

	updated, err := c.userRepository.UpdatePassword(ctx, userID, hash, c.now())
	if err != nil {
		log.Err(err).Str("func", "credentialService.ChangePassword").Str("user_id", userID).Msg("error storing password")
		return models.User{}, mapStoreError("error storing password", err)
	}

	return updated, nil
}

// VerifyPassword reports whether raw matches the bcrypt hash.
func (c *credentialService) VerifyPassword(raw, hash string) bool {
	return utils.CheckPassword(raw, hash)
}

// GetUser returns an active user with its role and permissions resolved.
func (c *credentialService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, err := c.userRepository.FindPrincipal(ctx, userID)
	if err != nil {
		return models.User{}, mapStoreError("error finding user", err)
	}
	return user, nil
}

func (c *credentialService) ListUsers(ctx context.Context, params models.ListParams) ([]models.User, error) {
	users, err := c.userRepository.ListUsers(ctx, params)
	if err != nil {
		return nil, mapStoreError("error listing users", err)
	}
	return users, nil
}

// UpdateUser applies a partial update. Password fields are rejected; a new
// role must exist.
func (c *credentialService) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.User, error) {
	if err := c.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	if req.Username != nil {
		username := validators.NormalizeUsername(*req.Username)
		req.Username = &username
	}

	if req.RoleID != nil {
		if _, err := c.roleRepository.FindRoleByID(ctx, *req.RoleID); err != nil {
			if errors.Is(err, store.ErrRoleNotFound) {
				return models.User{}, ErrRoleDoesNotExist
			}
			return models.User{}, mapStoreError("error checking role", err)
		}
	}

	updated, err := c.userRepository.UpdateUser(ctx, userID, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "credentialService.UpdateUser").Str("user_id", userID).Msg("error updating user")
		return models.User{}, mapStoreError("error updating user", err)
	}

	return updated, nil
}

// DeleteUser soft-deletes a user. Its tokens fail validation from then on.
func (c *credentialService) DeleteUser(ctx context.Context, userID string) error {
	if err := c.userRepository.DeactivateUser(ctx, userID); err != nil {
		return mapStoreError("error deleting user", err)
	}
	return nil
}
