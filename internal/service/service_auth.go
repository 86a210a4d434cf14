// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/internal/validators"
	"github.com/Aruba-Creative/nokan-api/models"
)

// SuperAdminRole is the role granted to the bootstrap account. It is also
// the role required by the legacy user creation and deletion routes.
const SuperAdminRole = "superAdmin"

// authService is the concrete implementation of AuthService. It composes
// the credential store and the token service; it never issues a token
// before the write it depends on has succeeded.
type authService struct {
	userRepository    store.UserRepository
	roleRepository    store.RoleRepository
	credentialService CredentialService
	tokenService      TokenService
	validator         validators.Validator

	hashCost int

	// dummyHash is compared against when the username is unknown, so that
	// a missing user costs as much as a wrong password.
	dummyHash func() (string, error)

	logger *logger.Logger
}

func NewAuthService(storages *store.Storages, credentialService CredentialService, tokenService TokenService, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.PasswordHashCost
	return &authService{
		userRepository:    storages.UserRepository,
		roleRepository:    storages.RoleRepository,
		credentialService: credentialService,
		tokenService:      tokenService,
		validator:         validator,
		hashCost:          cost,
		dummyHash: sync.OnceValues(func() (string, error) {
			return utils.HashPassword("not-a-real-password", cost)
		}),
		logger: logger,
	}
}

// Signup creates the very first user as superAdmin and logs it in.
//
// Returns ErrSignupClosed once any user exists. The count is a fast path;
// the repository re-checks emptiness atomically.
func (a *authService) Signup(ctx context.Context, req models.CreateUserRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	count, err := a.userRepository.CountUsers(ctx)
	if err != nil {
		return models.User{}, models.Token{}, mapStoreError("error counting users", err)
	}
	if count > 0 {
		return models.User{}, models.Token{}, ErrSignupClosed
	}

	err = a.validator.Validate(ctx, req,
		validators.FieldName, validators.FieldUsername, validators.FieldPassword, validators.FieldPasswordConfirm)
	if err != nil {
		return models.User{}, models.Token{}, validationError(err)
	}

	role, err := a.roleRepository.FindRoleByName(ctx, SuperAdminRole)
	if errors.Is(err, store.ErrRoleNotFound) {
		log.Error().Str("func", "authService.Signup").Msg("superAdmin role is missing")
		return models.User{}, models.Token{}, ErrSuperAdminRoleNotFound
	}
	if err != nil {
		return models.User{}, models.Token{}, mapStoreError("error finding superAdmin role", err)
	}

	hash, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := a.userRepository.CreateFirstUser(ctx, models.User{
		Name:         req.Name,
		Username:     validators.NormalizeUsername(req.Username),
		PasswordHash: hash,
		RoleID:       role.RoleID,
	})
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Msg("first user creation ended with error")
		return models.User{}, models.Token{}, mapStoreError("first user creation ended with error", err)
	}

	token, err := a.tokenService.Issue(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("func", "authService.Signup").Str("user_id", user.UserID).Msg("bootstrap user created")
	return user, token, nil
}

// Login authenticates username and password.
//
// Unknown usernames and wrong passwords both yield ErrIncorrectLogin; a
// blocked account yields ErrAccountBlocked.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, validationError(err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, validators.NormalizeUsername(req.Username))
	if errors.Is(err, store.ErrNoUserWasFound) {
		if hash, hashErr := a.dummyHash(); hashErr == nil {
			a.credentialService.VerifyPassword(req.Password, hash)
		}
		return models.User{}, models.Token{}, ErrIncorrectLogin
	}
	if err != nil {
		return models.User{}, models.Token{}, mapStoreError("user search by username failed", err)
	}

	if !a.credentialService.VerifyPassword(req.Password, user.PasswordHash) {
		log.Info().Str("func", "authService.Login").Str("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrIncorrectLogin
	}

	if user.Blocked {
		return models.User{}, models.Token{}, ErrAccountBlocked
	}

	token, err := a.tokenService.Issue(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// UpdatePassword changes the password of userID and returns a token issued
// after the change was stored, so the new token is never stale.
func (a *authService) UpdatePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) (models.User, models.Token, error) {
	user, err := a.credentialService.ChangePassword(ctx, userID, req)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	token, err := a.tokenService.Issue(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}
