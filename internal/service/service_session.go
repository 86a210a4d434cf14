// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/models"
)

// sessionValidator runs the per-request session pipeline:
//
//	no token → verify → subject exists and is active → not blocked → not stale
//
// Every step re-reads persistent state; nothing is cached between requests.
type sessionValidator struct {
	tokenService   TokenService
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewSessionValidator(tokenService TokenService, storages *store.Storages, logger *logger.Logger) SessionValidator {
	return &sessionValidator{
		tokenService:   tokenService,
		userRepository: storages.UserRepository,
		logger:         logger,
	}
}

// Validate returns the principal behind rawToken. The user, its role and the
// role's permissions come from one lookup.
func (s *sessionValidator) Validate(ctx context.Context, rawToken string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	if rawToken == "" {
		return models.Principal{}, ErrNotLoggedIn
	}

	token, err := s.tokenService.Verify(ctx, rawToken)
	if err != nil {
		return models.Principal{}, ErrInvalidSession
	}

	userID, err := token.UserID()
	if err != nil {
		return models.Principal{}, ErrInvalidSession
	}

	user, err := s.userRepository.FindPrincipal(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("func", "sessionValidator.Validate").Str("user_id", userID).Msg("token subject no longer exists")
		return models.Principal{}, ErrUserNoLongerExists
	}
	if err != nil {
		log.Err(err).Str("func", "sessionValidator.Validate").Str("user_id", userID).Msg("error loading principal")
		return models.Principal{}, mapStoreError("error loading principal", err)
	}

	if user.Blocked {
		return models.Principal{}, ErrUserBlocked
	}

	if user.ChangedPasswordAfter(token.IssuedTime()) {
		log.Info().Str("func", "sessionValidator.Validate").Str("user_id", userID).Msg("stale token rejected")
		return models.Principal{}, ErrPasswordChanged
	}

	return models.NewPrincipal(user), nil
}
