// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
)

// tokenService signs HS256 session tokens. The signing secret is handed in
// at construction; nothing else in the process reads it.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from cfg. now is used both for
// the iat claim and for expiry checks.
func NewTokenService(cfg config.App, now func() time.Time, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           now,
		logger:        logger,
	}
}

// Issue returns a token {sub: userID, iat: now, exp: now + tokenDuration}.
func (t *tokenService) Issue(ctx context.Context, userID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.tokenIssuer, userID, t.now(), t.tokenDuration, t.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenService.Issue").Str("user_id", userID).Msg("error issuing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify validates signature, issuer and expiry of rawToken. Any failure is
// normalised to ErrTokenInvalid so callers do not inspect jwt errors.
func (t *tokenService) Verify(ctx context.Context, rawToken string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(rawToken, t.tokenSignKey, t.tokenIssuer, t.now)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "tokenService.Verify").Msg("token rejected")
		return models.Token{}, ErrTokenInvalid
	}

	return token, nil
}
