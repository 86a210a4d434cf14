// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed session token together with the claims it carries.
//
// Tokens are never persisted; SignedString is what travels in the
// Authorization header, while the embedded [jwt.RegisteredClaims] expose
// the subject, issuance and expiry instants after a successful verification.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// UserID returns the subject user id carried by the token.
func (t *Token) UserID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// IssuedTime returns the iat claim, or the zero time when absent.
func (t *Token) IssuedTime() time.Time {
	if t.IssuedAt == nil {
		return time.Time{}
	}
	return t.IssuedAt.Time
}

// ExpiresTime returns the exp claim, or the zero time when absent.
func (t *Token) ExpiresTime() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
