// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty password is given for hashing.
var ErrEmptyPassword = errors.New("password is empty")

// HashPassword computes a salted bcrypt hash of the raw password using the
// given cost. The cost and the salt are encoded into the returned hash, so
// hashes produced with an older cost keep verifying after the configured
// cost changes.
//
// Example usage:
//
//	hash, err := utils.HashPassword("s3cr3t-pass", bcrypt.DefaultCost)
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
// The comparison is constant-time. A malformed hash never matches.
func CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashCost returns the work factor encoded into hash.
func HashCost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}
