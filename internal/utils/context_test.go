// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/Aruba-Creative/nokan-api/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestPrincipalCtxKey(t *testing.T) {
	if PrincipalCtxKey.String() != "principal" {
		t.Errorf("expected 'principal', got '%s'", PrincipalCtxKey.String())
	}
}

func TestGetPrincipalFromContext_Success(t *testing.T) {
	p := models.NewPrincipal(models.User{UserID: "u-42"})
	ctx := WithPrincipal(context.Background(), p)

	got, ok := GetPrincipalFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got.ID() != "u-42" {
		t.Errorf("expected id u-42, got %s", got.ID())
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != "u-42" {
		t.Errorf("expected user id u-42, got %q (ok=%v)", userID, ok)
	}
}

func TestGetPrincipalFromContext_Missing(t *testing.T) {
	_, ok := GetPrincipalFromContext(context.Background())
	if ok {
		t.Fatal("expected ok=false, got true")
	}

	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Fatal("expected ok=false for user id, got true")
	}
}

func TestGetPrincipalFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, "not-a-principal")

	if _, ok := GetPrincipalFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetPrincipalFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("other"), models.Principal{})

	if _, ok := GetPrincipalFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
