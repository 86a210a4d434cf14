// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP transport of nokan-api.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown, after which registered cleanup hooks (rate limiter, database
// pool) are released in order.
package server
