// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the admin API.
// Session validation, permission and role guards, rate limiting, logging,
// tracing and compression are handled here before requests reach the
// service layer.
package http
