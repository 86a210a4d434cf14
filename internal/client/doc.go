// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the adminctl command runtime.
//
// It parses subcommands, keeps the session token between invocations and
// talks to the server through the adapter package.
package client
