// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned when the server configuration has
	// no HTTP address, which leaves the process with nothing to serve.
	errNoHandlersAreCreated = errors.New("no handlers are created")
	errNoServices           = errors.New("services are not initialized")
)
