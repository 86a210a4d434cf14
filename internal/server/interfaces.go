// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract of the transport server.
//
// RunServer blocks until shutdown is requested; Shutdown stops accepting
// requests and waits for in-flight ones to finish.
type Server interface {
	RunServer()
	Shutdown()
}
