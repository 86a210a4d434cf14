// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfoUnknown stands in for build metadata the linker did not inject.
const BuildInfoUnknown = "N/A"

// BuildInfo identifies a nokan-api or adminctl binary. Values come from
// -ldflags "-X main.buildVersion=..." at release time. The zero value is
// usable and reports every field as unknown.
type BuildInfo struct {
	version string
	date    string
	commit  string
}

func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{version: version, date: date, commit: commit}
}

func (b BuildInfo) Version() string { return orUnknown(b.version) }

func (b BuildInfo) Date() string { return orUnknown(b.date) }

func (b BuildInfo) Commit() string { return orUnknown(b.commit) }

// Known reports whether a release version was injected.
func (b BuildInfo) Known() bool {
	return b.version != ""
}

// String renders the one-line form used by adminctl version.
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", b.Version(), b.Commit(), b.Date())
}

func orUnknown(s string) string {
	if s == "" {
		return BuildInfoUnknown
	}
	return s
}
