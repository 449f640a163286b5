// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package version

import (
	"fmt"
	"runtime/debug"
)

const (
	slug = "secretscrub v"
)

var (
	// version is the main version number that is being run at the moment.
	//
	// version must be of the format <MAJOR>.<MINOR>.<PATCH>, as described in the semantic versioning specification.
	version = "0.1.0"

	// prerelease is a pre-release marker for the version. If this is "" (empty string) then it means that
	// it is a final release. Otherwise, this is a pre-release such as "dev" (in development),
	// "beta", "rc1", etc.
	prerelease = "dev"

	// metadata is any additional (optional) information regarding the build, as described by the semantic
	// versioning specification.
	metadata string

	// gitCommit is the commit associated with the build. It is set by the build process via -ldflags. When it is
	// left empty, the VCS revision recorded by the Go toolchain is used instead, if there is one.
	gitCommit string

	// buildDate is the date/time when the build was created. It is set by the build process.
	buildDate string
)

// Version is a container for version information.
type Version struct {
	Version    string `json:"version,omitempty"`
	Prerelease string `json:"prerelease,omitempty"`
	Metadata   string `json:"build_metadata,omitempty"`
	Revision   string `json:"revision,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// GetVersion produces a Version that includes fields set based on version package variables.
func GetVersion() Version {
	rev := gitCommit
	if rev == "" {
		rev = vcsRevision()
	}
	return Version{
		Version:    version,
		Prerelease: prerelease,
		Metadata:   metadata,
		Revision:   rev,
		BuildDate:  buildDate,
	}
}

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

func vcsRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if rev != "" && modified == "true" {
		rev += "-dirty"
	}
	return rev
}

// SemanticVersion produces a semantic version number from a Version object.
func (v Version) SemanticVersion() string {
	sv := v.Version

	if v.Prerelease != "" {
		sv = fmt.Sprintf("%s-%s", sv, v.Prerelease)
	}

	if v.Metadata != "" {
		sv = fmt.Sprintf("%s+%s", sv, v.Metadata)
	}

	return sv
}

// FullVersionNumber produces a human-readable string such as "secretscrub v0.1.0-dev (abc123), built 2026-10-14".
// The revision is only included when rev is true.
func (v Version) FullVersionNumber(rev bool) string {
	versionString := slug + v.SemanticVersion()

	if rev && v.Revision != "" {
		versionString += fmt.Sprintf(" (%s)", v.Revision)
	}

	if v.BuildDate != "" {
		versionString += fmt.Sprintf(", built %s", v.BuildDate)
	}

	return versionString
}
