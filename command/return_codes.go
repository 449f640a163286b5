// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

// Success indicates a successful command execution.
const Success int = 0

// The following error group is intended for issues with the command's input.
const (
	// FlagParseError indicates that a command was unable to successfully parse the flags/arguments provided to it.
	FlagParseError int = iota + 16

	// LoadError indicates that a document could not be read or is not valid JSON.
	LoadError

	// WriteError indicates that a sanitized document could not be written back to its path.
	WriteError
)

// The following group reports findings rather than failures.
const (
	// SecretsFound is returned by check runs when at least one document still contains secrets.
	SecretsFound int = iota + 32
)
