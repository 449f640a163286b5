// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// configureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV vars, and
// returns a configured and usable logger. Logs go to stderr so they never mix with the summary on stdout.
func configureLogging(loggerName string) hclog.Logger {
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:   loggerName,
		Output: os.Stderr,
		Color:  hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}
