// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/mitchellh/cli"

	"github.com/hashicorp/secretscrub/command"
	"github.com/hashicorp/secretscrub/version"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	ui := newUi()

	c := cli.NewCLI("secretscrub", version.GetVersion().SemanticVersion())
	c.Args = args
	c.Commands = commands(ui)

	exitStatus, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitStatus
}

func newUi() cli.Ui {
	return &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
	}
}

func commands(ui cli.Ui) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"sanitize": command.SanitizeCommandFactory(ui),
		"version":  command.VersionCommandFactory(ui),
	}
}
