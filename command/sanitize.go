// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"

	"github.com/hashicorp/secretscrub/redact"
	"github.com/hashicorp/secretscrub/util"
)

var _ cli.Command = &SanitizeCommand{}

var errNoPaths = errors.New("at least one JSON file path is required")

type SanitizeCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	// check reports secrets without writing anything back
	check bool
}

func (c *SanitizeCommand) init() {
	const (
		checkUsageText = "Report secrets without modifying any file. Exits with a non-zero code when a file still contains secrets, e.g. for use in a pre-commit hook or CI job."
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an `os.Exit(2)`
	// on its own.
	c.flags = flag.NewFlagSet("sanitize", flag.ContinueOnError)
	c.flags.BoolVar(&c.check, "check", false, checkUsageText)

	// Hide the flag package's own usage output so we can print our Help instead.
	c.flags.SetOutput(io.Discard)
}

// NewSanitizeCommand produces a new *SanitizeCommand, initialized for use in a CLI application.
func NewSanitizeCommand(ui cli.Ui) *SanitizeCommand {
	c := &SanitizeCommand{ui: ui}
	c.init()
	return c
}

// SanitizeCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *SanitizeCommand.
func SanitizeCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewSanitizeCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter invalid options.
func (c *SanitizeCommand) Help() string {
	helpText := `Usage: secretscrub sanitize [options] <file>...

Clears API keys and passwords out of JSON files before they are committed. Every file is rewritten in place with
two-space indentation and its original key order. A value is cleared when its key is one of openai_api_key,
cohere_api_key, api_key, password or db_password, or when its key is "value" and it looks like an API key.
`

	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the application's primary --help.
func (c *SanitizeCommand) Synopsis() string {
	return "Remove secrets from JSON files"
}

// Run executes the command. Every path is processed even if an earlier one fails. Load and write failures take
// precedence over SecretsFound when choosing the return code.
func (c *SanitizeCommand) Run(args []string) int {
	if err := c.parseFlags(args); err != nil {
		// Output the specific error to help the user understand what went wrong.
		c.ui.Warn(err.Error())
		// Since there was an issue in input, let's show our Help to try and assist the user.
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := configureLogging("secretscrub")
	r := redact.New(l.Named("redact"))

	var (
		errs  *multierror.Error
		rc    = Success
		found bool
	)
	for _, path := range c.flags.Args() {
		code, err := c.sanitize(l.With("path", path), r, path)
		switch {
		case err != nil:
			errs = multierror.Append(errs, err)
			if rc == Success {
				rc = code
			}
		case code == SecretsFound:
			found = true
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		c.ui.Error(err.Error())
		return rc
	}
	if found {
		return SecretsFound
	}
	return Success
}

func (c *SanitizeCommand) parseFlags(args []string) error {
	if err := c.flags.Parse(args); err != nil {
		return err
	}
	if c.flags.NArg() == 0 {
		return errNoPaths
	}
	return nil
}

// sanitize runs load, redact, summary and write for a single path, returning the code that describes the outcome.
func (c *SanitizeCommand) sanitize(l hclog.Logger, r *redact.Redactor, path string) (int, error) {
	expanded, err := util.ExpandPath(path)
	if err != nil {
		l.Error("Failed to resolve path", "error", err)
		return LoadError, err
	}

	l.Info("Loading document")
	doc, err := util.ReadJSONFile(expanded)
	if err != nil {
		l.Error("Failed to load document", "error", err)
		return LoadError, err
	}

	l.Debug("Sanitizing secrets", "check", c.check)
	doc, cleared := r.JSON(doc)

	summary := new(strings.Builder)
	if err := writeSummary(summary, path, cleared, c.check); err != nil {
		l.Warn("Failed to render summary", "error", err)
	}
	c.ui.Output(strings.TrimRight(summary.String(), "\n"))

	if c.check {
		if len(cleared) > 0 {
			return SecretsFound, nil
		}
		return Success, nil
	}

	l.Info("Writing sanitized document", "cleared", len(cleared))
	if err := util.WriteJSONFile(expanded, doc); err != nil {
		l.Error("Failed to write document", "error", err)
		return WriteError, err
	}
	c.ui.Info("✓ Done! " + path + " has been sanitized.")
	return Success, nil
}
