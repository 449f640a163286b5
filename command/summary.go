// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"io"
)

// maxSummaryEntries is how many cleared values are listed individually before the rest are only counted.
const maxSummaryEntries = 5

// writeSummary reports the outcome of sanitizing one document. checkOnly changes the wording for runs that found
// secrets without removing them.
func writeSummary(w io.Writer, path string, cleared []string, checkOnly bool) error {
	if len(cleared) == 0 {
		_, err := fmt.Fprintf(w, "✓ No secrets found in %s (file already clean)\n", path)
		return err
	}

	header := fmt.Sprintf("✓ Removed %d %s from %s:\n", len(cleared), pluralize("secret", len(cleared)), path)
	if checkOnly {
		header = fmt.Sprintf("✗ Found %d %s in %s:\n", len(cleared), pluralize("secret", len(cleared)), path)
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	shown := cleared
	if len(shown) > maxSummaryEntries {
		shown = shown[:maxSummaryEntries]
	}
	for _, entry := range shown {
		if _, err := fmt.Fprintf(w, "  - %s\n", entry); err != nil {
			return err
		}
	}

	if rest := len(cleared) - len(shown); rest > 0 {
		if _, err := fmt.Fprintf(w, "  ... and %d more\n", rest); err != nil {
			return err
		}
	}
	return nil
}

func pluralize(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
