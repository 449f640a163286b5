// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kr/text"
)

// maxLineLength is the maximum width of any line.
const maxLineLength int = 72

// Usage renders a command's help: the usage text, then every flag in flags with its wrapped description.
func Usage(txt string, flags *flag.FlagSet) string {
	out := new(bytes.Buffer)

	out.WriteString(strings.TrimSpace(txt))
	out.WriteString("\n\n")

	if flags != nil {
		printTitle(out, "Command Options")
		flags.VisitAll(func(f *flag.Flag) {
			printFlag(out, f)
		})
	}

	return strings.TrimRight(out.String(), "\n")
}

func printTitle(w io.Writer, s string) {
	_, _ = fmt.Fprintf(w, "%s\n\n", s)
}

// printFlag prints a single flag, its default when it has a meaningful one, and its usage wrapped under it.
func printFlag(w io.Writer, f *flag.Flag) {
	if f.DefValue == "" || f.DefValue == "false" {
		_, _ = fmt.Fprintf(w, "  -%s\n", f.Name)
	} else {
		_, _ = fmt.Fprintf(w, "  -%s=%s\n", f.Name, f.DefValue)
	}

	_, _ = fmt.Fprintf(w, "%s\n\n", wrapAtLength(f.Usage, 5))
}

// wrapAtLength wraps s at maxLineLength and indents every line by pad spaces.
func wrapAtLength(s string, pad int) string {
	wrapped := text.Wrap(s, maxLineLength-pad)
	return text.Indent(wrapped, strings.Repeat(" ", pad))
}
