package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// console writes user-facing messages to stderr with colored prefixes.
type console struct {
	out   io.Writer
	err   io.Writer
	quiet bool

	warnColor *color.Color
	errColor  *color.Color
	okColor   *color.Color
}

func newConsole(cmd *cobra.Command) *console {
	pf := cmd.Root().PersistentFlags()
	quiet, _ := pf.GetBool("quiet")       //nolint:errcheck
	colorFlag, _ := pf.GetString("color") //nolint:errcheck
	applyColorMode(colorFlag)
	return &console{
		out:       cmd.OutOrStdout(),
		err:       cmd.ErrOrStderr(),
		quiet:     quiet,
		warnColor: color.New(color.FgYellow, color.Bold),
		errColor:  color.New(color.FgRed, color.Bold),
		okColor:   color.New(color.FgGreen),
	}
}

// applyColorMode sets the global fatih/color switch from --color.
func applyColorMode(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stderr)
	}
}

func (c *console) warnf(format string, args ...any) {
	fmt.Fprintf(c.err, "%s %s\n", c.warnColor.Sprint("warning:"), fmt.Sprintf(format, args...))
}

func (c *console) errorf(format string, args ...any) {
	fmt.Fprintf(c.err, "%s %s\n", c.errColor.Sprint("error:"), fmt.Sprintf(format, args...))
}

// infof is suppressed by --quiet.
func (c *console) infof(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.err, format+"\n", args...)
}

func (c *console) okf(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.err, c.okColor.Sprintf(format, args...))
}
