package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cardgen/internal/version"
)

// newRootCmd builds the command tree; tests get a fresh copy each time.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cardgen --old <dir> --new <dir> --out <dir>",
		Short: "Generate standard-library migration cards",
		Long: `cardgen compares two versions of a standard-library source tree and writes
one markdown migration card per file plus an INDEX.md`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runGenerate,
	}
	rootCmd.Version = version.Version
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	f := rootCmd.Flags()
	f.String("old", "", "root of the old version tree")
	f.String("new", "", "root of the new version tree")
	f.String("out", "", "output directory for cards")
	f.String("filter", "", "write only cards tagged with this category")
	f.String("old-tag", "", "version tag of the old tree")
	f.String("new-tag", "", "version tag of the new tree")
	f.Int("jobs", 0, "worker count (0 = GOMAXPROCS, env CARDGEN_WORKERS)")
	f.String("config", "", "path to cardgen.toml (default: search upwards)")
	f.Bool("cache", false, "reuse cards from the disk cache")
	f.Bool("no-signatures", false, "omit old/new signatures from cards")
	f.String("ui", "auto", "progress view (auto|on|off)")

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 64, "maximum number of diagnostics per file")
	pf.String("trace", "", "trace output file (- for stderr, .ndjson for JSON lines)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newDeclsCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd(), os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the command and maps its error to an exit code.
func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	code := exitCode(err)
	if !isSilent(err) {
		newConsole(cmd).errorf("%v", err)
	}
	return code
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec
}
