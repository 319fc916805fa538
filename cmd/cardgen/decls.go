package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardgen/internal/diagfmt"
	"cardgen/internal/driver"
)

func newDeclsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decls [flags] file.zig",
		Short: "Print the declarations extracted from a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecls,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("all", false, "include private declarations")
	return cmd
}

func runDecls(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, parseErr := driver.ParseDecls(args[0], maxDiagnostics)
	if result == nil {
		return parseErr
	}
	printDiagnostics(newConsole(cmd), result.Bag, result.FileSet)
	if parseErr != nil {
		// диагностика уже напечатана
		return &exitError{code: exitPartial, err: parseErr, silent: true}
	}

	decls := result.Decls.Decls
	if !all {
		decls = result.Decls.Public()
	}
	switch format {
	case "pretty":
		return diagfmt.FormatDeclsPretty(cmd.OutOrStdout(), result.Decls, decls)
	case "json":
		return diagfmt.FormatDeclsJSON(cmd.OutOrStdout(), result.File, result.Decls, decls)
	default:
		return usageError(fmt.Errorf("unknown format: %s", format))
	}
}
