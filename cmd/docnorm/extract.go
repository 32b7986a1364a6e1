package main

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"docnorm/internal/diagfmt"
	"docnorm/internal/driver"
	"docnorm/internal/parser"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] file.py",
	Short: "List the docstrings of a Python file",
	Long: `Extract prints every docstring docnorm would normalize: the module
docstring, then those of def, async def, class and async for blocks in
source order`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	extractCmd.Flags().Bool("tree", false, "print the parsed block tree instead of docstrings")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return fmt.Errorf("invalid --max-diagnostics %d: %w", maxDiagnostics, err)
	}

	res, err := driver.ExtractFile(args[0], maxErrors)
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		bag := perr.Bag()
		if format == "json" {
			if jsonErr := diagfmt.JSON(cmd.OutOrStdout(), bag, res.FileSet, diagfmt.JSONOpts{IncludePositions: true}); jsonErr != nil {
				return jsonErr
			}
			return silentf("extract: %s has syntax errors", args[0])
		}
		useColor, colorErr := colorEnabled(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(os.Stderr, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			ShowNotes: true,
		})
		return silentf("extract: %s has syntax errors", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showTree {
		_, err := fmt.Fprint(out, parser.String(res.Builder, res.ASTFile))
		return err
	}
	if format == "json" {
		return diagfmt.FormatDocstringsJSON(out, res.Docstrings, res.FileSet, diagfmt.PathModeAuto)
	}
	return diagfmt.FormatDocstringsPretty(out, res.Docstrings, res.FileSet)
}
