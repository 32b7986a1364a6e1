package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docnorm/internal/diagfmt"
	"docnorm/internal/driver"
	"docnorm/internal/observ"
	"docnorm/internal/parser"
	"docnorm/internal/project"
	"docnorm/internal/rewrite"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Normalize docstrings in Python files",
	Long: `Normalize docstrings in the given files and directories.
Directories are walked recursively; files matching [files] in docnorm.toml
are formatted in parallel and rewritten in place unless --check or --stdout
is set`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	addFmtFlags(fmtCmd)
}

func addFmtFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "report files that would change and exit 1, without writing")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().Bool("diff", false, "print a unified diff of every rewritten docstring")
	cmd.Flags().IntP("jobs", "j", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().String("strategy", "", "substitution strategy (span|first), overrides docnorm.toml")
	cmd.Flags().Bool("no-cache", false, "ignore and do not update the clean-file cache")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

type fmtFlags struct {
	check     bool
	stdout    bool
	diff      bool
	format    string
	quiet     bool
	timings   bool
	maxErrors uint
	ui        uiMode
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	if f.check, err = cmd.Flags().GetBool("check"); err != nil {
		return f, err
	}
	if f.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return f, err
	}
	if f.diff, err = cmd.Flags().GetBool("diff"); err != nil {
		return f, err
	}
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	f.format = strings.ToLower(strings.TrimSpace(f.format))
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return f, err
	}
	if f.maxErrors, err = safecast.Conv[uint](maxDiagnostics); err != nil {
		return f, fmt.Errorf("invalid --max-diagnostics %d: %w", maxDiagnostics, err)
	}

	switch f.format {
	case "text", "json":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.format)
	}
	if f.stdout && f.check {
		return f, errors.New("fmt: --stdout cannot be used with --check")
	}
	if f.stdout && f.format != "text" {
		return f, errors.New("fmt: --stdout is only supported with text output")
	}
	if f.stdout && f.diff {
		return f, errors.New("fmt: --diff cannot be used with --stdout")
	}
	return f, nil
}

// applyFmtOverrides folds command-line flags over the loaded config.
func applyFmtOverrides(cmd *cobra.Command, cfg *project.Config) error {
	if cmd.Flags().Changed("jobs") {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return err
		}
		cfg.Run.Jobs = jobs
	}
	if cmd.Flags().Changed("strategy") {
		value, err := cmd.Flags().GetString("strategy")
		if err != nil {
			return err
		}
		if _, err := rewrite.ParseStrategy(value); err != nil {
			return err
		}
		cfg.Run.Strategy = value
	}
	if noCache, err := cmd.Flags().GetBool("no-cache"); err != nil {
		return err
	} else if noCache {
		cfg.Run.Cache = false
	}
	return cfg.Validate()
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := applyFmtOverrides(cmd, &cfg); err != nil {
		return err
	}

	var cache *driver.Cache
	if cfg.Run.Cache {
		cache, err = driver.OpenCache(cacheApp)
		if err != nil {
			// без кэша форматирование всё равно работает
			fmt.Fprintf(os.Stderr, "docnorm: cache disabled: %v\n", err)
			cache = nil
		}
	}

	var timer *observ.Timer
	if flags.timings {
		timer = observ.NewTimer()
	}

	opts := driver.FormatOptions{
		Config:    cfg,
		Check:     flags.check,
		Stdout:    flags.stdout,
		Jobs:      cfg.Run.Jobs,
		MaxErrors: flags.maxErrors,
		Cache:     cache,
		Timer:     timer,
	}

	var results []driver.FormatResult
	useUI := !flags.stdout && !flags.quiet && flags.format == "text" && shouldUseTUI(flags.ui)
	if useUI {
		results, err = runFormatWithUI(cmd.Context(), "docnorm fmt", args, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}

	reportPhase := timer.Begin(observ.PhaseReport)
	out := cmd.OutOrStdout()
	switch {
	case flags.stdout:
		renderFmtStdout(out, results)
	case flags.format == "json":
		if err := renderFmtJSON(out, results, flags.check); err != nil {
			return err
		}
	default:
		renderFmtText(out, results, flags.check, flags.quiet)
	}
	if flags.diff {
		if err := renderFmtDiff(out, results); err != nil {
			return err
		}
	}
	timer.End(reportPhase, flags.format)
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if hasErrors {
		return silentf("fmt: failed to format some files")
	}
	if flags.check && hasChanges {
		return silentf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtStdout(out io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Err != nil {
			reportFileError(res)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFmtText(out io.Writer, results []driver.FormatResult, check, quiet bool) {
	changedLabel := "reformatted"
	if check {
		changedLabel = "would reformat"
	}
	label := color.New(color.FgYellow, color.Bold)

	changed, failed := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			reportFileError(res)
			continue
		}
		if !res.Changed {
			continue
		}
		changed++
		if !quiet {
			fmt.Fprintf(out, "%s %s\n", label.Sprint(changedLabel), res.Path)
		}
	}
	if quiet {
		return
	}
	fmt.Fprintf(out, "%d file(s) %s, %d left unchanged", changed, changedLabel, len(results)-changed-failed)
	if failed > 0 {
		fmt.Fprintf(out, ", %s", color.RedString("%d failed", failed))
	}
	fmt.Fprintln(out)
}

// reportFileError prints per-file failures to stderr; syntax errors get one
// line per diagnostic.
func reportFileError(res driver.FormatResult) {
	var perr *parser.ParseError
	if errors.As(res.Err, &perr) && len(perr.Lines()) > 0 {
		for _, line := range perr.Lines() {
			fmt.Fprintf(os.Stderr, "fmt: %s\n", line)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
}

type fmtJSONEdit struct {
	Owner  string `json:"owner"`
	Name   string `json:"name,omitempty"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

type fmtJSONResult struct {
	Path       string        `json:"path"`
	Changed    bool          `json:"changed"`
	Cached     bool          `json:"cached,omitempty"`
	Docstrings int           `json:"docstrings"`
	Edits      []fmtJSONEdit `json:"edits,omitempty"`
	Error      string        `json:"error,omitempty"`
	CheckRun   bool          `json:"check"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{
			Path:       res.Path,
			Changed:    res.Changed,
			Cached:     res.Cached,
			Docstrings: res.Docstrings,
			CheckRun:   check,
		}
		for _, e := range res.Edits {
			jr.Edits = append(jr.Edits, fmtJSONEdit{
				Owner:  e.Owner.String(),
				Name:   e.Name,
				Line:   e.Pos.Line,
				Column: e.Pos.Col,
			})
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderFmtDiff(out io.Writer, results []driver.FormatResult) error {
	useColor := !color.NoColor
	for _, res := range results {
		if len(res.Edits) == 0 {
			continue
		}
		changes := make([]diagfmt.Change, 0, len(res.Edits))
		for _, e := range res.Edits {
			label := e.Owner.String()
			if e.Name != "" {
				label += " " + e.Name
			}
			changes = append(changes, diagfmt.Change{
				Label:  label,
				Line:   e.Pos.Line,
				Before: e.Before,
				After:  e.After,
			})
		}
		if err := diagfmt.Diff(out, res.Path, changes, useColor); err != nil {
			return err
		}
	}
	return nil
}
