package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/audit"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/buildinfo"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/cleanup"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/config"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/log"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/report"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/review"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
)

// runAudit is the default action: scan, report, write the cleanup script.
func runAudit(_ context.Context, cmd *urfavecli.Command) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	defer closeDebugLog(errWriter(cmd))

	return auditOnce(outWriter(cmd), cfg, newOutputOptions(cmd, cfg))
}

// auditOnce performs one full pass over the tree.
func auditOnce(w io.Writer, cfg *config.AuditConfig, out outputOptions) error {
	result, err := audit.Scan(cfg.Root, cfg.ScanOptions())
	if err != nil {
		return err
	}
	converted, err := audit.CountConverted(cfg.Root, cfg.ConvertedDirs, cfg.Extension)
	if err != nil {
		return err
	}
	log.Printf("scan of %s: %d keep, %d removable", cfg.Root, len(result.Keep), len(result.Removable))

	script := cleanup.GenerateCleanupScript(result.Removable, cfg.ScriptOptions())

	if out.JSON {
		written, err := cleanup.WriteScript(filepath.Dir(out.ScriptPath), filepath.Base(out.ScriptPath), script)
		if err != nil {
			return err
		}
		return report.JSON(w, report.NewDocument(result, converted, written))
	}

	if err := report.Report(w, result, converted, report.Options{
		Language: cfg.Language,
		Styles:   &out.Styles,
	}); err != nil {
		return err
	}
	written, err := cleanup.WriteScript(filepath.Dir(out.ScriptPath), filepath.Base(out.ScriptPath), script)
	if err != nil {
		return err
	}
	log.Printf("cleanup script written to %s", written)
	return report.ScriptNotice(w, written, cfg.Target, out.Styles)
}

func verifyCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:   "verify",
		Usage:  "Compare an existing cleanup script with a fresh scan",
		Action: runVerify,
	}
}

// runVerify fails when the script no longer matches the removable set.
func runVerify(_ context.Context, cmd *urfavecli.Command) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	defer closeDebugLog(errWriter(cmd))

	out := newOutputOptions(cmd, cfg)
	w := outWriter(cmd)

	scripted, err := cleanup.ReadScript(out.ScriptPath)
	if err != nil {
		return err
	}
	result, err := audit.Scan(cfg.Root, cfg.ScanOptions())
	if err != nil {
		return err
	}
	drift := cleanup.Compare(scripted, result.Removable)

	if out.JSON {
		if err := report.JSON(w, drift); err != nil {
			return err
		}
	} else {
		printDrift(w, out.ScriptPath, len(scripted), drift, out.Styles)
	}

	if !drift.Empty() {
		return fmt.Errorf("%s is out of date: %d stale, %d missing", out.ScriptPath, len(drift.Stale), len(drift.Missing))
	}
	return nil
}

func printDrift(w io.Writer, path string, listed int, drift cleanup.Drift, s theme.Styles) {
	if drift.Empty() {
		fmt.Fprintf(w, "%s is up to date (%d files)\n", path, listed)
		return
	}
	fmt.Fprintf(w, "%s\n", s.Heading.Render(fmt.Sprintf("In script but no longer removable (%d):", len(drift.Stale))))
	for _, p := range drift.Stale {
		fmt.Fprintf(w, "  %s\n", s.Keep.Render(p))
	}
	fmt.Fprintf(w, "\n%s\n", s.Heading.Render(fmt.Sprintf("Removable but missing from script (%d):", len(drift.Missing))))
	for _, p := range drift.Missing {
		fmt.Fprintf(w, "  %s\n", s.Removable.Render(p))
	}
}

func reviewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:   "review",
		Usage:  "Browse the keep and removable lists interactively",
		Action: runReview,
	}
}

func runReview(ctx context.Context, cmd *urfavecli.Command) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	defer closeDebugLog(errWriter(cmd))

	result, err := audit.Scan(cfg.Root, cfg.ScanOptions())
	if err != nil {
		return err
	}

	// The program owns the terminal, so only an explicit opt-out disables color.
	plain := cfg.Color == config.ColorNever
	model := review.New(result, review.Options{
		ConvertedDirs: cfg.ConvertedDirs,
		Styles:        theme.NewStyles(theme.GetTheme(cfg.Theme), plain),
		ShowIcons:     cfg.ShowIcons,
		ScriptPath:    resolveScriptPath(cmd.String("script"), cfg),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running review: %w", err)
	}
	return nil
}

func watchCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "watch",
		Usage: "Re-run the audit whenever matching files change",
		Flags: []urfavecli.Flag{
			&urfavecli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period before re-running",
				Value: watch.DefaultDebounce,
			},
		},
		Action: runWatch,
	}
}

// runWatch audits once, then again after every burst of changes. Failed
// passes are reported and watching continues.
func runWatch(ctx context.Context, cmd *urfavecli.Command) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	defer closeDebugLog(errWriter(cmd))

	out := newOutputOptions(cmd, cfg)
	w := outWriter(cmd)
	stderr := errWriter(cmd)

	if err := auditOnce(w, cfg, out); err != nil {
		return err
	}

	watcher, err := watch.New(cfg.Root, cfg.Extension, cmd.Duration("debounce"), log.Printf)
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.Root, err)
	}
	defer func() { _ = watcher.Close() }()

	if !out.JSON {
		fmt.Fprintf(w, "\n%s\n", out.Styles.Muted.Render(fmt.Sprintf(
			"Watching %d directories under %s for *%s changes (Ctrl+C to stop)",
			watcher.Watched(), cfg.Root, cfg.Extension)))
	}

	return watcher.Run(ctx, func() error {
		if !out.JSON {
			fmt.Fprintln(w)
		}
		if err := auditOnce(w, cfg, out); err != nil {
			fmt.Fprintf(stderr, "%s\n", out.Styles.Error.Render(err.Error()))
		}
		return nil
	})
}

func versionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			_, err := io.WriteString(outWriter(cmd), buildinfo.String())
			return err
		},
	}
}
