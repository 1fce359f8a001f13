package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/config"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/log"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// outputOptions are the per-run presentation choices derived from flags and
// configuration.
type outputOptions struct {
	JSON       bool
	Styles     theme.Styles
	ScriptPath string
}

// loadCLIConfig resolves the configuration in increasing precedence:
// defaults, config file, MIGAUDIT_* environment, flags, --config overrides.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AuditConfig, error) {
	stderr := errWriter(cmd)

	root := ""
	if cmd.IsSet("root") {
		root = cmd.String("root")
	}
	cfg, err := config.LoadConfig(cmd.String("config-file"), root)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		if root != "" {
			cfg.Root = root
		}
	}

	cfg.ApplyEnv(envLookup(cmd))

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return nil, err
	}
	// Applied separately so --config replaces a flag value instead of
	// being merged with it into a list.
	for _, set := range [][]string{overrides, cmd.StringSlice("config")} {
		if len(set) == 0 {
			continue
		}
		if err := cfg.ApplyCLIOverrides(set); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	if expanded, err := config.ExpandPath(cfg.Root); err == nil {
		cfg.Root = expanded
	}
	setupDebugLog(cfg, stderr)
	if cmd.Bool("verbose") {
		log.SetMirror(stderr)
	}
	if cfg.Source != "" {
		log.Printf("config loaded from %s", cfg.Source)
	}
	log.Printf("root=%s extension=%s keep=%v converted=%v", cfg.Root, cfg.Extension, cfg.KeepPatterns, cfg.ConvertedDirs)
	return cfg, nil
}

// setupDebugLog points the debug log at the configured file, or discards it.
func setupDebugLog(cfg *config.AuditConfig, stderr io.Writer) {
	if cfg.DebugLog == "" {
		_ = log.SetFile("")
		return
	}
	path := cfg.DebugLog
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	cfg.DebugLog = path
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

func closeDebugLog(stderr io.Writer) {
	log.SetMirror(nil)
	if err := log.Close(); err != nil {
		fmt.Fprintf(stderr, "Error closing debug log: %v\n", err)
	}
}

// newOutputOptions derives the presentation of a run. Styling is dropped for
// JSON, for --no-color and whenever the writer is not a terminal in auto
// mode.
func newOutputOptions(cmd *urfavecli.Command, cfg *config.AuditConfig) outputOptions {
	jsonOut := cmd.Bool("json")
	plain := jsonOut || !colorEnabled(cfg.Color, outWriter(cmd))
	return outputOptions{
		JSON:       jsonOut,
		Styles:     theme.NewStyles(theme.GetTheme(cfg.Theme), plain),
		ScriptPath: resolveScriptPath(cmd.String("script"), cfg),
	}
}

// colorEnabled decides whether output to w is styled.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// resolveScriptPath returns where the cleanup script lives. A bare name is
// placed inside the root so the relative paths it lists resolve; anything
// with a directory part is used as given.
func resolveScriptPath(flagValue string, cfg *config.AuditConfig) string {
	name := strings.TrimSpace(flagValue)
	if name == "" {
		return filepath.Join(cfg.Root, cfg.ScriptName)
	}
	if expanded, err := config.ExpandPath(name); err == nil {
		name = expanded
	}
	if filepath.Base(name) != name {
		return name
	}
	return filepath.Join(cfg.Root, name)
}

// envLookup returns the process environment backed by the .env values read
// at startup.
func envLookup(cmd *urfavecli.Command) func(string) (string, bool) {
	if lookup, ok := cmd.Root().Metadata[envLookupKey].(func(string) (string, bool)); ok {
		return lookup
	}
	return os.LookupEnv
}

func outWriter(cmd *urfavecli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *urfavecli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
