// Package bootstrap builds the migaudit command tree.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/config"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns all global flags for the application. Flags are
// inherited by every subcommand.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "Directory to scan",
			Value:   ".",
			Sources: urfavecli.EnvVars(config.EnvName("root")),
		},
		&urfavecli.StringFlag{
			Name:    "ext",
			Aliases: []string{"e"},
			Usage:   "File extension being retired",
			Sources: urfavecli.EnvVars(config.EnvName("extension")),
		},
		&urfavecli.StringFlag{
			Name:    "script",
			Aliases: []string{"o"},
			Usage:   "Cleanup script name inside the root, or a path",
			Sources: urfavecli.EnvVars(config.EnvPrefix + "SCRIPT"),
		},
		&urfavecli.StringSliceFlag{
			Name:    "keep",
			Usage:   "Keep pattern, replaces the built-in list (repeatable)",
			Sources: urfavecli.EnvVars(config.EnvName("keep_patterns")),
		},
		&urfavecli.StringSliceFlag{
			Name:    "converted",
			Usage:   "Converted directory prefix, replaces the built-in list (repeatable)",
			Sources: urfavecli.EnvVars(config.EnvName("converted_dirs")),
		},
		&urfavecli.BoolFlag{
			Name:    "json",
			Usage:   "Print the report as JSON",
			Sources: urfavecli.EnvVars(config.EnvPrefix + "JSON"),
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the color theme (" + strings.Join(theme.AvailableThemes(), ", ") + ")",
			Sources: urfavecli.EnvVars(config.EnvName("theme")),
		},
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
		&urfavecli.StringFlag{
			Name:    "config-file",
			Usage:   "Path to configuration file",
			Sources: urfavecli.EnvVars(config.EnvPrefix + "CONFIG_FILE"),
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage: fmt.Sprintf("Override config values (repeatable): --config=%skey=value, keys: %s",
				config.OverridePrefix, strings.Join(config.Keys, ", ")),
		},
		&urfavecli.StringFlag{
			Name:    "env-file",
			Usage:   "Load environment variables from this file (default: .env when present)",
			Sources: urfavecli.EnvVars(config.EnvPrefix + "ENV_FILE"),
		},
		&urfavecli.BoolFlag{
			Name:  "verbose",
			Usage: "Mirror debug messages to stderr",
		},
		&urfavecli.StringFlag{
			Name:    "debug-log",
			Usage:   "Path to debug log file",
			Sources: urfavecli.EnvVars(config.EnvName("debug_log")),
		},
	}
}

// flagOverrides translates explicitly set flags into config overrides so
// they share the normalization of the config file.
func flagOverrides(cmd *urfavecli.Command) ([]string, error) {
	var overrides []string
	add := func(key, value string) {
		overrides = append(overrides, config.OverridePrefix+key+"="+value)
	}

	if cmd.IsSet("root") {
		add("root", cmd.String("root"))
	}
	if cmd.IsSet("ext") {
		add("extension", cmd.String("ext"))
	}
	if cmd.IsSet("debug-log") {
		add("debug_log", cmd.String("debug-log"))
	}
	if cmd.IsSet("theme") {
		name := cmd.String("theme")
		if theme.Normalize(name) == "" {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		add("theme", name)
	}
	if cmd.Bool("no-color") {
		add("color", config.ColorNever)
	}
	if cmd.IsSet("keep") {
		for _, p := range cmd.StringSlice("keep") {
			add("keep_patterns", p)
		}
	}
	if cmd.IsSet("converted") {
		for _, d := range cmd.StringSlice("converted") {
			add("converted_dirs", d)
		}
	}
	return overrides, nil
}

// envFileFromArgs finds --env-file before the command line is parsed, so
// the variables it defines can feed flag sources.
func envFileFromArgs(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		for _, name := range []string{"--env-file", "-env-file"} {
			if value, ok := strings.CutPrefix(arg, name+"="); ok {
				return value, true
			}
			if arg == name && i+1 < len(args) {
				return args[i+1], true
			}
		}
	}
	return "", false
}
