package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/buildinfo"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/config"
	"github.com/joho/godotenv"
	urfavecli "github.com/urfave/cli/v3"
)

const (
	defaultEnvFile = ".env"
	envLookupKey   = "envLookup"
)

// Run parses args (including the program name) and executes the selected
// command. Output goes to stdout and diagnostics to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	dotenv, err := loadEnvFile(args)
	if err != nil {
		return err
	}
	return newRootCommand(stdout, stderr, dotenv).Run(ctx, args)
}

// loadEnvFile reads --env-file (or MIGAUDIT_ENV_FILE) before flags are
// resolved and exports variables not already set, so they can feed flag
// sources. The default .env is optional, an explicit file is not.
func loadEnvFile(args []string) (map[string]string, error) {
	path, explicit := envFileFromArgs(args)
	if !explicit {
		if v := os.Getenv(config.EnvPrefix + "ENV_FILE"); v != "" {
			path, explicit = v, true
		}
	}
	if !explicit {
		path = defaultEnvFile
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading env file %s: %w", path, err)
	}
	for name, value := range values {
		if _, ok := os.LookupEnv(name); !ok {
			_ = os.Setenv(name, value)
		}
	}
	return values, nil
}

func newRootCommand(stdout, stderr io.Writer, dotenv map[string]string) *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "migaudit",
		Usage:     "Audit a partially migrated codebase and draft a cleanup script",
		Version:   buildinfo.Version(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),

		// Adds the "completion" command printing shell completion scripts.
		EnableShellCompletion: true,
		ConfigureShellCompletionCommand: func(completion *urfavecli.Command) {
			completion.Writer = stdout
			completion.ErrWriter = stderr
		},

		Commands: []*urfavecli.Command{
			verifyCommand(),
			reviewCommand(),
			watchCommand(),
			versionCommand(),
		},
		Action: runAudit,
		Metadata: map[string]any{
			envLookupKey: config.ChainLookup(os.LookupEnv, config.MapLookup(dotenv)),
		},
	}
}
