package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestResolveScriptPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = filepath.Join("work", "tree")

	tests := []struct {
		name string
		flag string
		want string
	}{
		{name: "default name inside root", flag: "", want: filepath.Join("work", "tree", "cleanup_python_files.sh")},
		{name: "bare name inside root", flag: "plan.sh", want: filepath.Join("work", "tree", "plan.sh")},
		{name: "relative path as given", flag: filepath.Join("out", "plan.sh"), want: filepath.Join("out", "plan.sh")},
		{name: "absolute path as given", flag: filepath.Join(string(filepath.Separator), "tmp", "plan.sh"), want: filepath.Join(string(filepath.Separator), "tmp", "plan.sh")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveScriptPath(tt.flag, cfg))
		})
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, colorEnabled(config.ColorNever, os.Stdout))
	assert.True(t, colorEnabled(config.ColorAlways, &buf))
	assert.False(t, colorEnabled(config.ColorAuto, &buf), "buffers are never terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled(config.ColorAuto, os.Stdout))
}

func TestEnvLookupFallsBackToDotenv(t *testing.T) {
	isolate(t)
	t.Setenv("MIGAUDIT_TARGET", "Bun")
	cmd := newRootCommand(&bytes.Buffer{}, &bytes.Buffer{}, map[string]string{
		"MIGAUDIT_TARGET":   "Deno",
		"MIGAUDIT_LANGUAGE": "Ruby",
	})
	lookup := envLookup(cmd)

	v, _ := lookup("MIGAUDIT_TARGET")
	assert.Equal(t, "Bun", v)
	v, _ = lookup("MIGAUDIT_LANGUAGE")
	assert.Equal(t, "Ruby", v)
}

func TestEnvFileFromArgs(t *testing.T) {
	tests := []struct {
		args     []string
		want     string
		explicit bool
	}{
		{args: []string{"migaudit", "--env-file", "a.env"}, want: "a.env", explicit: true},
		{args: []string{"migaudit", "verify", "--env-file=b.env"}, want: "b.env", explicit: true},
		{args: []string{"migaudit", "-env-file", "c.env"}, want: "c.env", explicit: true},
		{args: []string{"migaudit", "--env-file"}},
		{args: []string{"migaudit", "--", "--env-file", "d.env"}},
		{args: []string{"migaudit", "--root", "."}},
	}
	for _, tt := range tests {
		got, explicit := envFileFromArgs(tt.args)
		assert.Equal(t, tt.want, got, tt.args)
		assert.Equal(t, tt.explicit, explicit, tt.args)
	}
}

func TestGlobalFlagsDocumentConfigKeys(t *testing.T) {
	names := map[string]bool{}
	for _, f := range globalFlags() {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{"root", "r", "ext", "e", "script", "o", "keep", "converted", "json", "no-color", "config-file", "config", "C", "env-file", "debug-log", "verbose", "theme", "t"} {
		assert.True(t, names[want], want)
	}
}
