// Package config loads migaudit configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/audit"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/cleanup"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
	"gopkg.in/yaml.v3"
)

// ProjectConfigName is looked up in the scan root when no config file is given.
const ProjectConfigName = ".migaudit.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// AuditConfig defines everything a run needs besides the tree itself.
type AuditConfig struct {
	Root          string
	Extension     string   // Suffix of files being retired (default: ".py")
	Language      string   // Human name of that language, used in script wording
	Target        string   // Human name of the replacement implementation
	KeepPatterns  []string // Substrings that keep a file
	ConvertedDirs []string // Already migrated prefixes, reported only
	ScriptName    string
	Color         string // "auto", "always" or "never"
	Theme         string
	DebugLog      string
	ShowIcons     bool   // Nerd Font icons in the review UI
	Source        string `yaml:"-"`
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() *AuditConfig {
	return &AuditConfig{
		Root:          ".",
		Extension:     audit.DefaultExtension,
		Language:      "Python",
		Target:        "Node.js",
		KeepPatterns:  append([]string(nil), audit.DefaultKeepPatterns...),
		ConvertedDirs: append([]string(nil), audit.DefaultConvertedDirs...),
		ScriptName:    cleanup.DefaultScriptName,
		Color:         ColorAuto,
		Theme:         theme.DraculaName,
		ShowIcons:     true,
	}
}

// ScanOptions returns the audit options of the configuration.
func (c *AuditConfig) ScanOptions() audit.Options {
	return audit.Options{
		Extension:    c.Extension,
		KeepPatterns: c.KeepPatterns,
	}
}

// ScriptOptions returns the cleanup script wording of the configuration.
func (c *AuditConfig) ScriptOptions() cleanup.Options {
	return cleanup.Options{
		Language: c.Language,
		Target:   c.Target,
	}
}

// normalizeStringList converts a scalar or a list into trimmed, non-empty
// strings. An explicit empty list stays empty.
func normalizeStringList(value any) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return []string{}
		}
		return []string{text}
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	case []string:
		return normalizeStringList(toAnySlice(v))
	}
	return []string{}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func trimmedString(data map[string]any, key string) (string, bool) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return "", false
	}
	text := strings.TrimSpace(fmt.Sprintf("%v", raw))
	return text, text != ""
}

// normalizeExtension accepts "py" or ".py".
func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// applyConfigData merges parsed YAML (or override) values into cfg.
// Unknown keys are ignored, invalid enum values keep the current value.
func applyConfigData(cfg *AuditConfig, data map[string]any) {
	if root, ok := trimmedString(data, "root"); ok {
		cfg.Root = root
	}
	if ext, ok := trimmedString(data, "extension"); ok {
		cfg.Extension = normalizeExtension(ext)
	}
	if language, ok := trimmedString(data, "language"); ok {
		cfg.Language = language
	}
	if target, ok := trimmedString(data, "target"); ok {
		cfg.Target = target
	}
	if _, ok := data["keep_patterns"]; ok {
		cfg.KeepPatterns = normalizeStringList(data["keep_patterns"])
	}
	if _, ok := data["converted_dirs"]; ok {
		cfg.ConvertedDirs = normalizeStringList(data["converted_dirs"])
	}
	if name, ok := trimmedString(data, "script_name"); ok {
		cfg.ScriptName = filepath.Base(name)
	}
	if color, ok := trimmedString(data, "color"); ok {
		color = strings.ToLower(color)
		switch color {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.Color = color
		}
	}
	if themeName, ok := trimmedString(data, "theme"); ok {
		if normalized := theme.Normalize(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if debugLog, ok := trimmedString(data, "debug_log"); ok {
		cfg.DebugLog = debugLog
	}
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
}

func parseConfig(data map[string]any) *AuditConfig {
	cfg := DefaultConfig()
	applyConfigData(cfg, data)
	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// candidatePaths lists the files LoadConfig tries, in order.
func candidatePaths(configPath, root string) ([]string, error) {
	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return nil, err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return nil, err
		}
		return []string{absPath}, nil
	}

	if root == "" {
		root = "."
	}
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "migaudit"))
	return []string{
		filepath.Join(root, ProjectConfigName),
		filepath.Join(configBase, "config.yaml"),
		filepath.Join(configBase, "config.yml"),
	}, nil
}

// LoadConfig reads the first config file found. An explicit configPath must
// exist; the implicit locations are optional. A file that fails to parse
// yields the defaults together with the error.
func LoadConfig(configPath, root string) (*AuditConfig, error) {
	paths, err := candidatePaths(configPath, root)
	if err != nil {
		return DefaultConfig(), err
	}

	for _, path := range paths {
		// #nosec G304 -- config locations are chosen by the user
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) && configPath == "" {
				continue
			}
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}

		cfg := parseConfig(yamlData)
		cfg.Source = path
		if root != "" && yamlData["root"] == nil {
			cfg.Root = root
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if root != "" {
		cfg.Root = root
	}
	return cfg, nil
}

// ApplyCLIOverrides applies --config=audit.key=value pairs on top of cfg.
func (c *AuditConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	applyConfigData(c, data)
	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
