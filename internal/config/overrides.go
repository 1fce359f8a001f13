package config

import (
	"fmt"
	"strings"
)

// OverridePrefix must lead every --config key.
const OverridePrefix = "audit."

// Keys lists the configuration keys understood by the YAML file and by
// --config overrides.
var Keys = []string{
	"root", "extension", "language", "target", "keep_patterns",
	"converted_dirs", "script_name", "color", "theme", "debug_log", "show_icons",
}

// parseCLIConfigOverrides parses --config=audit.key=value pairs into a map
// suitable for applyConfigData. Repeating a key builds a list.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	keyCount := make(map[string]int)

	for _, override := range overrides {
		fullKey, value, found := strings.Cut(override, "=")
		if !found {
			return nil, fmt.Errorf("invalid config override: %q, expected format: %skey=value", override, OverridePrefix)
		}
		if !strings.HasPrefix(fullKey, OverridePrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", OverridePrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, OverridePrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		keyCount[key]++
		switch keyCount[key] {
		case 1:
			result[key] = value
		case 2:
			result[key] = []any{result[key].(string), value}
		default:
			result[key] = append(result[key].([]any), value)
		}
	}

	return result, nil
}
