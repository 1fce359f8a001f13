package config

import (
	"strings"
)

// EnvPrefix leads every environment variable migaudit reads, e.g.
// MIGAUDIT_EXTENSION or MIGAUDIT_KEEP_PATTERNS.
const EnvPrefix = "MIGAUDIT_"

var listKeys = map[string]bool{
	"keep_patterns":  true,
	"converted_dirs": true,
}

// EnvName returns the environment variable of a config key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// ApplyEnv applies MIGAUDIT_* variables found through lookup. List values
// are comma separated.
func (c *AuditConfig) ApplyEnv(lookup func(string) (string, bool)) {
	data := make(map[string]any)
	for _, key := range Keys {
		value, ok := lookup(EnvName(key))
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if listKeys[key] {
			items := []any{}
			for _, item := range strings.Split(value, ",") {
				items = append(items, item)
			}
			data[key] = items
			continue
		}
		data[key] = value
	}
	applyConfigData(c, data)
}

// ChainLookup consults each lookup in order and returns the first hit.
func ChainLookup(lookups ...func(string) (string, bool)) func(string) (string, bool) {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}
			if v, ok := lookup(name); ok {
				return v, true
			}
		}
		return "", false
	}
}

// MapLookup adapts a map, such as one read from a .env file, to a lookup.
func MapLookup(m map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}
