// Package config holds the configuration store adapters and the value
// conversions they share. Keys use dot notation ("decode.max_bytes");
// TOML tables map to key prefixes.
package config

import (
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AsString returns val as a string, or "" for other types.
func AsString(val any) string {
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// AsInt returns val as an int. TOML integers decode as int64 and JSON
// numbers as float64; other types yield 0.
func AsInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// AsBool returns val as a bool, or false for other types.
func AsBool(val any) bool {
	b, ok := val.(bool)
	return ok && b
}

// AsStringSlice returns val as a string slice. TOML arrays decode as
// []any; non-string items are dropped.
func AsStringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// ParseValue interprets a command line value as a TOML value, so "4"
// becomes an integer, "true" a bool and `["pdf"]` an array. Anything that
// is not valid TOML is kept as a plain string.
func ParseValue(raw string) any {
	var doc struct {
		V any `toml:"v"`
	}
	if err := toml.Unmarshal([]byte("v = "+raw), &doc); err != nil || doc.V == nil {
		return raw
	}
	return doc.V
}

// FlattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range FlattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// NestMap reverses FlattenMap so that "decode.workers" is written as a
// workers key inside a [decode] table. When a key is both a value and the
// prefix of other keys, the longer keys stay dotted at the top level.
func NestMap(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make(map[string]any)
	for _, key := range keys {
		value := flat[key]
		parts := strings.Split(key, ".")
		node := result
		ok := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, isMap := child.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			node = next
		}
		if !ok {
			result[key] = value
			continue
		}
		node[parts[len(parts)-1]] = value
	}
	return result
}
