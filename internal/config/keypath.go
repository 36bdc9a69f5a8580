// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetValue retrieves a value from a Config by dot-notation key path.
// It returns scalar values as-is, and maps for intermediate nodes.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := ToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return navigateMap(m, keyPath)
}

// SetValue sets a value in a raw YAML map by dot-notation key path,
// creating intermediate maps as needed.
func SetValue(data map[string]any, keyPath string, rawValue string) error {
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}
	parts := strings.Split(keyPath, ".")

	current := data
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part]
		if !ok {
			next := make(map[string]any)
			current[part] = next
			current = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not a map", part)
		}
		current = next
	}

	current[parts[len(parts)-1]] = coerceValue(rawValue)
	return nil
}

// FlattenMap recursively flattens a nested map to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range FlattenMap(sub, key) {
				result[sk] = sv
			}
		} else {
			result[key] = v
		}
	}
	return result
}

// ValidateKeyPath checks that a dot-notation key path names a Config field.
// The valid set comes from the yaml struct tags.
func ValidateKeyPath(keyPath string) error {
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}
	parts := strings.Split(keyPath, ".")

	topKeys := yamlKeys(reflect.TypeOf(Config{}))
	first := parts[0]
	if !topKeys[first] {
		return fmt.Errorf("unknown key %q; valid top-level keys: %s", first, sortedKeys(topKeys))
	}

	if first != "backend" {
		if len(parts) > 1 {
			return fmt.Errorf("key %q is a scalar; cannot use sub-keys", first)
		}
		return nil
	}

	if len(parts) == 1 {
		return fmt.Errorf("backend requires a field name (e.g. backend.kind)")
	}
	if len(parts) > 2 {
		return fmt.Errorf("key path too deep: %q", keyPath)
	}
	backendKeys := yamlKeys(reflect.TypeOf(BackendConfig{}))
	if !backendKeys[parts[1]] {
		return fmt.Errorf("unknown backend field %q; valid fields: %s", parts[1], sortedKeys(backendKeys))
	}
	return nil
}

// ToMap marshals a Config to a map via YAML round-trip, omitting zero values.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// navigateMap traverses a nested map using a dot-notation key path.
func navigateMap(m map[string]any, keyPath string) (any, error) {
	parts := strings.Split(keyPath, ".")
	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: parent is not a map", part)
		}
		val, exists := cm[part]
		if !exists {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		current = val
	}
	return current, nil
}

// coerceValue parses a string into bool or int, or keeps it as a string.
// Durations like "24h" and modes like "low" stay strings.
func coerceValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return s
}

// yamlKeys extracts yaml tag names from a struct type.
func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}

// sortedKeys returns a comma-separated sorted list of map keys.
func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
