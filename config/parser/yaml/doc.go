// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml with native PathString support for
// section navigation. Colon-separated paths (e.g., "tools:yaml2json") are
// converted to YAML path format (e.g., "$.tools.yaml2json") internally.
//
// Usage:
//
//	parser := yaml.NewParser(yaml.WithStrict())
//	var settings Settings
//	err := parser.Parse(data, &settings, "yaml2json")
package yaml
