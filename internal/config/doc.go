// Package config handles loading and validation of ngm configuration.
//
// Configuration is read from ~/.config/ngm/config.toml, or from the file
// named by the NGM_CONFIG environment variable.
//
// # Configuration Sources (highest priority first)
//
//   - <root>/.ngm/config.toml: workspace-local overrides
//   - Global config file
//   - Default values
//
// # Key Settings
//
//   - git: git binary to invoke (default: "git")
//   - refresh_ms: progress display refresh interval (default: 100)
//   - index_concurrency: parallel repositories while indexing (default: 8)
//   - discovery.ignore: directory base-name globs skipped by discovery
//   - theme: colors and nerd font symbols
//
// # Local Overrides
//
// A workspace may carry its own config next to the snapshot. Scalar values
// replace the global ones; discovery.ignore patterns are appended.
package config
