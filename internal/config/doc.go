// Package config loads and validates application configuration from
// environment variables (DISPO_ prefix) and an optional YAML file. The
// environment wins over the file; struct tag defaults apply last. The
// loaded Config is treated as immutable for the lifetime of a run.
package config
