// Package config loads, normalizes, and validates ytdl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YTDL_OUTPUT_DIR. The Config type centralizes every knob the CLI needs so the
// output directory and external tool locations are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
