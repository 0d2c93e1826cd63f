// Package config handles loading and parsing the Lumina configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise honor the LUMINA_CONFIG environment variable
//  3. Otherwise use ~/.config/lumina/config.toml
//  4. If the file does not exist, fall back to hardcoded defaults
//  5. If the file exists but fields are missing, use defaults per field
//
// A missing config file is NOT an error. A file that exists but fails to
// parse is, because silently ignoring a typo'd config is worse than
// refusing to start.
//
// # TOML Format
//
// Example ~/.config/lumina/config.toml:
//
//	base_url = "https://luminaai.zesbe.my.id/api/v1"
//	request_timeout_secs = 15
//	default_type = "music"
//	default_model = "music-2.0"
//	list_limit = 50
//	log_path = "~/.local/share/lumina/lumina.log"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Environment Overrides
//
// LUMINA_BASE_URL overrides base_url regardless of what the file says,
// which is the quickest way to point a build at a staging backend. The
// binary loads a .env file at startup, so the override can live next to a
// development checkout.
//
// # Design Philosophy
//
// Lumina should work immediately with zero configuration. The package is
// read-only and stateless: configuration is loaded once at startup into an
// immutable Config struct.
package config
