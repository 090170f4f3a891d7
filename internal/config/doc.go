// Package config loads bookgrid's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bookgrid/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Endpoint: http://localhost:8000/data/
//   - Request timeout: none
//   - Retries: none (one attempt per mount)
//   - Retry wait: 500ms to 5s, only used when retry_max > 0
//   - Log file: ~/.local/share/bookgrid/bookgrid.log
//   - Listen address (serve): 127.0.0.1:5173
//
// # TOML Format
//
//	endpoint = "http://localhost:8000/data/"
//	request_timeout = "10s"
//	retry_max = 0
//	retry_wait_min = "500ms"
//	retry_wait_max = "5s"
//	log_file = "~/.local/share/bookgrid/bookgrid.log"
//	listen_addr = "127.0.0.1:5173"
//	cors_origins = ["http://localhost:5173"]
//
// Durations use Go syntax (time.ParseDuration). Tilde expansion is applied
// to log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, unparseable or negative durations, and a
//     negative retry_max
//
// Missing config files are NOT an error, so bookgrid works against a local
// endpoint without any setup.
package config
