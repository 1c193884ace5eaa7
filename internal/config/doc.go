// Package config loads redirectctl's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/redirectctl/config.toml
//  3. If the file doesn't exist, start from Default()
//  4. Empty or missing fields keep their defaults
//  5. Environment variables override whatever the file set
//
// # Default Values
//
//   - API URL: http://localhost:29900
//   - Timeout: 10s
//   - Page size: 10
//   - Log file: ~/.local/state/redirectctl/redirectctl.log
//   - Log level: info
//
// # TOML Format
//
//	api_url = "https://redirects.internal"
//	token = "service-auth-token"
//	timeout = "5s"
//	page_size = 20
//	log_file = "~/.local/state/redirectctl/redirectctl.log"
//	log_level = "debug"
//
// # Environment
//
//   - REDIRECT_API_URL overrides api_url
//   - SERVICE_AUTH_TOKEN overrides token
//   - REDIRECTCTL_LOG_LEVEL overrides log_level
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML parse failures ("parse
// config: ...") and timeouts that are not positive durations ("parse
// timeout: ..."). A missing file is not an error.
package config
