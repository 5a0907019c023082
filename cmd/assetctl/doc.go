// Package main provides assetctl, the assetd server CLI.
//
// assetd is the asset & workforce management backend. Its authorization
// engine is data driven: the seeded resource/action catalogs and the role
// grant table are the single source of truth for who can do what, and
// every authenticated request resolves its role's abilities fresh.
//
// # Quick Start
//
//	# Generate a token signing key
//	assetctl token-key generate > token_key
//	export ASSETD_TOKEN_KEY=$(cat token_key)
//
//	# Run database migrations (includes catalog seed data)
//	assetctl db migrate
//
//	# Create an administrator role and account
//	assetctl db seed --email admin@example.com --password changeme
//
//	# Start the server
//	assetctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ASSETD_TOKEN_KEY: Base64-encoded key for login token signing
//   - ASSETD_CONFIG_PATH: Directory holding assetd.yml
//   - ASSETD_LOG_LEVEL: Log level (debug enables SQL logging)
//   - AUDIT_DATABASE_URL: Optional audit database connection string
package main
