package config

import "time"

// StructuredConfig is the top-level configuration container for the
// Anamneon archive process. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds session token parameters.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the relational store file and the
	// handling of transient plaintext copies.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the loopback address and timeout settings for the
	// HTTP API consumed by the interactive surface.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for the background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds session token settings. The token only authenticates API
// requests; decryption keys live in the in-memory key store and are never
// embedded in tokens.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify session JWTs.
	// Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid
	// (e.g. "12h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration of the persistence layer.
type Storage struct {
	// DB holds the relational store settings.
	DB DB `envPrefix:"DB_"`

	// Files holds settings for decrypted temporary copies.
	Files Files `envPrefix:"FILES_"`
}

// DB holds the sqlite store file settings.
type DB struct {
	// DSN is the path of the store file. The file is created on first
	// start if it does not exist.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Files holds settings for transient plaintext copies produced by the
// open-file operation.
type Files struct {
	// TempTTL is how long a decrypted temporary copy may exist before the
	// janitor removes it.
	// Env: STORAGE_FILES_TEMP_TTL
	TempTTL time.Duration `env:"TEMP_TTL"`
}

// Server holds network settings of the local HTTP API.
type Server struct {
	// HTTPAddress is the listen address, expected to stay on loopback.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds request handling (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// DeriveWorkers is the size of the key-derivation pool.
	// Env: WORKERS_DERIVE_WORKERS
	DeriveWorkers int `env:"DERIVE_WORKERS"`

	// DeriveQueue is the number of derivation jobs that may wait for a
	// free worker before submitters block.
	// Env: WORKERS_DERIVE_QUEUE
	DeriveQueue int `env:"DERIVE_QUEUE"`
}

// defaults returns the built-in configuration, merged in last so any value
// from env, flags, or JSON wins.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			TokenIssuer:   "anamneon",
			TokenDuration: 12 * time.Hour,
		},
		Storage: Storage{
			DB:    DB{DSN: "anamneon.db"},
			Files: Files{TempTTL: time.Minute},
		},
		Server: Server{
			HTTPAddress:    "localhost:8620",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			DeriveWorkers: 2,
			DeriveQueue:   16,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. Precedence, highest first: environment variables,
// command-line flags, JSON file, defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
