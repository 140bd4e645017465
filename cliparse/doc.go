// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3007)
  - DatabaseURL: sqlite file or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for the admin key HMAC and origin hashing (required)
  - TimeZone: Reference zone for the daily reset (default: Asia/Taipei)
  - TrustProxy: Read the client address from proxy headers
  - MaxDBConns: Connection pool size (default: 10)
  - Tunables: limits and enumerations, see below

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-max-conns        Connection pool size
	-trust-proxy      Trust X-Forwarded-For / X-Real-IP
	-tz               Reference time zone
	-c                YAML tunables file
	-admin-salt       Admin key salt
	-print-admin-key  Print the admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	DB_MAX_CONNS   → -max-conns
	TRUST_PROXY    → -trust-proxy
	VOTE_TIMEZONE  → -tz
	VOTEAPP_CONFIG → -c
	ADMIN_KEY_SALT → -admin-salt

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Tunables

The YAML file overrides only the fields it names:

	regions: ["臺北市", "新北市"]
	messageCooldown: 5s
	messageSweepAge: 1m
	broadcastRetention: 720h
	feedLimit: 20

LoadTunables validates the result and reports every bad field at once.
*/
package cliparse
