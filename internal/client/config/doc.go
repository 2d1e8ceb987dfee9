// Package config loads runtime configuration for the kbcli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the knowledge-base server
//	-t int      request timeout (seconds)
//	-d string   path to the local state database
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:5000",
//	  "request_timeout_secs": 15,
//	  "store_dsn": "kbcli.db"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags.
package config
