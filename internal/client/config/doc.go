// Package config loads runtime configuration for the taskkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. TASKKEEPER_CLIENT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   auth service URL including its base path
//	-t string   task service URL including its base path
//	-r int      request timeout (seconds)
//
// # JSON schema
//
// Timeouts use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "auth_server_url": "http://127.0.0.1:8001/auth",
//	  "task_server_url": "http://127.0.0.1:8002/api",
//	  "request_timeout": "10s"
//	}
package config
