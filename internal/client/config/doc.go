// Package config loads runtime configuration for the Ignite client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. IGNITE_* environment variables (IGNITE_API_BASE_URL,
//     IGNITE_SMTP_HOST, ...).
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "store_path": "ignite.db",
//	  "api_base_url": "http://127.0.0.1:5000",
//	  "health_addr": "127.0.0.1:50051",
//	  "code_ttl": "10m",
//	  "online_check_interval": "3s",
//	  "smtp": {"host": "smtp.example.com", "port": 587, "from": "noreply@example.com"}
//	}
package config
