// Package config provides configuration management for the prompt dashboard.
//
// Configuration is loaded from environment variables and validated on startup.
// All configuration options have sensible defaults for development; Redis is
// optional and only needed for the prompt stream and the stream worker.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
