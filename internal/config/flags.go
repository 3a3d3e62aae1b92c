package config

import (
	"flag"
	"io"
)

// parseFlags overlays command-line flags onto cfg.
//
//	-a string     listen port
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret
//	-t duration   JWT validity, e.g. "2h"
//	-host string  public API base used in upload URLs
//	-storage      "local" or "s3"
//	-static       directory for local uploads
//	-c string     JSON config file (consumed earlier by jsonConfigPath)
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("app", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Port, "a", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT secret")
	fs.DurationVar(&cfg.JWTTTL, "t", cfg.JWTTTL, "JWT validity")
	fs.StringVar(&cfg.HostAPI, "host", cfg.HostAPI, "public API base URL")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "file storage backend")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "local upload directory")
	fs.BoolVar(&cfg.RunMigrations, "migrate", cfg.RunMigrations, "run migrations on startup")
	fs.String("c", "", "JSON config file")
	fs.String("config", "", "JSON config file")

	return fs.Parse(args)
}
