package config

import (
	"fmt"
	"strconv"
	"time"
)

func parseEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"PORT":             &cfg.Port,
		"DB_DSN":           &cfg.DatabaseDSN,
		"JWT_SECRET":       &cfg.JWTSecret,
		"HOST_API":         &cfg.HostAPI,
		"STORAGE_BACKEND":  &cfg.StorageBackend,
		"STATIC_DIR":       &cfg.StaticDir,
		"S3_ACCESS_KEY":    &cfg.S3AccessKey,
		"S3_SECRET_KEY":    &cfg.S3SecretKey,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"JWT_TTL":    &cfg.JWTTTL,
		"TX_TIMEOUT": &cfg.TxTimeout,
	}
	for key, dst := range durations {
		v := getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v := getenv("RUN_MIGRATIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RUN_MIGRATIONS: %w", err)
		}
		cfg.RunMigrations = b
	}
	return nil
}
