package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Duration accepts either a Go duration string ("90s") or integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// jsonConfig mirrors Config for file input. Pointer fields distinguish "not
// set" from zero values so the file only overrides what it names.
type jsonConfig struct {
	Port           *string   `json:"port"`
	DatabaseDSN    *string   `json:"database_dsn"`
	RunMigrations  *bool     `json:"run_migrations"`
	JWTSecret      *string   `json:"jwt_secret"`
	JWTTTL         *Duration `json:"jwt_ttl"`
	HostAPI        *string   `json:"host_api"`
	TxTimeout      *Duration `json:"tx_timeout"`
	StorageBackend *string   `json:"storage_backend"`
	StaticDir      *string   `json:"static_dir"`
	S3AccessKey    *string   `json:"s3_access_key"`
	S3SecretKey    *string   `json:"s3_secret_key"`
	S3Bucket       *string   `json:"s3_bucket"`
	S3Region       *string   `json:"s3_region"`
	S3BaseEndpoint *string   `json:"s3_base_endpoint"`
}

// jsonConfigPath looks for -c/-config (either "-c file" or "-c=file") and
// falls back to the CONFIG environment variable.
func jsonConfigPath(args []string, getenv func(string) string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		for _, name := range []string{"-c", "--c", "-config", "--config"} {
			if arg == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(arg, name+"=") {
				return strings.TrimPrefix(arg, name+"=")
			}
		}
	}
	return getenv("CONFIG")
}

func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var c jsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.Port, c.Port)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	if c.RunMigrations != nil {
		cfg.RunMigrations = *c.RunMigrations
	}
	setString(&cfg.JWTSecret, c.JWTSecret)
	if c.JWTTTL != nil {
		cfg.JWTTTL = c.JWTTTL.Duration
	}
	setString(&cfg.HostAPI, c.HostAPI)
	if c.TxTimeout != nil {
		cfg.TxTimeout = c.TxTimeout.Duration
	}
	setString(&cfg.StorageBackend, c.StorageBackend)
	setString(&cfg.StaticDir, c.StaticDir)
	setString(&cfg.S3AccessKey, c.S3AccessKey)
	setString(&cfg.S3SecretKey, c.S3SecretKey)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
