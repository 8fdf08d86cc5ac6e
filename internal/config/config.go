package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	DBDSN   string `envconfig:"DB_DSN" default:"tienda.db"`
	LogFile string `envconfig:"LOG_FILE" default:""`

	// Object storage (S3-compatible).
	StorageEndpoint  string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	StorageAccessKey string `envconfig:"STORAGE_ACCESS_KEY" default:""`
	StorageSecretKey string `envconfig:"STORAGE_SECRET_KEY" default:""`
	StorageBucket    string `envconfig:"STORAGE_BUCKET" default:"tienda"`
	StorageUseSSL    bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	// Base URL images are served from; defaults to the endpoint when empty.
	StoragePublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:""`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"` // 5 MiB per file

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"168h"` // 7 days

	// Public catalog responses are cached for this long; 0 disables the cache.
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"60s"`

	// Temp-object sweeper; interval 0 disables it.
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
	SweepMaxAge   time.Duration `envconfig:"SWEEP_MAX_AGE" default:"24h"`

	// Seed credentials for the single admin account.
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@tienda.test"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"Cambiame1!"`
}

func Load() (Config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.StoragePublicURL == "" {
		scheme := "http"
		if cfg.StorageUseSSL {
			scheme = "https"
		}
		cfg.StoragePublicURL = scheme + "://" + cfg.StorageEndpoint
	}
	log.Printf("[config] PORT=%s DB_DSN=%s BUCKET=%s STORAGE=%s", cfg.Port, cfg.DBDSN, cfg.StorageBucket, cfg.StorageEndpoint)
	return cfg, nil
}
