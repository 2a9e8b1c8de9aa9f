// Package config resolves service configuration. Environment variables win;
// an optional YAML file (CONFIG_FILE) fills the rest; defaults cover the
// remainder. The .env file itself is loaded by main before this runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/geocode"
)

const (
	defaultListenAddr     = ":8080"
	defaultImportMaxBytes = 30 << 20 // 30MB, same cap the dropzone shows
	devSecret             = "dev-only-secret"
)

type Config struct {
	ListenAddr       string
	CounterBaseURL   string
	GeocodeEndpoint  string
	GeocodeCachePath string
	AppSecret        string
	ImportMaxBytes   int64
	SecureCookies    bool
}

type fileConfig struct {
	ListenAddr       string `yaml:"listen_addr"`
	CounterBaseURL   string `yaml:"counter_base_url"`
	GeocodeEndpoint  string `yaml:"geocode_endpoint"`
	GeocodeCachePath string `yaml:"geocode_cache_path"`
}

// Load builds the config. COUNTER_API_BASE_URL is the only hard requirement;
// everything else has a workable default.
func Load() (Config, error) {
	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := Config{
		ListenAddr:       pick(os.Getenv("LISTEN_ADDR"), fc.ListenAddr, defaultListenAddr),
		CounterBaseURL:   pick(os.Getenv("COUNTER_API_BASE_URL"), fc.CounterBaseURL, ""),
		GeocodeEndpoint:  pick(os.Getenv("GEOCODE_ENDPOINT"), fc.GeocodeEndpoint, geocode.DefaultEndpoint),
		GeocodeCachePath: pick(os.Getenv("GEOCODE_CACHE_PATH"), fc.GeocodeCachePath, ""),
		AppSecret:        pick(os.Getenv("APP_SECRET"), "", devSecret),
		ImportMaxBytes:   envInt64("IMPORT_MAX_BYTES", defaultImportMaxBytes),
		SecureCookies:    os.Getenv("SECURE_COOKIES") == "1",
	}

	if cfg.CounterBaseURL == "" {
		return Config{}, fmt.Errorf("COUNTER_API_BASE_URL is required")
	}
	return cfg, nil
}

func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
