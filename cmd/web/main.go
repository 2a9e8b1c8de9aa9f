package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/config"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/geocode"
	apphttp "github.com/IvanMykytyn/BetterMeTestTask/internal/http"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/draftcookie"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/flash"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/importer"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	api := counter.NewClient(cfg.CounterBaseURL, nil)
	cache := counter.NewCachedLister(api)

	var geoCache *geocode.Cache
	if cfg.GeocodeCachePath != "" {
		geoCache, err = geocode.OpenCache(cfg.GeocodeCachePath, logger)
		if err != nil {
			// The picker works without the cache, just slower.
			logger.Warn("geocode cache disabled", "err", err)
			geoCache = nil
		}
	}
	geocoder := geocode.NewClient(cfg.GeocodeEndpoint, nil, geoCache)

	archive, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("import archive ready", "driver", archive.Driver)

	secret := []byte(cfg.AppSecret)
	deps := apphttp.Deps{
		API:            api,
		Cache:          cache,
		Flash:          flash.NewCodec(secret, "flash", cfg.SecureCookies),
		Draft:          draftcookie.New(secret, "orders_draft", cfg.SecureCookies),
		Picker:         picker.NewSessions(geocoder, picker.Config{}),
		Tracker:        importer.NewTracker(),
		Archive:        archive.Storage,
		ImportMaxBytes: cfg.ImportMaxBytes,
	}

	r := apphttp.NewRouter(logger, deps)
	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
