package geocode

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const cacheTTL = 24 * time.Hour

// cachedLookup is one stored geocoder answer, keyed by the normalized query.
// Raw keeps the provider response as delivered, for debugging mismatches.
type cachedLookup struct {
	Query       string `gorm:"primaryKey"`
	Lat         float64
	Lng         float64
	DisplayName string
	Raw         datatypes.JSON
	CreatedAt   time.Time
}

func (cachedLookup) TableName() string { return "geocode_lookups" }

// Cache is a sqlite-backed store of past geocoder answers. Identical queries
// inside the TTL never hit the network again; the picker's debounce handles
// the rapid-typing case, this handles users searching the same places across
// sessions. Failures here only cost a lookup, so they are logged and ignored.
type Cache struct {
	db  *gorm.DB
	log *slog.Logger
}

// OpenCache opens (and migrates) the cache database at path.
func OpenCache(path string, log *slog.Logger) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&cachedLookup{}); err != nil {
		return nil, err
	}
	return &Cache{db: db, log: log}, nil
}

func (c *Cache) Lookup(query string) (Result, bool) {
	var row cachedLookup
	err := c.db.Where("query = ?", normalizeQuery(query)).First(&row).Error
	if err != nil {
		return Result{}, false
	}
	if time.Since(row.CreatedAt) > cacheTTL {
		return Result{}, false
	}
	return Result{Lat: row.Lat, Lng: row.Lng, DisplayName: row.DisplayName}, true
}

func (c *Cache) Store(query string, res Result, raw any) {
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		rawJSON = nil
	}
	row := cachedLookup{
		Query:       normalizeQuery(query),
		Lat:         res.Lat,
		Lng:         res.Lng,
		DisplayName: res.DisplayName,
		Raw:         datatypes.JSON(rawJSON),
		CreatedAt:   time.Now(),
	}
	if err := c.db.Save(&row).Error; err != nil && c.log != nil {
		c.log.Warn("geocode cache store failed", "query", query, "err", err)
	}
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
