package seeder

import (
	"errors"
	"time"

	"github.com/Lumos-Labs-HQ/airseed/internal/catalog"
	"github.com/Lumos-Labs-HQ/airseed/internal/config"
)

var (
	ErrNoRoutes          = errors.New("catalog has no routes to schedule flights on")
	ErrSamplingExhausted = errors.New("route sampling exceeded its attempt budget")
	ErrNegativeCount     = errors.New("record count must not be negative")
)

// SeedConfig is everything one generation run needs.
type SeedConfig struct {
	Seed       int64
	Scale      int
	Variant    string
	BaseTime   time.Time
	Passengers int
	Flights    int
	OutputDir  string
	Format     string
	Generation config.Generation
	Catalog    config.Catalog
	// Fixed bypasses catalog loading when set.
	Fixed *catalog.Catalog
}

type TableInfo struct {
	Name         string
	Dependencies []string
}

type Result struct {
	RunID         string
	Seed          int64
	CatalogSource string
	Order         []string
	Counts        map[string]int
	Files         []string
	Manifest      string
}
