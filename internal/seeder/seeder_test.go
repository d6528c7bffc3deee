package seeder

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/airseed/internal/catalog"
	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/export"
	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

func twoCityCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]types.Location{{Code: "JFK", Name: "John F Kennedy Intl"}, {Code: "LAX", Name: "Los Angeles Intl"}},
		[]types.Route{{Carrier: "AA", Origin: "JFK", Destination: "LAX"}},
	)
	require.NoError(t, err)
	return c
}

func runConfig(dir string, fixed *catalog.Catalog) SeedConfig {
	gen := config.Preset(config.VariantBasic)
	gen.Archetypes = []config.Archetype{{Name: "any", Weight: 1, Min: 1, Max: 2}}
	return SeedConfig{
		Seed:       42,
		Scale:      1,
		Variant:    config.VariantBasic,
		BaseTime:   baseTime,
		Passengers: 5,
		Flights:    5,
		OutputDir:  dir,
		Format:     export.FormatCSV,
		Generation: gen,
		Catalog:    config.Catalog{Offline: true},
		Fixed:      fixed,
	}
}

func run(t *testing.T, sc SeedConfig) *Result {
	t.Helper()
	sink, err := export.New(sc.Format, sc.OutputDir, export.Options{})
	require.NoError(t, err)
	result, err := New(sink).Run(context.Background(), sc)
	require.NoError(t, err)
	return result
}

func dirContents(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(data)
	}
	return out
}

func TestRun_SmallCatalog(t *testing.T) {
	dir := t.TempDir()
	result := run(t, runConfig(dir, twoCityCatalog(t)))

	assert.Equal(t, catalog.SourceExplicit, result.CatalogSource)
	assert.Equal(t, []string{types.FlightTable, types.PassengerTable, types.BookingTable}, result.Order)
	assert.Equal(t, 5, result.Counts[types.PassengerTable])
	assert.Equal(t, 5, result.Counts[types.FlightTable])
	assert.GreaterOrEqual(t, result.Counts[types.BookingTable], 5)
	assert.LessOrEqual(t, result.Counts[types.BookingTable], 10)

	names := make([]string, 0)
	for name := range dirContents(t, dir) {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"bookings.csv", "flights.csv", "load_csv.sql", "manifest.yaml", "passengers.csv"}, names)

	m, err := export.ReadManifest(result.Manifest)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, m.RunID)
	assert.Equal(t, "2025-06-01", m.BaseDate)
	assert.Equal(t, []export.TableCount{
		{Name: types.FlightTable, Rows: 5},
		{Name: types.PassengerTable, Rows: 5},
		{Name: types.BookingTable, Rows: result.Counts[types.BookingTable]},
	}, m.Tables)
	assert.Equal(t, []string{"flights.csv", "passengers.csv", "bookings.csv", "load_csv.sql"}, m.Files)
}

func TestRun_Deterministic(t *testing.T) {
	for _, variant := range []string{config.VariantBasic, config.VariantEnhanced} {
		t.Run(variant, func(t *testing.T) {
			first, second := t.TempDir(), t.TempDir()

			for _, dir := range []string{first, second} {
				sc := runConfig(dir, nil)
				sc.Variant = variant
				sc.Generation = config.Preset(variant)
				sc.Passengers = 200
				sc.Flights = 50
				run(t, sc)
			}

			a, b := dirContents(t, first), dirContents(t, second)
			require.NotEmpty(t, a)
			assert.Equal(t, a, b)
		})
	}
}

func TestRun_SeedChangesOutput(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	sc := runConfig(first, twoCityCatalog(t))
	r1 := run(t, sc)
	sc = runConfig(second, twoCityCatalog(t))
	sc.Seed = 43
	r2 := run(t, sc)

	assert.NotEqual(t, r1.RunID, r2.RunID)
	assert.NotEqual(t, dirContents(t, first)["passengers.csv"], dirContents(t, second)["passengers.csv"])
}

func TestRun_OfflineUsesFallbackCatalog(t *testing.T) {
	dir := t.TempDir()
	result := run(t, runConfig(dir, nil))
	assert.Equal(t, catalog.SourceFallback, result.CatalogSource)
}

func TestLoadCatalog_MatchesRunCatalog(t *testing.T) {
	dir := t.TempDir()
	sc := runConfig(dir, nil)
	sc.Passengers, sc.Flights = 10, 300
	run(t, sc)

	cat := LoadCatalog(context.Background(), nil, config.Catalog{Offline: true}, CatalogRand(sc.Seed))
	assert.Equal(t, catalog.Fallback(newStreams(sc.Seed).catalog).Routes, cat.Routes)

	routes := make(map[types.Route]bool, len(cat.Routes))
	for _, r := range cat.Routes {
		routes[r] = true
	}

	f, err := os.Open(filepath.Join(dir, "flights.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 301)

	// flight_number, origin, destination
	for _, rec := range records[1:] {
		number := rec[1]
		route := types.Route{Carrier: number[:len(number)-4], Origin: rec[2], Destination: rec[3]}
		assert.True(t, routes[route], "flight %s flies %v, which the exported catalog lacks", number, route)
	}
}

func TestRun_NoRoutesLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	empty, err := catalog.New([]types.Location{{Code: "JFK"}}, nil)
	require.NoError(t, err)

	sink, err := export.New(export.FormatCSV, dir, export.Options{})
	require.NoError(t, err)
	_, err = New(sink).Run(context.Background(), runConfig(dir, empty))
	assert.ErrorIs(t, err, ErrNoRoutes)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_NegativeCount(t *testing.T) {
	dir := t.TempDir()
	sc := runConfig(dir, twoCityCatalog(t))
	sc.Flights = -1

	sink, err := export.New(export.FormatCSV, dir, export.Options{})
	require.NoError(t, err)
	_, err = New(sink).Run(context.Background(), sc)
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestRun_ZeroCounts(t *testing.T) {
	dir := t.TempDir()
	sc := runConfig(dir, twoCityCatalog(t))
	sc.Passengers, sc.Flights = 0, 0

	result := run(t, sc)
	assert.Equal(t, 0, result.Counts[types.BookingTable])

	data, err := os.ReadFile(filepath.Join(dir, "bookings.csv"))
	require.NoError(t, err)
	assert.Equal(t, "booking_id,passenger_id,flight_id,booking_date,seat_number\n", string(data))
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Scale:      2,
		Seed:       9,
		Variant:    config.VariantBasic,
		BaseDate:   "2025-03-04",
		Output:     config.Output{Dir: "out", Format: export.FormatSQL},
		Generation: config.Preset(config.VariantBasic),
	}

	sc, err := FromConfig(cfg, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 20000, sc.Passengers)
	assert.Equal(t, 1500, sc.Flights)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), sc.BaseTime)
	assert.Equal(t, "out", sc.OutputDir)
	assert.Nil(t, sc.Fixed)

	cfg.BaseDate = "March 4th"
	_, err = FromConfig(cfg, time.Now())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
