package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Lumos-Labs-HQ/airseed/internal/catalog"
	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/duration"
	"github.com/Lumos-Labs-HQ/airseed/internal/export"
	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

type Seeder struct {
	sink   export.Sink
	client *http.Client
	graph  *DependencyGraph
}

func New(sink export.Sink) *Seeder {
	return &Seeder{
		sink:   sink,
		client: http.DefaultClient,
		graph:  entityGraph(),
	}
}

// WithHTTPClient swaps the client used for catalog feeds.
func (s *Seeder) WithHTTPClient(c *http.Client) *Seeder {
	s.client = c
	return s
}

func entityGraph() *DependencyGraph {
	g := NewDependencyGraph()
	g.AddTable(&TableInfo{Name: types.PassengerTable})
	g.AddTable(&TableInfo{Name: types.FlightTable})
	g.AddTable(&TableInfo{Name: types.BookingTable, Dependencies: []string{types.PassengerTable, types.FlightTable}})
	return g
}

// FromConfig resolves a validated config into the knobs of one run.
func FromConfig(cfg *config.Config, now time.Time) (SeedConfig, error) {
	base, err := cfg.BaseTime(now)
	if err != nil {
		return SeedConfig{}, err
	}
	return SeedConfig{
		Seed:       cfg.Seed,
		Scale:      cfg.Scale,
		Variant:    cfg.Variant,
		BaseTime:   base,
		Passengers: cfg.Passengers(),
		Flights:    cfg.Flights(),
		OutputDir:  cfg.Output.Dir,
		Format:     cfg.Output.Format,
		Generation: cfg.Generation,
		Catalog:    cfg.Catalog,
	}, nil
}

// streams hands every component its own generator derived from the run
// seed, so changing one component's draw count leaves the others unchanged.
type streams struct {
	catalog, passengers, flights, bookings, runID *rand.Rand
}

func newStreams(seed int64) streams {
	master := rand.New(rand.NewSource(seed))
	next := func() *rand.Rand { return rand.New(rand.NewSource(master.Int63())) }
	return streams{
		catalog:    next(),
		passengers: next(),
		flights:    next(),
		bookings:   next(),
		runID:      next(),
	}
}

// Run generates every entity table, hands them to the sink in dependency
// order and commits. Any failure aborts the sink so no final-named output is
// left behind.
func (s *Seeder) Run(ctx context.Context, sc SeedConfig) (result *Result, err error) {
	defer func() {
		if err != nil {
			if abortErr := s.sink.Abort(); abortErr != nil {
				log.Warn().Err(abortErr).Msg("Failed to clean up partial output.")
			}
		}
	}()

	if sc.Passengers < 0 || sc.Flights < 0 {
		return nil, fmt.Errorf("%w: %d passengers, %d flights", ErrNegativeCount, sc.Passengers, sc.Flights)
	}

	rs := newStreams(sc.Seed)
	color.Cyan("🌱 Generating airline demo data (seed %d, scale %d, %s)...", sc.Seed, sc.Scale, sc.Variant)

	cat := sc.Fixed
	if cat == nil {
		cat = LoadCatalog(ctx, s.client, sc.Catalog, rs.catalog)
	}
	if cat.Source == catalog.SourceFallback {
		color.Yellow("⚠️  Using built-in catalog (%d airports, %d routes)", len(cat.Locations), len(cat.Routes))
	} else {
		color.Green("📊 Catalog: %d airports, %d routes (%s)", len(cat.Locations), len(cat.Routes), cat.Source)
	}

	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	color.Cyan("📋 Generation order: %s", strings.Join(order, " → "))
	fmt.Println()

	tables, err := s.generate(order, sc, cat, rs)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(order))
	for _, name := range order {
		table := tables[name]
		color.Cyan("  📝 Writing %s (%d rows)...", name, len(table.Rows))
		if err := s.sink.Write(ctx, table); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		counts[name] = len(table.Rows)
	}

	files, err := s.sink.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit output: %w", err)
	}

	id, err := uuid.NewRandomFromReader(rs.runID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive run id: %w", err)
	}

	result = &Result{
		RunID:         id.String(),
		Seed:          sc.Seed,
		CatalogSource: cat.Source,
		Order:         order,
		Counts:        counts,
		Files:         files,
	}

	manifest, err := WriteManifest(sc, result)
	if err != nil {
		// output is already committed; report without removing it
		return result, err
	}
	result.Manifest = manifest

	color.Green("\n✅ Data generation completed successfully!")
	return result, nil
}

// CatalogRand is the stream catalog loading draws from for a run seed. The
// export command uses it too, so an exported fallback catalog carries the same
// carriers as a generated dataset with that seed.
func CatalogRand(seed int64) *rand.Rand {
	return newStreams(seed).catalog
}

// LoadCatalog resolves the catalog described by cfg, drawing fallback carriers
// from r.
func LoadCatalog(ctx context.Context, client *http.Client, cfg config.Catalog, r *rand.Rand) *catalog.Catalog {
	l := catalog.NewLoader(r)
	if client != nil {
		l.Client = client
	}
	l.Offline = cfg.Offline
	if cfg.TimeoutSeconds > 0 {
		l.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.AirportsURL != "" {
		l.AirportsURL = cfg.AirportsURL
	}
	if cfg.AirlinesURL != "" {
		l.AirlinesURL = cfg.AirlinesURL
	}
	if cfg.RoutesURL != "" {
		l.RoutesURL = cfg.RoutesURL
	}
	if cfg.Country != "" {
		l.Country = cfg.Country
	}
	if len(cfg.Carriers) > 0 {
		l.Carriers = cfg.Carriers
	}
	return l.Load(ctx)
}

func (s *Seeder) generate(order []string, sc SeedConfig, cat *catalog.Catalog, rs streams) (map[string]types.Table, error) {
	var (
		passengers []types.Passenger
		flights    []types.Flight
		err        error
	)
	tables := make(map[string]types.Table, len(order))

	for _, name := range order {
		switch name {
		case types.PassengerTable:
			gen := &PassengerGenerator{
				Provider:        provider(sc.Generation, rs.passengers),
				Rand:            rs.passengers,
				Indexed:         sc.Generation.IndexedEmails,
				MaxEmailRetries: sc.Generation.MaxEmailRetries,
			}
			if passengers, err = gen.Generate(sc.Passengers); err != nil {
				return nil, err
			}
			tables[name] = types.PassengersTable(passengers)

		case types.FlightTable:
			gen, err := NewFlightGenerator(cat.Routes, estimator(sc.Generation), sc.Generation, sc.BaseTime, rs.flights)
			if err != nil {
				return nil, err
			}
			if flights, err = gen.Generate(sc.Flights); err != nil {
				return nil, err
			}
			tables[name] = types.FlightsTable(flights)

		case types.BookingTable:
			gen, err := NewBookingGenerator(sc.Generation, rs.bookings)
			if err != nil {
				return nil, err
			}
			bookings, err := gen.Generate(passengers, flights)
			if err != nil {
				return nil, err
			}
			tables[name] = types.BookingsTable(bookings)

		default:
			return nil, fmt.Errorf("no generator for table %s", name)
		}
		log.Debug().Str("table", name).Int("rows", len(tables[name].Rows)).Msg("Generated table.")
	}
	return tables, nil
}

func provider(gen config.Generation, r *rand.Rand) ContactProvider {
	if gen.Provider == "faker" {
		return NewFakerProvider(uint64(r.Int63()))
	}
	return NewPoolProvider(r, gen.EmailDomain)
}

func estimator(gen config.Generation) *duration.Estimator {
	if gen.Estimator == config.VariantBasic {
		return duration.Basic()
	}
	return duration.Enhanced()
}

// WriteManifest records the run next to its output.
func WriteManifest(sc SeedConfig, result *Result) (string, error) {
	m := &export.Manifest{
		RunID:         result.RunID,
		Seed:          sc.Seed,
		Scale:         sc.Scale,
		Variant:       sc.Variant,
		Format:        sc.Format,
		BaseDate:      sc.BaseTime.Format(config.DateLayout),
		CatalogSource: result.CatalogSource,
	}
	for _, name := range result.Order {
		m.Tables = append(m.Tables, export.TableCount{Name: name, Rows: result.Counts[name]})
	}
	for _, f := range result.Files {
		m.Files = append(m.Files, filepath.Base(f))
	}
	return export.WriteManifest(sc.OutputDir, m)
}
