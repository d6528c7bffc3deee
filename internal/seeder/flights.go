package seeder

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/duration"
	"github.com/Lumos-Labs-HQ/airseed/internal/sampling"
	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

type FlightGenerator struct {
	routes    []types.Route
	estimator *duration.Estimator
	rand      *rand.Rand
	base      time.Time
	gen       config.Generation
	hours     *sampling.Table
}

func NewFlightGenerator(routes []types.Route, est *duration.Estimator, gen config.Generation, base time.Time, r *rand.Rand) (*FlightGenerator, error) {
	hours, err := sampling.NewTable(gen.HourWeights)
	if err != nil {
		return nil, fmt.Errorf("hour weights: %w", err)
	}
	if len(gen.MinuteGrid) == 0 {
		gen.MinuteGrid = []int{0}
	}
	return &FlightGenerator{
		routes:    routes,
		estimator: est,
		rand:      r,
		base:      base,
		gen:       gen,
		hours:     hours,
	}, nil
}

// Generate returns exactly count flights. Candidates rejected by hub
// weighting do not consume ids.
func (g *FlightGenerator) Generate(count int) ([]types.Flight, error) {
	if count < 0 {
		return nil, fmt.Errorf("flights: %w (%d)", ErrNegativeCount, count)
	}
	if len(g.routes) == 0 {
		return nil, ErrNoRoutes
	}

	budget := count*1000 + 1000
	attempts := 0
	flights := make([]types.Flight, 0, count)

	for len(flights) < count {
		attempts++
		if attempts > budget {
			return nil, fmt.Errorf("%w: %d of %d flights after %d attempts", ErrSamplingExhausted, len(flights), count, budget)
		}

		route := g.routes[g.rand.Intn(len(g.routes))]
		if !g.keep(route) {
			continue
		}

		flights = append(flights, g.schedule(int64(len(flights)+1), route))
	}
	return flights, nil
}

// keep retains a candidate with probability min(1, avg endpoint weight / ceiling).
func (g *FlightGenerator) keep(route types.Route) bool {
	if len(g.gen.HubWeights) == 0 || g.gen.HubCeiling <= 0 {
		return true
	}
	combined := (g.hubWeight(route.Origin) + g.hubWeight(route.Destination)) / 2
	p := math.Min(1, combined/g.gen.HubCeiling)
	return g.rand.Float64() < p
}

func (g *FlightGenerator) hubWeight(code string) float64 {
	if w, ok := g.gen.HubWeights[code]; ok {
		return w
	}
	return 1.0
}

func (g *FlightGenerator) schedule(id int64, route types.Route) types.Flight {
	suffix := sampling.IntBetween(g.rand, g.gen.FlightNumberMin, g.gen.FlightNumberMax)

	day := sampling.IntBetween(g.rand, 0, g.gen.HorizonDays)
	hour := g.hours.Pick(g.rand)
	minute := sampling.Choice(g.rand, g.gen.MinuteGrid)
	departure := g.base.AddDate(0, 0, day).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

	hours := g.estimator.Estimate(g.rand, route.Origin, route.Destination)
	block := time.Duration(math.Round(hours*3600)) * time.Second
	jitter := time.Duration(sampling.IntBetween(g.rand, g.gen.JitterMin, g.gen.JitterMax)) * time.Minute

	arrival := departure.Add(block + jitter)
	if !arrival.After(departure) {
		arrival = departure.Add(time.Duration(g.gen.MinBlockMinutes) * time.Minute)
	}

	return types.Flight{
		ID:            id,
		FlightNumber:  fmt.Sprintf("%s%04d", route.Carrier, suffix),
		Carrier:       route.Carrier,
		Origin:        route.Origin,
		Destination:   route.Destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
	}
}
