package seeder

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/sampling"
	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

type BookingGenerator struct {
	rand       *rand.Rand
	gen        config.Generation
	archetypes *sampling.Table
}

func NewBookingGenerator(gen config.Generation, r *rand.Rand) (*BookingGenerator, error) {
	weights := make([]float64, len(gen.Archetypes))
	for i, a := range gen.Archetypes {
		weights[i] = a.Weight
	}
	table, err := sampling.NewTable(weights)
	if err != nil {
		return nil, fmt.Errorf("archetype weights: %w", err)
	}
	if gen.SeatLetters == "" {
		gen.SeatLetters = "ABCDEF"
	}
	if gen.SeatRows < 1 {
		gen.SeatRows = 1
	}
	// A zero-day lead could land on the departure instant itself.
	if gen.LeadDaysMin < 1 {
		gen.LeadDaysMin = 1
	}
	if gen.LeadDaysMax < gen.LeadDaysMin {
		gen.LeadDaysMax = gen.LeadDaysMin
	}
	return &BookingGenerator{rand: r, gen: gen, archetypes: table}, nil
}

// Generate books each passenger onto distinct flights. Booking ids follow
// passenger order starting at 1. Seats are not checked for collisions.
func (g *BookingGenerator) Generate(passengers []types.Passenger, flights []types.Flight) ([]types.Booking, error) {
	var bookings []types.Booking
	if len(flights) == 0 {
		return bookings, nil
	}

	nextID := int64(1)
	for _, p := range passengers {
		a := g.gen.Archetypes[g.archetypes.Pick(g.rand)]
		n := sampling.IntBetween(g.rand, a.Min, a.Max)

		for _, idx := range sampling.Distinct(g.rand, len(flights), n) {
			f := flights[idx]
			bookings = append(bookings, types.Booking{
				ID:          nextID,
				PassengerID: p.ID,
				FlightID:    f.ID,
				BookingDate: g.bookedAt(f.DepartureTime),
				SeatNumber:  g.seat(),
			})
			nextID++
		}
	}
	return bookings, nil
}

func (g *BookingGenerator) bookedAt(departure time.Time) time.Time {
	days := sampling.IntBetween(g.rand, g.gen.LeadDaysMin, g.gen.LeadDaysMax)
	hours := sampling.IntBetween(g.rand, 0, g.gen.LeadHoursMax)
	return departure.Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}

func (g *BookingGenerator) seat() string {
	row := sampling.IntBetween(g.rand, 1, g.gen.SeatRows)
	letter := g.gen.SeatLetters[g.rand.Intn(len(g.gen.SeatLetters))]
	return strconv.Itoa(row) + string(letter)
}
