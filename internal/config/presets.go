package config

// Preset returns the generation knobs of a variant. Unknown names get the
// enhanced preset; Validate rejects the variant itself.
func Preset(variant string) Generation {
	if variant == VariantBasic {
		return basicPreset()
	}
	return enhancedPreset()
}

func basicPreset() Generation {
	hours := make([]float64, 24)
	for h := 6; h <= 22; h++ {
		hours[h] = 1
	}
	return Generation{
		PassengersPerScale: 10000,
		FlightsPerScale:    750,
		Provider:           "pool",
		EmailDomain:        "airline-demo.com",
		IndexedEmails:      true,
		MaxEmailRetries:    50,
		Estimator:          VariantBasic,
		HourWeights:        hours,
		MinuteGrid:         []int{0, 15, 30, 45},
		HorizonDays:        30,
		FlightNumberMin:    1000,
		FlightNumberMax:    9999,
		JitterMin:          0,
		JitterMax:          30,
		MinBlockMinutes:    15,
		Archetypes: []Archetype{
			{Name: "single", Weight: 0.5, Min: 1, Max: 1},
			{Name: "double", Weight: 0.3, Min: 2, Max: 2},
			{Name: "triple", Weight: 0.2, Min: 3, Max: 3},
		},
		LeadDaysMin:  1,
		LeadDaysMax:  60,
		LeadHoursMax: 23,
		SeatRows:     35,
		SeatLetters:  "ABCDEF",
	}
}

func enhancedPreset() Generation {
	hours := make([]float64, 0, 24)
	for _, band := range []struct {
		weight float64
		n      int
	}{{0.1, 6}, {0.8, 4}, {1.0, 8}, {0.9, 4}, {0.3, 2}} {
		for i := 0; i < band.n; i++ {
			hours = append(hours, band.weight)
		}
	}
	return Generation{
		PassengersPerScale: 10000,
		FlightsPerScale:    1000,
		Provider:           "faker",
		MaxEmailRetries:    50,
		Estimator:          VariantEnhanced,
		HubWeights: map[string]float64{
			"ATL": 3.0, "ORD": 2.8, "LAX": 2.5, "DFW": 2.3, "DEN": 2.0,
			"JFK": 2.2, "SFO": 1.8, "SEA": 1.5, "LAS": 1.7, "PHX": 1.4,
			"IAH": 1.6, "MCO": 1.3, "MIA": 1.2, "BOS": 1.4, "EWR": 1.3,
		},
		HubCeiling:      3.0,
		HourWeights:     hours,
		MinuteGrid:      []int{0, 15, 30, 45},
		HorizonDays:     30,
		FlightNumberMin: 1,
		FlightNumberMax: 9999,
		JitterMin:       -15,
		JitterMax:       45,
		MinBlockMinutes: 15,
		Archetypes: []Archetype{
			{Name: "frequent", Weight: 0.05, Min: 5, Max: 12},
			{Name: "business", Weight: 0.15, Min: 3, Max: 8},
			{Name: "leisure", Weight: 0.6, Min: 1, Max: 3},
			{Name: "occasional", Weight: 0.2, Min: 1, Max: 2},
		},
		LeadDaysMin:  1,
		LeadDaysMax:  60,
		LeadHoursMax: 0,
		SeatRows:     35,
		SeatLetters:  "ABCDEF",
	}
}
