package catalog

import (
	"math/rand"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const fallbackCountry = "United States"

var fallbackAirports = []types.Location{
	{Code: "JFK", Name: "John F Kennedy Intl", City: "New York", Latitude: 40.6413, Longitude: -73.7781},
	{Code: "LAX", Name: "Los Angeles Intl", City: "Los Angeles", Latitude: 33.9428, Longitude: -118.4081},
	{Code: "ORD", Name: "Chicago OHare Intl", City: "Chicago", Latitude: 41.9742, Longitude: -87.9073},
	{Code: "DFW", Name: "Dallas Fort Worth Intl", City: "Dallas", Latitude: 32.8998, Longitude: -97.0403},
	{Code: "DEN", Name: "Denver Intl", City: "Denver", Latitude: 39.8561, Longitude: -104.6737},
	{Code: "ATL", Name: "Hartsfield Jackson Atlanta Intl", City: "Atlanta", Latitude: 33.6407, Longitude: -84.4277},
	{Code: "SFO", Name: "San Francisco Intl", City: "San Francisco", Latitude: 37.6213, Longitude: -122.3790},
	{Code: "SEA", Name: "Seattle Tacoma Intl", City: "Seattle", Latitude: 47.4502, Longitude: -122.3088},
	{Code: "LAS", Name: "McCarran Intl", City: "Las Vegas", Latitude: 36.0840, Longitude: -115.1537},
	{Code: "MCO", Name: "Orlando Intl", City: "Orlando", Latitude: 28.4312, Longitude: -81.3081},
	{Code: "EWR", Name: "Newark Liberty Intl", City: "Newark", Latitude: 40.6895, Longitude: -74.1745},
	{Code: "CLT", Name: "Charlotte Douglas Intl", City: "Charlotte", Latitude: 35.2144, Longitude: -80.9473},
	{Code: "PHX", Name: "Phoenix Sky Harbor Intl", City: "Phoenix", Latitude: 33.4484, Longitude: -112.0740},
	{Code: "IAH", Name: "George Bush Intercontinental", City: "Houston", Latitude: 29.9902, Longitude: -95.3368},
	{Code: "MIA", Name: "Miami Intl", City: "Miami", Latitude: 25.7959, Longitude: -80.2870},
	{Code: "BOS", Name: "Logan Intl", City: "Boston", Latitude: 42.3656, Longitude: -71.0096},
	{Code: "MSP", Name: "Minneapolis St Paul Intl", City: "Minneapolis", Latitude: 44.8818, Longitude: -93.2044},
	{Code: "DTW", Name: "Detroit Metropolitan Wayne County", City: "Detroit", Latitude: 42.2162, Longitude: -83.3554},
	{Code: "PHL", Name: "Philadelphia Intl", City: "Philadelphia", Latitude: 39.8744, Longitude: -75.2424},
	{Code: "LGA", Name: "La Guardia", City: "New York", Latitude: 40.7769, Longitude: -73.8740},
	{Code: "FLL", Name: "Fort Lauderdale Hollywood Intl", City: "Fort Lauderdale", Latitude: 26.0742, Longitude: -80.1506},
	{Code: "BWI", Name: "Baltimore Washington Intl", City: "Baltimore", Latitude: 39.1774, Longitude: -76.6684},
	{Code: "IAD", Name: "Washington Dulles Intl", City: "Washington", Latitude: 38.9531, Longitude: -77.4565},
	{Code: "MDW", Name: "Chicago Midway Intl", City: "Chicago", Latitude: 41.7868, Longitude: -87.7522},
	{Code: "TPA", Name: "Tampa Intl", City: "Tampa", Latitude: 27.9755, Longitude: -82.5332},
	{Code: "SAN", Name: "San Diego Intl", City: "San Diego", Latitude: 32.7338, Longitude: -117.1933},
	{Code: "HNL", Name: "Honolulu Intl", City: "Honolulu", Latitude: 21.3099, Longitude: -157.8581},
	{Code: "PDX", Name: "Portland Intl", City: "Portland", Latitude: 45.5898, Longitude: -122.5951},
	{Code: "STL", Name: "Lambert St Louis Intl", City: "St. Louis", Latitude: 38.7487, Longitude: -90.3700},
	{Code: "AUS", Name: "Austin Bergstrom Intl", City: "Austin", Latitude: 30.1975, Longitude: -97.6664},
}

var fallbackCarriers = []types.Carrier{
	{Code: "AA", Name: "American Airlines", Country: fallbackCountry},
	{Code: "DL", Name: "Delta Air Lines", Country: fallbackCountry},
	{Code: "UA", Name: "United Airlines", Country: fallbackCountry},
	{Code: "WN", Name: "Southwest Airlines", Country: fallbackCountry},
	{Code: "AS", Name: "Alaska Airlines", Country: fallbackCountry},
	{Code: "B6", Name: "JetBlue Airways", Country: fallbackCountry},
}

// Fallback returns the built-in catalog: the fixed airport table and every
// directed pair between them, each operated by a carrier drawn from r.
// Codes are walked in sorted order so the routes only depend on r's state.
func Fallback(r *rand.Rand) *Catalog {
	c := &Catalog{
		Locations: make(map[string]types.Location, len(fallbackAirports)),
		Carriers:  make(map[string]types.Carrier, len(fallbackCarriers)),
		Source:    SourceFallback,
	}
	for _, a := range fallbackAirports {
		a.Country = fallbackCountry
		a.HasCoordinates = true
		c.Locations[a.Code] = a
	}
	for _, carrier := range fallbackCarriers {
		c.Carriers[carrier.Code] = carrier
	}

	codes := c.Codes()
	c.Routes = make([]types.Route, 0, len(codes)*(len(codes)-1))
	for _, origin := range codes {
		for _, destination := range codes {
			if origin == destination {
				continue
			}
			c.Routes = append(c.Routes, types.Route{
				Carrier:     fallbackCarriers[r.Intn(len(fallbackCarriers))].Code,
				Origin:      origin,
				Destination: destination,
			})
		}
	}
	return c
}
