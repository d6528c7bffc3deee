package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const nullMarker = `\N`

const (
	DefaultAirportsURL = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airports.dat"
	DefaultAirlinesURL = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airlines.dat"
	DefaultRoutesURL   = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/routes.dat"
	DefaultCountry     = "United States"
)

var DefaultCarriers = []string{"AA", "DL", "UA", "WN", "AS", "B6", "NK", "F9"}

// ParseCoordinate reads a decimal degree value. Missing or malformed tokens
// yield 0 so one bad record never aborts a load.
func ParseCoordinate(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" || token == nullMarker {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	v := strings.TrimSpace(record[i])
	if v == nullMarker {
		return ""
	}
	return v
}

// eachRecord feeds every parsable record of an OpenFlights .dat file to fn.
// Malformed lines are skipped and counted; read errors abort.
func eachRecord(r io.Reader, fn func([]string)) (skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return skipped, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return skipped, err
		}
		fn(record)
	}
}

// parseAirports indexes every airport with an IATA code. The second return
// value holds the codes located in country.
func parseAirports(r io.Reader, country string) (map[string]types.Location, map[string]bool, error) {
	locations := make(map[string]types.Location)
	inScope := make(map[string]bool)

	skipped, err := eachRecord(r, func(rec []string) {
		if len(rec) < 8 {
			return
		}
		code := field(rec, 4)
		if code == "" {
			return
		}
		lat, latOK := ParseCoordinate(rec[6])
		lon, lonOK := ParseCoordinate(rec[7])
		loc := types.Location{
			Code:           code,
			Name:           field(rec, 1),
			City:           field(rec, 2),
			Country:        field(rec, 3),
			Latitude:       lat,
			Longitude:      lon,
			HasCoordinates: latOK && lonOK,
		}
		locations[code] = loc
		if loc.Country == country {
			inScope[code] = true
		}
	})
	if err != nil {
		return nil, nil, err
	}
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("Skipped malformed airport records.")
	}
	return locations, inScope, nil
}

func parseAirlines(r io.Reader) (map[string]types.Carrier, error) {
	carriers := make(map[string]types.Carrier)

	_, err := eachRecord(r, func(rec []string) {
		if len(rec) < 4 {
			return
		}
		code := field(rec, 3)
		if code == "" {
			return
		}
		if _, dup := carriers[code]; dup {
			return
		}
		country := field(rec, 6)
		if country == "" {
			country = "Unknown"
		}
		carriers[code] = types.Carrier{Code: code, Name: field(rec, 1), Country: country}
	})
	if err != nil {
		return nil, err
	}
	return carriers, nil
}

// parseRoutes keeps in-scope routes flown by an allowed carrier, in feed
// order, dropping repeated (carrier, origin, destination) triples.
func parseRoutes(r io.Reader, inScope map[string]bool, allowed []string) ([]types.Route, error) {
	allow := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		allow[c] = true
	}

	seen := make(map[types.Route]bool)
	var routes []types.Route

	_, err := eachRecord(r, func(rec []string) {
		if len(rec) < 7 {
			return
		}
		route := types.Route{
			Carrier:     field(rec, 0),
			Origin:      field(rec, 2),
			Destination: field(rec, 4),
		}
		if !allow[route.Carrier] || route.Origin == route.Destination {
			return
		}
		if !inScope[route.Origin] || !inScope[route.Destination] {
			return
		}
		if seen[route] {
			return
		}
		seen[route] = true
		routes = append(routes, route)
	})
	if err != nil {
		return nil, err
	}
	return routes, nil
}
