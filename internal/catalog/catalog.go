// Package catalog resolves the locations, carriers and directed routes that
// flights are generated from.
package catalog

import (
	"fmt"
	"sort"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const (
	SourceOpenFlights = "openflights"
	SourceFallback    = "fallback"
	SourceExplicit    = "explicit"
)

type Catalog struct {
	Locations map[string]types.Location
	Carriers  map[string]types.Carrier
	Routes    []types.Route
	Source    string
}

// New builds a catalog from explicit values. Routes that reference an unknown
// location or loop back onto their origin are rejected.
func New(locations []types.Location, routes []types.Route) (*Catalog, error) {
	c := &Catalog{
		Locations: make(map[string]types.Location, len(locations)),
		Carriers:  make(map[string]types.Carrier),
		Source:    SourceExplicit,
	}
	for _, l := range locations {
		c.Locations[l.Code] = l
	}
	for _, r := range routes {
		if r.Origin == r.Destination {
			return nil, fmt.Errorf("route %s %s-%s: origin equals destination", r.Carrier, r.Origin, r.Destination)
		}
		if _, ok := c.Locations[r.Origin]; !ok {
			return nil, fmt.Errorf("route %s %s-%s: unknown origin", r.Carrier, r.Origin, r.Destination)
		}
		if _, ok := c.Locations[r.Destination]; !ok {
			return nil, fmt.Errorf("route %s %s-%s: unknown destination", r.Carrier, r.Origin, r.Destination)
		}
		if _, ok := c.Carriers[r.Carrier]; !ok {
			c.Carriers[r.Carrier] = types.Carrier{Code: r.Carrier, Name: r.Carrier, Country: "Unknown"}
		}
		c.Routes = append(c.Routes, r)
	}
	return c, nil
}

// Codes returns location codes in sorted order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.Locations))
	for code := range c.Locations {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *Catalog) SortedLocations() []types.Location {
	codes := c.Codes()
	out := make([]types.Location, 0, len(codes))
	for _, code := range codes {
		out = append(out, c.Locations[code])
	}
	return out
}

func (c *Catalog) SortedCarriers() []types.Carrier {
	codes := make([]string, 0, len(c.Carriers))
	for code := range c.Carriers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]types.Carrier, 0, len(codes))
	for _, code := range codes {
		out = append(out, c.Carriers[code])
	}
	return out
}

// Tables renders the catalog in the shape sinks consume.
func (c *Catalog) Tables() []types.Table {
	return []types.Table{
		types.AirportsTable(c.SortedLocations()),
		types.AirlinesTable(c.SortedCarriers()),
		types.RoutesTable(c.Routes),
	}
}
