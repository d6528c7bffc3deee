package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 30 * time.Second

var errNoRoutes = errors.New("feed produced no usable routes")

// Loader resolves a catalog from the OpenFlights feeds. Any failure along the
// way degrades to the built-in fallback instead of surfacing an error.
type Loader struct {
	Client      *http.Client
	Timeout     time.Duration
	AirportsURL string
	AirlinesURL string
	RoutesURL   string
	Country     string
	Carriers    []string
	Offline     bool
	// Rand drives fallback carrier assignment.
	Rand *rand.Rand
}

func NewLoader(r *rand.Rand) *Loader {
	return &Loader{
		Client:      http.DefaultClient,
		Timeout:     DefaultTimeout,
		AirportsURL: DefaultAirportsURL,
		AirlinesURL: DefaultAirlinesURL,
		RoutesURL:   DefaultRoutesURL,
		Country:     DefaultCountry,
		Carriers:    DefaultCarriers,
		Rand:        r,
	}
}

func (l *Loader) Load(ctx context.Context) *Catalog {
	if l.Offline {
		log.Debug().Msg("Offline mode, using built-in catalog.")
		return l.fallback()
	}

	start := time.Now()
	c, err := l.loadRemote(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("OpenFlights data unavailable, falling back to built-in catalog.")
		return l.fallback()
	}

	log.Debug().
		Int("locations", len(c.Locations)).
		Int("carriers", len(c.Carriers)).
		Int("routes", len(c.Routes)).
		Dur("elapsed", time.Since(start)).
		Msg("OpenFlights catalog loaded.")
	return c
}

func (l *Loader) fallback() *Catalog {
	r := l.Rand
	if r == nil {
		r = rand.New(rand.NewSource(0))
	}
	return Fallback(r)
}

func (l *Loader) loadRemote(ctx context.Context) (*Catalog, error) {
	body, err := l.fetch(ctx, l.AirportsURL)
	if err != nil {
		return nil, err
	}
	locations, inScope, err := parseAirports(bytes.NewReader(body), l.Country)
	if err != nil {
		return nil, fmt.Errorf("parse airports: %w", err)
	}

	body, err = l.fetch(ctx, l.AirlinesURL)
	if err != nil {
		return nil, err
	}
	carriers, err := parseAirlines(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse airlines: %w", err)
	}

	body, err = l.fetch(ctx, l.RoutesURL)
	if err != nil {
		return nil, err
	}
	routes, err := parseRoutes(bytes.NewReader(body), inScope, l.Carriers)
	if err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	if len(routes) == 0 {
		return nil, errNoRoutes
	}

	return &Catalog{
		Locations: locations,
		Carriers:  carriers,
		Routes:    routes,
		Source:    SourceOpenFlights,
	}, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
