package catalog

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const airportsFixture = `1,"Hartsfield Jackson Atlanta International Airport","Atlanta","United States","ATL","KATL",33.6367,-84.428101,1026,-5,"A","America/New_York","airport","OurAirports"
2,"Chicago O'Hare International Airport","Chicago","United States","ORD","KORD",41.9786,-87.9048,672,-6,"A","America/Chicago","airport","OurAirports"
3,"Los Angeles International Airport","Los Angeles","United States","LAX","KLAX",\N,-118.4079971,125,-8,"A","America/Los_Angeles","airport","OurAirports"
4,"Toronto Pearson","Toronto","Canada","YYZ","CYYZ",43.6772,-79.6306,569,-5,"A","America/Toronto","airport","OurAirports"
5,"Some Strip","Nowhere","United States",\N,"KXXX",1.0,2.0,0,0,"U",\N,"airport","OurAirports"
6,"Broken, "Quoted" Field","Denver","United States","DEN","KDEN",not-a-number,-104.673,5431,-7,"A","America/Denver","airport","OurAirports"
`

const airlinesFixture = `24,"American Airlines",\N,"AA","AAL","AMERICAN","United States","Y"
2009,"Delta Air Lines",\N,"DL","DAL","DELTA","United States","Y"
3,"No Code Air",\N,\N,"NCA","NOPE","Nowhere","N"
`

const routesFixture = `AA,24,ATL,3682,ORD,3830,,0,CR2
AA,24,ATL,3682,ORD,3830,,0,738
DL,2009,ORD,3830,LAX,3484,,0,320
DL,2009,ATL,3682,YYZ,193,,0,CR9
ZZ,1,ATL,3682,LAX,3484,,0,320
UA,5209,LAX,3484,LAX,3484,,0,320
UA,5209,DEN,3751,ATL
`

func feedServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func fixtureHandler(files map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}
}

func testLoader(srv *httptest.Server) *Loader {
	l := NewLoader(rand.New(rand.NewSource(1)))
	l.Client = srv.Client()
	l.Timeout = 2 * time.Second
	l.AirportsURL = srv.URL + "/airports.dat"
	l.AirlinesURL = srv.URL + "/airlines.dat"
	l.RoutesURL = srv.URL + "/routes.dat"
	return l
}

func TestLoad_RemoteFeeds(t *testing.T) {
	srv := feedServer(t, fixtureHandler(map[string]string{
		"/airports.dat": airportsFixture,
		"/airlines.dat": airlinesFixture,
		"/routes.dat":   routesFixture,
	}))

	c := testLoader(srv).Load(context.Background())

	require.Equal(t, SourceOpenFlights, c.Source)
	assert.Equal(t, []types.Route{
		{Carrier: "AA", Origin: "ATL", Destination: "ORD"},
		{Carrier: "DL", Origin: "ORD", Destination: "LAX"},
	}, c.Routes)

	assert.Contains(t, c.Locations, "YYZ")
	assert.NotContains(t, c.Locations, "")

	lax := c.Locations["LAX"]
	assert.Zero(t, lax.Latitude)
	assert.InDelta(t, -118.408, lax.Longitude, 0.001)
	assert.False(t, lax.HasCoordinates)
	assert.True(t, c.Locations["ATL"].HasCoordinates)

	assert.Len(t, c.Carriers, 2)
	assert.Equal(t, "United States", c.Carriers["AA"].Country)
}

func TestLoad_FallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "no usable routes",
			handler: fixtureHandler(map[string]string{
				"/airports.dat": airportsFixture,
				"/airlines.dat": airlinesFixture,
				"/routes.dat":   "garbage line without enough fields\n",
			}),
		},
		{
			name: "routes feed missing",
			handler: fixtureHandler(map[string]string{
				"/airports.dat": airportsFixture,
				"/airlines.dat": airlinesFixture,
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := feedServer(t, tt.handler)
			c := testLoader(srv).Load(context.Background())

			assert.Equal(t, SourceFallback, c.Source)
			assert.GreaterOrEqual(t, len(c.Locations), 10)
			assert.NotEmpty(t, c.Routes)
		})
	}
}

func TestLoad_Unreachable(t *testing.T) {
	l := NewLoader(rand.New(rand.NewSource(1)))
	l.AirportsURL = "http://127.0.0.1:1/airports.dat"
	l.Timeout = 500 * time.Millisecond

	c := l.Load(context.Background())
	assert.Equal(t, SourceFallback, c.Source)
}

func TestLoad_OfflineSkipsNetwork(t *testing.T) {
	hits := 0
	srv := feedServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})
	l := testLoader(srv)
	l.Offline = true

	c := l.Load(context.Background())
	assert.Equal(t, SourceFallback, c.Source)
	assert.Zero(t, hits)
}

func TestFallback(t *testing.T) {
	c := Fallback(rand.New(rand.NewSource(3)))

	assert.Len(t, c.Locations, 30)
	assert.Len(t, c.Routes, 30*29)

	allowed := map[string]bool{"AA": true, "DL": true, "UA": true, "WN": true, "AS": true, "B6": true}
	for _, r := range c.Routes {
		assert.NotEqual(t, r.Origin, r.Destination)
		assert.True(t, allowed[r.Carrier], r.Carrier)
	}

	again := Fallback(rand.New(rand.NewSource(3)))
	assert.Equal(t, c.Routes, again.Routes)
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{in: "33.6367", want: 33.6367, ok: true},
		{in: " -84.4 ", want: -84.4, ok: true},
		{in: `\N`, want: 0},
		{in: "", want: 0},
		{in: "north", want: 0},
	}

	for _, tt := range tests {
		got, ok := ParseCoordinate(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestParseAirports_SkipsShortRecords(t *testing.T) {
	locations, inScope, err := parseAirports(strings.NewReader("1,\"Tiny\",\"X\"\n"), DefaultCountry)
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.Empty(t, inScope)
}

func TestNew(t *testing.T) {
	locations := []types.Location{{Code: "AAA"}, {Code: "BBB"}}

	c, err := New(locations, []types.Route{{Carrier: "AA", Origin: "AAA", Destination: "BBB"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, c.Codes())
	assert.Len(t, c.Tables(), 3)

	_, err = New(locations, []types.Route{{Carrier: "AA", Origin: "AAA", Destination: "AAA"}})
	assert.Error(t, err)

	_, err = New(locations, []types.Route{{Carrier: "AA", Origin: "AAA", Destination: "ZZZ"}})
	assert.Error(t, err)
}
