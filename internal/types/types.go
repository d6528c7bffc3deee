package types

import (
	"time"
)

// TimestampLayout is the timestamp format shared by every output format.
const TimestampLayout = "2006-01-02 15:04:05"

type Location struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	HasCoordinates bool    `json:"has_coordinates"`
}

type Carrier struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type Route struct {
	Carrier     string `json:"carrier"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type Passenger struct {
	ID        int64  `json:"passenger_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Flight struct {
	ID            int64     `json:"flight_id"`
	FlightNumber  string    `json:"flight_number"`
	Carrier       string    `json:"carrier"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type Booking struct {
	ID          int64     `json:"booking_id"`
	PassengerID int64     `json:"passenger_id"`
	FlightID    int64     `json:"flight_id"`
	BookingDate time.Time `json:"booking_date"`
	SeatNumber  string    `json:"seat_number"`
}

// Table is an entity set in the shape a sink consumes: a target table name,
// an ordered column list and row tuples matching that order.
type Table struct {
	Name    string
	File    string // base name used for per-table output files
	Columns []string
	Rows    [][]any
}

const (
	PassengerTable = "passenger"
	FlightTable    = "flights"
	BookingTable   = "booking"
	AirportTable   = "airport"
	AirlineTable   = "airline"
	RouteTable     = "route"
)

var (
	PassengerColumns = []string{"passenger_id", "first_name", "last_name", "email", "phone"}
	FlightColumns    = []string{"flight_id", "flight_number", "origin", "destination", "departure_time", "arrival_time"}
	BookingColumns   = []string{"booking_id", "passenger_id", "flight_id", "booking_date", "seat_number"}
	AirportColumns   = []string{"code", "name", "city", "country", "latitude", "longitude"}
	AirlineColumns   = []string{"code", "name", "country"}
	RouteColumns     = []string{"carrier", "origin", "destination"}
)

func PassengersTable(passengers []Passenger) Table {
	rows := make([][]any, 0, len(passengers))
	for _, p := range passengers {
		rows = append(rows, []any{p.ID, p.FirstName, p.LastName, p.Email, p.Phone})
	}
	return Table{Name: PassengerTable, File: "passengers", Columns: PassengerColumns, Rows: rows}
}

func FlightsTable(flights []Flight) Table {
	rows := make([][]any, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []any{f.ID, f.FlightNumber, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime})
	}
	return Table{Name: FlightTable, File: "flights", Columns: FlightColumns, Rows: rows}
}

func BookingsTable(bookings []Booking) Table {
	rows := make([][]any, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []any{b.ID, b.PassengerID, b.FlightID, b.BookingDate, b.SeatNumber})
	}
	return Table{Name: BookingTable, File: "bookings", Columns: BookingColumns, Rows: rows}
}

// AirportsTable expects locations already in output order.
func AirportsTable(locations []Location) Table {
	rows := make([][]any, 0, len(locations))
	for _, l := range locations {
		rows = append(rows, []any{l.Code, l.Name, l.City, l.Country, l.Latitude, l.Longitude})
	}
	return Table{Name: AirportTable, File: "airports", Columns: AirportColumns, Rows: rows}
}

func AirlinesTable(carriers []Carrier) Table {
	rows := make([][]any, 0, len(carriers))
	for _, c := range carriers {
		rows = append(rows, []any{c.Code, c.Name, c.Country})
	}
	return Table{Name: AirlineTable, File: "airlines", Columns: AirlineColumns, Rows: rows}
}

func RoutesTable(routes []Route) Table {
	rows := make([][]any, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, []any{r.Carrier, r.Origin, r.Destination})
	}
	return Table{Name: RouteTable, File: "routes", Columns: RouteColumns, Rows: rows}
}
