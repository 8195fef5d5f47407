package gtfs

// Row structs for the static GTFS tables this service consumes. Column names
// follow the GTFS reference; feeds regularly omit optional columns so every
// field must tolerate being absent.

type Stop struct {
	ID        string  `csv:"stop_id"`
	Code      string  `csv:"stop_code"`
	Name      string  `csv:"stop_name"`
	Latitude  float64 `csv:"stop_lat"`
	Longitude float64 `csv:"stop_lon"`
	Type      string  `csv:"location_type"`
	Parent    string  `csv:"parent_station"`
}

// LocationTypeStation marks a parent station, the only stops considered
// valid aggregation points.
const LocationTypeStation = "1"

type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
}

type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
}

type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	Start     string `csv:"start_date"`
	End       string `csv:"end_date"`
}

// RunsOn reports whether the weekday flag for the given index is set.
// Weekday indexes run Monday=0 through Sunday=6.
func (c *Calendar) RunsOn(weekday int) bool {
	switch weekday {
	case 0:
		return c.Monday == 1
	case 1:
		return c.Tuesday == 1
	case 2:
		return c.Wednesday == 1
	case 3:
		return c.Thursday == 1
	case 4:
		return c.Friday == 1
	case 5:
		return c.Saturday == 1
	case 6:
		return c.Sunday == 1
	}

	return false
}

type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}

const (
	ExceptionTypeAdded   = 1
	ExceptionTypeRemoved = 2
)
