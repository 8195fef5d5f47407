package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"github.com/transitpeak/transitpeak/pkg/cityboundary"
	"github.com/transitpeak/transitpeak/pkg/gtfs"
)

var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrUnknownCity  = errors.New("unknown city")
	ErrNoStops      = errors.New("no stops found")
	ErrNoStopTimes  = errors.New("no stop times found")
	ErrNoArrivals   = errors.New("no buses found")
	ErrNoData       = errors.New("no bus data found")
)

type StopArrivals struct {
	StopID    string  `json:"stop_id"`
	StopName  string  `json:"stop_name"`
	Latitude  float64 `json:"stop_lat"`
	Longitude float64 `json:"stop_lon"`
	BusCount  int     `json:"bus_count"`
}

type HourlyArrivals struct {
	City       string         `json:"city"`
	Date       string         `json:"date"`
	Hour       int            `json:"hour"`
	TotalBuses int            `json:"total_buses"`
	TotalStops int            `json:"total_stops"`
	Stops      []StopArrivals `json:"stops"`
}

// Analyzer answers arrival-count queries against a loaded GTFS store for a
// configured set of cities.
type Analyzer struct {
	store  *gtfs.Store
	cities cityboundary.Set
}

func New(store *gtfs.Store, cities cityboundary.Set) *Analyzer {
	return &Analyzer{
		store:  store,
		cities: cities,
	}
}

// CountArrivals returns per-stop vehicle arrival counts for one city, date
// and hour, restricted to services active on that date. Results are ordered
// by count descending with ties broken by stop id so repeated queries over
// an unchanged feed are deterministic.
func (analyzer *Analyzer) CountArrivals(city string, date time.Time, hour int) (*HourlyArrivals, error) {
	stops, stopTimes, err := analyzer.cityRows(city)
	if err != nil {
		return nil, err
	}

	buckets := analyzer.hourlyBuckets(date, stopTimes)

	counts := buckets[hour]
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w for %s at hour %d", ErrNoArrivals, city, hour)
	}

	return buildHourlyArrivals(city, date, hour, counts, stops), nil
}

// cityRows resolves the city boundary, its stops and their stop_times rows.
func (analyzer *Analyzer) cityRows(city string) ([]gtfs.Stop, []gtfs.StopTime, error) {
	boundary, exists := analyzer.cities.Lookup(city)
	if !exists {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCity, city)
	}

	stops := analyzer.store.StopsWithin(boundary)
	if len(stops) == 0 {
		return nil, nil, fmt.Errorf("%w for %s", ErrNoStops, city)
	}

	stopIDs := make([]string, 0, len(stops))
	for _, stop := range stops {
		stopIDs = append(stopIDs, stop.ID)
	}

	stopTimes := analyzer.store.StopTimesForStops(stopIDs)
	if len(stopTimes) == 0 {
		return nil, nil, fmt.Errorf("%w for stops in %s", ErrNoStopTimes, city)
	}

	return stops, stopTimes, nil
}

// hourlyBuckets makes a single pass over the stop_times rows and produces
// per-stop arrival counts for each of the 24 hours of the given date. A row
// only lands in a bucket when its normalized arrival falls on that exact
// date and its trip's service is active. After-midnight rows (>= 24:00:00)
// normalize onto the following day and therefore never count towards the
// queried date.
func (analyzer *Analyzer) hourlyBuckets(date time.Time, stopTimes []gtfs.StopTime) [24]map[string]int {
	tripServices := map[string]string{}
	for _, trip := range analyzer.store.Trips {
		tripServices[trip.ID] = trip.ServiceID
	}

	type arrival struct {
		stopID    string
		serviceID string
		hour      int
	}

	var arrivals []arrival
	services := map[string]bool{}

	for _, stopTime := range stopTimes {
		hour, actualDate := gtfs.NormalizeArrivalTime(stopTime.ArrivalTime, date)
		if !actualDate.Equal(date) || hour < 0 || hour > 23 {
			continue
		}

		serviceID := tripServices[stopTime.TripID]
		services[serviceID] = true

		arrivals = append(arrivals, arrival{
			stopID:    stopTime.StopID,
			serviceID: serviceID,
			hour:      hour,
		})
	}

	activeServices := analyzer.store.ActiveServices(maps.Keys(services), date)

	var buckets [24]map[string]int
	for _, arrival := range arrivals {
		if !activeServices[arrival.serviceID] {
			continue
		}

		if buckets[arrival.hour] == nil {
			buckets[arrival.hour] = map[string]int{}
		}
		buckets[arrival.hour][arrival.stopID]++
	}

	return buckets
}

func buildHourlyArrivals(city string, date time.Time, hour int, counts map[string]int, stops []gtfs.Stop) *HourlyArrivals {
	stopDetails := map[string]gtfs.Stop{}
	for _, stop := range stops {
		stopDetails[stop.ID] = stop
	}

	result := &HourlyArrivals{
		City: city,
		Date: date.Format("2006-01-02"),
		Hour: hour,
	}

	for stopID, count := range counts {
		stop := stopDetails[stopID]

		result.Stops = append(result.Stops, StopArrivals{
			StopID:    stopID,
			StopName:  stop.Name,
			Latitude:  stop.Latitude,
			Longitude: stop.Longitude,
			BusCount:  count,
		})
		result.TotalBuses += count
	}

	sort.Slice(result.Stops, func(i, j int) bool {
		if result.Stops[i].BusCount != result.Stops[j].BusCount {
			return result.Stops[i].BusCount > result.Stops[j].BusCount
		}
		return result.Stops[i].StopID < result.Stops[j].StopID
	})

	result.TotalStops = len(result.Stops)

	return result
}
