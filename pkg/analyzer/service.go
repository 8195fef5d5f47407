package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transitpeak/transitpeak/pkg/dailycache"
)

const queryDateFormat = "2006-01-02"
const cacheKeyDateFormat = "20060102"

// Service is the query surface handed to callers. It wraps the analyzer with
// input validation and memoizes successful results in a daily cache, so
// repeated queries for the same city and date within one calendar day reuse
// the first computation.
type Service struct {
	Analyzer *Analyzer
	Cache    dailycache.Cache
}

func NewService(analyzer *Analyzer, cache dailycache.Cache) *Service {
	return &Service{
		Analyzer: analyzer,
		Cache:    cache,
	}
}

type PeakHoursResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	City         string            `json:"city,omitempty"`
	Date         string            `json:"date,omitempty"`
	Stops        []StopPeakSummary `json:"stops,omitempty"`
}

type ArrivalsResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	City         string         `json:"city,omitempty"`
	Date         string         `json:"date,omitempty"`
	Hour         int            `json:"hour"`
	TotalBuses   int            `json:"total_buses"`
	TotalStops   int            `json:"total_stops"`
	Stops        []StopArrivals `json:"stops,omitempty"`
}

// PeakHours returns the top peak hours digest for a city. The date is
// "YYYY-MM-DD"; an empty date means today. The returned error carries the
// failure class for callers that map onto transport status codes, the
// response always carries the status and message.
func (service *Service) PeakHours(city string, date string) (PeakHoursResponse, error) {
	city = strings.ToLower(city)

	queryDate, err := parseQueryDate(date)
	if err != nil {
		return PeakHoursResponse{Status: "error", ErrorMessage: err.Error()}, err
	}

	cacheKey := fmt.Sprintf("bus_peak_hours_%s_%s", city, queryDate.Format(cacheKeyDateFormat))

	summary, err := dailycache.Memoize(service.Cache, cacheKey, func() (*PeakHoursSummary, error) {
		log.Debug().Str("city", city).Str("date", queryDate.Format(queryDateFormat)).Msg("Computing daily peak hours")

		return service.Analyzer.DailyPeakHours(city, queryDate, DefaultTopPeakHours)
	})
	if err != nil {
		return PeakHoursResponse{Status: "error", ErrorMessage: err.Error()}, err
	}

	return PeakHoursResponse{
		Status: "success",
		City:   summary.City,
		Date:   summary.Date,
		Stops:  summary.Stops,
	}, nil
}

// ArrivalsAtHour returns per-stop arrival counts for a city, date and hour.
func (service *Service) ArrivalsAtHour(city string, date string, hour int) (ArrivalsResponse, error) {
	city = strings.ToLower(city)

	queryDate, err := parseQueryDate(date)
	if err != nil {
		return ArrivalsResponse{Status: "error", ErrorMessage: err.Error()}, err
	}

	if hour < 0 || hour > 23 {
		err := fmt.Errorf("%w: hour must be between 0 and 23, got %d", ErrInvalidQuery, hour)
		return ArrivalsResponse{Status: "error", ErrorMessage: err.Error()}, err
	}

	cacheKey := fmt.Sprintf("bus_stops_%s_%s_%d", city, queryDate.Format(cacheKeyDateFormat), hour)

	arrivals, err := dailycache.Memoize(service.Cache, cacheKey, func() (*HourlyArrivals, error) {
		log.Debug().Str("city", city).Str("date", queryDate.Format(queryDateFormat)).Int("hour", hour).Msg("Counting arrivals")

		return service.Analyzer.CountArrivals(city, queryDate, hour)
	})
	if err != nil {
		return ArrivalsResponse{Status: "error", ErrorMessage: err.Error()}, err
	}

	return ArrivalsResponse{
		Status:     "success",
		City:       arrivals.City,
		Date:       arrivals.Date,
		Hour:       arrivals.Hour,
		TotalBuses: arrivals.TotalBuses,
		TotalStops: arrivals.TotalStops,
		Stops:      arrivals.Stops,
	}, nil
}

func parseQueryDate(date string) (time.Time, error) {
	if date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	queryDate, err := time.Parse(queryDateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD, got %s", ErrInvalidQuery, date)
	}

	return queryDate, nil
}
