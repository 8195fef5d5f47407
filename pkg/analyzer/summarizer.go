package analyzer

import (
	"fmt"
	"sort"
	"time"
)

// DefaultTopPeakHours is how many peak hours a daily summary covers.
const DefaultTopPeakHours = 3

type PeakHour struct {
	Hour     int    `json:"hour"`
	Label    string `json:"hour_formatted"`
	BusCount int    `json:"bus_count"`
}

type StopPeakSummary struct {
	StopID         string     `json:"stop_id"`
	StopName       string     `json:"stop_name"`
	Latitude       float64    `json:"stop_lat"`
	Longitude      float64    `json:"stop_lon"`
	PeakHours      []PeakHour `json:"peak_hours"`
	TotalBusCount  int        `json:"total_bus_count"`
	MaxHourlyCount int        `json:"max_hourly_count"`
}

type PeakHoursSummary struct {
	City  string            `json:"city"`
	Date  string            `json:"date"`
	Stops []StopPeakSummary `json:"stops"`
}

// DailyPeakHours ranks the hours of one day by total arrival volume and
// returns a per-stop digest of the topN busiest hours. All 24 hourly buckets
// come from a single pass over the feed rows, so the ranking and the
// per-stop detail always agree.
//
// Peak hours are ordered by total count descending, earlier hour first on
// ties. Stops are ordered by their total count across the selected hours,
// stop id ascending on ties.
func (analyzer *Analyzer) DailyPeakHours(city string, date time.Time, topN int) (*PeakHoursSummary, error) {
	stops, stopTimes, err := analyzer.cityRows(city)
	if err != nil {
		return nil, err
	}

	buckets := analyzer.hourlyBuckets(date, stopTimes)

	type hourTotal struct {
		hour  int
		total int
	}

	var hourTotals []hourTotal
	for hour, counts := range buckets {
		total := 0
		for _, count := range counts {
			total += count
		}

		if total > 0 {
			hourTotals = append(hourTotals, hourTotal{hour: hour, total: total})
		}
	}

	if len(hourTotals) == 0 {
		return nil, fmt.Errorf("%w for %s on %s", ErrNoData, city, date.Format("2006-01-02"))
	}

	sort.Slice(hourTotals, func(i, j int) bool {
		if hourTotals[i].total != hourTotals[j].total {
			return hourTotals[i].total > hourTotals[j].total
		}
		return hourTotals[i].hour < hourTotals[j].hour
	})

	if topN > len(hourTotals) {
		topN = len(hourTotals)
	}

	stopDetails := map[string]StopPeakSummary{}
	for _, stop := range stops {
		stopDetails[stop.ID] = StopPeakSummary{
			StopID:    stop.ID,
			StopName:  stop.Name,
			Latitude:  stop.Latitude,
			Longitude: stop.Longitude,
		}
	}

	summaries := map[string]*StopPeakSummary{}
	for _, hourTotal := range hourTotals[:topN] {
		for _, stopID := range sortedStopIDs(buckets[hourTotal.hour]) {
			count := buckets[hourTotal.hour][stopID]

			summary, exists := summaries[stopID]
			if !exists {
				detail := stopDetails[stopID]
				summary = &detail
				summaries[stopID] = summary
			}

			summary.PeakHours = append(summary.PeakHours, PeakHour{
				Hour:     hourTotal.hour,
				Label:    fmt.Sprintf("%02d:00", hourTotal.hour),
				BusCount: count,
			})
			summary.TotalBusCount += count
			if count > summary.MaxHourlyCount {
				summary.MaxHourlyCount = count
			}
		}
	}

	result := &PeakHoursSummary{
		City: city,
		Date: date.Format("2006-01-02"),
	}

	for _, summary := range summaries {
		result.Stops = append(result.Stops, *summary)
	}

	sort.Slice(result.Stops, func(i, j int) bool {
		if result.Stops[i].TotalBusCount != result.Stops[j].TotalBusCount {
			return result.Stops[i].TotalBusCount > result.Stops[j].TotalBusCount
		}
		return result.Stops[i].StopID < result.Stops[j].StopID
	})

	return result, nil
}

func sortedStopIDs(counts map[string]int) []string {
	stopIDs := make([]string, 0, len(counts))
	for stopID := range counts {
		stopIDs = append(stopIDs, stopID)
	}
	sort.Strings(stopIDs)

	return stopIDs
}
