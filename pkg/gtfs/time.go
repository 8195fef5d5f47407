package gtfs

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeArrivalTime converts a GTFS HH:MM:SS clock time into an hour of
// day and the calendar date it actually falls on. GTFS allows hours >= 24 to
// express a trip continuing past midnight relative to its service date, e.g.
// "25:30:00" on 2024-01-10 is 01:30 on 2024-01-11.
//
// Malformed input yields hour 0 and the unchanged service date so the row
// lands in the midnight bucket instead of being dropped.
func NormalizeArrivalTime(arrivalTime string, serviceDate time.Time) (int, time.Time) {
	splitTime := strings.Split(arrivalTime, ":")
	if len(splitTime) != 3 {
		return 0, serviceDate
	}

	hour, err := strconv.Atoi(strings.TrimSpace(splitTime[0]))
	if err != nil || hour < 0 {
		return 0, serviceDate
	}

	if _, err := strconv.Atoi(strings.TrimSpace(splitTime[1])); err != nil {
		return 0, serviceDate
	}
	if _, err := strconv.Atoi(strings.TrimSpace(splitTime[2])); err != nil {
		return 0, serviceDate
	}

	if hour >= 24 {
		return hour - 24, serviceDate.AddDate(0, 0, 1)
	}

	return hour, serviceDate
}
