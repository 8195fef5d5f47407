package gtfs

import (
	"time"
)

const dateValueFormat = "20060102"

// ActiveServices returns the subset of the given service identifiers that run
// on the given date. A service runs when its calendar row has the matching
// weekday flag set and the date falls inside its validity range, or when a
// calendar_dates row adds it for that specific date. Removal exceptions win
// over everything else.
func (store *Store) ActiveServices(serviceIDs []string, date time.Time) map[string]bool {
	wanted := map[string]bool{}
	for _, serviceID := range serviceIDs {
		wanted[serviceID] = true
	}

	dateValue := date.Format(dateValueFormat)
	weekday := (int(date.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6

	active := map[string]bool{}
	for _, calendar := range store.Calendars {
		if !wanted[calendar.ServiceID] {
			continue
		}
		if !calendar.RunsOn(weekday) {
			continue
		}
		if calendar.Start > dateValue || calendar.End < dateValue {
			continue
		}

		active[calendar.ServiceID] = true
	}

	var removed []string
	for _, exception := range store.CalendarDates {
		if exception.Date != dateValue || !wanted[exception.ServiceID] {
			continue
		}

		switch exception.ExceptionType {
		case ExceptionTypeAdded:
			active[exception.ServiceID] = true
		case ExceptionTypeRemoved:
			removed = append(removed, exception.ServiceID)
		}
	}

	// Removals are applied last so they override an added exception on the
	// same service and date
	for _, serviceID := range removed {
		delete(active, serviceID)
	}

	return active
}
