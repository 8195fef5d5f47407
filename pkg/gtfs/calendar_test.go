package gtfs

import (
	"testing"
	"time"
)

func TestActiveServices(t *testing.T) {
	// 2024-03-01 is a Friday
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	everyday := Calendar{
		Monday: 1, Tuesday: 1, Wednesday: 1, Thursday: 1, Friday: 1, Saturday: 1, Sunday: 1,
		Start: "20240101", End: "20241231",
	}

	tests := []struct {
		name          string
		calendars     []Calendar
		calendarDates []CalendarDate
		serviceIDs    []string
		expected      map[string]bool
	}{
		{
			name: "weekday flag and range match",
			calendars: []Calendar{
				{ServiceID: "S1", Friday: 1, Start: "20240101", End: "20241231"},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{"S1": true},
		},
		{
			name: "weekday flag not set",
			calendars: []Calendar{
				{ServiceID: "S1", Monday: 1, Start: "20240101", End: "20241231"},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{},
		},
		{
			name: "date outside validity range",
			calendars: []Calendar{
				{ServiceID: "S1", Friday: 1, Start: "20240401", End: "20241231"},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{},
		},
		{
			name: "added exception activates service without a rule",
			calendarDates: []CalendarDate{
				{ServiceID: "S2", Date: "20240301", ExceptionType: ExceptionTypeAdded},
			},
			serviceIDs: []string{"S2"},
			expected:   map[string]bool{"S2": true},
		},
		{
			name: "removed exception overrides the rule",
			calendars: []Calendar{
				func() Calendar { c := everyday; c.ServiceID = "S1"; return c }(),
			},
			calendarDates: []CalendarDate{
				{ServiceID: "S1", Date: "20240301", ExceptionType: ExceptionTypeRemoved},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{},
		},
		{
			name: "removed wins over added on the same date",
			calendarDates: []CalendarDate{
				{ServiceID: "S1", Date: "20240301", ExceptionType: ExceptionTypeAdded},
				{ServiceID: "S1", Date: "20240301", ExceptionType: ExceptionTypeRemoved},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{},
		},
		{
			name: "removed wins regardless of exception order",
			calendarDates: []CalendarDate{
				{ServiceID: "S1", Date: "20240301", ExceptionType: ExceptionTypeRemoved},
				{ServiceID: "S1", Date: "20240301", ExceptionType: ExceptionTypeAdded},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{},
		},
		{
			name: "exceptions on other dates are ignored",
			calendars: []Calendar{
				func() Calendar { c := everyday; c.ServiceID = "S1"; return c }(),
			},
			calendarDates: []CalendarDate{
				{ServiceID: "S1", Date: "20240302", ExceptionType: ExceptionTypeRemoved},
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{"S1": true},
		},
		{
			name: "services outside the requested set are ignored",
			calendars: []Calendar{
				func() Calendar { c := everyday; c.ServiceID = "S1"; return c }(),
				func() Calendar { c := everyday; c.ServiceID = "S2"; return c }(),
			},
			serviceIDs: []string{"S1"},
			expected:   map[string]bool{"S1": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &Store{
				Calendars:     tt.calendars,
				CalendarDates: tt.calendarDates,
			}

			active := store.ActiveServices(tt.serviceIDs, date)

			if len(active) != len(tt.expected) {
				t.Fatalf("expected %d active services, got %d (%v)", len(tt.expected), len(active), active)
			}
			for serviceID := range tt.expected {
				if !active[serviceID] {
					t.Errorf("expected service %s to be active", serviceID)
				}
			}
		})
	}
}

func TestActiveServicesWeekdayIndex(t *testing.T) {
	store := &Store{
		Calendars: []Calendar{
			{ServiceID: "MON", Monday: 1, Start: "20240101", End: "20241231"},
			{ServiceID: "SUN", Sunday: 1, Start: "20240101", End: "20241231"},
		},
	}

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	if active := store.ActiveServices([]string{"MON", "SUN"}, monday); !active["MON"] || active["SUN"] {
		t.Errorf("expected only MON active on a Monday, got %v", active)
	}
	if active := store.ActiveServices([]string{"MON", "SUN"}, sunday); !active["SUN"] || active["MON"] {
		t.Errorf("expected only SUN active on a Sunday, got %v", active)
	}
}
