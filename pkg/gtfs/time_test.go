package gtfs

import (
	"testing"
	"time"
)

func TestNormalizeArrivalTime(t *testing.T) {
	serviceDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		arrivalTime  string
		expectedHour int
		expectedDate string
	}{
		{
			name:         "morning time",
			arrivalTime:  "09:15:00",
			expectedHour: 9,
			expectedDate: "2024-01-10",
		},
		{
			name:         "after midnight rolls to next day",
			arrivalTime:  "25:30:00",
			expectedHour: 1,
			expectedDate: "2024-01-11",
		},
		{
			name:         "exactly midnight next day",
			arrivalTime:  "24:00:00",
			expectedHour: 0,
			expectedDate: "2024-01-11",
		},
		{
			name:         "malformed falls back to midnight",
			arrivalTime:  "bad",
			expectedHour: 0,
			expectedDate: "2024-01-10",
		},
		{
			name:         "malformed minutes fall back to midnight",
			arrivalTime:  "09:xx:00",
			expectedHour: 0,
			expectedDate: "2024-01-10",
		},
		{
			name:         "empty string falls back to midnight",
			arrivalTime:  "",
			expectedHour: 0,
			expectedDate: "2024-01-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, actualDate := NormalizeArrivalTime(tt.arrivalTime, serviceDate)

			if hour != tt.expectedHour {
				t.Errorf("expected hour %d, got %d", tt.expectedHour, hour)
			}
			if actualDate.Format("2006-01-02") != tt.expectedDate {
				t.Errorf("expected date %s, got %s", tt.expectedDate, actualDate.Format("2006-01-02"))
			}
		})
	}
}
