package gtfs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/transitpeak/transitpeak/pkg/cityboundary"
)

func writeFeed(t *testing.T, files map[string]string) string {
	t.Helper()

	directory := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(directory, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	return directory
}

func testFeedFiles() map[string]string {
	return map[string]string{
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon,location_type\n" +
			"A,Main Station,41.15,-8.61,1\n" +
			"B,Platform Stop,41.15,-8.61,0\n" +
			"C,Far Station,40.00,-8.61,1\n",
		"trips.txt": "route_id,service_id,trip_id\n" +
			"R1,S1,T1\n" +
			"R1,S1,T2\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"S1,1,1,1,1,1,1,1,20240101,20241231\n",
		"calendar_dates.txt": "service_id,date,exception_type\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:00:00,08:00:00,A,1\n" +
			"T1,08:10:00,08:10:00,C,2\n" +
			"T2,09:00:00,09:00:00,A,1\n" +
			"T2,09:05:00,09:05:00,B,2\n",
	}
}

func portoBoundary() cityboundary.Boundary {
	return cityboundary.Boundary{
		MinLatitude:  41.02,
		MaxLatitude:  41.27,
		MinLongitude: -8.75,
		MaxLongitude: -8.45,
	}
}

func TestStoreLoad(t *testing.T) {
	store := NewStore(writeFeed(t, testFeedFiles()))
	store.Load()

	if len(store.Stops) != 3 {
		t.Errorf("expected 3 stops, got %d", len(store.Stops))
	}
	if len(store.Trips) != 2 {
		t.Errorf("expected 2 trips, got %d", len(store.Trips))
	}
	if len(store.Calendars) != 1 {
		t.Errorf("expected 1 calendar, got %d", len(store.Calendars))
	}
	if !store.stopTimesResident {
		t.Error("expected stop times to be memory resident for a small feed")
	}
	if len(store.stopTimes) != 4 {
		t.Errorf("expected 4 stop times, got %d", len(store.stopTimes))
	}
}

func TestStoreLoadMissingTables(t *testing.T) {
	files := testFeedFiles()
	delete(files, "calendar_dates.txt")
	delete(files, "trips.txt")

	store := NewStore(writeFeed(t, files))
	store.Load()

	if len(store.Stops) != 3 {
		t.Errorf("expected stops to load despite missing tables, got %d", len(store.Stops))
	}
	if len(store.Trips) != 0 {
		t.Errorf("expected no trips, got %d", len(store.Trips))
	}
	if len(store.CalendarDates) != 0 {
		t.Errorf("expected no calendar dates, got %d", len(store.CalendarDates))
	}
}

func TestStopsWithin(t *testing.T) {
	store := NewStore(writeFeed(t, testFeedFiles()))
	store.Load()

	stops := store.StopsWithin(portoBoundary())

	if len(stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(stops))
	}
	if stops[0].ID != "A" {
		t.Errorf("expected stop A, got %s", stops[0].ID)
	}
}

func TestStopTimesForStops(t *testing.T) {
	store := NewStore(writeFeed(t, testFeedFiles()))
	store.Load()

	stopTimes := store.StopTimesForStops([]string{"A"})

	if len(stopTimes) != 2 {
		t.Fatalf("expected 2 stop times for stop A, got %d", len(stopTimes))
	}
	for _, stopTime := range stopTimes {
		if stopTime.StopID != "A" {
			t.Errorf("expected only stop A rows, got %s", stopTime.StopID)
		}
	}
}

func TestStopTimesForStopsStreamed(t *testing.T) {
	directory := writeFeed(t, testFeedFiles())

	resident := NewStore(directory)
	resident.Load()

	streamed := NewStore(directory)
	streamed.MaxResidentStopTimes = 0
	streamed.Load()

	if streamed.stopTimesResident {
		t.Fatal("expected stop times to be deferred with a zero memory budget")
	}

	for _, stopIDs := range [][]string{{"A"}, {"A", "B"}, {"C"}, {"missing"}} {
		residentRows := resident.StopTimesForStops(stopIDs)
		streamedRows := streamed.StopTimesForStops(stopIDs)

		if !reflect.DeepEqual(residentRows, streamedRows) {
			t.Errorf("streamed results differ from resident results for %v: %v vs %v", stopIDs, streamedRows, residentRows)
		}
	}
}
