package gtfs

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/transitpeak/transitpeak/pkg/cityboundary"
	"github.com/transitpeak/transitpeak/pkg/util"
)

// DefaultMaxResidentStopTimes is the stop_times row count above which the
// table is not kept in memory and is streamed from disk on demand instead.
const DefaultMaxResidentStopTimes = 1_000_000

const stopTimesWindowSize = 100_000

// Store holds the static GTFS tables for a single feed directory. Tables are
// loaded once and read-only afterwards.
type Store struct {
	Directory            string
	MaxResidentStopTimes int

	Stops         []Stop
	Trips         []Trip
	Calendars     []Calendar
	CalendarDates []CalendarDate

	stopTimes         []StopTime
	stopTimesResident bool
}

func NewStore(directory string) *Store {
	return &Store{
		Directory:            directory,
		MaxResidentStopTimes: DefaultMaxResidentStopTimes,
	}
}

// Load reads the feed tables. A missing or unparseable table is logged and
// left empty rather than failing the whole store - downstream queries then
// report no data for that table.
func (store *Store) Load() {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	loadTable(store.tablePath("stops.txt"), &store.Stops)
	loadTable(store.tablePath("trips.txt"), &store.Trips)
	loadTable(store.tablePath("calendar.txt"), &store.Calendars)
	loadTable(store.tablePath("calendar_dates.txt"), &store.CalendarDates)

	store.loadStopTimes()
}

func (store *Store) tablePath(name string) string {
	return filepath.Join(store.Directory, name)
}

func loadTable[T any](path string, destination *[]T) {
	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to open gtfs file")
		return
	}
	defer file.Close()

	if err := gocsv.UnmarshalFile(file, destination); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to parse csv file")
	}
}

func (store *Store) loadStopTimes() {
	path := store.tablePath("stop_times.txt")

	rows, err := countDataRows(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to open gtfs file")
		return
	}

	if rows > store.MaxResidentStopTimes {
		log.Info().Int("rows", rows).Str("file", path).Msg("stop_times exceeds memory budget, will stream on demand")
		return
	}

	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to open gtfs file")
		return
	}
	defer file.Close()

	if err := gocsv.UnmarshalFile(file, &store.stopTimes); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to parse csv file")
		return
	}

	store.stopTimesResident = true
}

func countDataRows(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	rows := 0
	lastByte := byte('\n')
	buffer := make([]byte, 64*1024)
	for {
		n, err := file.Read(buffer)
		for _, b := range buffer[:n] {
			if b == '\n' {
				rows++
			}
		}
		if n > 0 {
			lastByte = buffer[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	// A final line without a trailing newline still counts
	if lastByte != '\n' {
		rows++
	}

	// Exclude the header row
	if rows > 0 {
		rows--
	}

	return rows, nil
}

// StopsWithin returns the parent-station stops inside the given bounding box.
func (store *Store) StopsWithin(boundary cityboundary.Boundary) []Stop {
	var stops []Stop

	for _, stop := range store.Stops {
		if stop.Type != LocationTypeStation {
			continue
		}
		if boundary.Contains(stop.Latitude, stop.Longitude) {
			stops = append(stops, stop)
		}
	}

	return stops
}

// StopTimesForStops returns every stop_times row for the given stops. When
// the table is memory resident this filters the loaded slice, otherwise it
// makes one pass over stop_times.txt in fixed size windows. Both paths
// produce identical results, the streamed one just bounds peak memory.
func (store *Store) StopTimesForStops(stopIDs []string) []StopTime {
	wanted := map[string]bool{}
	for _, stopID := range stopIDs {
		wanted[stopID] = true
	}

	if store.stopTimesResident {
		var matches []StopTime
		for _, stopTime := range store.stopTimes {
			if wanted[stopTime.StopID] {
				matches = append(matches, stopTime)
			}
		}
		return matches
	}

	return store.streamStopTimes(wanted)
}

func (store *Store) streamStopTimes(wanted map[string]bool) []StopTime {
	path := store.tablePath("stop_times.txt")

	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to open gtfs file")
		return nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to read csv header")
		return nil
	}

	columns := map[string]int{}
	for index, name := range header {
		columns[strings.TrimSpace(name)] = index
	}

	tripColumn, tripExists := columns["trip_id"]
	arrivalColumn, arrivalExists := columns["arrival_time"]
	stopColumn, stopExists := columns["stop_id"]
	if !tripExists || !arrivalExists || !stopExists {
		log.Error().Str("file", path).Msg("stop_times is missing required columns")
		return nil
	}

	departureColumn := -1
	if index, exists := columns["departure_time"]; exists {
		departureColumn = index
	}
	sequenceColumn := -1
	if index, exists := columns["stop_sequence"]; exists {
		sequenceColumn = index
	}

	column := func(record []string, index int) string {
		if index >= 0 && index < len(record) {
			return record[index]
		}
		return ""
	}

	var matches []StopTime
	window := make([]StopTime, 0, stopTimesWindowSize)

	flush := func() {
		util.InPlaceFilter(&window, func(stopTime StopTime) bool {
			return wanted[stopTime.StopID]
		})
		matches = append(matches, window...)
		window = window[:0]
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to read stop_times row")
			break
		}

		if len(record) <= tripColumn || len(record) <= arrivalColumn || len(record) <= stopColumn {
			continue
		}

		stopSequence, _ := strconv.Atoi(column(record, sequenceColumn))

		window = append(window, StopTime{
			TripID:        record[tripColumn],
			ArrivalTime:   record[arrivalColumn],
			DepartureTime: column(record, departureColumn),
			StopID:        record[stopColumn],
			StopSequence:  stopSequence,
		})

		if len(window) == stopTimesWindowSize {
			flush()
		}
	}
	flush()

	return matches
}
