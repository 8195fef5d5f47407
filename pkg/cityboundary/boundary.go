package cityboundary

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Boundary is a rectangular lat/lon bounding box used to decide whether a
// stop belongs to a city.
type Boundary struct {
	MinLatitude  float64 `yaml:"lat_min" validate:"gte=-90,lte=90,ltfield=MaxLatitude"`
	MaxLatitude  float64 `yaml:"lat_max" validate:"gte=-90,lte=90"`
	MinLongitude float64 `yaml:"lon_min" validate:"gte=-180,lte=180,ltfield=MaxLongitude"`
	MaxLongitude float64 `yaml:"lon_max" validate:"gte=-180,lte=180"`
}

func (boundary Boundary) Contains(latitude float64, longitude float64) bool {
	return latitude >= boundary.MinLatitude && latitude <= boundary.MaxLatitude &&
		longitude >= boundary.MinLongitude && longitude <= boundary.MaxLongitude
}

// Set maps lowercase city names to their boundaries.
type Set map[string]Boundary

func (set Set) Lookup(city string) (Boundary, bool) {
	boundary, exists := set[strings.ToLower(city)]
	return boundary, exists
}

// Defaults returns the built-in city boundaries (approximate coordinates).
func Defaults() Set {
	return Set{
		"porto": {
			MinLatitude:  41.02,
			MaxLatitude:  41.27,
			MinLongitude: -8.75,
			MaxLongitude: -8.45,
		},
		"london": {
			MinLatitude:  51.28,
			MaxLatitude:  51.70,
			MinLongitude: -0.52,
			MaxLongitude: 0.33,
		},
		"lisbon": {
			MinLatitude:  38.68,
			MaxLatitude:  38.83,
			MinLongitude: -9.25,
			MaxLongitude: -9.05,
		},
		"berlin": {
			MinLatitude:  52.33,
			MaxLatitude:  52.67,
			MinLongitude: 13.09,
			MaxLongitude: 13.77,
		},
	}
}

// LoadFile reads extra city boundaries from a YAML file keyed by city name
// and merges them over the given set. Invalid entries fail the whole load.
func LoadFile(path string, set Set) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var loaded map[string]Boundary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	validate := validator.New()
	for city, boundary := range loaded {
		if err := validate.Struct(boundary); err != nil {
			return err
		}

		set[strings.ToLower(city)] = boundary
		log.Debug().Str("city", strings.ToLower(city)).Msg("Loaded city boundary")
	}

	return nil
}
