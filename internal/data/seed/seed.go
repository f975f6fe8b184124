// Package seed reads the catalog and price tables from a yaml file.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/pricing"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

type File struct {
	Catalog entity.Catalog
	Pricing pricing.Config
}

type document struct {
	Movies    []entity.Movie   `yaml:"movies"`
	Theaters  []entity.Theater `yaml:"theaters"`
	Showtimes []showtime       `yaml:"showtimes"`
	Pricing   pricing.Config   `yaml:"pricing"`
}

type showtime struct {
	ID        string `yaml:"id"`
	MovieID   string `yaml:"movie_id"`
	TheaterID string `yaml:"theater_id"`
	StartsAt  string `yaml:"starts_at"`
	StartsIn  string `yaml:"starts_in"`
	BasePrice int    `yaml:"base_price"`
}

// Load reads path, or the embedded default when path is empty. Relative
// start times are resolved against now.
func Load(path string, now time.Time) (*File, error) {
	if path == "" {
		return Parse(defaultSeed, now)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data, now)
}

func Parse(data []byte, now time.Time) (*File, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	f := &File{
		Catalog: entity.Catalog{
			Movies:    doc.Movies,
			Theaters:  doc.Theaters,
			Showtimes: make([]entity.Showtime, 0, len(doc.Showtimes)),
		},
		Pricing: doc.Pricing,
	}

	for _, s := range doc.Showtimes {
		startsAt, err := s.resolve(now)
		if err != nil {
			return nil, fmt.Errorf("showtime %s: %w", s.ID, err)
		}
		f.Catalog.Showtimes = append(f.Catalog.Showtimes, entity.Showtime{
			ID:        s.ID,
			MovieID:   s.MovieID,
			TheaterID: s.TheaterID,
			StartsAt:  startsAt,
			BasePrice: s.BasePrice,
		})
	}

	return f, nil
}

func (s showtime) resolve(now time.Time) (time.Time, error) {
	switch {
	case s.StartsAt != "" && s.StartsIn != "":
		return time.Time{}, fmt.Errorf("starts_at and starts_in are mutually exclusive")
	case s.StartsAt != "":
		t, err := time.Parse(time.RFC3339, s.StartsAt)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse starts_at: %w", err)
		}
		return t.In(now.Location()), nil
	case s.StartsIn != "":
		d, err := time.ParseDuration(s.StartsIn)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse starts_in: %w", err)
		}
		return now.Add(d), nil
	default:
		return time.Time{}, fmt.Errorf("start time is required")
	}
}
