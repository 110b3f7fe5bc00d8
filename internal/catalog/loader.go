package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Loader reads the three catalog files from a data directory. Each
// category is loaded from disk exactly once, on first use, and cached
// for the lifetime of the process. The cached slices are never
// mutated, so a Loader is safe to share without locking once loaded.
type Loader struct {
	dataDir string

	flightsOnce sync.Once
	flights     []Flight
	flightsErr  error

	accommodationsOnce sync.Once
	accommodations     []Accommodation
	accommodationsErr  error

	attractionsOnce sync.Once
	attractions     []Attraction
	attractionsErr  error
}

func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog file not found: %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed catalog file %s: %w", path, err)
	}
	return nil
}

// Flights returns the full flights catalog.
func (l *Loader) Flights() ([]Flight, error) {
	l.flightsOnce.Do(func() {
		l.flightsErr = loadJSON(filepath.Join(l.dataDir, "flights.json"), &l.flights)
	})
	return l.flights, l.flightsErr
}

// Accommodations returns the full accommodations catalog.
func (l *Loader) Accommodations() ([]Accommodation, error) {
	l.accommodationsOnce.Do(func() {
		l.accommodationsErr = loadJSON(filepath.Join(l.dataDir, "accommodations.json"), &l.accommodations)
	})
	return l.accommodations, l.accommodationsErr
}

// Attractions returns the full attractions catalog.
func (l *Loader) Attractions() ([]Attraction, error) {
	l.attractionsOnce.Do(func() {
		l.attractionsErr = loadJSON(filepath.Join(l.dataDir, "attractions.json"), &l.attractions)
	})
	return l.attractions, l.attractionsErr
}

// Preload forces all three catalogs to load so that a missing or
// malformed backing file aborts startup instead of surfacing later,
// mid-pipeline. There is no partial-load recovery.
func (l *Loader) Preload() error {
	if _, err := l.Flights(); err != nil {
		return err
	}
	if _, err := l.Accommodations(); err != nil {
		return err
	}
	if _, err := l.Attractions(); err != nil {
		return err
	}
	return nil
}
