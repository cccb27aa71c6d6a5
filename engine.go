// Package transitcore loads a GTFS static feed and answers journey
// planning, vehicle position and stop query requests against it.
package transitcore

import (
	"time"

	"github.com/pkg/errors"

	"transitcore/catalog"
	"transitcore/feed"
	"transitcore/model"
	"transitcore/planner"
	"transitcore/position"
	"transitcore/query"
	"transitcore/resolver"
	"transitcore/service"
	"transitcore/transfer"
)

const (
	DefaultMaxWalkMeters        = 500.0
	DefaultWalkSpeedMPS         = 1.4
	DefaultMaxDeparturesPerStop = 5
)

// Config holds every tunable the engine needs, each with the default
// from spec.md §6 if left zero.
type Config struct {
	DataDir              string
	MaxWalkMeters        float64
	WalkSpeedMPS         float64
	MaxDeparturesPerStop int
	// UseSQLiteStore swaps the Catalog's default in-memory map store for
	// the SQLite-backed one (an in-memory database), so every lookup
	// goes through a SQL query instead of a map access.
	UseSQLiteStore bool
}

func (c *Config) applyDefaults() {
	if c.MaxWalkMeters <= 0 {
		c.MaxWalkMeters = DefaultMaxWalkMeters
	}
	if c.WalkSpeedMPS <= 0 {
		c.WalkSpeedMPS = DefaultWalkSpeedMPS
	}
	if c.MaxDeparturesPerStop <= 0 {
		c.MaxDeparturesPerStop = DefaultMaxDeparturesPerStop
	}
}

// Engine is the facade the cmd package and any embedding caller drive:
// build one with Load, then issue FindItinerary / ActiveTrips /
// PositionOf / UpcomingDepartures / SearchStopsByNamePrefix calls
// against it freely and concurrently, since nothing it holds is
// mutated after Load returns.
type Engine struct {
	cfg      Config
	catalog  *catalog.Catalog
	calendar *service.Calendar
	transfer *transfer.Index
}

// Load reads the feed at cfg.DataDir, builds the Catalog, Service
// Calendar and Transfer Index, and returns a ready Engine. It is the
// only place feed.FeedMissingError / feed.FeedMalformedError surface.
func Load(cfg Config) (*Engine, error) {
	cfg.applyDefaults()

	result, err := feed.Load(cfg.DataDir)
	if err != nil {
		return nil, errors.Wrap(err, "loading feed")
	}

	var store catalog.Store
	if cfg.UseSQLiteStore {
		store, err = catalog.NewSQLiteStore()
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite catalog store")
		}
	} else {
		store = catalog.NewMemoryStore()
	}

	cat, err := catalog.Build(result, store)
	if err != nil {
		return nil, errors.Wrap(err, "building catalog")
	}

	cal := service.NewCalendar(result.Rules, result.Exceptions)
	idx := transfer.Build(cat.MasterStops(), cfg.MaxWalkMeters, cfg.WalkSpeedMPS)

	return &Engine{cfg: cfg, catalog: cat, calendar: cal, transfer: idx}, nil
}

// FindItinerary finds the earliest-arrival itinerary departing at or
// after departAt.
func (e *Engine) FindItinerary(from, to planner.LatLon, departAt time.Time) planner.Outcome {
	date, seconds := serviceDayAndSeconds(departAt)
	return planner.FindItinerary(e.catalog, e.calendar, e.transfer, from, to, date, seconds, e.cfg.MaxWalkMeters, e.cfg.WalkSpeedMPS)
}

// ActiveTrips enumerates every trip running at instant t, with its
// Dwell/Move state.
func (e *Engine) ActiveTrips(t time.Time) []resolver.State {
	date, seconds := serviceDayAndSeconds(t)
	return resolver.ActiveTrips(e.catalog, e.calendar, date, seconds)
}

// PositionOf projects a resolver.State onto a coordinate and bearing.
func (e *Engine) PositionOf(state resolver.State) (position.Fix, bool) {
	return position.Of(e.catalog, state)
}

// UpcomingDepartures lists the next departures from masterID at or
// after t.
func (e *Engine) UpcomingDepartures(masterID string, t time.Time, limit int) []query.Departure {
	date, seconds := serviceDayAndSeconds(t)
	if limit <= 0 {
		limit = e.cfg.MaxDeparturesPerStop
	}
	return query.UpcomingDepartures(e.catalog, e.calendar, masterID, seconds, date, limit)
}

// SearchStopsByNamePrefix finds master stops whose name begins with q.
func (e *Engine) SearchStopsByNamePrefix(q string, limit int) []model.MasterStop {
	return query.SearchStopsByNamePrefix(e.catalog, q, limit)
}

// serviceDayAndSeconds converts a wall-clock instant into the
// YYYYMMDD service date and seconds-since-midnight encoding every
// other layer operates on. Conversion to/from a specific agency
// timezone is the embedding caller's responsibility; the engine deals
// only in the normalized encoding.
func serviceDayAndSeconds(t time.Time) (string, int) {
	date := t.Format("20060102")
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	seconds := int(t.Sub(midnight).Seconds())
	return date, seconds
}
