package catalog

import (
	"database/sql"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"transitcore/model"
)

// SQLiteStore is a Store backed by an in-memory SQLite database. It
// exists for feeds large enough that MemoryStore's per-stop event
// slices stop being the bottleneck and a real query planner is worth
// the call overhead; it never touches disk, so it carries no state
// beyond the process's own memory.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "opening in-memory sqlite database")
	}

	schema := []string{
		`CREATE TABLE routes (
			id TEXT PRIMARY KEY,
			short_name TEXT,
			long_name TEXT,
			color TEXT,
			text_color TEXT,
			type INTEGER NOT NULL
		);`,
		`CREATE TABLE stops (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			parent_station TEXT,
			location_type INTEGER NOT NULL,
			invalid INTEGER NOT NULL
		);
		CREATE INDEX stops_parent_station ON stops (parent_station);`,
		`CREATE TABLE trips (
			id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			headsign TEXT
		);
		CREATE INDEX trips_route_id ON trips (route_id);`,
		`CREATE TABLE stop_times (
			trip_id TEXT NOT NULL,
			stop_id TEXT NOT NULL,
			stop_sequence INTEGER NOT NULL,
			arrival INTEGER NOT NULL,
			departure INTEGER NOT NULL
		);
		CREATE INDEX stop_times_trip_id ON stop_times (trip_id, stop_sequence);
		CREATE INDEX stop_times_stop_id ON stop_times (stop_id, departure);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "creating schema")
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) PutRoute(r model.Route) error {
	_, err := s.db.Exec(
		`INSERT INTO routes (id, short_name, long_name, color, text_color, type) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ShortName, r.LongName, r.Color, r.TextColor, int(r.Type),
	)
	return errors.Wrap(err, "inserting route")
}

func (s *SQLiteStore) PutStop(st model.Stop) error {
	invalid := 0
	if st.Invalid {
		invalid = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO stops (id, name, lat, lon, parent_station, location_type, invalid) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.Lat, st.Lon, st.ParentStation, int(st.LocationType), invalid,
	)
	return errors.Wrap(err, "inserting stop")
}

func (s *SQLiteStore) PutTrip(t model.Trip) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	if _, err := tx.Exec(
		`INSERT INTO trips (id, route_id, service_id, headsign) VALUES (?, ?, ?, ?)`,
		t.ID, t.RouteID, t.ServiceID, t.Headsign,
	); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "inserting trip")
	}

	stmt, err := tx.Prepare(
		`INSERT INTO stop_times (trip_id, stop_id, stop_sequence, arrival, departure) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "preparing stop_times insert")
	}
	defer stmt.Close()

	for _, st := range t.StopTimes {
		if _, err := stmt.Exec(t.ID, st.StopID, st.StopSequence, st.Arrival, st.Departure); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "inserting stop_time")
		}
	}

	return errors.Wrap(tx.Commit(), "committing trip insert")
}

func (s *SQLiteStore) Route(id string) (model.Route, bool) {
	var r model.Route
	var routeType int
	err := s.db.QueryRow(
		`SELECT id, short_name, long_name, color, text_color, type FROM routes WHERE id = ?`, id,
	).Scan(&r.ID, &r.ShortName, &r.LongName, &r.Color, &r.TextColor, &routeType)
	if err != nil {
		return model.Route{}, false
	}
	r.Type = model.RouteType(routeType)
	return r, true
}

func (s *SQLiteStore) Stop(id string) (model.Stop, bool) {
	var st model.Stop
	var locationType, invalid int
	var parent sql.NullString
	err := s.db.QueryRow(
		`SELECT id, name, lat, lon, parent_station, location_type, invalid FROM stops WHERE id = ?`, id,
	).Scan(&st.ID, &st.Name, &st.Lat, &st.Lon, &parent, &locationType, &invalid)
	if err != nil {
		return model.Stop{}, false
	}
	st.ParentStation = parent.String
	st.LocationType = model.LocationType(locationType)
	st.Invalid = invalid != 0
	return st, true
}

func (s *SQLiteStore) Trip(id string) (model.Trip, bool) {
	var t model.Trip
	err := s.db.QueryRow(
		`SELECT id, route_id, service_id, headsign FROM trips WHERE id = ?`, id,
	).Scan(&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign)
	if err != nil {
		return model.Trip{}, false
	}
	t.StopTimes = s.StopTimesOfTrip(id)
	return t, true
}

func (s *SQLiteStore) StopTimesOfTrip(tripID string) []model.StopTime {
	rows, err := s.db.Query(
		`SELECT stop_id, stop_sequence, arrival, departure FROM stop_times WHERE trip_id = ? ORDER BY stop_sequence`, tripID,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []model.StopTime
	for rows.Next() {
		var st model.StopTime
		if err := rows.Scan(&st.StopID, &st.StopSequence, &st.Arrival, &st.Departure); err != nil {
			return nil
		}
		out = append(out, st)
	}
	return out
}

func (s *SQLiteStore) EventsAtStop(stopID string) []StopEvent {
	rows, err := s.db.Query(`
		SELECT st.trip_id, t.route_id, st.stop_sequence, st.arrival, st.departure, t.headsign
		FROM stop_times st JOIN trips t ON t.id = st.trip_id
		WHERE st.stop_id = ?
		ORDER BY st.departure`, stopID,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []StopEvent
	for rows.Next() {
		var e StopEvent
		if err := rows.Scan(&e.TripID, &e.RouteID, &e.StopSequence, &e.Arrival, &e.Departure, &e.Headsign); err != nil {
			return nil
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Departure < out[j].Departure })
	return out
}

func (s *SQLiteStore) AllStops() []model.Stop {
	rows, err := s.db.Query(`SELECT id, name, lat, lon, parent_station, location_type, invalid FROM stops`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []model.Stop
	for rows.Next() {
		var st model.Stop
		var locationType, invalid int
		var parent sql.NullString
		if err := rows.Scan(&st.ID, &st.Name, &st.Lat, &st.Lon, &parent, &locationType, &invalid); err != nil {
			return nil
		}
		st.ParentStation = parent.String
		st.LocationType = model.LocationType(locationType)
		st.Invalid = invalid != 0
		out = append(out, st)
	}
	return out
}

func (s *SQLiteStore) AllTrips() []model.Trip {
	rows, err := s.db.Query(`SELECT id, route_id, service_id, headsign FROM trips`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []model.Trip
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign); err != nil {
			return nil
		}
		t.StopTimes = s.StopTimesOfTrip(t.ID)
		out = append(out, t)
	}
	return out
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
