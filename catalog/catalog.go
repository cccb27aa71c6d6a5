package catalog

import (
	"transitcore/feed"
	"transitcore/model"
)

// Catalog is the read-only facade the rest of the engine queries. It
// wraps a Store with the master-stop grouping that collapses a
// station and its child platforms into one addressable place.
type Catalog struct {
	store Store

	masters        map[string]model.MasterStop // keyed by master ID
	masterOfStop   map[string]string           // child/standalone stop ID -> master ID
	geometryByRoute map[string]model.LineGeometry
}

// Build indexes a feed.Result into a Catalog. store must be empty; pass
// catalog.NewMemoryStore() for the default, or a fresh
// catalog.NewSQLiteStore() result to exercise the SQLite-backed path.
func Build(result *feed.Result, store Store) (*Catalog, error) {
	for _, r := range result.Routes {
		if err := store.PutRoute(r); err != nil {
			return nil, err
		}
	}
	for _, s := range result.Stops {
		if err := store.PutStop(s); err != nil {
			return nil, err
		}
	}
	for _, t := range result.Trips {
		if err := store.PutTrip(t); err != nil {
			return nil, err
		}
	}

	c := &Catalog{
		store:           store,
		geometryByRoute: result.Geometry,
	}
	c.buildMasterStops(result.Stops)

	return c, nil
}

// buildMasterStops groups stops into master stops: a station
// (location_type=1) together with every stop whose parent_station
// points at it becomes one MasterStop named after the station; a
// standalone stop with no parent and no children is its own master.
// Stops flagged Invalid (unparseable coordinates) are excluded from
// grouping entirely — they remain queryable by ID through the Store,
// but no MasterStop references them and the Transfer Index never sees
// them.
func (c *Catalog) buildMasterStops(stops map[string]model.Stop) {
	c.masters = map[string]model.MasterStop{}
	c.masterOfStop = map[string]string{}

	childrenOf := map[string][]string{}
	for _, s := range stops {
		if s.Invalid {
			continue
		}
		if s.ParentStation != "" {
			childrenOf[s.ParentStation] = append(childrenOf[s.ParentStation], s.ID)
		}
	}

	for _, s := range stops {
		if s.Invalid {
			continue
		}
		if s.LocationType == model.LocationTypeStation {
			children := append([]string{s.ID}, childrenOf[s.ID]...)
			c.masters[s.ID] = model.MasterStop{
				ID:       s.ID,
				Name:     s.Name,
				Lat:      s.Lat,
				Lon:      s.Lon,
				Children: children,
			}
			c.masterOfStop[s.ID] = s.ID
			for _, child := range childrenOf[s.ID] {
				c.masterOfStop[child] = s.ID
			}
		}
	}

	for _, s := range stops {
		if s.Invalid {
			continue
		}
		if s.LocationType == model.LocationTypeStation {
			continue
		}
		if _, grouped := c.masterOfStop[s.ID]; grouped {
			continue
		}
		// Standalone stop, or a platform whose declared parent_station
		// was itself not a station: treat it as its own master.
		c.masters[s.ID] = model.MasterStop{
			ID:   s.ID,
			Name: s.Name,
			Lat:  s.Lat,
			Lon:  s.Lon,
		}
		c.masterOfStop[s.ID] = s.ID
	}
}

func (c *Catalog) Route(id string) (model.Route, bool) { return c.store.Route(id) }
func (c *Catalog) Stop(id string) (model.Stop, bool)   { return c.store.Stop(id) }
func (c *Catalog) Trip(id string) (model.Trip, bool)   { return c.store.Trip(id) }

func (c *Catalog) StopTimesOfTrip(tripID string) []model.StopTime {
	return c.store.StopTimesOfTrip(tripID)
}

func (c *Catalog) EventsAtStop(stopID string) []StopEvent {
	return c.store.EventsAtStop(stopID)
}

func (c *Catalog) AllStops() []model.Stop { return c.store.AllStops() }
func (c *Catalog) AllTrips() []model.Trip { return c.store.AllTrips() }

// MasterStops returns every master stop, in no particular order.
func (c *Catalog) MasterStops() []model.MasterStop {
	out := make([]model.MasterStop, 0, len(c.masters))
	for _, m := range c.masters {
		out = append(out, m)
	}
	return out
}

// MasterStop looks up a master stop by its own ID.
func (c *Catalog) MasterStop(id string) (model.MasterStop, bool) {
	m, ok := c.masters[id]
	return m, ok
}

// MasterOf returns the master stop ID a given stop ID belongs to.
// Invalid stops have no master.
func (c *Catalog) MasterOf(stopID string) (string, bool) {
	id, ok := c.masterOfStop[stopID]
	return id, ok
}

// ChildrenOfMaster returns a station master's own stop ID together with
// every platform belonging to it (the master always lists itself), or
// nil for a standalone master.
func (c *Catalog) ChildrenOfMaster(masterID string) []string {
	m, ok := c.masters[masterID]
	if !ok {
		return nil
	}
	return m.Children
}

// GeometryForRoute returns the route's line geometry, if map.geojson
// supplied one.
func (c *Catalog) GeometryForRoute(routeID string) (model.LineGeometry, bool) {
	g, ok := c.geometryByRoute[routeID]
	return g, ok
}
