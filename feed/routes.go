package feed

import (
	"encoding/hex"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transitcore/model"
)

type routeCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
	Color     string `csv:"route_color"`
	TextColor string `csv:"route_text_color"`
}

func legalRouteType(t model.RouteType) bool {
	if t >= 0 && t <= 7 {
		return true
	}
	return t == model.RouteTypeTrolleybus || t == model.RouteTypeMonorail
}

func validRouteColor(color string) bool {
	if len(color) != 6 {
		return false
	}
	_, err := hex.DecodeString(color)
	return err == nil
}

func parseRoutes(data io.Reader) (map[string]model.Route, error) {
	rows := []*routeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &FeedMalformedError{File: "routes.txt", Reason: err.Error()}
	}

	routes := map[string]model.Route{}
	for _, r := range rows {
		if r.ID == "" {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "route has no route_id"}
		}
		if _, dup := routes[r.ID]; dup {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "repeated route_id: " + r.ID}
		}
		if r.ShortName == "" && r.LongName == "" {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "route_id '" + r.ID + "' has no short_name or long_name"}
		}
		if r.Type == "" {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "route_id '" + r.ID + "' has no route_type"}
		}

		routeType, err := strconv.Atoi(r.Type)
		if err != nil {
			return nil, errors.Wrapf(&FeedMalformedError{File: "routes.txt", Reason: "invalid route_type"}, "route_id %q", r.ID)
		}
		if !legalRouteType(model.RouteType(routeType)) {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "route_id '" + r.ID + "' has invalid route_type"}
		}

		if r.Color == "" {
			r.Color = "FFFFFF"
		} else if !validRouteColor(r.Color) {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "route_id '" + r.ID + "' has invalid route_color"}
		}
		if r.TextColor == "" {
			r.TextColor = "000000"
		} else if !validRouteColor(r.TextColor) {
			return nil, &FeedMalformedError{File: "routes.txt", Reason: "route_id '" + r.ID + "' has invalid route_text_color"}
		}

		routes[r.ID] = model.Route{
			ID:        r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      model.RouteType(routeType),
			Color:     r.Color,
			TextColor: r.TextColor,
		}
	}

	return routes, nil
}
