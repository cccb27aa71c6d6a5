package feed

import (
	"io"

	"github.com/gocarina/gocsv"

	"transitcore/model"
)

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType string `csv:"exception_type"`
}

// parseCalendarDates parses calendar_dates.txt, also optional. A
// service_id may appear here without ever appearing in calendar.txt,
// which is how feeds define services that run only on exception dates.
func parseCalendarDates(data io.Reader) ([]model.CalendarException, error) {
	rows := []*calendarDateCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &FeedMalformedError{File: "calendar_dates.txt", Reason: err.Error()}
	}

	seen := map[string]bool{} // service_id+date, must be unique together
	out := make([]model.CalendarException, 0, len(rows))
	for _, r := range rows {
		if r.ServiceID == "" {
			return nil, &FeedMalformedError{File: "calendar_dates.txt", Reason: "empty service_id"}
		}
		if !dateRe.MatchString(r.Date) {
			return nil, &FeedMalformedError{File: "calendar_dates.txt", Reason: "service_id '" + r.ServiceID + "' has malformed date"}
		}

		key := r.ServiceID + "|" + r.Date
		if seen[key] {
			return nil, &FeedMalformedError{File: "calendar_dates.txt", Reason: "repeated service_id/date pair: " + key}
		}
		seen[key] = true

		var exceptionType model.ExceptionType
		switch r.ExceptionType {
		case "1":
			exceptionType = model.ExceptionAdded
		case "2":
			exceptionType = model.ExceptionRemoved
		default:
			return nil, &FeedMalformedError{File: "calendar_dates.txt", Reason: "service_id '" + r.ServiceID + "' has invalid exception_type"}
		}

		out = append(out, model.CalendarException{
			ServiceID:     r.ServiceID,
			Date:          r.Date,
			ExceptionType: exceptionType,
		})
	}

	return out, nil
}

// knownServiceIDs collects every service_id referenced by calendar.txt
// rules or calendar_dates.txt exceptions, the universe trips.txt's
// service_id column is validated against.
func knownServiceIDs(rules map[string]model.CalendarRule, exceptions []model.CalendarException) map[string]bool {
	out := map[string]bool{}
	for id := range rules {
		out[id] = true
	}
	for _, e := range exceptions {
		out[e.ServiceID] = true
	}
	return out
}
