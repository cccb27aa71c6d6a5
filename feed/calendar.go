package feed

import (
	"io"
	"regexp"

	"github.com/gocarina/gocsv"

	"transitcore/model"
)

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	Monday    string `csv:"monday"`
	Tuesday   string `csv:"tuesday"`
	Wednesday string `csv:"wednesday"`
	Thursday  string `csv:"thursday"`
	Friday    string `csv:"friday"`
	Saturday  string `csv:"saturday"`
	Sunday    string `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

var dateRe = regexp.MustCompile(`^[0-9]{8}$`)

func parseBinaryFlag(field, serviceID, val string) (bool, error) {
	switch val {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, &FeedMalformedError{File: "calendar.txt", Reason: "service_id '" + serviceID + "' has invalid " + field}
	}
}

// parseCalendar parses calendar.txt, which is optional: a feed may define
// every service entirely through calendar_dates.txt exceptions. When the
// file is absent the caller does not call this function at all.
func parseCalendar(data io.Reader) (map[string]model.CalendarRule, error) {
	rows := []*calendarCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &FeedMalformedError{File: "calendar.txt", Reason: err.Error()}
	}

	rules := map[string]model.CalendarRule{}
	for _, r := range rows {
		if r.ServiceID == "" {
			return nil, &FeedMalformedError{File: "calendar.txt", Reason: "empty service_id"}
		}
		if _, dup := rules[r.ServiceID]; dup {
			return nil, &FeedMalformedError{File: "calendar.txt", Reason: "repeated service_id: " + r.ServiceID}
		}
		if !dateRe.MatchString(r.StartDate) || !dateRe.MatchString(r.EndDate) {
			return nil, &FeedMalformedError{File: "calendar.txt", Reason: "service_id '" + r.ServiceID + "' has malformed start_date/end_date"}
		}
		if r.EndDate < r.StartDate {
			return nil, &FeedMalformedError{File: "calendar.txt", Reason: "service_id '" + r.ServiceID + "' has end_date before start_date"}
		}

		sun, err := parseBinaryFlag("sunday", r.ServiceID, r.Sunday)
		if err != nil {
			return nil, err
		}
		mon, err := parseBinaryFlag("monday", r.ServiceID, r.Monday)
		if err != nil {
			return nil, err
		}
		tue, err := parseBinaryFlag("tuesday", r.ServiceID, r.Tuesday)
		if err != nil {
			return nil, err
		}
		wed, err := parseBinaryFlag("wednesday", r.ServiceID, r.Wednesday)
		if err != nil {
			return nil, err
		}
		thu, err := parseBinaryFlag("thursday", r.ServiceID, r.Thursday)
		if err != nil {
			return nil, err
		}
		fri, err := parseBinaryFlag("friday", r.ServiceID, r.Friday)
		if err != nil {
			return nil, err
		}
		sat, err := parseBinaryFlag("saturday", r.ServiceID, r.Saturday)
		if err != nil {
			return nil, err
		}

		rules[r.ServiceID] = model.CalendarRule{
			ServiceID: r.ServiceID,
			Weekday:   [7]bool{sun, mon, tue, wed, thu, fri, sat},
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
		}
	}

	return rules, nil
}
