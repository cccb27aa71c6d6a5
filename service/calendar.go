// Package service resolves which GTFS service_ids are active on a
// given calendar date, combining calendar.txt's weekly pattern with
// calendar_dates.txt's per-date exceptions.
package service

import (
	"time"

	"transitcore/model"
)

// Calendar answers IsActive queries for a single loaded feed.
type Calendar struct {
	rules      map[string]model.CalendarRule
	exceptions map[string]map[string]model.ExceptionType // date -> service_id -> type
}

func NewCalendar(rules map[string]model.CalendarRule, exceptions []model.CalendarException) *Calendar {
	byDate := map[string]map[string]model.ExceptionType{}
	for _, e := range exceptions {
		if byDate[e.Date] == nil {
			byDate[e.Date] = map[string]model.ExceptionType{}
		}
		byDate[e.Date][e.ServiceID] = e.ExceptionType
	}
	return &Calendar{rules: rules, exceptions: byDate}
}

// IsActive reports whether serviceID runs on date (YYYYMMDD). An
// exception for that exact date always wins: ExceptionAdded makes the
// service run even outside its calendar.txt rule (or with no rule at
// all), ExceptionRemoved suppresses it even on a day its weekly
// pattern would otherwise select. Absent an exception, the weekly
// pattern applies only within [StartDate, EndDate].
func (c *Calendar) IsActive(serviceID string, date string) bool {
	if byService, found := c.exceptions[date]; found {
		if exceptionType, found := byService[serviceID]; found {
			return exceptionType == model.ExceptionAdded
		}
	}

	rule, found := c.rules[serviceID]
	if !found {
		return false
	}
	if date < rule.StartDate || date > rule.EndDate {
		return false
	}

	weekday, err := parseDate(date)
	if err != nil {
		return false
	}
	return rule.Weekday[weekday]
}

// ActiveServices returns every service_id active on date, across both
// calendar.txt rules and calendar_dates.txt additions.
func (c *Calendar) ActiveServices(date string) map[string]bool {
	out := map[string]bool{}

	for id, rule := range c.rules {
		if date < rule.StartDate || date > rule.EndDate {
			continue
		}
		weekday, err := parseDate(date)
		if err != nil {
			continue
		}
		if rule.Weekday[weekday] {
			out[id] = true
		}
	}

	if byService, found := c.exceptions[date]; found {
		for id, exceptionType := range byService {
			if exceptionType == model.ExceptionAdded {
				out[id] = true
			} else {
				delete(out, id)
			}
		}
	}

	return out
}

func parseDate(date string) (time.Weekday, error) {
	t, err := time.Parse("20060102", date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}
