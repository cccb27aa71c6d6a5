package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transitcore/model"
	"transitcore/service"
)

func TestIsActiveWeeklyRule(t *testing.T) {
	rules := map[string]model.CalendarRule{
		"WEEKDAY": {
			ServiceID: "WEEKDAY",
			Weekday:   [7]bool{false, true, true, true, true, true, false}, // Mon-Fri
			StartDate: "20260101",
			EndDate:   "20261231",
		},
	}
	cal := service.NewCalendar(rules, nil)

	assert.True(t, cal.IsActive("WEEKDAY", "20260203"))  // Tuesday
	assert.False(t, cal.IsActive("WEEKDAY", "20260201")) // Sunday
	assert.False(t, cal.IsActive("WEEKDAY", "20251231")) // before start
}

func TestIsActiveExceptionOverridesRule(t *testing.T) {
	rules := map[string]model.CalendarRule{
		"WEEKDAY": {
			ServiceID: "WEEKDAY",
			Weekday:   [7]bool{false, true, true, true, true, true, false},
			StartDate: "20260101",
			EndDate:   "20261231",
		},
	}
	exceptions := []model.CalendarException{
		{ServiceID: "WEEKDAY", Date: "20260203", ExceptionType: model.ExceptionRemoved}, // holiday Tuesday
		{ServiceID: "WEEKDAY", Date: "20260201", ExceptionType: model.ExceptionAdded},   // special Sunday service
	}
	cal := service.NewCalendar(rules, exceptions)

	assert.False(t, cal.IsActive("WEEKDAY", "20260203"))
	assert.True(t, cal.IsActive("WEEKDAY", "20260201"))
}

func TestIsActiveServiceDefinedOnlyByExceptions(t *testing.T) {
	exceptions := []model.CalendarException{
		{ServiceID: "SPECIAL", Date: "20260704", ExceptionType: model.ExceptionAdded},
	}
	cal := service.NewCalendar(nil, exceptions)

	assert.True(t, cal.IsActive("SPECIAL", "20260704"))
	assert.False(t, cal.IsActive("SPECIAL", "20260705"))
}

func TestActiveServices(t *testing.T) {
	rules := map[string]model.CalendarRule{
		"WEEKDAY": {
			ServiceID: "WEEKDAY",
			Weekday:   [7]bool{false, true, true, true, true, true, false},
			StartDate: "20260101",
			EndDate:   "20261231",
		},
	}
	exceptions := []model.CalendarException{
		{ServiceID: "HOLIDAY", Date: "20260203", ExceptionType: model.ExceptionAdded},
		{ServiceID: "WEEKDAY", Date: "20260203", ExceptionType: model.ExceptionRemoved},
	}
	cal := service.NewCalendar(rules, exceptions)

	active := cal.ActiveServices("20260203")
	assert.True(t, active["HOLIDAY"])
	assert.False(t, active["WEEKDAY"])
}
